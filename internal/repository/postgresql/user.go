package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"shareit/internal/db"
	"shareit/internal/repository"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *repository.User) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO users (email, name) VALUES ($1, $2) RETURNING id
    `, user.Email, user.Name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, "SELECT id, email, name FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetAll(ctx context.Context) ([]repository.User, error) {
	var users []repository.User
	err := r.db.Select(ctx, &users, "SELECT id, email, name FROM users ORDER BY id")
	return users, err
}

func (r *UserRepo) Update(ctx context.Context, user *repository.User) error {
	_, err := r.db.Exec(ctx, `
        UPDATE users SET email = $1, name = $2 WHERE id = $3
    `, user.Email, user.Name, user.ID)
	if isUniqueViolation(err) {
		return repository.ErrEmailTaken
	}
	return err
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

func (r *UserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.Get(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id)
	return exists, err
}

func (r *UserRepo) EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error) {
	var exists bool
	err := r.db.Get(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)", email, userID)
	return exists, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
