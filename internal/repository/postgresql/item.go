package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"shareit/internal/db"
	"shareit/internal/repository"
)

type ItemRepo struct {
	db db.DB
}

func NewItemRepo(db db.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) Create(ctx context.Context, item *repository.Item) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO items (owner_id, name, description, available, request_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, item.OwnerID, item.Name, item.Description, item.Available, item.RequestID).Scan(&id)
	return id, err
}

func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*repository.Item, error) {
	var item repository.Item
	err := r.db.Get(ctx, &item, `
        SELECT id, owner_id, name, description, available, request_id
        FROM items WHERE id = $1
    `, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetByIDAndOwner scopes the lookup to the owner so a non-owner caller is
// indistinguishable from a missing item.
func (r *ItemRepo) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*repository.Item, error) {
	var item repository.Item
	err := r.db.Get(ctx, &item, `
        SELECT id, owner_id, name, description, available, request_id
        FROM items WHERE id = $1 AND owner_id = $2
    `, id, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepo) GetByOwner(ctx context.Context, ownerID int64) ([]repository.Item, error) {
	var items []repository.Item
	err := r.db.Select(ctx, &items, `
        SELECT id, owner_id, name, description, available, request_id
        FROM items WHERE owner_id = $1 ORDER BY id
    `, ownerID)
	return items, err
}

func (r *ItemRepo) Update(ctx context.Context, item *repository.Item) error {
	_, err := r.db.Exec(ctx, `
        UPDATE items
        SET name = $1, description = $2, available = $3
        WHERE id = $4
    `, item.Name, item.Description, item.Available, item.ID)
	return err
}

func (r *ItemRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM items WHERE id = $1 AND owner_id = $2", id, ownerID)
	return err
}

func (r *ItemRepo) Search(ctx context.Context, text string) ([]repository.Item, error) {
	var items []repository.Item
	err := r.db.Select(ctx, &items, `
        SELECT id, owner_id, name, description, available, request_id
        FROM items
        WHERE available AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
        ORDER BY id
    `, text)
	return items, err
}

func (r *ItemRepo) GetByRequestIDs(ctx context.Context, requestIDs []int64) ([]repository.Item, error) {
	var items []repository.Item
	err := r.db.Select(ctx, &items, `
        SELECT id, owner_id, name, description, available, request_id
        FROM items WHERE request_id = ANY($1)
        ORDER BY id
    `, requestIDs)
	return items, err
}
