package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"shareit/internal/db"
	"shareit/internal/repository"
)

type RequestRepo struct {
	db db.DB
}

func NewRequestRepo(db db.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

func (r *RequestRepo) Create(ctx context.Context, request *repository.ItemRequest) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO requests (description, requester_id, created)
        VALUES ($1, $2, $3)
        RETURNING id
    `, request.Description, request.RequesterID, request.Created).Scan(&id)
	return id, err
}

func (r *RequestRepo) GetByID(ctx context.Context, id int64) (*repository.ItemRequest, error) {
	var request repository.ItemRequest
	err := r.db.Get(ctx, &request, `
        SELECT id, description, requester_id, created FROM requests WHERE id = $1
    `, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepo) GetByRequester(ctx context.Context, requesterID int64) ([]repository.ItemRequest, error) {
	var requests []repository.ItemRequest
	err := r.db.Select(ctx, &requests, `
        SELECT id, description, requester_id, created
        FROM requests WHERE requester_id = $1
        ORDER BY created
    `, requesterID)
	return requests, err
}

// GetByOtherRequesters pages through requests created by everyone except the
// caller, oldest first.
func (r *RequestRepo) GetByOtherRequesters(ctx context.Context, requesterID, limit, offset int64) ([]repository.ItemRequest, error) {
	var requests []repository.ItemRequest
	err := r.db.Select(ctx, &requests, `
        SELECT id, description, requester_id, created
        FROM requests WHERE requester_id <> $1
        ORDER BY created
        LIMIT $2 OFFSET $3
    `, requesterID, limit, offset)
	return requests, err
}

func (r *RequestRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.Get(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)", id)
	return exists, err
}
