package postgresql

import (
	"context"

	"shareit/internal/db"
	"shareit/internal/repository"
)

type CommentRepo struct {
	db db.DB
}

func NewCommentRepo(db db.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Create(ctx context.Context, comment *repository.Comment) (int64, error) {
	var id int64
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO comments (text, item_id, author_id, created)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, comment.Text, comment.ItemID, comment.AuthorID, comment.Created).Scan(&id)
	return id, err
}

func (r *CommentRepo) GetByItem(ctx context.Context, itemID int64) ([]repository.CommentDetails, error) {
	var comments []repository.CommentDetails
	err := r.db.Select(ctx, &comments, `
        SELECT c.id, c.text, c.item_id, u.name AS author_name, c.created
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.item_id = $1
        ORDER BY c.created
    `, itemID)
	return comments, err
}
