package sqlite

import (
	"context"
	"database/sql"

	"rental-hub/internal/domain"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment domain.Comment) error {
	const query = `
		INSERT INTO comments (id, listing_id, author_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID,
		comment.ListingID,
		comment.AuthorID,
		comment.Content,
		formatTime(comment.CreatedAt),
	)
	return translateError(err)
}

func (r *CommentRepository) ListByListingID(ctx context.Context, listingID string) ([]domain.Comment, error) {
	const query = `
		SELECT id, listing_id, author_id, content, created_at
		FROM comments
		WHERE listing_id = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var (
			c         domain.Comment
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.ListingID, &c.AuthorID, &c.Content, &createdAt); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
