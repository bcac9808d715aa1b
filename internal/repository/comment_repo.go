package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rental-hub/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment) error
	ListByListingID(ctx context.Context, listingID string) ([]domain.Comment, error)
}

type PgCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPgCommentRepository(pool *pgxpool.Pool) *PgCommentRepository {
	return &PgCommentRepository{pool: pool}
}

func (r *PgCommentRepository) Create(ctx context.Context, comment domain.Comment) error {
	const query = `
		INSERT INTO comments (id, listing_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.ListingID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	)
	return translatePgError(err)
}

func (r *PgCommentRepository) ListByListingID(ctx context.Context, listingID string) ([]domain.Comment, error) {
	const query = `
		SELECT id, listing_id, author_id, content, created_at
		FROM comments
		WHERE listing_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ListingID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
