package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-hub/internal/domain"
)

// ConversationRepository define el contrato de persistencia para conversaciones.
type ConversationRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Conversation, error)
	GetByKey(ctx context.Context, listingID, requesterID, ownerID string) (domain.Conversation, error)
	// CreateOrGet inserta la conversación o, si otra petición ganó la carrera
	// por la misma clave, devuelve la fila existente con created=false.
	CreateOrGet(ctx context.Context, conv domain.Conversation) (domain.Conversation, bool, error)
	ListSummaries(ctx context.Context, userID string) ([]domain.ConversationSummary, error)
}

type PgConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool}
}

const selectConversationColumns = `
	SELECT id, listing_id, requester_id, owner_id, created_at, last_message_at
	FROM conversations
`

func (r *PgConversationRepository) GetByID(ctx context.Context, id int64) (domain.Conversation, error) {
	return scanConversation(r.pool.QueryRow(ctx, selectConversationColumns+` WHERE id = $1`, id))
}

func (r *PgConversationRepository) GetByKey(ctx context.Context, listingID, requesterID, ownerID string) (domain.Conversation, error) {
	const where = ` WHERE listing_id = $1 AND requester_id = $2 AND owner_id = $3`
	return scanConversation(r.pool.QueryRow(ctx, selectConversationColumns+where, listingID, requesterID, ownerID))
}

func (r *PgConversationRepository) CreateOrGet(ctx context.Context, conv domain.Conversation) (domain.Conversation, bool, error) {
	const query = `
		INSERT INTO conversations (listing_id, requester_id, owner_id, created_at, last_message_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (listing_id, requester_id, owner_id) DO NOTHING
		RETURNING id, listing_id, requester_id, owner_id, created_at, last_message_at
	`
	created, err := scanConversation(r.pool.QueryRow(ctx, query,
		conv.ListingID,
		conv.RequesterID,
		conv.OwnerID,
		conv.CreatedAt,
		conv.LastMessageAt,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.Conversation{}, false, err
	}

	existing, err := r.GetByKey(ctx, conv.ListingID, conv.RequesterID, conv.OwnerID)
	if err != nil {
		return domain.Conversation{}, false, err
	}
	return existing, false, nil
}

func (r *PgConversationRepository) ListSummaries(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	const query = `
		SELECT c.id, c.listing_id, c.requester_id, c.owner_id, c.created_at, c.last_message_at,
		       l.title, l.location, l.image_url,
		       u.id, u.name,
		       lm.content, lm.created_at
		FROM conversations c
		JOIN listings l ON l.id = c.listing_id
		JOIN users u ON u.id = CASE WHEN c.requester_id = $1 THEN c.owner_id ELSE c.requester_id END
		LEFT JOIN LATERAL (
			SELECT m.content, m.created_at
			FROM messages m
			WHERE m.conversation_id = c.id
			ORDER BY m.id DESC
			LIMIT 1
		) lm ON TRUE
		WHERE c.requester_id = $1 OR c.owner_id = $1
		ORDER BY c.last_message_at DESC, c.id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.ConversationSummary{}
	for rows.Next() {
		var (
			s          domain.ConversationSummary
			lastSentAt *time.Time
		)
		err = rows.Scan(
			&s.ID,
			&s.ListingID,
			&s.RequesterID,
			&s.OwnerID,
			&s.CreatedAt,
			&s.LastMessageAt,
			&s.ListingTitle,
			&s.ListingLocation,
			&s.ListingImageURL,
			&s.CounterpartID,
			&s.CounterpartName,
			&s.LastMessage,
			&lastSentAt,
		)
		if err != nil {
			return nil, err
		}
		s.CreatedAt = s.CreatedAt.UTC()
		s.LastMessageAt = s.LastMessageAt.UTC()
		if lastSentAt != nil {
			sentAt := lastSentAt.UTC()
			s.LastMessageSentAt = &sentAt
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func scanConversation(row pgx.Row) (domain.Conversation, error) {
	var c domain.Conversation
	err := row.Scan(
		&c.ID,
		&c.ListingID,
		&c.RequesterID,
		&c.OwnerID,
		&c.CreatedAt,
		&c.LastMessageAt,
	)
	if err != nil {
		return domain.Conversation{}, translatePgError(err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.LastMessageAt = c.LastMessageAt.UTC()
	return c, nil
}
