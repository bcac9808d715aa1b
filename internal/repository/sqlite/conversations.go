package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"rental-hub/internal/domain"
	"rental-hub/internal/repository"
)

type ConversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

const selectConversationColumns = `
	SELECT id, listing_id, requester_id, owner_id, created_at, last_message_at
	FROM conversations
`

func (r *ConversationRepository) GetByID(ctx context.Context, id int64) (domain.Conversation, error) {
	return scanConversation(r.db.QueryRowContext(ctx, selectConversationColumns+` WHERE id = ?`, id))
}

func (r *ConversationRepository) GetByKey(ctx context.Context, listingID, requesterID, ownerID string) (domain.Conversation, error) {
	const where = ` WHERE listing_id = ? AND requester_id = ? AND owner_id = ?`
	return scanConversation(r.db.QueryRowContext(ctx, selectConversationColumns+where, listingID, requesterID, ownerID))
}

func (r *ConversationRepository) CreateOrGet(ctx context.Context, conv domain.Conversation) (domain.Conversation, bool, error) {
	const query = `
		INSERT INTO conversations (listing_id, requester_id, owner_id, created_at, last_message_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (listing_id, requester_id, owner_id) DO NOTHING
		RETURNING id, listing_id, requester_id, owner_id, created_at, last_message_at
	`
	created, err := scanConversation(r.db.QueryRowContext(ctx, query,
		conv.ListingID,
		conv.RequesterID,
		conv.OwnerID,
		formatTime(conv.CreatedAt),
		formatTime(conv.LastMessageAt),
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Conversation{}, false, err
	}

	existing, err := r.GetByKey(ctx, conv.ListingID, conv.RequesterID, conv.OwnerID)
	if err != nil {
		return domain.Conversation{}, false, err
	}
	return existing, false, nil
}

func (r *ConversationRepository) ListSummaries(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	const query = `
		SELECT c.id, c.listing_id, c.requester_id, c.owner_id, c.created_at, c.last_message_at,
		       l.title, l.location, l.image_url,
		       u.id, u.name,
		       (SELECT m.content FROM messages m WHERE m.conversation_id = c.id ORDER BY m.id DESC LIMIT 1),
		       (SELECT m.created_at FROM messages m WHERE m.conversation_id = c.id ORDER BY m.id DESC LIMIT 1)
		FROM conversations c
		JOIN listings l ON l.id = c.listing_id
		JOIN users u ON u.id = CASE WHEN c.requester_id = ? THEN c.owner_id ELSE c.requester_id END
		WHERE c.requester_id = ? OR c.owner_id = ?
		ORDER BY c.last_message_at DESC, c.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.ConversationSummary{}
	for rows.Next() {
		var (
			s                          domain.ConversationSummary
			createdAt, lastMessageAt   string
			lastContent, lastSentAtStr sql.NullString
		)
		err := rows.Scan(
			&s.ID,
			&s.ListingID,
			&s.RequesterID,
			&s.OwnerID,
			&createdAt,
			&lastMessageAt,
			&s.ListingTitle,
			&s.ListingLocation,
			&s.ListingImageURL,
			&s.CounterpartID,
			&s.CounterpartName,
			&lastContent,
			&lastSentAtStr,
		)
		if err != nil {
			return nil, err
		}
		if s.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if s.LastMessageAt, err = parseTime(lastMessageAt); err != nil {
			return nil, err
		}
		if lastContent.Valid {
			content := lastContent.String
			s.LastMessage = &content
		}
		if lastSentAtStr.Valid {
			sentAt, err := parseTime(lastSentAtStr.String)
			if err != nil {
				return nil, err
			}
			s.LastMessageSentAt = &sentAt
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func scanConversation(row rowScanner) (domain.Conversation, error) {
	var (
		c                        domain.Conversation
		createdAt, lastMessageAt string
	)
	err := row.Scan(&c.ID, &c.ListingID, &c.RequesterID, &c.OwnerID, &createdAt, &lastMessageAt)
	if err != nil {
		return domain.Conversation{}, translateError(err)
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Conversation{}, err
	}
	if c.LastMessageAt, err = parseTime(lastMessageAt); err != nil {
		return domain.Conversation{}, err
	}
	return c, nil
}
