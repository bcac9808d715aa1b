package sqlite

import (
	"context"
	"database/sql"

	"rental-hub/internal/domain"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Append(ctx context.Context, message domain.Message) (domain.Message, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Message{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// MAX sobre el texto de ancho fijo equivale al máximo temporal.
	var lastActivity string
	err = tx.QueryRowContext(ctx,
		`UPDATE conversations
		 SET last_message_at = MAX(last_message_at, ?)
		 WHERE id = ?
		 RETURNING last_message_at`,
		formatTime(message.CreatedAt),
		message.ConversationID,
	).Scan(&lastActivity)
	if err != nil {
		return domain.Message{}, translateError(err)
	}
	if message.CreatedAt, err = parseTime(lastActivity); err != nil {
		return domain.Message{}, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO messages (conversation_id, listing_id, sender_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		message.ConversationID,
		message.ListingID,
		message.SenderID,
		message.Content,
		formatTime(message.CreatedAt),
	)
	if err != nil {
		return domain.Message{}, translateError(err)
	}
	if message.ID, err = res.LastInsertId(); err != nil {
		return domain.Message{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

func (r *MessageRepository) ListByConversationID(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	const query = `
		SELECT id, conversation_id, listing_id, sender_id, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var (
			msg       domain.Message
			createdAt string
		)
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.ListingID, &msg.SenderID, &msg.Content, &createdAt); err != nil {
			return nil, err
		}
		if msg.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
