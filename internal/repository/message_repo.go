package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rental-hub/internal/domain"
)

type MessageRepository interface {
	// Append guarda el mensaje y actualiza last_message_at de la conversación
	// en una misma transacción. El CreatedAt devuelto nunca es anterior al del
	// mensaje previo de la conversación.
	Append(ctx context.Context, message domain.Message) (domain.Message, error)
	ListByConversationID(ctx context.Context, conversationID int64) ([]domain.Message, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Append(ctx context.Context, message domain.Message) (domain.Message, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Message{}, err
	}
	// Rollback luego de Commit no tiene efecto.
	defer func() { _ = tx.Rollback(ctx) }()

	// El UPDATE toma el lock de la fila antes del INSERT, así los ids quedan
	// en el mismo orden en que se serializan los envíos de la conversación.
	// GREATEST evita que el timestamp retroceda respecto del último mensaje.
	err = tx.QueryRow(ctx,
		`UPDATE conversations
		 SET last_message_at = GREATEST(last_message_at, $2)
		 WHERE id = $1
		 RETURNING last_message_at`,
		message.ConversationID,
		message.CreatedAt,
	).Scan(&message.CreatedAt)
	if err != nil {
		return domain.Message{}, translatePgError(err)
	}
	message.CreatedAt = message.CreatedAt.UTC()

	const insert = `
		INSERT INTO messages (conversation_id, listing_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = tx.QueryRow(ctx, insert,
		message.ConversationID,
		message.ListingID,
		message.SenderID,
		message.Content,
		message.CreatedAt,
	).Scan(&message.ID)
	if err != nil {
		return domain.Message{}, translatePgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

func (r *PgMessageRepository) ListByConversationID(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	const query = `
		SELECT id, conversation_id, listing_id, sender_id, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		err = rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.ListingID,
			&msg.SenderID,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		msg.CreatedAt = msg.CreatedAt.UTC()
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
