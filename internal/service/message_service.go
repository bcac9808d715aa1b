package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"rental-hub/internal/domain"
	"rental-hub/internal/repository"
)

// MessageService encapsula la lógica para manejar mensajes de una conversación.
type MessageService struct {
	logger        *zap.Logger
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	now           func() time.Time
}

var ErrMessageServiceNotConfigured = errors.New("message service not configured")

func NewMessageService(logger *zap.Logger, conversations repository.ConversationRepository, messages repository.MessageRepository) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		logger:        logger,
		conversations: conversations,
		messages:      messages,
		now:           nowUTC,
	}
}

func (s *MessageService) Send(ctx context.Context, conversationID int64, senderID, content string) (domain.Message, error) {
	if s == nil || s.conversations == nil || s.messages == nil {
		return domain.Message{}, ErrMessageServiceNotConfigured
	}

	conv, err := authorizeParticipant(ctx, s.conversations, conversationID, senderID)
	if err != nil {
		return domain.Message{}, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, ErrEmptyContent
	}

	msg, err := s.messages.Append(ctx, domain.Message{
		ConversationID: conv.ID,
		ListingID:      conv.ListingID,
		SenderID:       strings.TrimSpace(senderID),
		Content:        content,
		CreatedAt:      s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Message{}, ErrConversationNotFound
		}
		s.logger.Warn("append message failed", zap.Error(err), zap.Int64("conversation_id", conv.ID))
		return domain.Message{}, unavailable(err)
	}
	return msg, nil
}

// ListFor devuelve los mensajes en orden de envío.
func (s *MessageService) ListFor(ctx context.Context, conversationID int64, principal string) ([]domain.Message, error) {
	if s == nil || s.conversations == nil || s.messages == nil {
		return nil, ErrMessageServiceNotConfigured
	}

	conv, err := authorizeParticipant(ctx, s.conversations, conversationID, principal)
	if err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByConversationID(ctx, conv.ID)
	if err != nil {
		return nil, unavailable(err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}
