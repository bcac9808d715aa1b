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

var ErrConversationServiceNotConfigured = errors.New("conversation service not configured")

// ConversationService resuelve la conversación única entre quien consulta y el
// dueño de un listing, y lista las conversaciones de un usuario.
type ConversationService struct {
	logger        *zap.Logger
	listings      repository.ListingRepository
	conversations repository.ConversationRepository
	now           func() time.Time
}

func NewConversationService(logger *zap.Logger, listings repository.ListingRepository, conversations repository.ConversationRepository) *ConversationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationService{
		logger:        logger,
		listings:      listings,
		conversations: conversations,
		now:           nowUTC,
	}
}

// GetOrCreate devuelve la conversación para (listing, requester, owner),
// creándola si no existe. created indica si esta llamada la insertó.
func (s *ConversationService) GetOrCreate(ctx context.Context, listingID, requesterID string) (domain.Conversation, bool, error) {
	if s == nil || s.listings == nil || s.conversations == nil {
		return domain.Conversation{}, false, ErrConversationServiceNotConfigured
	}

	listingID = strings.TrimSpace(listingID)
	requesterID = strings.TrimSpace(requesterID)
	if requesterID == "" {
		return domain.Conversation{}, false, ErrUnauthenticated
	}
	if listingID == "" {
		return domain.Conversation{}, false, ErrListingNotFound
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Conversation{}, false, ErrListingNotFound
		}
		return domain.Conversation{}, false, unavailable(err)
	}
	if listing.OwnerID == requesterID {
		return domain.Conversation{}, false, ErrSelfConversation
	}

	existing, err := s.conversations.GetByKey(ctx, listing.ID, requesterID, listing.OwnerID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Conversation{}, false, unavailable(err)
	}

	now := s.now()
	conv, created, err := s.conversations.CreateOrGet(ctx, domain.Conversation{
		ListingID:     listing.ID,
		RequesterID:   requesterID,
		OwnerID:       listing.OwnerID,
		CreatedAt:     now,
		LastMessageAt: now,
	})
	if err != nil {
		// El listing pudo borrarse entre la lectura y el insert.
		if errors.Is(err, repository.ErrMissingReference) {
			return domain.Conversation{}, false, ErrListingNotFound
		}
		return domain.Conversation{}, false, unavailable(err)
	}
	if created {
		s.logger.Info("conversation created",
			zap.Int64("conversation_id", conv.ID),
			zap.String("listing_id", conv.ListingID),
			zap.String("requester_id", conv.RequesterID),
		)
	}
	return conv, created, nil
}

// Get devuelve la conversación solo si principal participa de ella.
func (s *ConversationService) Get(ctx context.Context, conversationID int64, principal string) (domain.Conversation, error) {
	if s == nil || s.conversations == nil {
		return domain.Conversation{}, ErrConversationServiceNotConfigured
	}
	return authorizeParticipant(ctx, s.conversations, conversationID, principal)
}

// List devuelve las conversaciones de principal, las más activas primero.
func (s *ConversationService) List(ctx context.Context, principal string) ([]domain.ConversationSummary, error) {
	if s == nil || s.conversations == nil {
		return nil, ErrConversationServiceNotConfigured
	}
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return nil, ErrUnauthenticated
	}
	summaries, err := s.conversations.ListSummaries(ctx, principal)
	if err != nil {
		return nil, unavailable(err)
	}
	if summaries == nil {
		summaries = []domain.ConversationSummary{}
	}
	return summaries, nil
}

func authorizeParticipant(ctx context.Context, conversations repository.ConversationRepository, conversationID int64, principal string) (domain.Conversation, error) {
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return domain.Conversation{}, ErrUnauthenticated
	}
	if conversationID <= 0 {
		return domain.Conversation{}, ErrConversationNotFound
	}
	conv, err := conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Conversation{}, ErrConversationNotFound
		}
		return domain.Conversation{}, unavailable(err)
	}
	if !conv.HasParticipant(principal) {
		return domain.Conversation{}, ErrNotParticipant
	}
	return conv, nil
}
