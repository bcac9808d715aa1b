package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"rental-hub/internal/domain"
	"rental-hub/internal/repository"
)

type CommentService struct {
	listings repository.ListingRepository
	comments repository.CommentRepository
}

var ErrCommentServiceNotConfigured = errors.New("comment service not configured")

func NewCommentService(listings repository.ListingRepository, comments repository.CommentRepository) *CommentService {
	return &CommentService{listings: listings, comments: comments}
}

func (s *CommentService) Create(ctx context.Context, listingID, authorID, content string) (domain.Comment, error) {
	if s == nil || s.listings == nil || s.comments == nil {
		return domain.Comment{}, ErrCommentServiceNotConfigured
	}
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return domain.Comment{}, ErrUnauthenticated
	}
	if err := s.ensureListing(ctx, listingID); err != nil {
		return domain.Comment{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, ErrEmptyContent
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		ListingID: strings.TrimSpace(listingID),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: nowUTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return domain.Comment{}, ErrListingNotFound
		}
		return domain.Comment{}, unavailable(err)
	}
	return comment, nil
}

func (s *CommentService) ListByListing(ctx context.Context, listingID string) ([]domain.Comment, error) {
	if s == nil || s.listings == nil || s.comments == nil {
		return nil, ErrCommentServiceNotConfigured
	}
	if err := s.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByListingID(ctx, strings.TrimSpace(listingID))
	if err != nil {
		return nil, unavailable(err)
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

func (s *CommentService) ensureListing(ctx context.Context, listingID string) error {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return ErrListingNotFound
	}
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrListingNotFound
		}
		return unavailable(err)
	}
	return nil
}
