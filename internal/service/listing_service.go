package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"rental-hub/internal/domain"
	"rental-hub/internal/repository"
)

// ListingService coordina la publicación y consulta de listings.
type ListingService struct {
	listings repository.ListingRepository
	users    repository.UserRepository
}

var ErrListingServiceNotConfigured = errors.New("listing service not configured")

func NewListingService(listings repository.ListingRepository, users repository.UserRepository) *ListingService {
	return &ListingService{listings: listings, users: users}
}

type CreateListingInput struct {
	Title         string
	Location      string
	Price         float64
	Bedrooms      int
	Bathrooms     int
	Size          string
	ImageURL      string
	Description   string
	AvailableFrom *time.Time
	Amenities     []string
	Status        string
	ContactName   string
	ContactPhone  string
}

func (s *ListingService) Create(ctx context.Context, ownerID string, input CreateListingInput) (domain.Listing, error) {
	if s == nil || s.listings == nil || s.users == nil {
		return domain.Listing{}, ErrListingServiceNotConfigured
	}

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return domain.Listing{}, ErrUnauthenticated
	}
	title := strings.TrimSpace(input.Title)
	location := strings.TrimSpace(input.Location)
	if title == "" || location == "" || input.Price < 0 || input.Bedrooms < 0 || input.Bathrooms < 0 {
		return domain.Listing{}, ErrInvalidListing
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Listing{}, ErrUnauthenticated
		}
		return domain.Listing{}, unavailable(err)
	}

	amenities := make([]string, 0, len(input.Amenities))
	for _, a := range input.Amenities {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}
	contactName := strings.TrimSpace(input.ContactName)
	if contactName == "" {
		contactName = owner.Name
	}

	listing := domain.Listing{
		ID:            uuid.NewString(),
		OwnerID:       owner.ID,
		Title:         title,
		Location:      location,
		Price:         input.Price,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		Size:          strings.TrimSpace(input.Size),
		ImageURL:      strings.TrimSpace(input.ImageURL),
		Description:   strings.TrimSpace(input.Description),
		AvailableFrom: input.AvailableFrom,
		Amenities:     amenities,
		Status:        strings.TrimSpace(input.Status),
		ContactName:   contactName,
		ContactPhone:  strings.TrimSpace(input.ContactPhone),
		ContactEmail:  owner.Email,
		CreatedAt:     nowUTC(),
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return domain.Listing{}, unavailable(err)
	}
	return listing, nil
}

func (s *ListingService) List(ctx context.Context) ([]domain.Listing, error) {
	if s == nil || s.listings == nil {
		return nil, ErrListingServiceNotConfigured
	}
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, nil
}

// Get devuelve el listing junto con el perfil público del dueño.
func (s *ListingService) Get(ctx context.Context, listingID string) (domain.ListingDetail, error) {
	if s == nil || s.listings == nil || s.users == nil {
		return domain.ListingDetail{}, ErrListingServiceNotConfigured
	}
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return domain.ListingDetail{}, ErrListingNotFound
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ListingDetail{}, ErrListingNotFound
		}
		return domain.ListingDetail{}, unavailable(err)
	}
	owner, err := s.users.GetByID(ctx, listing.OwnerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.ListingDetail{}, unavailable(err)
	}
	return domain.ListingDetail{Listing: listing, Owner: owner.Public()}, nil
}
