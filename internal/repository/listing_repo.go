package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-hub/internal/domain"
)

// ListingRepository define el contrato de persistencia para listings.
type ListingRepository interface {
	Create(ctx context.Context, listing domain.Listing) error
	List(ctx context.Context) ([]domain.Listing, error)
	GetByID(ctx context.Context, id string) (domain.Listing, error)
}

type PgListingRepository struct {
	pool *pgxpool.Pool
}

func NewPgListingRepository(pool *pgxpool.Pool) *PgListingRepository {
	return &PgListingRepository{pool: pool}
}

func (r *PgListingRepository) Create(ctx context.Context, listing domain.Listing) error {
	const query = `
		INSERT INTO listings (
			id, owner_id, title, location, price, bedrooms, bathrooms, size, image_url, description,
			available_from, amenities, status, contact_name, contact_phone, contact_email, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	amenities, err := json.Marshal(nonNilAmenities(listing.Amenities))
	if err != nil {
		return err
	}
	var availableFrom interface{}
	if listing.AvailableFrom != nil {
		availableFrom = *listing.AvailableFrom
	}

	_, err = r.pool.Exec(ctx, query,
		listing.ID,
		listing.OwnerID,
		listing.Title,
		listing.Location,
		listing.Price,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.Size,
		listing.ImageURL,
		listing.Description,
		availableFrom,
		string(amenities),
		listing.Status,
		listing.ContactName,
		listing.ContactPhone,
		listing.ContactEmail,
		listing.CreatedAt,
	)
	return translatePgError(err)
}

const selectListingColumns = `
	SELECT id, owner_id, title, location, price, bedrooms, bathrooms, size, image_url, description,
	       available_from, amenities, status, contact_name, contact_phone, contact_email, created_at
	FROM listings
`

func (r *PgListingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	rows, err := r.pool.Query(ctx, selectListingColumns+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []domain.Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *PgListingRepository) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	listing, err := scanListing(r.pool.QueryRow(ctx, selectListingColumns+` WHERE id = $1`, id))
	if err != nil {
		return domain.Listing{}, translatePgError(err)
	}
	return listing, nil
}

func scanListing(row pgx.Row) (domain.Listing, error) {
	var (
		l             domain.Listing
		availableFrom *time.Time
		amenities     []byte
	)
	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.Title,
		&l.Location,
		&l.Price,
		&l.Bedrooms,
		&l.Bathrooms,
		&l.Size,
		&l.ImageURL,
		&l.Description,
		&availableFrom,
		&amenities,
		&l.Status,
		&l.ContactName,
		&l.ContactPhone,
		&l.ContactEmail,
		&l.CreatedAt,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	if availableFrom != nil {
		day := availableFrom.UTC()
		l.AvailableFrom = &day
	}
	l.Amenities = []string{}
	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &l.Amenities); err != nil {
			return domain.Listing{}, err
		}
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return l, nil
}

func nonNilAmenities(amenities []string) []string {
	if amenities == nil {
		return []string{}
	}
	return amenities
}
