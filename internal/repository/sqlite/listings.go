package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rental-hub/internal/domain"
	"rental-hub/internal/repository"
)

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, listing domain.Listing) error {
	const query = `
		INSERT INTO listings (
			id, owner_id, title, location, price, bedrooms, bathrooms, size, image_url, description,
			available_from, amenities, status, contact_name, contact_phone, contact_email, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	amenities := listing.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	encoded, err := json.Marshal(amenities)
	if err != nil {
		return err
	}
	var availableFrom sql.NullString
	if listing.AvailableFrom != nil {
		availableFrom = sql.NullString{String: listing.AvailableFrom.UTC().Format(dateLayout), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
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
		string(encoded),
		listing.Status,
		listing.ContactName,
		listing.ContactPhone,
		listing.ContactEmail,
		formatTime(listing.CreatedAt),
	)
	return translateError(err)
}

const selectListingColumns = `
	SELECT id, owner_id, title, location, price, bedrooms, bathrooms, size, image_url, description,
	       available_from, amenities, status, contact_name, contact_phone, contact_email, created_at
	FROM listings
`

func (r *ListingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, selectListingColumns+` ORDER BY created_at DESC, id`)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	listing, err := scanListing(r.db.QueryRowContext(ctx, selectListingColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, repository.ErrNotFound
	}
	return listing, err
}

func scanListing(row rowScanner) (domain.Listing, error) {
	var (
		l             domain.Listing
		availableFrom sql.NullString
		amenities     string
		createdAt     string
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
		&createdAt,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	if availableFrom.Valid && availableFrom.String != "" {
		day, err := time.Parse(dateLayout, availableFrom.String)
		if err != nil {
			return domain.Listing{}, fmt.Errorf("parsing available_from: %w", err)
		}
		l.AvailableFrom = &day
	}
	l.Amenities = []string{}
	if amenities != "" {
		if err := json.Unmarshal([]byte(amenities), &l.Amenities); err != nil {
			return domain.Listing{}, fmt.Errorf("decoding amenities: %w", err)
		}
	}
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}
