package domain

import "time"

// Listing representa un inmueble publicado para alquiler.
type Listing struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Title         string     `json:"title"`
	Location      string     `json:"location"`
	Price         float64    `json:"price"`
	Bedrooms      int        `json:"bedrooms"`
	Bathrooms     int        `json:"bathrooms"`
	Size          string     `json:"size,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	Description   string     `json:"description,omitempty"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
	Amenities     []string   `json:"amenities"`
	Status        string     `json:"status,omitempty"`
	ContactName   string     `json:"contact_name,omitempty"`
	ContactPhone  string     `json:"contact_phone,omitempty"`
	ContactEmail  string     `json:"contact_email,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ListingDetail struct {
	Listing
	Owner PublicProfile `json:"owner"`
}
