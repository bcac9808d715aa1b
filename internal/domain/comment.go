package domain

import "time"

type Comment struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
