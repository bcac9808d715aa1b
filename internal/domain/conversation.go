package domain

import "time"

// Conversation es el hilo único entre quien consulta y el dueño de un listing.
type Conversation struct {
	ID            int64     `json:"id"`
	ListingID     string    `json:"listing_id"`
	RequesterID   string    `json:"requester_id"`
	OwnerID       string    `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at"`
}

func (c Conversation) HasParticipant(userID string) bool {
	return userID != "" && (userID == c.RequesterID || userID == c.OwnerID)
}

// Counterpart devuelve el otro participante de la conversación.
func (c Conversation) Counterpart(userID string) string {
	if userID == c.RequesterID {
		return c.OwnerID
	}
	return c.RequesterID
}

// ConversationSummary agrega datos de display resueltos al momento de leer.
type ConversationSummary struct {
	Conversation
	ListingTitle      string     `json:"listing_title"`
	ListingLocation   string     `json:"listing_location"`
	ListingImageURL   string     `json:"listing_image_url,omitempty"`
	CounterpartID     string     `json:"counterpart_id"`
	CounterpartName   string     `json:"counterpart_name"`
	LastMessage       *string    `json:"last_message"`
	LastMessageSentAt *time.Time `json:"last_message_sent_at"`
}
