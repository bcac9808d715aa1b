package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Location     string    `json:"location,omitempty"`
	Occupation   string    `json:"occupation,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	ProfileURL   string    `json:"profile_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile agrupa los campos editables del perfil.
type UserProfile struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Occupation  string `json:"occupation"`
	PhoneNumber string `json:"phone_number"`
	Bio         string `json:"bio"`
	ProfileURL  string `json:"profile_url"`
}

// PublicProfile es la vista de un usuario expuesta a terceros.
type PublicProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Bio         string `json:"bio,omitempty"`
	ProfileURL  string `json:"profile_url,omitempty"`
}

func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		Name:        u.Name,
		Location:    u.Location,
		Occupation:  u.Occupation,
		PhoneNumber: u.PhoneNumber,
		Bio:         u.Bio,
		ProfileURL:  u.ProfileURL,
	}
}
