package service

import (
	"errors"
	"fmt"
	"time"
)

// Tipos de error expuestos a la capa HTTP. Los errores concretos los envuelven
// para poder distinguirlos con errors.Is.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrForbidden        = errors.New("forbidden")
	ErrUnavailable      = errors.New("store unavailable")
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrListingNotFound      = fmt.Errorf("listing %w", ErrNotFound)
	ErrConversationNotFound = fmt.Errorf("conversation %w", ErrNotFound)

	ErrSelfConversation = fmt.Errorf("%w: cannot open a conversation on your own listing", ErrInvalidOperation)
	ErrEmailTaken       = fmt.Errorf("%w: email is already in use", ErrInvalidOperation)

	ErrEmptyContent    = fmt.Errorf("%w: content is required", ErrInvalidArgument)
	ErrInvalidEmail    = fmt.Errorf("%w: invalid email", ErrInvalidArgument)
	ErrInvalidPassword = fmt.Errorf("%w: password is required", ErrInvalidArgument)
	ErrInvalidListing  = fmt.Errorf("%w: invalid listing", ErrInvalidArgument)

	ErrNotParticipant     = fmt.Errorf("%w: not a conversation participant", ErrForbidden)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
)

// unavailable envuelve una falla del store; nunca se reintenta.
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// nowUTC trunca a microsegundos para que el valor sobreviva al store intacto.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
