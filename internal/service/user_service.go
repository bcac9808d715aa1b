package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"rental-hub/internal/domain"
	"rental-hub/internal/repository"
)

// UserService coordina reglas de negocio para usuarios.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

var ErrUserServiceNotConfigured = errors.New("user service not configured")

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		logger: logger,
		users:  users,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s == nil || s.users == nil {
		return domain.User{}, ErrUserServiceNotConfigured
	}

	email := normalizeEmail(input.Email)
	if !isValidEmail(email) {
		return domain.User{}, ErrInvalidEmail
	}
	password := strings.TrimSpace(input.Password)
	if password == "" {
		return domain.User{}, ErrInvalidPassword
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return domain.User{}, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, unavailable(err)
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hashBytes),
		CreatedAt:    nowUTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Otro registro con el mismo email pudo ganar la carrera.
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, unavailable(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s == nil || s.users == nil {
		return domain.User{}, ErrUserServiceNotConfigured
	}

	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, unavailable(err)
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	if s == nil || s.users == nil {
		return domain.User{}, ErrUserServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.User{}, ErrUnauthenticated
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, unavailable(err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, profile domain.UserProfile) (domain.User, error) {
	if s == nil || s.users == nil {
		return domain.User{}, ErrUserServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.User{}, ErrUnauthenticated
	}

	profile = domain.UserProfile{
		Name:        strings.TrimSpace(profile.Name),
		Location:    strings.TrimSpace(profile.Location),
		Occupation:  strings.TrimSpace(profile.Occupation),
		PhoneNumber: strings.TrimSpace(profile.PhoneNumber),
		Bio:         strings.TrimSpace(profile.Bio),
		ProfileURL:  strings.TrimSpace(profile.ProfileURL),
	}
	if err := s.users.UpdateProfile(ctx, userID, profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, unavailable(err)
	}
	return s.GetProfile(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
