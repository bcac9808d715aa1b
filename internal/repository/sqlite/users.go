package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"rental-hub/internal/domain"
	"rental-hub/internal/repository"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, name, email, password_hash, location, occupation, phone_number, bio, profile_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Location,
		user.Occupation,
		user.PhoneNumber,
		user.Bio,
		user.ProfileURL,
		formatTime(user.CreatedAt),
	)
	return translateError(err)
}

const selectUserColumns = `
	SELECT id, name, email, password_hash, location, occupation, phone_number, bio, profile_url, created_at
	FROM users
`

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUserColumns+` WHERE id = ?`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUserColumns+` WHERE email = ?`, email))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, profile domain.UserProfile) error {
	const query = `
		UPDATE users
		SET name = ?, location = ?, occupation = ?, phone_number = ?, bio = ?, profile_url = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		profile.Name,
		profile.Location,
		profile.Occupation,
		profile.PhoneNumber,
		profile.Bio,
		profile.ProfileURL,
		id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Location,
		&u.Occupation,
		&u.PhoneNumber,
		&u.Bio,
		&u.ProfileURL,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, repository.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
