package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rental-hub/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateProfile(ctx context.Context, id string, profile domain.UserProfile) error
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, name, email, password_hash, location, occupation, phone_number, bio, profile_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Location,
		user.Occupation,
		user.PhoneNumber,
		user.Bio,
		user.ProfileURL,
		user.CreatedAt,
	)
	return translatePgError(err)
}

const selectUserColumns = `
	SELECT id, name, email, password_hash, location, occupation, phone_number, bio, profile_url, created_at
	FROM users
`

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, selectUserColumns+` WHERE id = $1`, id)
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, selectUserColumns+` WHERE email = $1`, email)
}

func (r *PgUserRepository) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Location,
		&u.Occupation,
		&u.PhoneNumber,
		&u.Bio,
		&u.ProfileURL,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, translatePgError(err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (r *PgUserRepository) UpdateProfile(ctx context.Context, id string, profile domain.UserProfile) error {
	const query = `
		UPDATE users
		SET name = $2, location = $3, occupation = $4, phone_number = $5, bio = $6, profile_url = $7
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		id,
		profile.Name,
		profile.Location,
		profile.Occupation,
		profile.PhoneNumber,
		profile.Bio,
		profile.ProfileURL,
	)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
