package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/voltshop/inventory-api/internal/models"
	"github.com/voltshop/inventory-api/internal/utils"
)

// UserRepository handles data access for store accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername returns an account by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const q = `
        SELECT id, username, name, surname, password_hash, role, created_at
        FROM users
        WHERE username = $1`

	var user models.User
	if err := r.db.GetContext(ctx, &user, q, username); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account. Duplicate usernames are reported as
// ErrUserAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
        INSERT INTO users (username, name, surname, password_hash, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, q,
		user.Username, user.Name, user.Surname, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
		return utils.ErrUserAlreadyExists
	}
	return err
}
