package repository

import (
	"context"
	"database/sql"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/pkg/database"
	"github.com/hourbook/hourbook-backend/pkg/errors"
)

// UserRepository handles user persistence
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID fetches a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, username, first_name, last_name, current_employee, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByUsername fetches a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, username, first_name, last_name, current_employee, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	err := r.db.GetContext(ctx, &user, query, username)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns all users ordered by username
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	query := `
		SELECT id, username, first_name, last_name, current_employee, created_at, updated_at
		FROM users
		ORDER BY username
	`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}

	return users, nil
}

// ListCurrent returns all current employees ordered by username
func (r *UserRepository) ListCurrent(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	query := `
		SELECT id, username, first_name, last_name, current_employee, created_at, updated_at
		FROM users
		WHERE current_employee = TRUE
		ORDER BY username
	`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}

	return users, nil
}
