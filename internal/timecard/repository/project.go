package repository

import (
	"context"
	"database/sql"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/pkg/database"
	"github.com/hourbook/hourbook-backend/pkg/errors"
)

// ProjectRepository handles project persistence
type ProjectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetByID fetches a project by ID with its billable flag
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	query := `
		SELECT p.id, p.name, p.accounting_code_id, ac.billable, p.active,
		       p.start_date, p.end_date, p.created_at, p.updated_at
		FROM projects p
		JOIN accounting_codes ac ON ac.id = p.accounting_code_id
		WHERE p.id = $1
	`
	err := r.db.GetContext(ctx, &project, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Project")
	}
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// List returns all projects ordered by name
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	query := `
		SELECT p.id, p.name, p.accounting_code_id, ac.billable, p.active,
		       p.start_date, p.end_date, p.created_at, p.updated_at
		FROM projects p
		JOIN accounting_codes ac ON ac.id = p.accounting_code_id
		ORDER BY p.name
	`
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, err
	}

	return projects, nil
}
