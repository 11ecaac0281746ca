package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/pkg/database"
	"github.com/hourbook/hourbook-backend/pkg/errors"
)

// ReportingPeriodRepository handles reporting period persistence
type ReportingPeriodRepository struct {
	db *database.DB
}

// NewReportingPeriodRepository creates a new reporting period repository
func NewReportingPeriodRepository(db *database.DB) *ReportingPeriodRepository {
	return &ReportingPeriodRepository{db: db}
}

// GetByEndDate fetches the reporting period ending on the given date
func (r *ReportingPeriodRepository) GetByEndDate(ctx context.Context, endDate time.Time) (*domain.ReportingPeriod, error) {
	var period domain.ReportingPeriod
	query := `
		SELECT id, start_date, end_date, working_hours, created_at
		FROM reporting_periods
		WHERE end_date = $1
	`
	err := r.db.GetContext(ctx, &period, query, endDate)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("ReportingPeriod")
	}
	if err != nil {
		return nil, err
	}

	return &period, nil
}

// GetByStartDate fetches the reporting period starting on the given date
func (r *ReportingPeriodRepository) GetByStartDate(ctx context.Context, startDate time.Time) (*domain.ReportingPeriod, error) {
	var period domain.ReportingPeriod
	query := `
		SELECT id, start_date, end_date, working_hours, created_at
		FROM reporting_periods
		WHERE start_date = $1
	`
	err := r.db.GetContext(ctx, &period, query, startDate)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("ReportingPeriod")
	}
	if err != nil {
		return nil, err
	}

	return &period, nil
}

// List returns all reporting periods in chronological order
func (r *ReportingPeriodRepository) List(ctx context.Context) ([]domain.ReportingPeriod, error) {
	periods := []domain.ReportingPeriod{}
	query := `
		SELECT id, start_date, end_date, working_hours, created_at
		FROM reporting_periods
		ORDER BY start_date
	`
	if err := r.db.SelectContext(ctx, &periods, query); err != nil {
		return nil, err
	}

	return periods, nil
}
