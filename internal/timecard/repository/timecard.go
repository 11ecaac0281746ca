package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/pkg/database"
)

// TimecardRepository handles timecard and line item persistence
type TimecardRepository struct {
	db *database.DB
}

// NewTimecardRepository creates a new timecard repository
func NewTimecardRepository(db *database.DB) *TimecardRepository {
	return &TimecardRepository{db: db}
}

type snapshotObjectRow struct {
	ID          int64        `db:"id"`
	TimecardID  int64        `db:"timecard_id"`
	ProjectID   int64        `db:"project_id"`
	ProjectName string       `db:"project_name"`
	Billable    bool         `db:"billable"`
	HoursSpent  domain.Hours `db:"hours_spent"`
}

// ListSnapshots returns all timecards joined with their user, reporting
// period and line items, ordered by period start date
func (r *TimecardRepository) ListSnapshots(ctx context.Context) ([]domain.TimecardSnapshot, error) {
	cards := []domain.TimecardSnapshot{}
	query := `
		SELECT tc.id, tc.user_id, u.username, tc.reporting_period_id,
		       rp.start_date AS period_start, rp.end_date AS period_end,
		       tc.submitted
		FROM timecards tc
		JOIN users u ON u.id = tc.user_id
		JOIN reporting_periods rp ON rp.id = tc.reporting_period_id
		ORDER BY rp.start_date, u.username, tc.id
	`
	if err := r.db.SelectContext(ctx, &cards, query); err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		return cards, nil
	}

	ids := make([]int64, len(cards))
	index := make(map[int64]int, len(cards))
	for i := range cards {
		ids[i] = cards[i].ID
		index[cards[i].ID] = i
		cards[i].Objects = []domain.SnapshotObject{}
	}

	rows := []snapshotObjectRow{}
	objectQuery := `
		SELECT o.id, o.timecard_id, o.project_id, p.name AS project_name,
		       ac.billable, o.hours_spent
		FROM timecard_objects o
		JOIN projects p ON p.id = o.project_id
		JOIN accounting_codes ac ON ac.id = p.accounting_code_id
		WHERE o.timecard_id = ANY($1)
		ORDER BY o.id
	`
	if err := r.db.SelectContext(ctx, &rows, objectQuery, pq.Array(ids)); err != nil {
		return nil, err
	}

	for _, row := range rows {
		i := index[row.TimecardID]
		cards[i].Objects = append(cards[i].Objects, domain.SnapshotObject{
			ID:          row.ID,
			ProjectID:   row.ProjectID,
			ProjectName: row.ProjectName,
			Billable:    row.Billable,
			HoursSpent:  row.HoursSpent,
		})
	}

	return cards, nil
}

// GetByUserAndPeriod fetches the timecard for a user and reporting period.
// Returns nil when no timecard exists.
func (r *TimecardRepository) GetByUserAndPeriod(ctx context.Context, userID, periodID int64) (*domain.Timecard, error) {
	var card domain.Timecard
	query := `
		SELECT id, user_id, reporting_period_id, submitted, created_at, updated_at
		FROM timecards
		WHERE user_id = $1 AND reporting_period_id = $2
	`
	err := r.db.GetContext(ctx, &card, query, userID, periodID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// GetByUserAndPeriodForUpdate fetches and row-locks the timecard for a user
// and reporting period within a transaction. Returns nil when no timecard
// exists.
func (r *TimecardRepository) GetByUserAndPeriodForUpdate(ctx context.Context, tx *sqlx.Tx, userID, periodID int64) (*domain.Timecard, error) {
	var card domain.Timecard
	query := `
		SELECT id, user_id, reporting_period_id, submitted, created_at, updated_at
		FROM timecards
		WHERE user_id = $1 AND reporting_period_id = $2
		FOR UPDATE
	`
	err := tx.GetContext(ctx, &card, query, userID, periodID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// ListObjectsForProject returns the line items recording hours against the
// given project on the given timecard, locked for the transaction
func (r *TimecardRepository) ListObjectsForProject(ctx context.Context, tx *sqlx.Tx, timecardID, projectID int64) ([]domain.TimecardObject, error) {
	objects := []domain.TimecardObject{}
	query := `
		SELECT id, timecard_id, project_id, hours_spent, employee_grade_id, created_at, updated_at
		FROM timecard_objects
		WHERE timecard_id = $1 AND project_id = $2
		ORDER BY id
		FOR UPDATE
	`
	if err := tx.SelectContext(ctx, &objects, query, timecardID, projectID); err != nil {
		return nil, err
	}

	return objects, nil
}

// AddHoursToObject adds hours to an existing line item
func (r *TimecardRepository) AddHoursToObject(ctx context.Context, tx *sqlx.Tx, objectID int64, hours domain.Hours) error {
	query := `
		UPDATE timecard_objects
		SET hours_spent = hours_spent + $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := tx.ExecContext(ctx, query, hours, objectID)
	return err
}

// CreateObject inserts a new line item
func (r *TimecardRepository) CreateObject(ctx context.Context, tx *sqlx.Tx, object *domain.TimecardObject) error {
	query := `
		INSERT INTO timecard_objects (timecard_id, project_id, hours_spent, employee_grade_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return tx.QueryRowxContext(ctx, query,
		object.TimecardID, object.ProjectID, object.HoursSpent, object.EmployeeGradeID,
	).Scan(&object.ID, &object.CreatedAt, &object.UpdatedAt)
}

// SumHoursForProject returns the total hours recorded against a project
// across all of a timecard's line items
func (r *TimecardRepository) SumHoursForProject(ctx context.Context, tx *sqlx.Tx, timecardID, projectID int64) (domain.Hours, error) {
	var total domain.Hours
	query := `
		SELECT COALESCE(SUM(hours_spent), 0)
		FROM timecard_objects
		WHERE timecard_id = $1 AND project_id = $2
	`
	if err := tx.GetContext(ctx, &total, query, timecardID, projectID); err != nil {
		return 0, err
	}

	return total, nil
}

// ListUserIDsWithSubmittedCard returns the IDs of users who have a submitted
// timecard for the given reporting period
func (r *TimecardRepository) ListUserIDsWithSubmittedCard(ctx context.Context, periodID int64) ([]int64, error) {
	ids := []int64{}
	query := `
		SELECT user_id
		FROM timecards
		WHERE reporting_period_id = $1 AND submitted = TRUE
	`
	if err := r.db.SelectContext(ctx, &ids, query, periodID); err != nil {
		return nil, err
	}

	return ids, nil
}
