package domain

import (
	"time"
)

// User is an employee who files timecards
type User struct {
	ID              int64     `json:"id" db:"id"`
	Username        string    `json:"username" db:"username"`
	FirstName       string    `json:"first_name" db:"first_name"`
	LastName        string    `json:"last_name" db:"last_name"`
	CurrentEmployee bool      `json:"current_employee" db:"current_employee"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// AccountingCode classifies project work as billable or not
type AccountingCode struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Billable  bool      `json:"billable" db:"billable"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Project is a body of work that hours are recorded against.
// Billable is derived from the project's accounting code.
type Project struct {
	ID               int64      `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	AccountingCodeID int64      `json:"accounting_code_id" db:"accounting_code_id"`
	Billable         bool       `json:"billable" db:"billable"`
	Active           bool       `json:"active" db:"active"`
	StartDate        *time.Time `json:"start_date" db:"start_date"`
	EndDate          *time.Time `json:"end_date" db:"end_date"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// ReportingPeriod is a week-long window that timecards are filed against.
// Periods never span a fiscal quarter boundary, so the quarter a period's
// start date falls in is the quarter all of its hours belong to.
type ReportingPeriod struct {
	ID           int64     `json:"id" db:"id"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	WorkingHours int       `json:"working_hours" db:"working_hours"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Timecard is one user's record for one reporting period
type Timecard struct {
	ID                int64     `json:"id" db:"id"`
	UserID            int64     `json:"user_id" db:"user_id"`
	ReportingPeriodID int64     `json:"reporting_period_id" db:"reporting_period_id"`
	Submitted         bool      `json:"submitted" db:"submitted"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// EmployeeGrade records a user's pay grade from a given start date. Line
// items may reference the grade in effect when the hours were worked; the
// aggregation engine does not inspect it.
type EmployeeGrade struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Grade     int       `json:"grade" db:"grade"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TimecardObject is a line item recording hours against one project
type TimecardObject struct {
	ID              int64     `json:"id" db:"id"`
	TimecardID      int64     `json:"timecard_id" db:"timecard_id"`
	ProjectID       int64     `json:"project_id" db:"project_id"`
	HoursSpent      Hours     `json:"hours_spent" db:"hours_spent"`
	EmployeeGradeID *int64    `json:"employee_grade_id,omitempty" db:"employee_grade_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// SnapshotObject is a line item joined with its project attributes
type SnapshotObject struct {
	ID          int64  `json:"id" db:"id"`
	ProjectID   int64  `json:"project_id" db:"project_id"`
	ProjectName string `json:"project_name" db:"project_name"`
	Billable    bool   `json:"billable" db:"billable"`
	HoursSpent  Hours  `json:"hours_spent" db:"hours_spent"`
}

// TimecardSnapshot is a timecard joined with its user, reporting period and
// line items. The query engine filters over snapshots.
type TimecardSnapshot struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"user_id" db:"user_id"`
	Username    string           `json:"username" db:"username"`
	PeriodID    int64            `json:"reporting_period_id" db:"reporting_period_id"`
	PeriodStart time.Time        `json:"period_start" db:"period_start"`
	PeriodEnd   time.Time        `json:"period_end" db:"period_end"`
	Submitted   bool             `json:"submitted" db:"submitted"`
	Objects     []SnapshotObject `json:"objects" db:"-"`
}

// FilterParams are the supported timecard listing filters. Nil fields are
// ignored; set fields are combined with AND.
type FilterParams struct {
	// After keeps timecards whose period end date is strictly after this date
	After *time.Time
	// Date keeps timecards whose period end date equals this date
	Date *time.Time
	// User matches by user ID when the value parses as an integer,
	// otherwise by username
	User *string
	// Project matches timecards with at least one line item whose project
	// matches by ID when the value parses as an integer, otherwise by name
	Project *string
	// Submitted set to "no" keeps only unsubmitted timecards; any other
	// value applies no filter
	Submitted *string
}

// IsZero reports whether no filters are set
func (f FilterParams) IsZero() bool {
	return f.After == nil && f.Date == nil && f.User == nil && f.Project == nil && f.Submitted == nil
}
