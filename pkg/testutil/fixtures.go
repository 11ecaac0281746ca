package testutil

import (
	"fmt"
	"time"
)

// UserFixture represents test user data
type UserFixture struct {
	ID              int64
	Username        string
	FirstName       string
	LastName        string
	CurrentEmployee bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AccountingCodeFixture represents test accounting code data
type AccountingCodeFixture struct {
	ID       int64
	Code     string
	Billable bool
}

// ProjectFixture represents test project data
type ProjectFixture struct {
	ID               int64
	Name             string
	AccountingCodeID int64
	Billable         bool
	Active           bool
	CreatedAt        time.Time
}

// ReportingPeriodFixture represents test reporting period data
type ReportingPeriodFixture struct {
	ID           int64
	StartDate    time.Time
	EndDate      time.Time
	WorkingHours int
}

// TimecardFixture represents test timecard data
type TimecardFixture struct {
	ID                int64
	UserID            int64
	ReportingPeriodID int64
	Submitted         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TimecardObjectFixture represents a test timecard line item
type TimecardObjectFixture struct {
	ID         int64
	TimecardID int64
	ProjectID  int64
	HoursSpent string
}

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	sequence int64
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{sequence: 0}
}

// nextSeq returns the next sequence number for unique values
func (f *FixtureFactory) nextSeq() int64 {
	f.sequence++
	return f.sequence
}

// User creates a user fixture with defaults
func (f *FixtureFactory) User(opts ...func(*UserFixture)) UserFixture {
	seq := f.nextSeq()

	user := UserFixture{
		ID:              seq,
		Username:        fmt.Sprintf("user%d.test", seq),
		FirstName:       fmt.Sprintf("Test%d", seq),
		LastName:        "User",
		CurrentEmployee: true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	for _, opt := range opts {
		opt(&user)
	}

	return user
}

// WithUsername sets the user's username
func WithUsername(username string) func(*UserFixture) {
	return func(u *UserFixture) {
		u.Username = username
	}
}

// WithCurrentEmployee sets the user's employment flag
func WithCurrentEmployee(current bool) func(*UserFixture) {
	return func(u *UserFixture) {
		u.CurrentEmployee = current
	}
}

// AccountingCode creates an accounting code fixture with defaults
func (f *FixtureFactory) AccountingCode(opts ...func(*AccountingCodeFixture)) AccountingCodeFixture {
	seq := f.nextSeq()

	code := AccountingCodeFixture{
		ID:       seq,
		Code:     fmt.Sprintf("AC-%04d", seq),
		Billable: false,
	}

	for _, opt := range opts {
		opt(&code)
	}

	return code
}

// WithBillable sets whether the accounting code is billable
func WithBillable(billable bool) func(*AccountingCodeFixture) {
	return func(c *AccountingCodeFixture) {
		c.Billable = billable
	}
}

// Project creates a project fixture with defaults
func (f *FixtureFactory) Project(opts ...func(*ProjectFixture)) ProjectFixture {
	seq := f.nextSeq()

	project := ProjectFixture{
		ID:               seq,
		Name:             fmt.Sprintf("Project %d", seq),
		AccountingCodeID: seq,
		Billable:         false,
		Active:           true,
		CreatedAt:        time.Now(),
	}

	for _, opt := range opts {
		opt(&project)
	}

	return project
}

// WithProjectName sets the project name
func WithProjectName(name string) func(*ProjectFixture) {
	return func(p *ProjectFixture) {
		p.Name = name
	}
}

// WithProjectBillable sets whether the project bills to a billable code
func WithProjectBillable(billable bool) func(*ProjectFixture) {
	return func(p *ProjectFixture) {
		p.Billable = billable
	}
}

// WithAccountingCodeID sets the project's accounting code
func WithAccountingCodeID(id int64) func(*ProjectFixture) {
	return func(p *ProjectFixture) {
		p.AccountingCodeID = id
	}
}

// ReportingPeriod creates a reporting period fixture. Periods are one week
// long starting from the given date.
func (f *FixtureFactory) ReportingPeriod(start time.Time, opts ...func(*ReportingPeriodFixture)) ReportingPeriodFixture {
	seq := f.nextSeq()

	period := ReportingPeriodFixture{
		ID:           seq,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 6),
		WorkingHours: 40,
	}

	for _, opt := range opts {
		opt(&period)
	}

	return period
}

// WithEndDate sets the period's end date
func WithEndDate(end time.Time) func(*ReportingPeriodFixture) {
	return func(p *ReportingPeriodFixture) {
		p.EndDate = end
	}
}

// Timecard creates a timecard fixture linking a user and a reporting period
func (f *FixtureFactory) Timecard(userID, periodID int64, opts ...func(*TimecardFixture)) TimecardFixture {
	seq := f.nextSeq()

	card := TimecardFixture{
		ID:                seq,
		UserID:            userID,
		ReportingPeriodID: periodID,
		Submitted:         false,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	for _, opt := range opts {
		opt(&card)
	}

	return card
}

// WithSubmitted sets the timecard's submitted flag
func WithSubmitted(submitted bool) func(*TimecardFixture) {
	return func(c *TimecardFixture) {
		c.Submitted = submitted
	}
}

// TimecardObject creates a timecard line item fixture
func (f *FixtureFactory) TimecardObject(timecardID, projectID int64, hours string) TimecardObjectFixture {
	seq := f.nextSeq()

	return TimecardObjectFixture{
		ID:         seq,
		TimecardID: timecardID,
		ProjectID:  projectID,
		HoursSpent: hours,
	}
}

// Date is a shorthand for building UTC dates in tests
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
