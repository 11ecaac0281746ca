package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/internal/timecard/repository"
	"github.com/hourbook/hourbook-backend/pkg/database"
	"github.com/hourbook/hourbook-backend/pkg/errors"
	"github.com/hourbook/hourbook-backend/pkg/logger"
	"github.com/hourbook/hourbook-backend/pkg/messaging"
	"github.com/hourbook/hourbook-backend/pkg/testutil"
)

func newTestService(m *testutil.MockDB, publisher EventPublisher) *TimecardService {
	db := database.NewWithDB(m.DB, logger.New("test", "test"))
	return NewTimecardService(
		db,
		repository.NewUserRepository(db),
		repository.NewProjectRepository(db),
		repository.NewReportingPeriodRepository(db),
		repository.NewTimecardRepository(db),
		publisher,
		logger.New("test", "test"),
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func expectUserLookup(m *testutil.MockDB, username string, id int64) {
	now := time.Now()
	m.ExpectQuery("SELECT id, username, first_name, last_name, current_employee, created_at, updated_at").
		WithArgs(username).
		WillReturnRows(testutil.MockRows(
			"id", "username", "first_name", "last_name", "current_employee", "created_at", "updated_at").
			AddRow(id, username, "Test", "User", true, now, now))
}

func expectPeriodLookup(m *testutil.MockDB, endDate time.Time, id int64) {
	m.ExpectQuery("SELECT id, start_date, end_date, working_hours, created_at").
		WithArgs(endDate).
		WillReturnRows(testutil.MockRows(
			"id", "start_date", "end_date", "working_hours", "created_at").
			AddRow(id, endDate.AddDate(0, 0, -7), endDate, 40, time.Now()))
}

func expectProjectLookup(m *testutil.MockDB, id int64, name string) {
	now := time.Now()
	m.ExpectQuery("SELECT p.id, p.name, p.accounting_code_id, ac.billable, p.active,").
		WithArgs(id).
		WillReturnRows(testutil.MockRows(
			"id", "name", "accounting_code_id", "billable", "active", "created_at", "updated_at").
			AddRow(id, name, int64(1), true, true, now, now))
}

func expectCardLock(m *testutil.MockDB, userID, periodID, cardID int64) {
	now := time.Now()
	m.ExpectQuery("SELECT id, user_id, reporting_period_id, submitted, created_at, updated_at").
		WithArgs(userID, periodID).
		WillReturnRows(testutil.MockRows(
			"id", "user_id", "reporting_period_id", "submitted", "created_at", "updated_at").
			AddRow(cardID, userID, periodID, false, now, now))
}

func objectColumns() []string {
	return []string{"id", "timecard_id", "project_id", "hours_spent", "employee_grade_id", "created_at", "updated_at"}
}

func TestAddHoursMergesIntoSingleLineItem(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	publisher := testutil.NewMockPublisher()
	svc := newTestService(mockDB, publisher)

	endDate := date(2015, time.June, 8)
	now := time.Now()

	expectUserLookup(mockDB, "aaron.snow", 1)
	expectPeriodLookup(mockDB, endDate, 3)
	expectProjectLookup(mockDB, 2, "Midas")

	mockDB.ExpectBegin()
	expectCardLock(mockDB, 1, 3, 7)
	mockDB.ExpectQuery("SELECT id, timecard_id, project_id, hours_spent, employee_grade_id, created_at, updated_at").
		WithArgs(int64(7), int64(2)).
		WillReturnRows(testutil.MockRows(objectColumns()...).
			AddRow(int64(20), int64(7), int64(2), "12.00", nil, now, now))
	mockDB.ExpectExec("UPDATE timecard_objects").
		WithArgs("10.00", int64(20)).
		WillReturnResult(testutil.MockResult(0, 1))
	mockDB.ExpectQuery("SELECT COALESCE(SUM(hours_spent), 0)").
		WithArgs(int64(7), int64(2)).
		WillReturnRows(testutil.MockRows("coalesce").AddRow("22.00"))
	mockDB.ExpectCommit()

	result, err := svc.AddHours(context.Background(), AddHoursParams{
		Username:  "aaron.snow",
		EndDate:   endDate,
		ProjectID: 2,
		Hours:     1000,
	})
	require.NoError(t, err)

	assert.Equal(t, "aaron.snow", result.Username)
	assert.Equal(t, "Midas", result.ProjectName)
	assert.False(t, result.Created)
	assert.Equal(t, domain.Hours(1000), result.HoursAdded)
	assert.Equal(t, domain.Hours(2200), result.TotalHours)

	publisher.AssertEventPublished(t, messaging.EventTimecardHoursAdded)
	mockDB.ExpectationsWereMet(t)
}

func TestAddHoursCreatesLineItemWhenNoneExists(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	publisher := testutil.NewMockPublisher()
	svc := newTestService(mockDB, publisher)

	endDate := date(2015, time.June, 8)
	now := time.Now()

	expectUserLookup(mockDB, "aaron.snow", 1)
	expectPeriodLookup(mockDB, endDate, 3)
	expectProjectLookup(mockDB, 2, "Midas")

	mockDB.ExpectBegin()
	expectCardLock(mockDB, 1, 3, 7)
	mockDB.ExpectQuery("SELECT id, timecard_id, project_id, hours_spent, employee_grade_id, created_at, updated_at").
		WithArgs(int64(7), int64(2)).
		WillReturnRows(testutil.MockRows(objectColumns()...))
	mockDB.ExpectQuery("INSERT INTO timecard_objects").
		WithArgs(int64(7), int64(2), "10.00", nil).
		WillReturnRows(testutil.MockRows("id", "created_at", "updated_at").
			AddRow(int64(30), now, now))
	mockDB.ExpectQuery("SELECT COALESCE(SUM(hours_spent), 0)").
		WithArgs(int64(7), int64(2)).
		WillReturnRows(testutil.MockRows("coalesce").AddRow("10.00"))
	mockDB.ExpectCommit()

	result, err := svc.AddHours(context.Background(), AddHoursParams{
		Username:  "aaron.snow",
		EndDate:   endDate,
		ProjectID: 2,
		Hours:     1000,
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, domain.Hours(1000), result.TotalHours)

	mockDB.ExpectationsWereMet(t)
}

func TestAddHoursAppendsWhenLineItemsAmbiguous(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	svc := newTestService(mockDB, testutil.NewMockPublisher())

	endDate := date(2015, time.June, 8)
	now := time.Now()

	expectUserLookup(mockDB, "aaron.snow", 1)
	expectPeriodLookup(mockDB, endDate, 3)
	expectProjectLookup(mockDB, 2, "Midas")

	mockDB.ExpectBegin()
	expectCardLock(mockDB, 1, 3, 7)
	// Two line items already record the project; neither is modified
	mockDB.ExpectQuery("SELECT id, timecard_id, project_id, hours_spent, employee_grade_id, created_at, updated_at").
		WithArgs(int64(7), int64(2)).
		WillReturnRows(testutil.MockRows(objectColumns()...).
			AddRow(int64(20), int64(7), int64(2), "5.00", nil, now, now).
			AddRow(int64(21), int64(7), int64(2), "5.00", nil, now, now))
	mockDB.ExpectQuery("INSERT INTO timecard_objects").
		WithArgs(int64(7), int64(2), "10.00", nil).
		WillReturnRows(testutil.MockRows("id", "created_at", "updated_at").
			AddRow(int64(31), now, now))
	mockDB.ExpectQuery("SELECT COALESCE(SUM(hours_spent), 0)").
		WithArgs(int64(7), int64(2)).
		WillReturnRows(testutil.MockRows("coalesce").AddRow("20.00"))
	mockDB.ExpectCommit()

	result, err := svc.AddHours(context.Background(), AddHoursParams{
		Username:  "aaron.snow",
		EndDate:   endDate,
		ProjectID: 2,
		Hours:     1000,
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, domain.Hours(2000), result.TotalHours)

	mockDB.ExpectationsWereMet(t)
}

func TestAddHoursValidationOrder(t *testing.T) {
	endDate := date(2015, time.June, 8)

	t.Run("unknown user", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		defer mockDB.Close()
		svc := newTestService(mockDB, testutil.NewMockPublisher())

		mockDB.ExpectQuery("SELECT id, username, first_name, last_name, current_employee, created_at, updated_at").
			WithArgs("nobody").
			WillReturnRows(testutil.MockRows("id"))

		_, err := svc.AddHours(context.Background(), AddHoursParams{
			Username: "nobody", EndDate: endDate, ProjectID: 2, Hours: 1000,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "User")

		var appErr *errors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 400, appErr.StatusCode)

		mockDB.ExpectationsWereMet(t)
	})

	t.Run("unknown reporting period", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		defer mockDB.Close()
		svc := newTestService(mockDB, testutil.NewMockPublisher())

		expectUserLookup(mockDB, "aaron.snow", 1)
		mockDB.ExpectQuery("SELECT id, start_date, end_date, working_hours, created_at").
			WithArgs(endDate).
			WillReturnRows(testutil.MockRows("id"))

		_, err := svc.AddHours(context.Background(), AddHoursParams{
			Username: "aaron.snow", EndDate: endDate, ProjectID: 2, Hours: 1000,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ReportingPeriod")

		mockDB.ExpectationsWereMet(t)
	})

	t.Run("unknown project", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		defer mockDB.Close()
		svc := newTestService(mockDB, testutil.NewMockPublisher())

		expectUserLookup(mockDB, "aaron.snow", 1)
		expectPeriodLookup(mockDB, endDate, 3)
		mockDB.ExpectQuery("SELECT p.id, p.name, p.accounting_code_id, ac.billable, p.active,").
			WithArgs(int64(99)).
			WillReturnRows(testutil.MockRows("id"))

		_, err := svc.AddHours(context.Background(), AddHoursParams{
			Username: "aaron.snow", EndDate: endDate, ProjectID: 99, Hours: 1000,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Project")

		mockDB.ExpectationsWereMet(t)
	})
}

func TestAddHoursMissingTimecardIsInternal(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	publisher := testutil.NewMockPublisher()
	svc := newTestService(mockDB, publisher)

	endDate := date(2015, time.June, 8)

	expectUserLookup(mockDB, "aaron.snow", 1)
	expectPeriodLookup(mockDB, endDate, 3)
	expectProjectLookup(mockDB, 2, "Midas")

	mockDB.ExpectBegin()
	mockDB.ExpectQuery("SELECT id, user_id, reporting_period_id, submitted, created_at, updated_at").
		WithArgs(int64(1), int64(3)).
		WillReturnRows(testutil.MockRows("id"))
	mockDB.ExpectRollback()

	_, err := svc.AddHours(context.Background(), AddHoursParams{
		Username: "aaron.snow", EndDate: endDate, ProjectID: 2, Hours: 1000,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPrecondition))

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.StatusCode)

	publisher.AssertNoEventsPublished(t)
	mockDB.ExpectationsWereMet(t)
}
