package service

import (
	"context"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/internal/timecard/query"
	"github.com/hourbook/hourbook-backend/internal/timecard/repository"
	"github.com/hourbook/hourbook-backend/pkg/database"
	"github.com/hourbook/hourbook-backend/pkg/logger"
)

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// TimecardService implements timecard queries, aggregation and hour recording
type TimecardService struct {
	db        *database.DB
	users     *repository.UserRepository
	projects  *repository.ProjectRepository
	periods   *repository.ReportingPeriodRepository
	timecards *repository.TimecardRepository
	publisher EventPublisher
	logger    *logger.Logger
}

// NewTimecardService creates a new timecard service
func NewTimecardService(
	db *database.DB,
	users *repository.UserRepository,
	projects *repository.ProjectRepository,
	periods *repository.ReportingPeriodRepository,
	timecards *repository.TimecardRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *TimecardService {
	return &TimecardService{
		db:        db,
		users:     users,
		projects:  projects,
		periods:   periods,
		timecards: timecards,
		publisher: publisher,
		logger:    log.WithComponent("timecard_service"),
	}
}

// ListTimecards returns timecard snapshots matching the given filters
func (s *TimecardService) ListTimecards(ctx context.Context, filters domain.FilterParams) ([]domain.TimecardSnapshot, error) {
	cards, err := s.timecards.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	return query.Apply(cards, filters), nil
}

// ListUsers returns all users
func (s *TimecardService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// ListProjects returns all projects
func (s *TimecardService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// GetProject returns one project by ID
func (s *TimecardService) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// ListReportingPeriods returns all reporting periods in chronological order
func (s *TimecardService) ListReportingPeriods(ctx context.Context) ([]domain.ReportingPeriod, error) {
	return s.periods.List(ctx)
}
