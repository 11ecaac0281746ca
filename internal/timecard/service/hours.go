package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/pkg/errors"
	"github.com/hourbook/hourbook-backend/pkg/messaging"
)

// AddHoursParams identifies a timecard line item and the hours to record.
// The timecard is addressed indirectly: by the user's username and the
// reporting period's end date.
type AddHoursParams struct {
	Username  string
	EndDate   time.Time
	ProjectID int64
	Hours     domain.Hours
}

// AddHoursResult reports the outcome of recording hours
type AddHoursResult struct {
	Username    string       `json:"username"`
	ProjectID   int64        `json:"project_id"`
	ProjectName string       `json:"project_name"`
	HoursAdded  domain.Hours `json:"hours_added"`
	TotalHours  domain.Hours `json:"total_hours"`
	Created     bool         `json:"created"`
}

// AddHours records hours against a project on an existing timecard.
//
// The user, reporting period and project are validated in that order; a
// missing one is a client error naming the entity. The timecard itself is a
// precondition: users file timecards through a separate workflow, so a
// missing card for a valid user and period is an internal fault.
//
// When exactly one line item already records the project, the hours are
// added to it in place. Otherwise a new line item is appended; existing
// duplicate line items are left untouched. The reported total covers all of
// the timecard's line items for the project.
func (s *TimecardService) AddHours(ctx context.Context, params AddHoursParams) (*AddHoursResult, error) {
	user, err := s.users.GetByUsername(ctx, params.Username)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.GetByEndDate(ctx, params.EndDate)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, params.ProjectID)
	if err != nil {
		return nil, err
	}

	result := &AddHoursResult{
		Username:    user.Username,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		HoursAdded:  params.Hours,
	}

	var card *domain.Timecard
	err = s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		card, err = s.timecards.GetByUserAndPeriodForUpdate(ctx, tx, user.ID, period.ID)
		if err != nil {
			return err
		}
		if card == nil {
			return errors.Precondition("no timecard exists for user and reporting period")
		}

		objects, err := s.timecards.ListObjectsForProject(ctx, tx, card.ID, project.ID)
		if err != nil {
			return err
		}

		if len(objects) == 1 {
			if err := s.timecards.AddHoursToObject(ctx, tx, objects[0].ID, params.Hours); err != nil {
				return err
			}
		} else {
			// Zero or ambiguous: append a new line item
			object := &domain.TimecardObject{
				TimecardID: card.ID,
				ProjectID:  project.ID,
				HoursSpent: params.Hours,
			}
			if err := s.timecards.CreateObject(ctx, tx, object); err != nil {
				return err
			}
			result.Created = true
		}

		total, err := s.timecards.SumHoursForProject(ctx, tx, card.ID, project.ID)
		if err != nil {
			return err
		}
		result.TotalHours = total
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishHoursAdded(ctx, card, user, project, period, result)

	return result, nil
}

// publishHoursAdded emits the hours added event. Publish failures are logged
// and do not fail the request.
func (s *TimecardService) publishHoursAdded(ctx context.Context, card *domain.Timecard, user *domain.User, project *domain.Project, period *domain.ReportingPeriod, result *AddHoursResult) {
	if s.publisher == nil {
		return
	}

	event := messaging.TimecardHoursAddedEvent{
		TimecardID:  card.ID,
		UserID:      user.ID,
		Username:    user.Username,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		HoursAdded:  result.HoursAdded.String(),
		TotalHours:  result.TotalHours.String(),
		LineItemNew: result.Created,
		PeriodStart: period.StartDate,
		PeriodEnd:   period.EndDate,
	}

	if err := s.publisher.Publish(ctx, messaging.EventTimecardHoursAdded, event); err != nil {
		s.logger.Warn().Err(err).
			Int64("timecard_id", card.ID).
			Msg("failed to publish hours added event")
	}
}
