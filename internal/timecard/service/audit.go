package service

import (
	"context"
	"time"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/pkg/messaging"
)

// AuditReportingPeriod returns the current employees who have not submitted
// a timecard for the reporting period starting on the given date
func (s *TimecardService) AuditReportingPeriod(ctx context.Context, startDate time.Time) ([]domain.User, error) {
	period, err := s.periods.GetByStartDate(ctx, startDate)
	if err != nil {
		return nil, err
	}

	current, err := s.users.ListCurrent(ctx)
	if err != nil {
		return nil, err
	}

	submittedIDs, err := s.timecards.ListUserIDsWithSubmittedCard(ctx, period.ID)
	if err != nil {
		return nil, err
	}

	submitted := make(map[int64]struct{}, len(submittedIDs))
	for _, id := range submittedIDs {
		submitted[id] = struct{}{}
	}

	missing := []domain.User{}
	for _, user := range current {
		if _, ok := submitted[user.ID]; !ok {
			missing = append(missing, user)
		}
	}

	if len(missing) > 0 {
		s.publishAuditMissing(ctx, period, missing)
	}

	return missing, nil
}

// publishAuditMissing emits the audit result. Publish failures are logged
// and do not fail the request.
func (s *TimecardService) publishAuditMissing(ctx context.Context, period *domain.ReportingPeriod, missing []domain.User) {
	if s.publisher == nil {
		return
	}

	usernames := make([]string, len(missing))
	for i, user := range missing {
		usernames[i] = user.Username
	}

	event := messaging.AuditMissingTimecardsEvent{
		PeriodStart:  period.StartDate,
		MissingCount: len(missing),
		Usernames:    usernames,
	}

	if err := s.publisher.Publish(ctx, messaging.EventAuditMissingTimecards, event); err != nil {
		s.logger.Warn().Err(err).
			Time("period_start", period.StartDate).
			Msg("failed to publish audit event")
	}
}
