package service

import (
	"context"

	"github.com/hourbook/hourbook-backend/internal/timecard/report"
)

// HoursByQuarter returns billable and nonbillable totals per fiscal quarter,
// summed over submitted timecards
func (s *TimecardService) HoursByQuarter(ctx context.Context) ([]report.QuarterHours, error) {
	cards, err := s.timecards.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	return report.ByQuarter(cards), nil
}

// HoursByQuarterByUser returns per-user billable and nonbillable totals per
// fiscal quarter, summed over submitted timecards
func (s *TimecardService) HoursByQuarterByUser(ctx context.Context) ([]report.UserQuarterHours, error) {
	cards, err := s.timecards.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	return report.ByQuarterByUser(cards), nil
}
