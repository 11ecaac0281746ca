// Package report aggregates submitted timecard hours by fiscal quarter.
package report

import (
	"sort"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/internal/timecard/fiscal"
)

// QuarterHours is one fiscal quarter's billable and nonbillable totals
type QuarterHours struct {
	Year        int          `json:"year"`
	Quarter     int          `json:"quarter"`
	Billable    domain.Hours `json:"billable"`
	Nonbillable domain.Hours `json:"nonbillable"`
	Total       domain.Hours `json:"total"`
}

// UserQuarterHours is one user's totals for one fiscal quarter
type UserQuarterHours struct {
	Year        int          `json:"year"`
	Quarter     int          `json:"quarter"`
	Username    string       `json:"username"`
	Billable    domain.Hours `json:"billable"`
	Nonbillable domain.Hours `json:"nonbillable"`
	Total       domain.Hours `json:"total"`
}

type quarterKey struct {
	year    int
	quarter int
}

type userQuarterKey struct {
	year     int
	quarter  int
	username string
}

// ByQuarter sums hours from submitted timecards grouped by fiscal quarter.
// The quarter is taken from the reporting period's start date. Quarters with
// no hours produce no row. Results are in chronological order.
func ByQuarter(cards []domain.TimecardSnapshot) []QuarterHours {
	groups := make(map[quarterKey]*QuarterHours)

	for _, card := range cards {
		if !card.Submitted {
			continue
		}
		year, quarter := fiscal.Quarter(card.PeriodStart)
		key := quarterKey{year, quarter}

		group, ok := groups[key]
		if !ok {
			group = &QuarterHours{Year: year, Quarter: quarter}
			groups[key] = group
		}

		for _, obj := range card.Objects {
			if obj.Billable {
				group.Billable = group.Billable.Add(obj.HoursSpent)
			} else {
				group.Nonbillable = group.Nonbillable.Add(obj.HoursSpent)
			}
		}
	}

	out := make([]QuarterHours, 0, len(groups))
	for _, group := range groups {
		group.Total = group.Billable.Add(group.Nonbillable)
		if group.Total == 0 {
			continue
		}
		out = append(out, *group)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Quarter < out[j].Quarter
	})

	return out
}

// ByQuarterByUser sums hours from submitted timecards grouped by fiscal
// quarter and username. Results are ordered chronologically, then by
// username within a quarter.
func ByQuarterByUser(cards []domain.TimecardSnapshot) []UserQuarterHours {
	groups := make(map[userQuarterKey]*UserQuarterHours)

	for _, card := range cards {
		if !card.Submitted {
			continue
		}
		year, quarter := fiscal.Quarter(card.PeriodStart)
		key := userQuarterKey{year, quarter, card.Username}

		group, ok := groups[key]
		if !ok {
			group = &UserQuarterHours{Year: year, Quarter: quarter, Username: card.Username}
			groups[key] = group
		}

		for _, obj := range card.Objects {
			if obj.Billable {
				group.Billable = group.Billable.Add(obj.HoursSpent)
			} else {
				group.Nonbillable = group.Nonbillable.Add(obj.HoursSpent)
			}
		}
	}

	out := make([]UserQuarterHours, 0, len(groups))
	for _, group := range groups {
		group.Total = group.Billable.Add(group.Nonbillable)
		if group.Total == 0 {
			continue
		}
		out = append(out, *group)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Quarter != out[j].Quarter {
			return out[i].Quarter < out[j].Quarter
		}
		return out[i].Username < out[j].Username
	})

	return out
}
