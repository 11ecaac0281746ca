// Package query filters timecard snapshots in memory. Filters are pure:
// they never mutate their input and preserve its order.
package query

import (
	"strconv"
	"time"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
)

// Apply returns the snapshots matching every set filter, in input order
func Apply(cards []domain.TimecardSnapshot, f domain.FilterParams) []domain.TimecardSnapshot {
	if f.IsZero() {
		out := make([]domain.TimecardSnapshot, len(cards))
		copy(out, cards)
		return out
	}

	out := make([]domain.TimecardSnapshot, 0, len(cards))
	for _, card := range cards {
		if matches(card, f) {
			out = append(out, card)
		}
	}
	return out
}

func matches(card domain.TimecardSnapshot, f domain.FilterParams) bool {
	if f.After != nil && !card.PeriodEnd.After(*f.After) {
		return false
	}
	if f.Date != nil && !sameDate(card.PeriodEnd, *f.Date) {
		return false
	}
	if f.User != nil && !matchesUser(card, *f.User) {
		return false
	}
	if f.Project != nil && !matchesProject(card, *f.Project) {
		return false
	}
	if f.Submitted != nil && *f.Submitted == "no" && card.Submitted {
		return false
	}
	return true
}

// matchesUser compares by user ID when the value parses as an integer,
// otherwise by username
func matchesUser(card domain.TimecardSnapshot, value string) bool {
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		return card.UserID == id
	}
	return card.Username == value
}

// matchesProject keeps a card when at least one line item's project matches,
// by ID when the value parses as an integer, otherwise by name
func matchesProject(card domain.TimecardSnapshot, value string) bool {
	id, err := strconv.ParseInt(value, 10, 64)
	for _, obj := range card.Objects {
		if err == nil {
			if obj.ProjectID == id {
				return true
			}
		} else if obj.ProjectName == value {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
