package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func testCards() []domain.TimecardSnapshot {
	return []domain.TimecardSnapshot{
		{
			ID:          1,
			UserID:      1,
			Username:    "aaron.snow",
			PeriodStart: date(2015, time.June, 1),
			PeriodEnd:   date(2015, time.June, 8),
			Submitted:   true,
			Objects: []domain.SnapshotObject{
				{ID: 1, ProjectID: 1, ProjectName: "Out of Office", HoursSpent: 4000},
			},
		},
		{
			ID:          2,
			UserID:      2,
			Username:    "james.madison",
			PeriodStart: date(2015, time.November, 2),
			PeriodEnd:   date(2015, time.November, 8),
			Submitted:   true,
			Objects: []domain.SnapshotObject{
				{ID: 2, ProjectID: 2, ProjectName: "Midas", HoursSpent: 1500},
				{ID: 3, ProjectID: 3, ProjectName: "Peace Corps", HoursSpent: 500},
			},
		},
		{
			ID:          3,
			UserID:      1,
			Username:    "aaron.snow",
			PeriodStart: date(2015, time.November, 2),
			PeriodEnd:   date(2015, time.November, 8),
			Submitted:   false,
			Objects: []domain.SnapshotObject{
				{ID: 4, ProjectID: 2, ProjectName: "Midas", HoursSpent: 4000},
			},
		},
	}
}

func TestApplyNoFilters(t *testing.T) {
	cards := testCards()
	got := Apply(cards, domain.FilterParams{})

	assert.Len(t, got, 3)
	assert.Equal(t, cards, got)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	cards := testCards()
	Apply(cards, domain.FilterParams{Submitted: strPtr("no")})

	assert.Len(t, cards, 3)
	assert.True(t, cards[0].Submitted)
}

func TestApplyAfter(t *testing.T) {
	got := Apply(testCards(), domain.FilterParams{After: timePtr(date(2015, time.October, 1))})

	assert.Len(t, got, 2)
	for _, card := range got {
		assert.True(t, card.PeriodEnd.After(date(2015, time.October, 1)))
	}

	// Strictly after: a card ending on the boundary date is excluded
	got = Apply(testCards(), domain.FilterParams{After: timePtr(date(2015, time.June, 8))})
	assert.Len(t, got, 2)
	for _, card := range got {
		assert.NotEqual(t, int64(1), card.ID)
	}
}

func TestApplyDate(t *testing.T) {
	got := Apply(testCards(), domain.FilterParams{Date: timePtr(date(2015, time.June, 8))})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestApplyUser(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		got := Apply(testCards(), domain.FilterParams{User: strPtr("1")})
		assert.Len(t, got, 2)
		for _, card := range got {
			assert.Equal(t, int64(1), card.UserID)
		}
	})

	t.Run("by username", func(t *testing.T) {
		got := Apply(testCards(), domain.FilterParams{User: strPtr("james.madison")})
		assert.Len(t, got, 1)
		assert.Equal(t, "james.madison", got[0].Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		got := Apply(testCards(), domain.FilterParams{User: strPtr("nobody")})
		assert.Empty(t, got)
	})
}

func TestApplyProject(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		got := Apply(testCards(), domain.FilterParams{Project: strPtr("2")})
		assert.Len(t, got, 2)
	})

	t.Run("by name", func(t *testing.T) {
		got := Apply(testCards(), domain.FilterParams{Project: strPtr("Peace Corps")})
		assert.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("any matching line item keeps the card", func(t *testing.T) {
		got := Apply(testCards(), domain.FilterParams{Project: strPtr("Midas")})
		assert.Len(t, got, 2)
	})
}

func TestApplySubmitted(t *testing.T) {
	t.Run("no keeps only unsubmitted", func(t *testing.T) {
		got := Apply(testCards(), domain.FilterParams{Submitted: strPtr("no")})
		assert.Len(t, got, 1)
		assert.False(t, got[0].Submitted)
	})

	t.Run("yes applies no filter", func(t *testing.T) {
		got := Apply(testCards(), domain.FilterParams{Submitted: strPtr("yes")})
		assert.Len(t, got, 3)
	})

	t.Run("unrecognized value applies no filter", func(t *testing.T) {
		got := Apply(testCards(), domain.FilterParams{Submitted: strPtr("foo")})
		assert.Len(t, got, 3)
	})
}

func TestApplyCombinesWithAnd(t *testing.T) {
	got := Apply(testCards(), domain.FilterParams{
		User:    strPtr("aaron.snow"),
		Project: strPtr("Midas"),
	})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestApplyIsIdempotent(t *testing.T) {
	params := domain.FilterParams{Submitted: strPtr("no")}

	once := Apply(testCards(), params)
	twice := Apply(once, params)

	assert.Equal(t, once, twice)
}

func TestApplyPreservesOrder(t *testing.T) {
	got := Apply(testCards(), domain.FilterParams{Date: timePtr(date(2015, time.November, 8))})

	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}
