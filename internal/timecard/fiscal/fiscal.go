// Package fiscal maps calendar dates onto the federal fiscal calendar.
// The fiscal year runs October 1 through September 30 and is numbered by
// the calendar year it ends in.
package fiscal

import "time"

// Year returns the fiscal year containing the given date
func Year(t time.Time) int {
	if t.Month() >= time.October {
		return t.Year() + 1
	}
	return t.Year()
}

// Quarter returns the fiscal year and quarter containing the given date.
// Q1 is October through December, Q2 January through March, Q3 April
// through June, Q4 July through September.
func Quarter(t time.Time) (year int, quarter int) {
	year = Year(t)
	switch {
	case t.Month() >= time.October:
		quarter = 1
	case t.Month() <= time.March:
		quarter = 2
	case t.Month() <= time.June:
		quarter = 3
	default:
		quarter = 4
	}
	return year, quarter
}
