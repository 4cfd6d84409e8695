// Package calendar generates month grids for page rendering.
package calendar

import "time"

// DayCell is one cell of a 6x7 month grid. Cells outside the month have
// InMonth false and a zero Date.
type DayCell struct {
	Date    time.Time
	Day     int
	InMonth bool
}

// Grid is a Sunday-first month grid of exactly 6 weeks by 7 days.
type Grid struct {
	Weeks [6][7]DayCell
	Year  int
	Month int // 0-based
}

// MonthGrid builds the grid for a year and 0-based month. Cells before
// the first weekday of the month and after its last day stay blank; no
// spillover days from adjacent months are numbered.
func MonthGrid(year, month0 int) Grid {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	firstWeekday := int(first.Weekday()) // 0=Sunday
	// Day 0 of the following month normalizes to the last day of this one.
	daysInMonth := time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()

	g := Grid{Year: year, Month: month0}
	day := 1
	for w := 0; w < 6; w++ {
		for d := 0; d < 7; d++ {
			cellIndex := w*7 + d
			if cellIndex < firstWeekday || day > daysInMonth {
				continue
			}
			g.Weeks[w][d] = DayCell{
				Date:    time.Date(year, time.Month(month0+1), day, 0, 0, 0, 0, time.UTC),
				Day:     day,
				InMonth: true,
			}
			day++
		}
	}
	return g
}

// ISOWeek returns the ISO-8601 week number of a date (Monday-start weeks,
// week 1 is the week containing the year's first Thursday).
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
