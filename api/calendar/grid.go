// Package calendar implements the trustee-office booking calendar: the
// month/week day grid, the derived date index over bookings, and the
// optimistic reschedule command that reconciles against the booking API.
package calendar

import "time"

const dateKeyLayout = "2006-01-02"

// Cell is one day slot in a rendered grid. Leading cells that pad the month
// view out to its starting weekday have Day == 0 and an empty DateKey.
type Cell struct {
	Day     int    `json:"day"`
	DateKey string `json:"dateKey"`
}

// DaysInMonth returns the number of calendar days in the given month
// (0-based, January = 0). Day 0 of the following month is the last day of
// this one, so leap years come out of the time package instead of
// hand-rolled Gregorian math.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartWeekday returns the ISO weekday of the 1st of the month, Monday = 0
// through Sunday = 6. month is 0-based.
func StartWeekday(year, month int) int {
	wd := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

// WeekStart returns the Monday beginning the ISO week containing t,
// truncated to midnight UTC. Applying it twice is a no-op.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	t = t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats t as the canonical zero-padded YYYY-MM-DD index key.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// MonthCells lays out the month view: StartWeekday leading blank cells
// followed by one cell per day 1..DaysInMonth.
func MonthCells(year, month int) []Cell {
	blanks := StartWeekday(year, month)
	days := DaysInMonth(year, month)

	cells := make([]Cell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{
			Day:     day,
			DateKey: DateKey(time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)),
		})
	}
	return cells
}

// WeekCells lays out exactly 7 cells starting from the Monday of the week
// containing today. The week view always anchors on the real "today", not
// on the navigated month.
func WeekCells(today time.Time) []Cell {
	start := WeekStart(today)

	cells := make([]Cell, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, Cell{Day: d.Day(), DateKey: DateKey(d)})
	}
	return cells
}
