package service

import (
	"time"

	"pushup-club/internal/holiday"
)

const dateLayout = "2006-01-02"

// Workdays enumerates the business days of a month: weekends and national
// holidays are skipped, and the scan stops outright at the first day past
// today, so an in-progress month only counts its elapsed days.
type Workdays struct {
	cal *holiday.Calendar
	now func() time.Time
}

func NewWorkdays(cal *holiday.Calendar) *Workdays {
	return &Workdays{cal: cal, now: time.Now}
}

// MonthWorkdays returns the month's workdays as ISO dates, in order.
func (w *Workdays) MonthWorkdays(year, month int) []string {
	today := w.now().Format(dateLayout)
	var days []string
	for d := 1; d <= LastDay(year, month); d++ {
		cur := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.Local)
		iso := cur.Format(dateLayout)
		if iso > today {
			break
		}
		if wd := cur.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if w.cal.IsHoliday(iso) {
			continue
		}
		days = append(days, iso)
	}
	return days
}

// LastDay returns the number of days in the month.
func LastDay(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// MonthBounds returns the first and last ISO dates of the month. ISO dates
// order lexicographically, so the bounds work directly in range queries
// against the date column.
func MonthBounds(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := time.Date(year, time.Month(month), LastDay(year, month), 0, 0, 0, 0, time.Local)
	return first.Format(dateLayout), last.Format(dateLayout)
}
