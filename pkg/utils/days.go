package utils

import (
	"fmt"
	"time"
)

const (
	SearchDateLayout = "2006-01-02"
	MonthLayout      = "2006-01"
)

// LastDayOfMonth returns the number of days in a "YYYY-MM" month
func LastDayOfMonth(yearMonth string) (int, error) {
	t, err := time.Parse(MonthLayout, yearMonth)
	if err != nil {
		return 0, fmt.Errorf("invalid month %q: %w", yearMonth, err)
	}
	return t.AddDate(0, 1, -1).Day(), nil
}

// FirstSearchableDay returns the first not-yet-elapsed day of the target
// month: today's day when the month is the current one, otherwise 1
func FirstSearchableDay(yearMonth string, now time.Time) (int, error) {
	t, err := time.Parse(MonthLayout, yearMonth)
	if err != nil {
		return 0, fmt.Errorf("invalid month %q: %w", yearMonth, err)
	}
	if t.Year() == now.Year() && t.Month() == now.Month() {
		return now.Day(), nil
	}
	return 1, nil
}

// FormatSearchDate builds the ISO day the upstream expects from a month and
// a day of month
func FormatSearchDate(yearMonth string, day int) string {
	return fmt.Sprintf("%s-%02d", yearMonth, day)
}

// MonthOf extracts the "MM" part of a "YYYY-MM" or "YYYY-MM-DD" date
func MonthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[5:7]
}

// YearOf extracts the "YYYY" part of a "YYYY-MM" or "YYYY-MM-DD" date
func YearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// DaysBetween returns the calendar-day gap between two dates, ignoring the
// time of day of either side
func DaysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(to.Sub(from).Hours() / 24)
}
