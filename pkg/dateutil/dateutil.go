package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// MonthLayout is the canonical text form of a billing month
const MonthLayout = "2006-01"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DaysInMonth returns the number of calendar days in the month
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths shifts (year, month) by n months, crossing year boundaries
func AddMonths(year int, month time.Month, n int) (int, time.Month) {
	t := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Date builds a UTC midnight date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006/01/02",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
	}

	dateStr = strings.TrimSpace(dateStr)
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// ParseMonth parses "YYYY-MM" (or "MM.YYYY") into year and month
func ParseMonth(monthStr string) (int, time.Month, error) {
	monthStr = strings.TrimSpace(monthStr)
	for _, layout := range []string{MonthLayout, "01.2006", "2006/01"} {
		if t, err := time.Parse(layout, monthStr); err == nil {
			if t.Year() < 1 {
				return 0, 0, fmt.Errorf("year out of range: %q", monthStr)
			}
			return t.Year(), t.Month(), nil
		}
	}
	return 0, 0, fmt.Errorf("unrecognized month format: %q (want YYYY-MM)", monthStr)
}

// FormatMonth formats year and month as "YYYY-MM"
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// CurrentMonth returns the year and month of today
func CurrentMonth() (int, time.Month) {
	now := time.Now()
	return now.Year(), now.Month()
}
