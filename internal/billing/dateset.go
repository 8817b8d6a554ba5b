package billing

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/username/plant-hire-calculator/pkg/dateutil"
)

// DateSet is a set of calendar dates. Equipment keeps its idle days here as
// full dates, so markers survive month navigation.
type DateSet map[civil.Date]struct{}

// NewDateSet builds a set from dates
func NewDateSet(dates ...time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

// Add marks the date
func (s DateSet) Add(date time.Time) {
	s[civil.DateOf(date)] = struct{}{}
}

// Remove unmarks the date
func (s DateSet) Remove(date time.Time) {
	delete(s, civil.DateOf(date))
}

// Has reports whether the date is marked
func (s DateSet) Has(date time.Time) bool {
	_, ok := s[civil.DateOf(date)]
	return ok
}

// Len returns the number of marked dates
func (s DateSet) Len() int {
	return len(s)
}

// Clone returns an independent copy; a nil set clones to an empty one
func (s DateSet) Clone() DateSet {
	out := make(DateSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// Sorted returns the marked dates in ascending order
func (s DateSet) Sorted() []civil.Date {
	dates := make([]civil.Date, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// DaysIn returns the sorted days of month marked for the given month
func (s DateSet) DaysIn(year int, month time.Month) []int {
	days := []int{}
	for d := range s {
		if d.Year == year && d.Month == month {
			days = append(days, d.Day)
		}
	}
	sort.Ints(days)
	return days
}

// MarshalJSON encodes the set as a sorted array of "YYYY-MM-DD" strings
func (s DateSet) MarshalJSON() ([]byte, error) {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, d := range sorted {
		out[i] = d.String()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an array of date strings; timestamps are truncated to their date
func (s *DateSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("idle days must be an array of dates: %w", err)
	}

	set := make(DateSet, len(raw))
	for _, str := range raw {
		if d, err := civil.ParseDate(str); err == nil {
			set[d] = struct{}{}
			continue
		}
		t, err := dateutil.ParseDate(str)
		if err != nil {
			return fmt.Errorf("invalid idle day: %w", err)
		}
		set.Add(t)
	}

	*s = set
	return nil
}

// ToggleDate flips a single date and returns the new set
func ToggleDate(idle DateSet, date time.Time) DateSet {
	out := idle.Clone()
	if out.Has(date) {
		out.Remove(date)
	} else {
		out.Add(date)
	}
	return out
}

// ToggleDates marks every date idle if any of them is not yet idle,
// otherwise clears them all. An empty list leaves the set unchanged.
func ToggleDates(idle DateSet, dates []time.Time) DateSet {
	out := idle.Clone()
	if len(dates) == 0 {
		return out
	}

	anyUnselected := false
	for _, d := range dates {
		if !out.Has(d) {
			anyUnselected = true
			break
		}
	}

	for _, d := range dates {
		if anyUnselected {
			out.Add(d)
		} else {
			out.Remove(d)
		}
	}
	return out
}

// ToggleWeekday applies ToggleDates to every given weekday of the month
func ToggleWeekday(idle DateSet, year int, month time.Month, weekday time.Weekday) DateSet {
	var dates []time.Time
	for day := 1; day <= dateutil.DaysInMonth(year, month); day++ {
		date := dateutil.Date(year, month, day)
		if date.Weekday() == weekday {
			dates = append(dates, date)
		}
	}
	return ToggleDates(idle, dates)
}
