package calendar

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// DayType represents the billing category of a day
type DayType int

const (
	DayTypeWeekday DayType = iota + 1
	DayTypeSaturday
	DayTypeSundayOrHoliday
)

// DayTypes lists day types in invoice order
var DayTypes = []DayType{DayTypeWeekday, DayTypeSaturday, DayTypeSundayOrHoliday}

// String returns the invoice heading for the day type
func (t DayType) String() string {
	switch t {
	case DayTypeWeekday:
		return "WEEKDAYS"
	case DayTypeSaturday:
		return "SATURDAYS"
	case DayTypeSundayOrHoliday:
		return "SUNDAYS & PUBLIC HOLIDAYS"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler
func (t DayType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Holiday is a public holiday on a concrete date
type Holiday struct {
	Date     time.Time `json:"date"`
	Name     string    `json:"name"`
	Observed bool      `json:"observed,omitempty"`
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date    time.Time
	Type    DayType
	Holiday bool
	Note    string
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year            int
	Month           time.Month
	Weekdays        int
	Saturdays       int
	SundaysHolidays int
	Holidays        int
	Days            []DayInfo
}

// Calendar is a source of public holidays
type Calendar interface {
	// Holidays returns every holiday of the year; duplicates are allowed
	Holidays(year int) []Holiday
}

// HolidaySet is a membership set of holiday dates
type HolidaySet map[civil.Date]struct{}

// NewHolidaySet builds a set from holiday dates
func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[civil.DateOf(d)] = struct{}{}
	}
	return set
}

// Has reports whether the date is a holiday
func (s HolidaySet) Has(date time.Time) bool {
	_, ok := s[civil.DateOf(date)]
	return ok
}

// Classify returns the billing day type for date.
// Holidays merge with Sundays, so a holiday on a Saturday is not billed as Saturday.
func Classify(date time.Time, holidays HolidaySet) DayType {
	weekday := date.Weekday()
	if holidays.Has(date) || weekday == time.Sunday {
		return DayTypeSundayOrHoliday
	}
	if weekday == time.Saturday {
		return DayTypeSaturday
	}
	return DayTypeWeekday
}

// HolidaySetFor returns the holiday set of a calendar for the year
func HolidaySetFor(cal Calendar, year int) HolidaySet {
	set := make(HolidaySet)
	for _, h := range cal.Holidays(year) {
		set[civil.DateOf(h.Date)] = struct{}{}
	}
	return set
}

// HolidaysIn returns the distinct holiday dates of the month in date order
func HolidaysIn(cal Calendar, year int, month time.Month) []time.Time {
	var days []civil.Date
	for d := range HolidaySetFor(cal, year) {
		if d.Year == year && d.Month == month {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	dates := make([]time.Time, len(days))
	for i, d := range days {
		dates[i] = d.In(time.UTC)
	}
	return dates
}

// MonthInfoFor returns per-day classification for the month
func MonthInfoFor(cal Calendar, year int, month time.Month) *MonthInfo {
	notes := make(map[civil.Date]string)
	for _, h := range cal.Holidays(year) {
		key := civil.DateOf(h.Date)
		if _, seen := notes[key]; !seen {
			notes[key] = h.Name
		}
	}

	holidays := make(HolidaySet, len(notes))
	for d := range notes {
		holidays[d] = struct{}{}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	info := &MonthInfo{Year: year, Month: month}
	for date := first; date.Month() == month; date = date.AddDate(0, 0, 1) {
		dayType := Classify(date, holidays)
		note, isHoliday := notes[civil.DateOf(date)]

		info.Days = append(info.Days, DayInfo{
			Date:    date,
			Type:    dayType,
			Holiday: isHoliday,
			Note:    note,
		})

		switch dayType {
		case DayTypeWeekday:
			info.Weekdays++
		case DayTypeSaturday:
			info.Saturdays++
		case DayTypeSundayOrHoliday:
			info.SundaysHolidays++
		}
		if isHoliday {
			info.Holidays++
		}
	}

	return info
}
