package calendar

import "time"

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

// South African statutory holidays on fixed dates
var fixedHolidays = []fixedHoliday{
	{time.January, 1, "New Year's Day"},
	{time.March, 21, "Human Rights Day"},
	{time.April, 27, "Freedom Day"},
	{time.May, 1, "Workers' Day"},
	{time.June, 16, "Youth Day"},
	{time.August, 9, "National Women's Day"},
	{time.September, 24, "Heritage Day"},
	{time.December, 16, "Day of Reconciliation"},
	{time.December, 25, "Christmas Day"},
	{time.December, 26, "Day of Goodwill"},
}

// EasterSunday returns the Gregorian Easter Sunday for the year
// (anonymous Gregorian algorithm, Meeus/Jones/Butcher).
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// NamedHolidays returns the public holidays of the year in rule order:
// Easter-derived holidays first, then fixed dates each followed by its
// Monday observance when it falls on a Sunday.
func NamedHolidays(year int) []Holiday {
	easter := EasterSunday(year)

	holidays := []Holiday{
		{Date: easter.AddDate(0, 0, -2), Name: "Good Friday"},
		{Date: easter.AddDate(0, 0, 1), Name: "Family Day"},
	}

	for _, fh := range fixedHolidays {
		date := time.Date(year, fh.month, fh.day, 0, 0, 0, 0, time.UTC)
		holidays = append(holidays, Holiday{Date: date, Name: fh.name})

		if date.Weekday() == time.Sunday {
			holidays = append(holidays, Holiday{
				Date:     date.AddDate(0, 0, 1),
				Name:     fh.name + " (observed)",
				Observed: true,
			})
		}
	}

	return holidays
}

// HolidaysForYear returns the public holiday dates for the year
func HolidaysForYear(year int) []time.Time {
	named := NamedHolidays(year)
	dates := make([]time.Time, len(named))
	for i, h := range named {
		dates[i] = h.Date
	}
	return dates
}

// ComputedCalendar implements Calendar from the statutory rules alone
type ComputedCalendar struct{}

// NewComputedCalendar creates a new ComputedCalendar
func NewComputedCalendar() *ComputedCalendar {
	return &ComputedCalendar{}
}

// Holidays returns the statutory holidays for the year
func (ComputedCalendar) Holidays(year int) []Holiday {
	return NamedHolidays(year)
}
