package billing

import (
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/username/plant-hire-calculator/internal/calendar"
)

const (
	// markupStep is the 5% premium unit applied to weekend rates
	markupStep       = 0.05
	saturdayMultiple = 1.5
	sundayMultiple   = 2.0
)

// Rates holds daily hire rates per day type
type Rates struct {
	Weekday  float64 `json:"weekday"`
	Saturday float64 `json:"saturday"`
	Sunday   float64 `json:"sunday"`
}

// For returns the rate charged for the day type
func (r Rates) For(dayType calendar.DayType) float64 {
	switch dayType {
	case calendar.DayTypeSaturday:
		return r.Saturday
	case calendar.DayTypeSundayOrHoliday:
		return r.Sunday
	default:
		return r.Weekday
	}
}

// Sanitize coerces every rate through ParseAmount
func (r Rates) Sanitize() Rates {
	return Rates{
		Weekday:  ParseAmount(r.Weekday),
		Saturday: ParseAmount(r.Saturday),
		Sunday:   ParseAmount(r.Sunday),
	}
}

// DeriveRates computes weekend premiums from the weekday base rate:
// Saturday +7.5%, Sunday and public holidays +10%.
func DeriveRates(base float64) Rates {
	base = ParseAmount(base)
	return Rates{
		Weekday:  base,
		Saturday: base + base*markupStep*saturdayMultiple,
		Sunday:   base + base*markupStep*sundayMultiple,
	}
}

// DeriveRatesFrom is DeriveRates over loosely typed input such as form values
func DeriveRatesFrom(base any) Rates {
	return DeriveRates(ParseAmount(base))
}

// ParseAmount coerces numbers and numeric strings to a non-negative amount.
// Surrounding whitespace is ignored; anything unparsable, non-finite or negative becomes 0.
func ParseAmount(v any) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
