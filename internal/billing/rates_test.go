package billing

import (
	"math"
	"testing"

	"github.com/username/plant-hire-calculator/internal/calendar"
)

func TestDeriveRates(t *testing.T) {
	tests := []struct {
		name string
		base float64
		want Rates
	}{
		{"Base 2500", 2500, Rates{Weekday: 2500, Saturday: 2687.5, Sunday: 2750}},
		{"Base 100", 100, Rates{Weekday: 100, Saturday: 107.5, Sunday: 110}},
		{"Zero", 0, Rates{}},
		{"NaN coerced", math.NaN(), Rates{}},
		{"Infinity coerced", math.Inf(1), Rates{}},
		{"Negative coerced", -50, Rates{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveRates(tt.base); got != tt.want {
				t.Errorf("DeriveRates(%v) = %+v, want %+v", tt.base, got, tt.want)
			}
		})
	}
}

func TestDeriveRatesFrom(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"Numeric string", "2500", 2500},
		{"Decimal string", "478.26", 478.26},
		{"Padded string", " 2500 ", 2500},
		{"Padded with tab and newline", "\t478.26\n", 478.26},
		{"Integer", 5200, 5200},
		{"Garbage string", "abc", 0},
		{"Empty string", "", 0},
		{"Nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveRatesFrom(tt.input)
			if got.Weekday != tt.want {
				t.Errorf("DeriveRatesFrom(%v).Weekday = %v, want %v", tt.input, got.Weekday, tt.want)
			}
			if want := DeriveRates(tt.want); got != want {
				t.Errorf("DeriveRatesFrom(%v) = %+v, want %+v", tt.input, got, want)
			}
		})
	}
}

func TestRates_For(t *testing.T) {
	rates := Rates{Weekday: 1, Saturday: 2, Sunday: 3}

	tests := []struct {
		dayType calendar.DayType
		want    float64
	}{
		{calendar.DayTypeWeekday, 1},
		{calendar.DayTypeSaturday, 2},
		{calendar.DayTypeSundayOrHoliday, 3},
	}

	for _, tt := range tests {
		if got := rates.For(tt.dayType); got != tt.want {
			t.Errorf("Rates.For(%v) = %v, want %v", tt.dayType, got, tt.want)
		}
	}
}

func TestRates_OverrideIsKept(t *testing.T) {
	item := NewEquipment("Dropside", 5200)
	item.Rates.Saturday = 9000

	if item.Rates.Saturday != 9000 {
		t.Fatalf("override lost: %+v", item.Rates)
	}
	if got := item.Rates.For(calendar.DayTypeSaturday); got != 9000 {
		t.Errorf("Rates.For(Saturday) = %v, want overridden 9000", got)
	}
}

func TestRates_Sanitize(t *testing.T) {
	got := Rates{Weekday: math.NaN(), Saturday: -1, Sunday: 12.5}.Sanitize()
	want := Rates{Weekday: 0, Saturday: 0, Sunday: 12.5}

	if got != want {
		t.Errorf("Sanitize() = %+v, want %+v", got, want)
	}
}
