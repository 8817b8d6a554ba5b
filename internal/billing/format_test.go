package billing

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"Already rounded", 10, 10},
		{"Half cent rounds up", 1.005, 1.01},
		{"Tiny half cent", 0.005, 0.01},
		{"Below half cent", 0.004, 0},
		{"Rounds down", 12.344, 12.34},
		{"Rounds up", 12.345, 12.35},
		{"Float noise", 1980.0000000000002, 1980},
		{"Sum noise", 0.1 + 0.2, 0.3},
		{"Large", 1234567.891, 1234567.89},
		{"NaN", math.NaN(), 0},
		{"Positive infinity", math.Inf(1), 0},
		{"Negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.input); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"Zero", 0, "R0.00"},
		{"Small", 5.5, "R5.50"},
		{"Hundreds", 999.999, "R1 000.00"},
		{"Thousands", 2687.5, "R2 687.50"},
		{"Millions", 1234567.891, "R1 234 567.89"},
		{"Exact thousand", 1000, "R1 000.00"},
		{"Six digits", 123456, "R123 456.00"},
		{"NaN", math.NaN(), "R0.00"},
		{"Negative", -1234.5, "R-1 234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.input); got != tt.want {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDayRanges(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  string
	}{
		{"Mixed runs", []int{1, 2, 3, 5, 7, 8}, "1-3, 5, 7-8"},
		{"Empty", []int{}, ""},
		{"Nil", nil, ""},
		{"Single", []int{9}, "9"},
		{"One run", []int{1, 2, 3, 4}, "1-4"},
		{"Unsorted input", []int{8, 1, 3, 2, 7, 5}, "1-3, 5, 7-8"},
		{"All singles", []int{2, 4, 6}, "2, 4, 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDayRanges(tt.input); got != tt.want {
				t.Errorf("FormatDayRanges(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDayRanges_DoesNotMutateInput(t *testing.T) {
	input := []int{3, 1, 2}
	FormatDayRanges(input)

	if input[0] != 3 || input[1] != 1 || input[2] != 2 {
		t.Errorf("FormatDayRanges mutated its input: %v", input)
	}
}
