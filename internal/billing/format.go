package billing

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount
const CurrencySymbol = "R"

// roundingEpsilon nudges values like 1.005 over the half-cent boundary
const roundingEpsilon = 2.220446049250313e-16

// Round2 rounds half-up to cents. Non-finite input rounds to 0.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Floor((x+roundingEpsilon)*100+0.5) / 100
}

// FormatCurrency renders an amount as "R1 234 567.89"
func FormatCurrency(amount float64) string {
	fixed := decimal.NewFromFloat(Round2(amount)).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, cents, _ := strings.Cut(fixed, ".")
	return CurrencySymbol + sign + groupThousands(whole) + "." + cents
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDayRanges collapses days of month into runs: [1 2 3 5 7 8] -> "1-3, 5, 7-8"
func FormatDayRanges(days []int) string {
	if len(days) == 0 {
		return ""
	}

	sorted := make([]int, len(days))
	copy(sorted, days)
	sort.Ints(sorted)

	var ranges []string
	start, prev := sorted[0], sorted[0]
	flush := func() {
		if start == prev {
			ranges = append(ranges, strconv.Itoa(start))
		} else {
			ranges = append(ranges, strconv.Itoa(start)+"-"+strconv.Itoa(prev))
		}
	}

	for _, day := range sorted[1:] {
		if day != prev+1 {
			flush()
			start = day
		}
		prev = day
	}
	flush()

	return strings.Join(ranges, ", ")
}
