package billing

import (
	"sort"
	"time"

	"github.com/username/plant-hire-calculator/internal/calendar"
	"github.com/username/plant-hire-calculator/pkg/dateutil"
)

// Line is the charge for one day type within one discount tier
type Line struct {
	DayType  calendar.DayType `json:"day_type"`
	Days     []int            `json:"days"`
	Rate     float64          `json:"rate"`
	Subtotal float64          `json:"subtotal"`
	Total    float64          `json:"total"`
}

// DayRanges returns the line's days formatted as ranges
func (l Line) DayRanges() string {
	return FormatDayRanges(l.Days)
}

// LineGroup collects the lines of every period sharing a discount tier.
// Lines always holds all day types in calendar.DayTypes order.
type LineGroup struct {
	Tier  Tier   `json:"tier"`
	Lines []Line `json:"lines"`
}

// Days returns the days billed at the day type within the group
func (g LineGroup) Days(dayType calendar.DayType) []int {
	for _, line := range g.Lines {
		if line.DayType == dayType {
			return line.Days
		}
	}
	return nil
}

// Invoice is the monthly bill for a single equipment item
type Invoice struct {
	EquipmentID string      `json:"equipment_id"`
	Name        string      `json:"name"`
	Year        int         `json:"year"`
	Month       time.Month  `json:"month"`
	Periods     []Period    `json:"periods"`
	Groups      []LineGroup `json:"groups"`
	Total       float64     `json:"total"`
}

// LineTotal discounts days × rate and rounds to cents
func LineTotal(days int, rate float64, discountPercent int) float64 {
	subtotal := float64(days) * rate
	return Round2(subtotal * (1 - float64(discountPercent)/100))
}

// BuildInvoice bills the item for the month against the statutory holidays
func BuildInvoice(item Equipment, year int, month time.Month) Invoice {
	holidays := calendar.NewHolidaySet(calendar.HolidaysForYear(year)...)
	return BuildInvoiceWith(item, year, month, holidays)
}

// BuildInvoiceWith bills the item for the month against an explicit holiday set.
// Every line is rounded before summation; the sum is rounded again.
func BuildInvoiceWith(item Equipment, year int, month time.Month, holidays calendar.HolidaySet) Invoice {
	periods := Segment(item.IdleDays, year, month)

	buckets := make(map[int]map[calendar.DayType][]int)
	tiers := make(map[int]Tier)

	for _, period := range periods {
		discount := period.Tier.Discount
		byType, ok := buckets[discount]
		if !ok {
			byType = make(map[calendar.DayType][]int)
			buckets[discount] = byType
			tiers[discount] = period.Tier
		}

		for day := period.Start; day <= period.End; day++ {
			dayType := calendar.Classify(dateutil.Date(year, month, day), holidays)
			byType[dayType] = append(byType[dayType], day)
		}
	}

	discounts := make([]int, 0, len(buckets))
	for discount := range buckets {
		discounts = append(discounts, discount)
	}
	sort.Ints(discounts)

	invoice := Invoice{
		EquipmentID: item.ID,
		Name:        item.Name,
		Year:        year,
		Month:       month,
		Periods:     periods,
		Groups:      make([]LineGroup, 0, len(discounts)),
	}

	sum := 0.0
	for _, discount := range discounts {
		group := LineGroup{Tier: tiers[discount]}

		for _, dayType := range calendar.DayTypes {
			days := buckets[discount][dayType]
			if days == nil {
				days = []int{}
			}
			rate := item.Rates.For(dayType)

			line := Line{
				DayType:  dayType,
				Days:     days,
				Rate:     rate,
				Subtotal: float64(len(days)) * rate,
				Total:    LineTotal(len(days), rate, discount),
			}
			group.Lines = append(group.Lines, line)
			sum += line.Total
		}

		invoice.Groups = append(invoice.Groups, group)
	}

	invoice.Total = Round2(sum)
	return invoice
}

// BuildInvoices bills every item for the month
func BuildInvoices(items []Equipment, year int, month time.Month, holidays calendar.HolidaySet) []Invoice {
	invoices := make([]Invoice, len(items))
	for i, item := range items {
		invoices[i] = BuildInvoiceWith(item, year, month, holidays)
	}
	return invoices
}

// GrandTotal sums already-rounded invoice totals
func GrandTotal(invoices ...Invoice) float64 {
	sum := 0.0
	for _, inv := range invoices {
		sum += inv.Total
	}
	return Round2(sum)
}
