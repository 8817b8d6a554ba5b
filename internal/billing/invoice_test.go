package billing

import (
	"reflect"
	"testing"
	"time"

	"github.com/username/plant-hire-calculator/internal/calendar"
	"github.com/username/plant-hire-calculator/pkg/dateutil"
)

// idleExcept marks every day of the month idle except the given days.
func idleExcept(year int, month time.Month, active ...int) DateSet {
	keep := make(map[int]bool, len(active))
	for _, day := range active {
		keep[day] = true
	}

	idle := NewDateSet()
	for day := 1; day <= dateutil.DaysInMonth(year, month); day++ {
		if !keep[day] {
			idle.Add(dateutil.Date(year, month, day))
		}
	}
	return idle
}

func TestBuildInvoice_FullMonthNoHolidays(t *testing.T) {
	// November 2023: 30 days, no public holidays, 4 Saturdays, 4 Sundays
	item := NewEquipment("Skid Steer", 100)

	inv := BuildInvoice(item, 2023, time.November)

	if len(inv.Periods) != 1 || inv.Periods[0].Length != 30 {
		t.Fatalf("Periods = %+v, want one period of 30 days", inv.Periods)
	}
	if len(inv.Groups) != 1 || inv.Groups[0].Tier != GoldTier {
		t.Fatalf("Groups = %+v, want one Gold Tier group", inv.Groups)
	}

	group := inv.Groups[0]
	if got := len(group.Days(calendar.DayTypeWeekday)); got != 22 {
		t.Errorf("weekday count = %d, want 22", got)
	}
	if got := group.Days(calendar.DayTypeSaturday); !reflect.DeepEqual(got, []int{4, 11, 18, 25}) {
		t.Errorf("Saturdays = %v, want [4 11 18 25]", got)
	}
	if got := group.Days(calendar.DayTypeSundayOrHoliday); !reflect.DeepEqual(got, []int{5, 12, 19, 26}) {
		t.Errorf("Sundays = %v, want [5 12 19 26]", got)
	}

	// 22×100×0.9 + 4×107.50×0.9 + 4×110×0.9 = 1980 + 387 + 396
	if inv.Total != 2763 {
		t.Errorf("Total = %v, want 2763", inv.Total)
	}
}

func TestBuildInvoice_SplitPeriodsWithHolidays(t *testing.T) {
	// March 2024: Human Rights Day (Thu 21) and Good Friday (29)
	item := NewEquipment("Excavator", 2500)
	item.IdleDays.Add(dateutil.Date(2024, time.March, 15))

	inv := BuildInvoice(item, 2024, time.March)

	wantPeriods := []Period{
		{Start: 1, End: 14, Length: 14, Tier: SilverTier},
		{Start: 16, End: 31, Length: 16, Tier: GoldTier},
	}
	if !reflect.DeepEqual(inv.Periods, wantPeriods) {
		t.Fatalf("Periods = %+v, want %+v", inv.Periods, wantPeriods)
	}
	if len(inv.Groups) != 2 {
		t.Fatalf("Groups count = %d, want 2", len(inv.Groups))
	}

	silver, gold := inv.Groups[0], inv.Groups[1]
	if silver.Tier != SilverTier || gold.Tier != GoldTier {
		t.Fatalf("group order = %v, %v; want Silver then Gold", silver.Tier, gold.Tier)
	}

	tests := []struct {
		name      string
		group     LineGroup
		dayType   calendar.DayType
		wantDays  []int
		wantTotal float64
	}{
		{"Silver weekdays", silver, calendar.DayTypeWeekday, []int{1, 4, 5, 6, 7, 8, 11, 12, 13, 14}, 23750},
		{"Silver Saturdays", silver, calendar.DayTypeSaturday, []int{2, 9}, 5106.25},
		{"Silver Sundays", silver, calendar.DayTypeSundayOrHoliday, []int{3, 10}, 5225},
		{"Gold weekdays", gold, calendar.DayTypeWeekday, []int{18, 19, 20, 22, 25, 26, 27, 28}, 18000},
		{"Gold Saturdays", gold, calendar.DayTypeSaturday, []int{16, 23, 30}, 7256.25},
		{"Gold Sundays and holidays", gold, calendar.DayTypeSundayOrHoliday, []int{17, 21, 24, 29, 31}, 12375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, line := range tt.group.Lines {
				if line.DayType != tt.dayType {
					continue
				}
				if !reflect.DeepEqual(line.Days, tt.wantDays) {
					t.Errorf("Days = %v, want %v", line.Days, tt.wantDays)
				}
				if line.Total != tt.wantTotal {
					t.Errorf("Total = %v, want %v", line.Total, tt.wantTotal)
				}
				return
			}
			t.Errorf("no line for %v", tt.dayType)
		})
	}

	if inv.Total != 71712.5 {
		t.Errorf("Total = %v, want 71712.5", inv.Total)
	}
}

func TestBuildInvoice_LinesAlwaysCarryAllDayTypes(t *testing.T) {
	// Nov 6-10 2023 is Monday to Friday
	item := NewEquipment("Compactor", 300)
	item.IdleDays = idleExcept(2023, time.November, 6, 7, 8, 9, 10)

	inv := BuildInvoice(item, 2023, time.November)
	if len(inv.Groups) != 1 {
		t.Fatalf("Groups count = %d, want 1", len(inv.Groups))
	}

	lines := inv.Groups[0].Lines
	if len(lines) != len(calendar.DayTypes) {
		t.Fatalf("Lines count = %d, want %d", len(lines), len(calendar.DayTypes))
	}
	for i, dayType := range calendar.DayTypes {
		if lines[i].DayType != dayType {
			t.Errorf("Lines[%d].DayType = %v, want %v", i, lines[i].DayType, dayType)
		}
	}
	if lines[1].Days == nil || len(lines[1].Days) != 0 || lines[1].Total != 0 {
		t.Errorf("empty Saturday line = %+v, want empty days and zero total", lines[1])
	}
}

func TestBuildInvoice_RoundingLaw(t *testing.T) {
	// single tier (5 days, Silver), single day type (weekdays)
	item := NewEquipment("Concrete Cutter", 333.33)
	item.IdleDays = idleExcept(2023, time.November, 6, 7, 8, 9, 10)

	inv := BuildInvoice(item, 2023, time.November)

	want := Round2(5 * 333.33 * (1 - 5.0/100))
	if inv.Total != want {
		t.Errorf("Total = %v, want %v", inv.Total, want)
	}
	if inv.Total != 1583.32 {
		t.Errorf("Total = %v, want 1583.32", inv.Total)
	}
}

func TestBuildInvoice_RoundsEachLineBeforeSumming(t *testing.T) {
	// Fri 3 + Sat 4 November 2023: two lines of 0.004 each
	item := Equipment{
		ID:       "tiny",
		Name:     "Tiny",
		Rates:    Rates{Weekday: 0.004, Saturday: 0.004, Sunday: 0.004},
		IdleDays: idleExcept(2023, time.November, 3, 4),
	}

	inv := BuildInvoice(item, 2023, time.November)

	if inv.Total != 0 {
		t.Errorf("Total = %v, want 0 (each line rounds to 0)", inv.Total)
	}
	if roundOnce := Round2(0.004 + 0.004); roundOnce != 0.01 {
		t.Fatalf("precondition: rounding the raw sum gives %v, want 0.01", roundOnce)
	}
}

func TestBuildInvoice_HolidayOnSaturdayBilledAsHoliday(t *testing.T) {
	// Freedom Day 2024 falls on Saturday 27 April
	item := NewEquipment("Bulldozer", 7314)

	inv := BuildInvoice(item, 2024, time.April)

	group := inv.Groups[0]
	for _, day := range group.Days(calendar.DayTypeSaturday) {
		if day == 27 {
			t.Fatal("27 April billed as Saturday, want Sunday/holiday rate")
		}
	}

	found := false
	for _, day := range group.Days(calendar.DayTypeSundayOrHoliday) {
		if day == 27 {
			found = true
		}
	}
	if !found {
		t.Error("27 April missing from Sunday/holiday line")
	}
}

func TestBuildInvoiceWith_ExtraHoliday(t *testing.T) {
	item := NewEquipment("ADT", 6800)
	item.IdleDays = idleExcept(2024, time.May, 29)

	plain := BuildInvoiceWith(item, 2024, time.May, calendar.NewHolidaySet())
	if plain.Total != 6800 {
		t.Errorf("plain Total = %v, want 6800", plain.Total)
	}

	withElection := BuildInvoiceWith(item, 2024, time.May, calendar.NewHolidaySet(dateutil.Date(2024, time.May, 29)))
	if withElection.Total != 7480 {
		t.Errorf("holiday Total = %v, want 7480", withElection.Total)
	}
}

func TestBuildInvoice_EntirelyIdle(t *testing.T) {
	item := NewEquipment("Dropside", 5200)
	item.IdleDays = idleExcept(2024, time.February)

	inv := BuildInvoice(item, 2024, time.February)

	if len(inv.Periods) != 0 || len(inv.Groups) != 0 || inv.Total != 0 {
		t.Errorf("idle month invoice = %+v, want empty with zero total", inv)
	}
}

func TestBuildInvoice_IgnoresIdleDaysOfOtherMonths(t *testing.T) {
	item := NewEquipment("FEL", 5485)
	item.IdleDays.Add(dateutil.Date(2023, time.October, 31))
	item.IdleDays.Add(dateutil.Date(2023, time.December, 1))

	got := BuildInvoice(item, 2023, time.November)
	want := BuildInvoice(NewEquipment("FEL", 5485), 2023, time.November)

	if got.Total != want.Total {
		t.Errorf("Total = %v, want %v", got.Total, want.Total)
	}
}

func TestGrandTotal_SumsRoundedItemTotals(t *testing.T) {
	tiny := func(id string) Equipment {
		return Equipment{
			ID:       id,
			Name:     id,
			Rates:    Rates{Weekday: 0.004, Saturday: 0.004, Sunday: 0.004},
			IdleDays: idleExcept(2023, time.November, 6),
		}
	}

	holidays := calendar.NewHolidaySet(calendar.HolidaysForYear(2023)...)
	invoices := BuildInvoices([]Equipment{tiny("a"), tiny("b")}, 2023, time.November, holidays)

	if got := GrandTotal(invoices...); got != 0 {
		t.Errorf("GrandTotal() = %v, want 0", got)
	}
	// pooling the raw day charges of both items would have billed a cent
	if pooled := LineTotal(2, 0.004, 0); pooled != 0.01 {
		t.Fatalf("precondition: pooled line total = %v, want 0.01", pooled)
	}
}

func TestGrandTotal(t *testing.T) {
	invoices := []Invoice{{Total: 0.1}, {Total: 0.2}, {Total: 2763}}

	if got := GrandTotal(invoices...); got != 2763.3 {
		t.Errorf("GrandTotal() = %v, want 2763.3", got)
	}
	if got := GrandTotal(); got != 0 {
		t.Errorf("GrandTotal() of nothing = %v, want 0", got)
	}
}

func TestLine_DayRanges(t *testing.T) {
	line := Line{Days: []int{1, 2, 3, 5, 7, 8}}
	if got := line.DayRanges(); got != "1-3, 5, 7-8" {
		t.Errorf("DayRanges() = %q", got)
	}
}
