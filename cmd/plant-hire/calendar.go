package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/plant-hire-calculator/internal/calendar"
	"github.com/username/plant-hire-calculator/pkg/dateutil"
)

func holidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [year]",
		Short: "List public holidays for a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := dateutil.Today().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil || y < 1 {
					return fmt.Errorf("invalid year: %s", args[0])
				}
				year = y
			}

			cal, err := initializeCalendar()
			if err != nil {
				return fmt.Errorf("failed to initialize calendar: %w", err)
			}

			holidays := cal.Holidays(year)
			sort.SliceStable(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })

			outPrintf("\n📅 Public holidays %d (Easter Sunday %s)\n", year, calendar.EasterSunday(year).Format("2006-01-02"))
			outPrintln("═══════════════════════════════════════════════════════")
			for _, h := range holidays {
				outPrintf("  %s  %-9s  %s\n", h.Date.Format("2006-01-02"), h.Date.Weekday(), h.Name)
			}
			outPrintf("\n  %d holidays\n", len(calendar.HolidaySetFor(cal, year)))

			return nil
		},
	}
}

func monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM|next|prev]",
		Short: "Show or change the month being billed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := initializeManager()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				switch strings.ToLower(args[0]) {
				case "next":
					manager.NextMonth()
				case "prev":
					manager.PrevMonth()
				default:
					year, month, err := dateutil.ParseMonth(args[0])
					if err != nil {
						return err
					}
					if err := manager.SetMonth(year, month); err != nil {
						return err
					}
				}
				if err := manager.Save(); err != nil {
					return err
				}
			}

			info := manager.MonthInfo()
			outPrintf("\n🗓  %s %d\n", info.Month, info.Year)
			outPrintln("═══════════════════════════════════════════════════════")
			outPrintf("  %-28s %d\n", calendar.DayTypeWeekday, info.Weekdays)
			outPrintf("  %-28s %d\n", calendar.DayTypeSaturday, info.Saturdays)
			outPrintf("  %-28s %d\n", calendar.DayTypeSundayOrHoliday, info.SundaysHolidays)
			for _, day := range info.Days {
				if day.Holiday {
					outPrintf("    • %s %s\n", day.Date.Format("Mon 02"), day.Note)
				}
			}

			return nil
		},
	}
}
