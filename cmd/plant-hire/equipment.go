package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/plant-hire-calculator/internal/billing"
	"github.com/username/plant-hire-calculator/pkg/dateutil"
)

func ratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates <base>",
		Short: "Derive Saturday and Sunday/holiday rates from a weekday rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := billing.DeriveRatesFrom(args[0])
			printRates(rates)
			return nil
		},
	}
}

func printRates(rates billing.Rates) {
	outPrintf("  Weekday:           %s\n", billing.FormatCurrency(rates.Weekday))
	outPrintf("  Saturday:          %s\n", billing.FormatCurrency(rates.Saturday))
	outPrintf("  Sunday & holiday:  %s\n", billing.FormatCurrency(rates.Sunday))
}

func equipmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "equipment",
		Aliases: []string{"eq"},
		Short:   "Manage hired equipment",
	}

	cmd.AddCommand(equipmentAddCmd())
	cmd.AddCommand(equipmentListCmd())
	cmd.AddCommand(equipmentRemoveCmd())
	cmd.AddCommand(equipmentSetRatesCmd())
	cmd.AddCommand(equipmentResetRatesCmd())

	return cmd
}

func equipmentAddCmd() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "add [name] [base-rate]",
		Short: "Add equipment by name and weekday rate, or from a preset",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := initializeManager()
			if err != nil {
				return err
			}

			var item billing.Equipment
			switch {
			case preset != "":
				item, err = manager.AddPreset(preset)
			case len(args) == 0:
				return fmt.Errorf("name or --preset is required")
			default:
				var base any
				if len(args) == 2 {
					base = args[1]
				}
				item, err = manager.AddEquipment(args[0], base)
			}
			if err != nil {
				return err
			}

			if err := manager.Save(); err != nil {
				return err
			}

			outPrintf("✅ Added %s (%s)\n", item.Name, shortID(item.ID))
			printRates(item.Rates)
			return nil
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", "", "Preset name (see 'equipment list --presets')")

	return cmd
}

func equipmentListCmd() *cobra.Command {
	var presets bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List equipment in the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := initializeManager()
			if err != nil {
				return err
			}

			if presets {
				outPrintln("\n📦 Presets")
				outPrintln("═══════════════════════════════════════════════════════")
				for _, p := range manager.Presets() {
					outPrintf("  %-20s %s\n", p.Name, billing.FormatCurrency(p.Rate))
				}
				return nil
			}

			year, month := manager.Month()
			items := manager.Equipment()

			outPrintf("\n🚜 Equipment (%s)\n", dateutil.FormatMonth(year, month))
			outPrintln("═══════════════════════════════════════════════════════")
			if len(items) == 0 {
				outPrintln("  No equipment yet. Add some with 'plant-hire equipment add'.")
				return nil
			}

			outPrintln("  ID       | Name                 | Weekday      | Saturday     | Sun/Holiday  | Idle")
			outPrintln("-----------+----------------------+--------------+--------------+--------------+-----------")
			for _, item := range items {
				outPrintf("  %-8s | %-20s | %12s | %12s | %12s | %s\n",
					shortID(item.ID),
					item.Name,
					billing.FormatCurrency(item.Rates.Weekday),
					billing.FormatCurrency(item.Rates.Saturday),
					billing.FormatCurrency(item.Rates.Sunday),
					idleLabel(billing.FormatDayRanges(item.IdleDays.DaysIn(year, month))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&presets, "presets", false, "List available presets instead")

	return cmd
}

func idleLabel(ranges string) string {
	if ranges == "" {
		return "-"
	}
	return ranges
}

func equipmentRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id|name>",
		Short: "Remove equipment from the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := initializeManager()
			if err != nil {
				return err
			}

			item, err := resolveEquipment(manager, args[0])
			if err != nil {
				return err
			}
			if err := manager.RemoveEquipment(item.ID); err != nil {
				return err
			}
			if err := manager.Save(); err != nil {
				return err
			}

			outPrintf("🗑  Removed %s (%s)\n", item.Name, shortID(item.ID))
			return nil
		},
	}
}

func equipmentSetRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-rates <id|name> <weekday> <saturday> <sunday>",
		Short: "Override the three day-type rates",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := initializeManager()
			if err != nil {
				return err
			}

			item, err := resolveEquipment(manager, args[0])
			if err != nil {
				return err
			}

			item, err = manager.UpdateRates(item.ID, billing.Rates{
				Weekday:  billing.ParseAmount(args[1]),
				Saturday: billing.ParseAmount(args[2]),
				Sunday:   billing.ParseAmount(args[3]),
			})
			if err != nil {
				return err
			}
			if err := manager.Save(); err != nil {
				return err
			}

			outPrintf("✅ Rates updated for %s\n", item.Name)
			printRates(item.Rates)
			return nil
		},
	}
}

func equipmentResetRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-rates <id|name>",
		Short: "Re-derive Saturday and Sunday/holiday rates from the weekday rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := initializeManager()
			if err != nil {
				return err
			}

			item, err := resolveEquipment(manager, args[0])
			if err != nil {
				return err
			}

			item, err = manager.ResetRates(item.ID)
			if err != nil {
				return err
			}
			if err := manager.Save(); err != nil {
				return err
			}

			outPrintf("✅ Rates reset for %s\n", item.Name)
			printRates(item.Rates)
			return nil
		},
	}
}

func idleCmd() *cobra.Command {
	var saturdays, sundays, holidays bool

	cmd := &cobra.Command{
		Use:   "idle <id|name> [dates...]",
		Short: "Toggle idle days for equipment in the viewed month",
		Long: "Toggle idle days. Dates are day numbers of the viewed month (15) or full dates (2024-03-15).\n" +
			"--saturdays, --sundays and --holidays toggle every such day of the month at once.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !saturdays && !sundays && !holidays {
				return fmt.Errorf("give dates or one of --saturdays, --sundays, --holidays")
			}

			manager, _, err := initializeManager()
			if err != nil {
				return err
			}

			item, err := resolveEquipment(manager, args[0])
			if err != nil {
				return err
			}

			year, month := manager.Month()
			dates, err := parseIdleDates(args[1:], year, month)
			if err != nil {
				return err
			}

			for _, date := range dates {
				if item, err = manager.ToggleIdleDate(item.ID, date); err != nil {
					return err
				}
			}
			if saturdays {
				if item, err = manager.ToggleIdleWeekday(item.ID, time.Saturday); err != nil {
					return err
				}
			}
			if sundays {
				if item, err = manager.ToggleIdleWeekday(item.ID, time.Sunday); err != nil {
					return err
				}
			}
			if holidays {
				if item, err = manager.ToggleIdleHolidays(item.ID); err != nil {
					return err
				}
			}

			if err := manager.Save(); err != nil {
				return err
			}

			outPrintf("✅ Idle days for %s in %s: %s\n",
				item.Name,
				dateutil.FormatMonth(year, month),
				idleLabel(billing.FormatDayRanges(item.IdleDays.DaysIn(year, month))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&saturdays, "saturdays", false, "Toggle every Saturday of the month")
	cmd.Flags().BoolVar(&sundays, "sundays", false, "Toggle every Sunday of the month")
	cmd.Flags().BoolVar(&holidays, "holidays", false, "Toggle every public holiday of the month")

	return cmd
}

// parseIdleDates accepts day numbers of the month or full dates
func parseIdleDates(args []string, year int, month time.Month) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)

		if day, err := strconv.Atoi(arg); err == nil {
			if day < 1 || day > dateutil.DaysInMonth(year, month) {
				return nil, fmt.Errorf("day %d is outside %s", day, dateutil.FormatMonth(year, month))
			}
			dates = append(dates, dateutil.Date(year, month, day))
			continue
		}

		date, err := dateutil.ParseDate(arg)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, nil
}
