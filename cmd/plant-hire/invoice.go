package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/username/plant-hire-calculator/internal/billing"
	"github.com/username/plant-hire-calculator/internal/hire"
	"github.com/username/plant-hire-calculator/pkg/dateutil"
)

func invoiceCmd() *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Print invoices for the viewed month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := initializeManager()
			if err != nil {
				return err
			}

			if ref != "" {
				item, err := resolveEquipment(manager, ref)
				if err != nil {
					return err
				}
				inv, err := manager.Invoice(item.ID)
				if err != nil {
					return err
				}
				printInvoice(inv)
				return nil
			}

			return printAllInvoices(manager)
		},
	}

	cmd.Flags().StringVar(&ref, "id", "", "Only bill this equipment (id, id prefix or name)")

	return cmd
}

func printAllInvoices(manager *hire.Manager) error {
	year, month, invoices := manager.MonthInvoices()
	if len(invoices) == 0 {
		return fmt.Errorf("no equipment in session")
	}

	for _, inv := range invoices {
		printInvoice(inv)
	}

	outPrintf("\n💰 Grand total %s: %s\n", dateutil.FormatMonth(year, month), billing.FormatCurrency(billing.GrandTotal(invoices...)))
	return nil
}

func printInvoice(inv billing.Invoice) {
	outPrintf("\n📄 %s (%s) - %s %d\n", inv.Name, shortID(inv.EquipmentID), inv.Month, inv.Year)
	outPrintln("═══════════════════════════════════════════════════════")

	if len(inv.Groups) == 0 {
		outPrintln("  Idle for the whole month")
	}

	for _, group := range inv.Groups {
		if group.Tier.Discount > 0 {
			outPrintf("  %s (%d%% discount)\n", group.Tier.Label, group.Tier.Discount)
		} else {
			outPrintf("  %s\n", group.Tier.Label)
		}

		for _, line := range group.Lines {
			if len(line.Days) == 0 {
				continue
			}
			outPrintf("    %-26s %2d × %-12s %-20s %14s\n",
				line.DayType,
				len(line.Days),
				billing.FormatCurrency(line.Rate),
				line.DayRanges(),
				billing.FormatCurrency(line.Total))
		}
	}

	outPrintln("---------------------------------------------------------------------------------------")
	outPrintf("  Total: %s\n", billing.FormatCurrency(inv.Total))
}
