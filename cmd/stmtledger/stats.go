package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stmtledger"
)

var columnWidth int

var statsCmd = &cobra.Command{
	Use:   "stats <statement-dir>",
	Short: "Ingest statements and print per-category totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		ledger, stats, err := buildLedger(cmd.Context(), args[0], log)
		if err != nil {
			return err
		}

		if columnWidth == 0 {
			columnWidth = 80
			fd := int(os.Stdout.Fd())
			if term.IsTerminal(fd) {
				if tw, _, err := term.GetSize(fd); err == nil {
					columnWidth = tw
				}
			}
		}

		printCategoryTotals(ledger)
		fmt.Printf("\n%d transactions, %d duplicates removed, %d records dropped (%.2f%%)\n",
			len(ledger), stats.Duplicates, stats.Drops.Total(), stats.DropRate()*100)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&columnWidth, "columns", 0, "report width (default terminal width)")
	rootCmd.AddCommand(statsCmd)
}

func printCategoryTotals(ledger []*stmtledger.Transaction) {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, t := range ledger {
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		counts[t.Category]++
	}

	categories := make([]string, 0, len(totals))
	for name := range totals {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	amountWidth := 14
	countWidth := 7
	nameWidth := columnWidth - amountWidth - countWidth - 2
	if nameWidth < 12 {
		nameWidth = 12
	}

	fmt.Printf("%-*s %*s %*s\n", nameWidth, "CATEGORY", countWidth, "COUNT", amountWidth, "NET")
	for _, name := range categories {
		display := name
		if len(display) > nameWidth {
			display = display[:nameWidth-3] + "..."
		}
		fmt.Printf("%-*s %*d %*s\n", nameWidth, display, countWidth, counts[name],
			amountWidth, totals[name].StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", columnWidth))
}
