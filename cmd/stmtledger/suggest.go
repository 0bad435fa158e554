package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stmtledger"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <statement-dir>",
	Short: "Propose categories for uncategorized ledger entries",
	Long: `suggest trains a naive bayes classifier on the entries the rule set
already labeled and prints confident proposals for the rest. Use the output
to grow the rule list; nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		ledger, _, err := buildLedger(cmd.Context(), args[0], log)
		if err != nil {
			return err
		}

		suggestions := stmtledger.SuggestCategories(ledger)
		if len(suggestions) == 0 {
			fmt.Println("no confident suggestions")
			return nil
		}
		for _, s := range suggestions {
			fmt.Printf("%s  %-40.40s  %12s  -> %s\n",
				s.Transaction.Date.Format(time.DateOnly),
				s.Transaction.Description,
				s.Transaction.Amount.StringFixed(2),
				s.Category)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
