package main

import (
	"os"
	"time"

	"github.com/hako/durafmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stmtledger"
	"stmtledger/iif"
	"stmtledger/qif"
	"stmtledger/store"
)

var (
	csvPath string
	dbPath  string
	qifPath string
	iifPath string
)

// writeExport renders the ledger to path with one of the export writers.
func writeExport(path string, ledger []*stmtledger.Transaction, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <statement-dir>",
	Short: "Parse all statements in a directory into the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		start := time.Now()

		ledger, stats, err := buildLedger(cmd.Context(), args[0], log)
		if err != nil {
			return err
		}

		if csvPath != "" {
			err := writeExport(csvPath, ledger, func(f *os.File) error {
				return stmtledger.WriteCSV(f, ledger)
			})
			if err != nil {
				return err
			}
			log.Info().Str("path", csvPath).Msg("ledger written")
		} else if err := stmtledger.WriteCSV(os.Stdout, ledger); err != nil {
			return err
		}

		if qifPath != "" {
			err := writeExport(qifPath, ledger, func(f *os.File) error {
				return qif.WriteQIF(f, ledger)
			})
			if err != nil {
				return err
			}
			log.Info().Str("path", qifPath).Msg("qif export written")
		}

		if iifPath != "" {
			err := writeExport(iifPath, ledger, func(f *os.File) error {
				return iif.WriteIIF(f, ledger)
			})
			if err != nil {
				return err
			}
			log.Info().Str("path", iifPath).Msg("iif export written")
		}

		if dbPath != "" {
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.SaveLedger(cmd.Context(), ledger); err != nil {
				return err
			}
			log.Info().Str("path", dbPath).Msg("ledger saved")
		}

		reportStats(log, stats)
		log.Info().
			Int("transactions", len(ledger)).
			Str("elapsed", durafmt.Parse(time.Since(start)).LimitFirstN(2).String()).
			Msg("done")
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&csvPath, "csv", "", "write the ledger to this CSV file (default stdout)")
	ingestCmd.Flags().StringVar(&dbPath, "db", "", "also save the ledger to this SQLite database")
	ingestCmd.Flags().StringVar(&qifPath, "qif", "", "also export the ledger to this QIF file")
	ingestCmd.Flags().StringVar(&iifPath, "iif", "", "also export the ledger to this QuickBooks IIF file")
	rootCmd.AddCommand(ingestCmd)
}

func reportStats(log zerolog.Logger, stats *stmtledger.Stats) {
	log.Info().
		Int("statements", stats.Statements).
		Int("lines", stats.Lines).
		Int("excluded", stats.Excluded).
		Int("extracted", stats.Emitted).
		Int("duplicates", stats.Duplicates).
		Int("dropped_dates", stats.Drops.MalformedDate).
		Int("dropped_amounts", stats.Drops.MalformedAmount).
		Float64("drop_rate", stats.DropRate()).
		Msg("pipeline report")
	if stats.Orphans > 0 {
		log.Warn().Int("orphans", stats.Orphans).Msg("continuation lines with no open transaction")
	}
	for _, name := range stats.Failed {
		log.Warn().Str("statement", name).Msg("statement skipped")
	}
	for _, name := range stats.EmptyOutput {
		log.Warn().Str("statement", name).Msg("statement produced no transactions")
	}
	for _, name := range stats.GuessedYears {
		log.Warn().Str("statement", name).Msg("statement year guessed from current date")
	}
}
