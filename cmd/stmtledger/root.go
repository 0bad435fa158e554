package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stmtledger"
	"stmtledger/extract"
)

var (
	configPath string
	fromText   bool
	workers    int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "stmtledger",
	Short: "Build a clean transaction ledger from bank statement PDFs",
	Long: `stmtledger turns the text of monthly bank statements into a single
deduplicated, categorized ledger of transactions.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file (exclusions, date pattern, category rules)")
	rootCmd.PersistentFlags().BoolVar(&fromText, "text", false, "read pre-extracted .txt statements instead of PDFs")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "statements processed concurrently")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func loadConfig() (stmtledger.Config, error) {
	if configPath == "" {
		return stmtledger.DefaultConfig(), nil
	}
	return stmtledger.LoadConfig(configPath)
}

// buildLedger runs the whole pipeline over the statements found in dir.
func buildLedger(ctx context.Context, dir string, log zerolog.Logger) ([]*stmtledger.Transaction, *stmtledger.Stats, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var source stmtledger.Source
	pattern := "*.pdf"
	if fromText {
		source = extract.NewTextDir(dir)
		pattern = "*.txt"
	} else {
		source = extract.NewPdftotext(dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, nil, err
	}
	statements := make([]string, 0, len(paths))
	for _, p := range paths {
		statements = append(statements, filepath.Base(p))
	}
	log.Info().Int("statements", len(statements)).Str("dir", dir).Msg("found statements")

	pipeline, err := stmtledger.NewPipeline(source, cfg)
	if err != nil {
		return nil, nil, err
	}
	pipeline = pipeline.WithLogger(log)

	if workers > 1 {
		return pipeline.RunConcurrent(ctx, statements, workers)
	}
	return pipeline.Run(ctx, statements)
}
