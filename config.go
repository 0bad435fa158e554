package stmtledger

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Config holds the recognized pipeline options: the start-of-transaction
// date pattern, the exclusion vocabulary, the statement ingestion order and
// the ordered categorization rules.
type Config struct {
	DatePattern string   `toml:"date_pattern"`
	Exclusions  []string `toml:"exclusions"`
	IngestOrder string   `toml:"ingest_order"` // "name" or "given"
	Rules       []Rule   `toml:"rules"`
}

// DefaultConfig mirrors the built-in Chase settings.
func DefaultConfig() Config {
	return Config{
		DatePattern: DefaultDatePattern,
		Exclusions:  DefaultExclusions(),
		IngestOrder: "name",
		Rules:       DefaultRules(),
	}
}

// LoadConfig reads a TOML config file. Options absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config(%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config(%s): %w", path, err)
	}
	return cfg, nil
}

// Classifier builds the line classifier described by the config.
func (c Config) Classifier() (*Classifier, error) {
	return NewClassifier(c.DatePattern, c.Exclusions)
}

// Categorizer builds the rule categorizer described by the config.
func (c Config) Categorizer() (*Categorizer, error) {
	return NewCategorizer(c.Rules)
}
