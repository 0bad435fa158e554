package stmtledger

import (
	"fmt"
	"regexp"
	"strings"
)

// Uncategorized is the fallback label for descriptions no rule matches.
const Uncategorized = "uncategorized"

// Rule maps a description keyword (or regular expression) to a category
// label. Rules are data, not code, so category sets can evolve without
// touching pipeline logic.
type Rule struct {
	Match    string `toml:"match"`
	Category string `toml:"category"`
	Regexp   bool   `toml:"regexp"`

	re *regexp.Regexp
}

// Categorizer assigns a category label to a description by applying an
// ordered rule list to the lower-cased text. The first matching rule wins, so
// rule order is significant and results are stable across runs.
type Categorizer struct {
	rules []Rule
}

// NewCategorizer compiles the rules in order. Keyword rules match as
// case-insensitive substrings; regexp rules are compiled as given and applied
// to the lower-cased description.
func NewCategorizer(rules []Rule) (*Categorizer, error) {
	compiled := make([]Rule, len(rules))
	for i, r := range rules {
		if r.Match == "" || r.Category == "" {
			return nil, fmt.Errorf("rule %d: match and category are required", i)
		}
		if r.Regexp {
			re, err := regexp.Compile(r.Match)
			if err != nil {
				return nil, fmt.Errorf("rule %d: unable to compile pattern(%s): %w", i, r.Match, err)
			}
			r.re = re
		} else {
			r.Match = strings.ToLower(r.Match)
		}
		compiled[i] = r
	}
	return &Categorizer{rules: compiled}, nil
}

// Categorize returns the label of the first rule matching the description,
// or Uncategorized when none does.
func (c *Categorizer) Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, r := range c.rules {
		if r.re != nil {
			if r.re.MatchString(desc) {
				return r.Category
			}
		} else if strings.Contains(desc, r.Match) {
			return r.Category
		}
	}
	return Uncategorized
}

// DefaultRules is a starter rule set for common US merchants and transaction
// kinds. Most deployments override it from the config file.
func DefaultRules() []Rule {
	return []Rule{
		{Match: "payroll", Category: "Income"},
		{Match: "direct dep", Category: "Income"},
		{Match: "interest payment", Category: "Income"},
		{Match: "starbucks", Category: "Dining"},
		{Match: "mcdonald", Category: "Dining"},
		{Match: "doordash", Category: "Dining"},
		{Match: "grubhub", Category: "Dining"},
		{Match: "whole foods", Category: "Groceries"},
		{Match: "trader joe", Category: "Groceries"},
		{Match: "safeway", Category: "Groceries"},
		{Match: "kroger", Category: "Groceries"},
		{Match: "amazon", Category: "Shopping"},
		{Match: "amzn", Category: "Shopping"},
		{Match: "target", Category: "Shopping"},
		{Match: "walmart", Category: "Shopping"},
		{Match: "uber", Category: "Transport"},
		{Match: "lyft", Category: "Transport"},
		{Match: "shell", Category: "Transport"},
		{Match: "chevron", Category: "Transport"},
		{Match: "netflix", Category: "Entertainment"},
		{Match: "spotify", Category: "Entertainment"},
		{Match: "rent", Category: "Housing"},
		{Match: "mortgage", Category: "Housing"},
		{Match: "electric", Category: "Utilities"},
		{Match: "comcast", Category: "Utilities"},
		{Match: `atm (withdraw|wd)`, Category: "Cash", Regexp: true},
		{Match: "transfer", Category: "Transfer"},
		{Match: "zelle", Category: "Transfer"},
		{Match: "venmo", Category: "Transfer"},
		{Match: "fee", Category: "Fees"},
	}
}
