package stmtledger

import (
	"fmt"
	"regexp"
	"strings"
)

// LineClass is the Classifier's verdict for a single statement line.
type LineClass int

const (
	// LineNoise is a header, footer or summary line. Noise never opens or
	// closes a transaction, even in the middle of a transaction block.
	LineNoise LineClass = iota
	// LineStart begins a new transaction. The leading date pattern is the
	// sole boundary signal.
	LineStart
	// LineContinuation is any other line; it belongs to the open
	// transaction, if there is one.
	LineContinuation
)

// DefaultDatePattern matches the posting date printed at the start of a
// transaction line on Chase statements.
const DefaultDatePattern = `^\d{2}/\d{2}\s`

// DefaultExclusions are line prefixes that never carry transaction data:
// column headers, section titles and balance summary rows.
func DefaultExclusions() []string {
	return []string{
		"DATE",
		"DESCRIPTION",
		"AMOUNT",
		"BALANCE",
		"TRANSACTION DETAIL",
		"CHECKING SUMMARY",
		"SAVINGS SUMMARY",
		"Beginning Balance",
		"Ending Balance",
		"DEPOSITS AND ADDITIONS",
		"ATM & Debit Card Withdrawals",
		"Electronic Withdrawals",
		"Other Withdrawals",
		"Deposits and Additions",
		"Your account ending",
		"Page ",
	}
}

// Classifier decides whether a statement line starts a transaction,
// continues the previous one, or is noise to be discarded.
type Classifier struct {
	start      *regexp.Regexp
	exclusions []string
}

// NewClassifier compiles the start-of-transaction pattern and keeps the
// exclusion vocabulary. Exclusions are matched as line prefixes.
func NewClassifier(datePattern string, exclusions []string) (*Classifier, error) {
	re, err := regexp.Compile(datePattern)
	if err != nil {
		return nil, fmt.Errorf("unable to compile date pattern(%s): %w", datePattern, err)
	}
	return &Classifier{start: re, exclusions: exclusions}, nil
}

// DefaultClassifier returns a Classifier configured for Chase statements.
func DefaultClassifier() *Classifier {
	c, err := NewClassifier(DefaultDatePattern, DefaultExclusions())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify labels one trimmed line. Empty lines are noise.
func (c *Classifier) Classify(text string) LineClass {
	if len(text) == 0 {
		return LineNoise
	}
	for _, prefix := range c.exclusions {
		if strings.HasPrefix(text, prefix) {
			return LineNoise
		}
	}
	if c.start.MatchString(text) {
		return LineStart
	}
	return LineContinuation
}

// SplitStart separates the date token matched by the start pattern from the
// rest of the line. ok is false when the line is not a start line.
func (c *Classifier) SplitStart(text string) (date, remainder string, ok bool) {
	loc := c.start.FindStringIndex(text)
	if loc == nil {
		return "", "", false
	}
	date = strings.TrimSpace(text[loc[0]:loc[1]])
	remainder = strings.TrimSpace(text[loc[1]:])
	return date, remainder, true
}
