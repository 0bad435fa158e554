package stmtledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawLine is one line of extracted statement text, as delivered by the
// text-extraction backend.
type RawLine struct {
	Text      string
	Number    int
	Statement string
}

// RawTransaction holds the string fields of one transaction exactly as they
// appeared on the statement. Produced by the Walker, consumed by the
// Normalizer.
type RawTransaction struct {
	Date        string // as printed, usually MM/DD
	Description string
	Amount      string
	Balance     string
	SourceFile  string
}

// Transaction is one entry of the final ledger. The amount is signed:
// negative for debits, positive for credits. Balance is the account balance
// after the transaction and may be unknown when the statement line did not
// carry one. Entries are never mutated after deduplication.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Balance     decimal.NullDecimal
	Category    string
	Month       string // year-month, e.g. "2024-03"
	Weekday     string
	SourceFile  string
}
