// Package iif writes the ledger in the tab-separated QuickBooks IIF format.
// Every ledger entry becomes a balanced TRNS/SPL pair: the bank account side
// and an offsetting split against the entry's category account.
package iif

import (
	"encoding/csv"
	"io"

	"stmtledger"
)

const dateFormat = "01/02/2006"

// DefaultBankAccount is the QuickBooks account debited or credited by every
// transaction when no account name is configured.
const DefaultBankAccount = "Checking"

var (
	trnsHeader = []string{"!TRNS", "TRNSTYPE", "DATE", "ACCNT", "NAME", "AMOUNT", "MEMO"}
	splHeader  = []string{"!SPL", "TRNSTYPE", "DATE", "ACCNT", "NAME", "AMOUNT", "MEMO"}
	endHeader  = []string{"!ENDTRNS"}
)

// Encoder writes IIF data to an output stream.
type Encoder struct {
	w *csv.Writer

	// BankAccount is the account name used on the TRNS side. Defaults to
	// DefaultBankAccount.
	BankAccount string
}

// NewEncoder returns a new IIF encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return &Encoder{w: cw, BankAccount: DefaultBankAccount}
}

// Encode writes the header block followed by one TRNS/SPL/ENDTRNS group per
// ledger entry.
func (e *Encoder) Encode(ledger []*stmtledger.Transaction) error {
	for _, header := range [][]string{trnsHeader, splHeader, endHeader} {
		if err := e.w.Write(header); err != nil {
			return err
		}
	}

	for _, t := range ledger {
		date := t.Date.Format(dateFormat)
		if err := e.w.Write([]string{
			"TRNS", trnsType(t), date, e.BankAccount, t.Description, t.Amount.StringFixed(2), t.SourceFile,
		}); err != nil {
			return err
		}
		if err := e.w.Write([]string{
			"SPL", trnsType(t), date, splitAccount(t), t.Description, t.Amount.Neg().StringFixed(2), t.SourceFile,
		}); err != nil {
			return err
		}
		if err := e.w.Write([]string{"ENDTRNS"}); err != nil {
			return err
		}
	}

	e.w.Flush()
	return e.w.Error()
}

func trnsType(t *stmtledger.Transaction) string {
	if t.Amount.IsNegative() {
		return "CHECK"
	}
	return "DEPOSIT"
}

func splitAccount(t *stmtledger.Transaction) string {
	if t.Category == stmtledger.Uncategorized {
		return "Uncategorized"
	}
	return t.Category
}

// WriteIIF is a convenience helper that encodes the whole ledger to w.
func WriteIIF(w io.Writer, ledger []*stmtledger.Transaction) error {
	return NewEncoder(w).Encode(ledger)
}
