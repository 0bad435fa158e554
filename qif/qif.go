// Package qif writes the ledger in the non-investment QIF format understood
// by GnuCash and Quicken. Only the bank account type and the core field set
// are emitted.
package qif

import (
	"bufio"
	"fmt"
	"io"

	"stmtledger"
)

// dateFormat is the QIF date notation most importers accept.
const dateFormat = "01/02/2006"

// Encoder writes QIF data to an output stream.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns a new QIF encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes the ledger as one !Type:Bank section. Each entry carries the
// date (D), amount (T), payee (P) and category (L) fields, with the source
// statement in the memo (M). Entries end with the '^' separator.
func (e *Encoder) Encode(ledger []*stmtledger.Transaction) error {
	if _, err := fmt.Fprintln(e.w, "!Type:Bank"); err != nil {
		return err
	}
	for _, t := range ledger {
		fmt.Fprintf(e.w, "D%s\n", t.Date.Format(dateFormat))
		fmt.Fprintf(e.w, "T%s\n", t.Amount.StringFixed(2))
		fmt.Fprintf(e.w, "P%s\n", t.Description)
		if t.Category != stmtledger.Uncategorized {
			fmt.Fprintf(e.w, "L%s\n", t.Category)
		}
		if t.SourceFile != "" {
			fmt.Fprintf(e.w, "M%s\n", t.SourceFile)
		}
		if _, err := fmt.Fprintln(e.w, "^"); err != nil {
			return err
		}
	}
	return e.w.Flush()
}

// WriteQIF is a convenience helper that encodes the whole ledger to w.
func WriteQIF(w io.Writer, ledger []*stmtledger.Transaction) error {
	return NewEncoder(w).Encode(ledger)
}
