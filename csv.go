package stmtledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// csvHeader is the ledger's serialization contract: any sink must carry
// these fields.
var csvHeader = []string{
	"date", "description", "amount", "balance",
	"category", "month", "weekday", "source_file", "transaction_id",
}

// WriteCSV writes the ledger in its serialized field order. Unknown balances
// are written as empty fields.
func WriteCSV(w io.Writer, ledger []*Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("unable to write header: %w", err)
	}
	for _, t := range ledger {
		balance := ""
		if t.Balance.Valid {
			balance = t.Balance.Decimal.StringFixed(2)
		}
		record := []string{
			t.Date.Format(time.DateOnly),
			t.Description,
			t.Amount.StringFixed(2),
			balance,
			t.Category,
			t.Month,
			t.Weekday,
			t.SourceFile,
			t.ID,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write transaction %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
