package stmtledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// idNamespace scopes the name-based transaction IDs. Fixed so IDs are stable
// across runs and machines.
var idNamespace = uuid.MustParse("f2f54b2f-8f72-47a8-9c9c-5d3b2f4a9e01")

// TransactionID derives the stable identifier of a transaction from its
// date, description and amount. Two records with the same triple get the
// same ID and are considered duplicates of one real-world transaction.
func TransactionID(date time.Time, description string, amount decimal.Decimal) string {
	key := date.Format(time.DateOnly) + "|" + description + "|" + amount.StringFixed(2)
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}

// Dedup collapses the combined ledger to one entry per transaction ID,
// keeping the first-seen instance in ingestion order. Overlapping statement
// periods legitimately repeat a transaction near a month boundary; first-seen
// wins makes the surviving copy deterministic.
func Dedup(ledger []*Transaction) (deduped []*Transaction, duplicates int) {
	seen := make(map[string]bool, len(ledger))
	deduped = make([]*Transaction, 0, len(ledger))
	for _, t := range ledger {
		if seen[t.ID] {
			duplicates++
			continue
		}
		seen[t.ID] = true
		deduped = append(deduped, t)
	}
	return deduped, duplicates
}
