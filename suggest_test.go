package stmtledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labeledEntry(desc, category string) *Transaction {
	return &Transaction{
		Date:        time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      decimal.RequireFromString("-5.00"),
		Category:    category,
	}
}

func suggestTrainingLedger() []*Transaction {
	var ledger []*Transaction
	for i := 0; i < 3; i++ {
		ledger = append(ledger,
			labeledEntry(fmt.Sprintf("STARBUCKS COFFEE STORE %d", i), "Dining"),
			labeledEntry(fmt.Sprintf("SHELL OIL FUEL %d", i), "Transport"),
		)
	}
	return ledger
}

func TestSuggestCategories(t *testing.T) {
	ledger := suggestTrainingLedger()
	query := labeledEntry("STARBUCKS COFFEE DOWNTOWN", Uncategorized)
	ledger = append(ledger, query)

	suggestions := SuggestCategories(ledger)
	require.Len(t, suggestions, 1)
	assert.Same(t, query, suggestions[0].Transaction)
	assert.Equal(t, "Dining", suggestions[0].Category)

	// advisory only
	assert.Equal(t, Uncategorized, query.Category)
}

func TestSuggestCategoriesSkipsLabeled(t *testing.T) {
	suggestions := SuggestCategories(suggestTrainingLedger())
	assert.Empty(t, suggestions)
}

func TestSuggestCategoriesAmbiguous(t *testing.T) {
	ledger := suggestTrainingLedger()
	ledger = append(ledger,
		// one word from each class, the scores tie
		labeledEntry("STARBUCKS SHELL", Uncategorized),
		// unknown vocabulary, no basis for a call either way
		labeledEntry("MYSTERY VENDOR 1234", Uncategorized),
	)

	assert.Empty(t, SuggestCategories(ledger))
}

func TestSuggestCategoriesNeedsTwoClasses(t *testing.T) {
	ledger := []*Transaction{
		labeledEntry("STARBUCKS COFFEE", "Dining"),
		labeledEntry("STARBUCKS RESERVE", "Dining"),
		labeledEntry("WHO KNOWS", Uncategorized),
	}
	assert.Nil(t, SuggestCategories(ledger))
}
