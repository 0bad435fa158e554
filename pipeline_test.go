package stmtledger

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSource serves statement text from memory.
type mapSource map[string]string

func (m mapSource) Lines(_ context.Context, statement string) (io.ReadCloser, error) {
	text, ok := m[statement]
	if !ok {
		return nil, ErrNoLines
	}
	return io.NopCloser(strings.NewReader(text)), nil
}

const decemberText = `TRANSACTION DETAIL
Beginning Balance $500.00
12/30 GROCERY MART PURCHASE -25.00 475.00
12/31 YEAR END PAYMENT -99.00 376.00
Ending Balance $376.00
`

const januaryText = `12/31 YEAR END PAYMENT -99.00 376.00
01/02 PAYROLL DEPOSIT 1,000.00 1,376.00
`

func testPipeline(t *testing.T, source Source) *Pipeline {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Rules = []Rule{
		{Match: "grocery", Category: "Groceries"},
		{Match: "payroll", Category: "Income"},
	}
	p, err := NewPipeline(source, cfg)
	require.NoError(t, err)
	return p
}

func TestPipelineRun(t *testing.T) {
	source := mapSource{
		"2023-12_chase.pdf": decemberText,
		"2024-01_chase.pdf": januaryText,
	}
	p := testPipeline(t, source)

	// unsorted on purpose, ingestion order is by statement name
	ledger, stats, err := p.Run(context.Background(), []string{"2024-01_chase.pdf", "2023-12_chase.pdf"})
	require.NoError(t, err)
	require.Len(t, ledger, 3)

	grocery, payment, payroll := ledger[0], ledger[1], ledger[2]

	assert.Equal(t, time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC), grocery.Date)
	assert.Equal(t, "GROCERY MART PURCHASE", grocery.Description)
	assert.Equal(t, "-25.00", grocery.Amount.StringFixed(2))
	require.True(t, grocery.Balance.Valid)
	assert.Equal(t, "475.00", grocery.Balance.Decimal.StringFixed(2))
	assert.Equal(t, "Groceries", grocery.Category)
	assert.Equal(t, "2023-12", grocery.Month)
	assert.Equal(t, "Saturday", grocery.Weekday)

	// present on both statements, the overlap collapses to the copy from
	// the earlier statement
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), payment.Date)
	assert.Equal(t, "2023-12_chase.pdf", payment.SourceFile)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), payroll.Date)
	assert.Equal(t, "Income", payroll.Category)
	assert.Equal(t, "2024-01", payroll.Month)

	assert.Equal(t, 2, stats.Statements)
	assert.Equal(t, 4, stats.Emitted)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 3, stats.Excluded)
	assert.Zero(t, stats.Orphans)
	assert.Zero(t, stats.Drops.Total())
	assert.Empty(t, stats.Failed)
	assert.Empty(t, stats.EmptyOutput)
	assert.Empty(t, stats.GuessedYears)
}

func TestPipelineIngestOrderGiven(t *testing.T) {
	source := mapSource{
		"2023-12_chase.pdf": decemberText,
		"2024-01_chase.pdf": januaryText,
	}
	cfg := DefaultConfig()
	cfg.IngestOrder = "given"
	p, err := NewPipeline(source, cfg)
	require.NoError(t, err)

	ledger, _, err := p.Run(context.Background(), []string{"2024-01_chase.pdf", "2023-12_chase.pdf"})
	require.NoError(t, err)
	require.Len(t, ledger, 3)

	// with the January statement ingested first, its copy of the overlap
	// survives
	assert.Equal(t, "2024-01_chase.pdf", ledger[1].SourceFile)
}

func TestPipelineRunConcurrentMatchesRun(t *testing.T) {
	source := mapSource{
		"2023-12_chase.pdf": decemberText,
		"2024-01_chase.pdf": januaryText,
		"2024-02_chase.pdf": "02/14 FLOWER SHOP -30.00 1,346.00\n",
	}
	statements := []string{"2024-02_chase.pdf", "2023-12_chase.pdf", "2024-01_chase.pdf"}
	p := testPipeline(t, source)

	sequential, seqStats, err := p.Run(context.Background(), statements)
	require.NoError(t, err)
	concurrent, concStats, err := p.RunConcurrent(context.Background(), statements, 4)
	require.NoError(t, err)

	var seqCSV, concCSV bytes.Buffer
	require.NoError(t, WriteCSV(&seqCSV, sequential))
	require.NoError(t, WriteCSV(&concCSV, concurrent))
	assert.Equal(t, seqCSV.String(), concCSV.String())
	assert.Equal(t, seqStats, concStats)
}

func TestPipelineRunIdempotent(t *testing.T) {
	source := mapSource{
		"2023-12_chase.pdf": decemberText,
		"2024-01_chase.pdf": januaryText,
	}
	statements := []string{"2023-12_chase.pdf", "2024-01_chase.pdf"}
	p := testPipeline(t, source)

	var first, second bytes.Buffer
	ledger, _, err := p.Run(context.Background(), statements)
	require.NoError(t, err)
	require.NoError(t, WriteCSV(&first, ledger))
	ledger, _, err = p.Run(context.Background(), statements)
	require.NoError(t, err)
	require.NoError(t, WriteCSV(&second, ledger))

	assert.Equal(t, first.String(), second.String())
}

func TestPipelineDrops(t *testing.T) {
	source := mapSource{
		"2024-03_chase.pdf": `03/01 GOOD COFFEE -4.50 995.50
13/45 IMPOSSIBLE DATE -1.00 994.50
03/03 MYSTERY ADJUSTMENT
03/04 ANOTHER PURCHASE -10.00 981.00
`,
	}
	p := testPipeline(t, source)

	ledger, stats, err := p.Run(context.Background(), []string{"2024-03_chase.pdf"})
	require.NoError(t, err)

	require.Len(t, ledger, 2)
	assert.Equal(t, "GOOD COFFEE", ledger[0].Description)
	assert.Equal(t, "ANOTHER PURCHASE", ledger[1].Description)

	assert.Equal(t, 4, stats.Emitted)
	assert.Equal(t, 1, stats.Drops.MalformedDate)
	assert.Equal(t, 1, stats.Drops.MalformedAmount)
	assert.InDelta(t, 0.5, stats.DropRate(), 1e-9)
}

func TestPipelineFailedStatement(t *testing.T) {
	source := mapSource{
		"2024-04_chase.pdf": "04/01 APRIL PURCHASE -1.00 100.00\n",
	}
	p := testPipeline(t, source)

	ledger, stats, err := p.Run(context.Background(), []string{"2024-04_chase.pdf", "2024-05_chase.pdf"})
	require.NoError(t, err)

	require.Len(t, ledger, 1)
	assert.Equal(t, 2, stats.Statements)
	assert.Equal(t, []string{"2024-05_chase.pdf"}, stats.Failed)
}

func TestPipelineEmptyOutput(t *testing.T) {
	source := mapSource{
		"2024-06_chase.pdf": "TRANSACTION DETAIL\nBeginning Balance $0.00\n",
	}
	p := testPipeline(t, source)

	ledger, stats, err := p.Run(context.Background(), []string{"2024-06_chase.pdf"})
	require.NoError(t, err)

	assert.Empty(t, ledger)
	assert.Equal(t, []string{"2024-06_chase.pdf"}, stats.EmptyOutput)
}

func TestPipelineSameStatementTwice(t *testing.T) {
	source := mapSource{
		"2024-07_chase.pdf": "07/01 FIRST -1.00 99.00\n07/02 SECOND -2.00 97.00\n",
	}
	p := testPipeline(t, source)

	ledger, stats, err := p.Run(context.Background(), []string{"2024-07_chase.pdf", "2024-07_chase.pdf"})
	require.NoError(t, err)

	require.Len(t, ledger, 2)
	assert.Equal(t, 4, stats.Emitted)
	assert.Equal(t, 2, stats.Duplicates)
}

func TestPipelineGuessedYear(t *testing.T) {
	source := mapSource{
		"chase_undated.pdf": "03/14 UNDATED PURCHASE -1.00 9.00\n",
	}
	p := testPipeline(t, source)

	ledger, stats, err := p.Run(context.Background(), []string{"chase_undated.pdf"})
	require.NoError(t, err)

	require.Len(t, ledger, 1)
	assert.Equal(t, time.Now().Year(), ledger[0].Date.Year())
	assert.Equal(t, []string{"chase_undated.pdf"}, stats.GuessedYears)
}

func TestPipelineCanceledContext(t *testing.T) {
	p := testPipeline(t, mapSource{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := p.Run(ctx, []string{"2024-08_chase.pdf"})
	assert.ErrorIs(t, err, context.Canceled)
}
