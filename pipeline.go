package stmtledger

import (
	"context"
	"errors"
	"io"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoLines is returned by a Source that cannot produce any text for a
// statement. The pipeline skips that statement and continues.
var ErrNoLines = errors.New("no text lines extracted")

// Source resolves a statement identifier to its extracted text, in
// top-to-bottom page order. Extraction correctness is a precondition the
// pipeline does not verify.
type Source interface {
	Lines(ctx context.Context, statement string) (io.ReadCloser, error)
}

// Stats is the drop/warning report accompanying every ledger. The pipeline
// always completes with a ledger and a Stats; data-quality issues never abort
// a run.
type Stats struct {
	Statements int
	Lines      int
	Excluded   int
	Emitted    int
	Orphans    int
	Duplicates int
	Drops      DropCounts

	// Per-statement warnings, by statement name.
	Failed       []string // source could not produce lines
	EmptyOutput  []string // lines present but no transactions found
	GuessedYears []string // statement year fell back to the current year
}

// DropRate is the share of extracted transactions rejected during
// normalization.
func (s *Stats) DropRate() float64 {
	if s.Emitted == 0 {
		return 0
	}
	return float64(s.Drops.Total()) / float64(s.Emitted)
}

func (s *Stats) merge(o statementResult) {
	s.Statements++
	s.Lines += o.walk.Lines
	s.Excluded += o.walk.Excluded
	s.Emitted += o.walk.Emitted
	s.Orphans += o.walk.Orphans
	s.Drops.MalformedDate += o.drops.MalformedDate
	s.Drops.MalformedAmount += o.drops.MalformedAmount
	if o.failed {
		s.Failed = append(s.Failed, o.statement)
	}
	if o.walk.Empty() {
		s.EmptyOutput = append(s.EmptyOutput, o.statement)
	}
	if o.yearGuessed {
		s.GuessedYears = append(s.GuessedYears, o.statement)
	}
}

type statementResult struct {
	statement    string
	transactions []*Transaction
	walk         WalkStats
	drops        DropCounts
	failed       bool
	yearGuessed  bool
}

// Pipeline sequences extraction, walking, normalization and categorization
// per statement, then deduplicates once globally.
type Pipeline struct {
	source      Source
	classifier  *Classifier
	categorizer *Categorizer
	order       string
	log         zerolog.Logger
}

// NewPipeline wires a pipeline from a Source and a Config.
func NewPipeline(source Source, cfg Config) (*Pipeline, error) {
	classifier, err := cfg.Classifier()
	if err != nil {
		return nil, err
	}
	categorizer, err := cfg.Categorizer()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		source:      source,
		classifier:  classifier,
		categorizer: categorizer,
		order:       cfg.IngestOrder,
		log:         zerolog.Nop(),
	}, nil
}

// WithLogger sets the pipeline's logger and returns the pipeline.
func (p *Pipeline) WithLogger(log zerolog.Logger) *Pipeline {
	p.log = log
	return p
}

// Run processes the statements in ingestion order and returns the final
// ledger plus the drop/warning report. A statement whose lines cannot be
// extracted is skipped with a warning; the run itself only fails when the
// context is canceled. Runs are idempotent: the same statement set always
// yields an identical ledger.
func (p *Pipeline) Run(ctx context.Context, statements []string) ([]*Transaction, *Stats, error) {
	statements = p.ordered(statements)

	stats := &Stats{}
	var combined []*Transaction
	for _, name := range statements {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		res := p.runStatement(ctx, name)
		stats.merge(res)
		combined = append(combined, res.transactions...)
	}

	return p.finish(combined, stats), stats, nil
}

// RunConcurrent is Run with the per-statement stage fanned out over at most
// workers goroutines. Statements are independent; results are merged back in
// ingestion order before the single global dedup pass, so the ledger is
// identical to a sequential run.
func (p *Pipeline) RunConcurrent(ctx context.Context, statements []string, workers int) ([]*Transaction, *Stats, error) {
	statements = p.ordered(statements)

	results := make([]statementResult, len(statements))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range statements {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.runStatement(ctx, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &Stats{}, err
	}

	stats := &Stats{}
	var combined []*Transaction
	for _, res := range results {
		stats.merge(res)
		combined = append(combined, res.transactions...)
	}

	return p.finish(combined, stats), stats, nil
}

// runStatement runs walk → normalize → categorize for one statement.
func (p *Pipeline) runStatement(ctx context.Context, name string) statementResult {
	res := statementResult{statement: name}

	r, err := p.source.Lines(ctx, name)
	if err != nil {
		p.log.Warn().Str("statement", name).Err(err).Msg("skipping statement")
		res.failed = true
		return res
	}
	defer r.Close()

	normalizer := NewNormalizer(name)
	res.yearGuessed = normalizer.YearGuessed()
	if res.yearGuessed {
		p.log.Warn().Str("statement", name).Msg("statement name has no year prefix, using current year")
	}

	walkStats, err := NewWalker(p.classifier).Walk(name, r, func(raw *RawTransaction) bool {
		t, nerr := normalizer.Normalize(raw)
		if nerr != nil {
			p.log.Debug().Str("statement", name).Err(nerr).Msg("dropping record")
			return false
		}
		t.Category = p.categorizer.Categorize(t.Description)
		res.transactions = append(res.transactions, t)
		return false
	})
	if err != nil {
		p.log.Warn().Str("statement", name).Err(err).Msg("statement truncated")
		res.failed = true
	}
	res.walk = walkStats
	res.drops = normalizer.Drops()

	if walkStats.Empty() {
		p.log.Warn().Str("statement", name).Int("lines", walkStats.Lines).Msg("no transactions found in statement")
	}
	if walkStats.Orphans > 0 {
		p.log.Warn().Str("statement", name).Int("orphans", walkStats.Orphans).Msg("continuation lines with no open transaction")
	}

	return res
}

// finish runs the single global dedup pass and the canonical date sort.
func (p *Pipeline) finish(combined []*Transaction, stats *Stats) []*Transaction {
	ledger, duplicates := Dedup(combined)
	stats.Duplicates = duplicates

	slices.SortStableFunc(ledger, func(a, b *Transaction) int {
		return a.Date.Compare(b.Date)
	})

	p.log.Info().
		Int("statements", stats.Statements).
		Int("transactions", len(ledger)).
		Int("duplicates", duplicates).
		Int("dropped", stats.Drops.Total()).
		Msg("ledger assembled")

	return ledger
}

func (p *Pipeline) ordered(statements []string) []string {
	ordered := slices.Clone(statements)
	if p.order != "given" {
		slices.Sort(ordered)
	}
	return ordered
}
