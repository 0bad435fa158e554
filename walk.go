package stmtledger

import (
	"fmt"
	"io"
	"strings"
)

// WalkStats counts what the Walker saw in one statement.
type WalkStats struct {
	Lines    int
	Excluded int
	Orphans  int
	Emitted  int
}

// Empty reports whether the statement had text lines but produced no
// transactions.
func (s WalkStats) Empty() bool {
	return s.Lines > 0 && s.Emitted == 0
}

// Walker drives the Classifier and Builder over one statement's lines in
// order, emitting raw transactions as they are finalized. A Walker is
// single-use per statement; line order must be preserved by the caller.
type Walker struct {
	classifier *Classifier
}

// NewWalker returns a Walker using the given Classifier, or the default
// Chase classifier when nil.
func NewWalker(c *Classifier) *Walker {
	if c == nil {
		c = DefaultClassifier()
	}
	return &Walker{classifier: c}
}

// Walk traverses the statement's lines, calling emit for every finalized
// transaction in statement order. The trailing draft is flushed at end of
// input. Returning true from emit stops the traversal.
func (w *Walker) Walk(name string, r io.Reader, emit func(t *RawTransaction) (stop bool)) (WalkStats, error) {
	var stats WalkStats
	var builder Builder

	scanner := newLineScanner(name, r)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if len(trimmedLine) == 0 {
			continue
		}
		stats.Lines++

		line := RawLine{Text: trimmedLine, Number: scanner.LineNumber(), Statement: name}
		switch w.classifier.Classify(trimmedLine) {
		case LineStart:
			date, remainder, _ := w.classifier.SplitStart(trimmedLine)
			if t := builder.Open(line, date, remainder); t != nil {
				stats.Emitted++
				if emit(t) {
					stats.Orphans = builder.Orphans()
					return stats, nil
				}
			}
		case LineContinuation:
			builder.Extend(line)
		case LineNoise:
			stats.Excluded++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("%s:%d: %w", scanner.Name(), scanner.LineNumber(), err)
	}

	if t := builder.Close(); t != nil {
		stats.Emitted++
		emit(t)
	}
	stats.Orphans = builder.Orphans()

	return stats, nil
}

// ParseStatement walks one statement and collects its raw transactions.
func ParseStatement(name string, r io.Reader, c *Classifier) ([]*RawTransaction, WalkStats, error) {
	var transactions []*RawTransaction
	stats, err := NewWalker(c).Walk(name, r, func(t *RawTransaction) bool {
		transactions = append(transactions, t)
		return false
	})
	return transactions, stats, err
}

// ParseStatementAsync walks one statement in the background and returns a
// transaction channel and an error channel. The transaction channel is a
// finite, single-traversal sequence closed at end of statement.
func ParseStatementAsync(name string, r io.Reader, classifier *Classifier) (c chan *RawTransaction, e chan error) {
	c = make(chan *RawTransaction)
	e = make(chan error)

	go func() {
		_, err := NewWalker(classifier).Walk(name, r, func(t *RawTransaction) bool {
			c <- t
			return false
		})
		e <- err
		close(c)
		close(e)
	}()
	return c, e
}
