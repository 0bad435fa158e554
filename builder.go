package stmtledger

import (
	"regexp"
	"strings"
)

// amountRE matches printed currency amounts, e.g. "-1,234.56".
var amountRE = regexp.MustCompile(`-?\d{1,3}(?:,\d{3})*\.\d{2}`)

// splitAmounts separates the printed amounts from the descriptive text. n is
// the number of amount tokens found; the last two are the transaction amount
// and the running balance, a single token is the balance only. Some layouts
// print the amount column twice, so the description is cut at the first
// occurrence of the amount value to keep the repeat out of it.
func splitAmounts(text string) (desc, amount, balance string, n int) {
	locs := amountRE.FindAllStringIndex(text, -1)
	n = len(locs)
	switch {
	case n >= 2:
		amt := locs[n-2]
		amount = text[amt[0]:amt[1]]
		balance = text[locs[n-1][0]:locs[n-1][1]]
		cut := amt[0]
		for _, loc := range locs[:n-2] {
			if text[loc[0]:loc[1]] == amount {
				cut = loc[0]
				break
			}
		}
		desc = strings.TrimSpace(text[:cut])
	case n == 1:
		balance = text[locs[0][0]:locs[0][1]]
		desc = strings.TrimSpace(text[:locs[0][0]])
	default:
		desc = strings.TrimSpace(text)
	}
	return
}

// draft is the mutable accumulator for one in-progress transaction.
type draft struct {
	date      string
	fragments []string
	amount    string
	balance   string
	statement string
}

func (d *draft) append(fragment string) {
	if fragment != "" {
		d.fragments = append(d.fragments, fragment)
	}
}

// Builder assembles one transaction at a time from classified lines. It holds
// at most one open draft; opening a new one finalizes the previous draft.
type Builder struct {
	current *draft
	orphans int
}

// Open starts a new draft from a start line and returns the finalized
// previous draft, or nil if none was open. A start line carrying a single
// amount only shows the balance; one without amounts leaves them for a
// continuation line to fill in.
func (b *Builder) Open(line RawLine, date, remainder string) *RawTransaction {
	prev := b.Close()

	d := &draft{date: date, statement: line.Statement}
	desc, amount, balance, n := splitAmounts(remainder)
	if n == 1 {
		amount = "0.00"
	}
	d.amount = amount
	d.balance = balance
	d.append(desc)
	b.current = d

	return prev
}

// Extend appends a continuation line to the open draft. When the draft has no
// amount yet and the line carries amounts, they are lifted out and only the
// text preceding them joins the description. A continuation with no open
// draft is dropped and counted.
func (b *Builder) Extend(line RawLine) {
	if b.current == nil {
		b.orphans++
		return
	}

	text := strings.TrimSpace(line.Text)
	desc, amount, balance, n := splitAmounts(text)
	if n > 0 && b.current.amount == "" {
		b.current.amount = amount
		b.current.balance = balance
		b.current.append(desc)
		return
	}
	b.current.append(text)
}

// Close finalizes the open draft into a RawTransaction, joining description
// fragments with a single space, and clears the builder. Returns nil if no
// draft is open.
func (b *Builder) Close() *RawTransaction {
	if b.current == nil {
		return nil
	}
	t := &RawTransaction{
		Date:        b.current.date,
		Description: strings.Join(b.current.fragments, " "),
		Amount:      b.current.amount,
		Balance:     b.current.balance,
		SourceFile:  b.current.statement,
	}
	b.current = nil
	return t
}

// HasDraft reports whether a draft is currently being accumulated.
func (b *Builder) HasDraft() bool {
	return b.current != nil
}

// Orphans returns the number of continuation lines dropped because no draft
// was open.
func (b *Builder) Orphans() int {
	return b.orphans
}
