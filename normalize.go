package stmtledger

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	date "github.com/joyt/godate"
	"github.com/shopspring/decimal"
)

var (
	// ErrMalformedDate marks a record whose date could not be parsed. The
	// record is dropped and counted.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedAmount marks a record whose amount is missing or not
	// numeric. The record is dropped and counted.
	ErrMalformedAmount = errors.New("malformed amount")
)

// DropCounts tallies records rejected during normalization, per reason.
type DropCounts struct {
	MalformedDate   int
	MalformedAmount int
}

// Total returns the number of dropped records.
func (d DropCounts) Total() int {
	return d.MalformedDate + d.MalformedAmount
}

// Normalizer converts the raw string fields of one statement's transactions
// into typed ledger entries. Statements print dates without a year, so the
// year is taken from the statement name; records the Normalizer rejects are
// counted rather than silently discarded.
type Normalizer struct {
	year        int
	month       int // 0 when the statement name carries no month
	yearGuessed bool

	dateLayout  string
	strPrevDate string
	prevDate    time.Time
	prevDateErr error

	drops DropCounts
}

// statementPeriodRE reads the statement period from the statement name,
// e.g. "2024-01_chase.pdf" or "202401.pdf".
var statementPeriodRE = regexp.MustCompile(`^(\d{4})[-_]?(\d{2})?`)

// NewNormalizer returns a Normalizer for one statement. The statement year
// (and, when present, month) is read from the statement name; when the name
// does not start with a year the current year is used and YearGuessed
// reports true.
func NewNormalizer(statement string) *Normalizer {
	n := &Normalizer{dateLayout: "01/02/2006"}
	n.year, n.month, n.yearGuessed = statementPeriod(statement, time.Now())
	return n
}

func statementPeriod(statement string, now time.Time) (year, month int, guessed bool) {
	m := statementPeriodRE.FindStringSubmatch(statement)
	if m == nil {
		return now.Year(), 0, true
	}
	year, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		if mm, _ := strconv.Atoi(m[2]); mm >= 1 && mm <= 12 {
			month = mm
		}
	}
	return year, month, false
}

// YearGuessed reports whether the statement year fell back to the current
// year because it could not be read from the statement name.
func (n *Normalizer) YearGuessed() bool {
	return n.yearGuessed
}

// Drops returns the rejection tallies accumulated so far.
func (n *Normalizer) Drops() DropCounts {
	return n.drops
}

// Normalize converts one raw transaction into a ledger entry. A record with
// an unparseable date or amount is rejected with the matching sentinel error
// and counted; a malformed balance only leaves the balance unknown. Month and
// weekday are derived from the parsed date. The entry's ID is a pure function
// of (date, description, amount).
func (n *Normalizer) Normalize(raw *RawTransaction) (*Transaction, error) {
	transDate, err := n.parseDate(n.fullDate(raw.Date))
	if err != nil {
		n.drops.MalformedDate++
		return nil, err
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(raw.Amount, ",", ""))
	if err != nil {
		n.drops.MalformedAmount++
		return nil, fmt.Errorf("unable to parse amount(%s): %w", raw.Amount, ErrMalformedAmount)
	}

	var balance decimal.NullDecimal
	if bal, berr := decimal.NewFromString(strings.ReplaceAll(raw.Balance, ",", "")); berr == nil {
		balance = decimal.NullDecimal{Decimal: bal, Valid: true}
	}

	t := &Transaction{
		Date:        transDate,
		Description: strings.TrimSpace(raw.Description),
		Amount:      amount,
		Balance:     balance,
		Month:       transDate.Format("2006-01"),
		Weekday:     transDate.Weekday().String(),
		SourceFile:  raw.SourceFile,
	}
	t.ID = TransactionID(t.Date, t.Description, t.Amount)
	return t, nil
}

// fullDate completes a year-less MM/DD date with the statement year. A
// statement period boundary can show a transaction from the neighboring
// year: a December entry on a January statement belongs to the previous
// year, and vice versa.
func (n *Normalizer) fullDate(dateString string) string {
	if strings.Count(dateString, "/") != 1 {
		return dateString
	}
	year := n.year
	if mm, _, found := strings.Cut(dateString, "/"); found {
		if m, err := strconv.Atoi(mm); err == nil {
			if n.month == 1 && m == 12 {
				year--
			} else if n.month == 12 && m == 1 {
				year++
			}
		}
	}
	return dateString + "/" + strconv.Itoa(year)
}

func (n *Normalizer) parseDate(dateString string) (transDate time.Time, err error) {
	// seen before, skip parse
	if n.strPrevDate == dateString {
		return n.prevDate, n.prevDateErr
	}

	// try current date layout
	transDate, err = time.Parse(n.dateLayout, dateString)
	if err != nil {
		// try to find new date layout
		transDate, n.dateLayout, err = date.ParseAndGetLayout(dateString)
		if err != nil {
			err = fmt.Errorf("unable to parse date(%s): %w", dateString, ErrMalformedDate)
		}
	}

	// maybe next date is same
	n.strPrevDate = dateString
	n.prevDate = transDate
	n.prevDateErr = err

	return
}
