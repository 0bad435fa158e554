package stmtledger

import (
	"bufio"
	"io"
)

// linescanner wraps bufio.Scanner with the source name and current line
// number for error reporting.
type linescanner struct {
	name    string
	scanner *bufio.Scanner
	lineNum int
}

func newLineScanner(name string, r io.Reader) *linescanner {
	return &linescanner{
		name:    name,
		scanner: bufio.NewScanner(r),
	}
}

func (l *linescanner) Scan() bool {
	if l.scanner.Scan() {
		l.lineNum++
		return true
	}
	return false
}

func (l *linescanner) Text() string {
	return l.scanner.Text()
}

func (l *linescanner) Err() error {
	return l.scanner.Err()
}

func (l *linescanner) Name() string {
	return l.name
}

func (l *linescanner) LineNumber() int {
	return l.lineNum
}
