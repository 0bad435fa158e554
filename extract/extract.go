// Package extract supplies statement text lines to the pipeline. Backends
// only have to honor the line-ordering contract: top-to-bottom, page-ordered
// text per statement.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
)

// Pdftotext extracts statement text by running the poppler pdftotext tool in
// layout mode. Extracted text is cached per statement name so repeated runs
// over the same corpus in one process do not re-render the PDFs.
type Pdftotext struct {
	dir   string
	cache *cache.Cache

	// run is swappable for tests.
	run func(ctx context.Context, path string) ([]byte, error)
}

// NewPdftotext returns an extractor resolving statement names against dir.
func NewPdftotext(dir string) *Pdftotext {
	return &Pdftotext{
		dir:   dir,
		cache: cache.New(30*time.Minute, time.Hour),
		run:   runPdftotext,
	}
}

func runPdftotext(ctx context.Context, path string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}
	return out, nil
}

// Lines extracts the statement's text and returns it as a reader of ordered
// lines.
func (p *Pdftotext) Lines(ctx context.Context, statement string) (io.ReadCloser, error) {
	if text, ok := p.cache.Get(statement); ok {
		return io.NopCloser(bytes.NewReader(text.([]byte))), nil
	}

	text, err := p.run(ctx, filepath.Join(p.dir, statement))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", statement, err)
	}
	p.cache.Set(statement, text, cache.DefaultExpiration)
	return io.NopCloser(bytes.NewReader(text)), nil
}

// TextDir resolves statement names to pre-extracted plain-text files. Useful
// when extraction runs out of band or in tests.
type TextDir struct {
	dir string
}

// NewTextDir returns a plain-text source rooted at dir.
func NewTextDir(dir string) *TextDir {
	return &TextDir{dir: dir}
}

// Lines opens the statement's text file.
func (t *TextDir) Lines(ctx context.Context, statement string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(t.dir, statement))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", statement, err)
	}
	return f, nil
}
