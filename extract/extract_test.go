package extract

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r io.ReadCloser) string {
	t.Helper()
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestPdftotextCachesExtraction(t *testing.T) {
	calls := 0
	p := NewPdftotext("statements")
	p.run = func(_ context.Context, path string) ([]byte, error) {
		calls++
		assert.Equal(t, filepath.Join("statements", "2024-03_chase.pdf"), path)
		return []byte("03/14 COFFEE -4.50 95.50\n"), nil
	}

	ctx := context.Background()
	r, err := p.Lines(ctx, "2024-03_chase.pdf")
	require.NoError(t, err)
	assert.Equal(t, "03/14 COFFEE -4.50 95.50\n", readAll(t, r))

	r, err = p.Lines(ctx, "2024-03_chase.pdf")
	require.NoError(t, err)
	assert.Equal(t, "03/14 COFFEE -4.50 95.50\n", readAll(t, r))

	assert.Equal(t, 1, calls)
}

func TestPdftotextRunFailure(t *testing.T) {
	failure := errors.New("pdftotext failed")
	p := NewPdftotext("statements")
	p.run = func(context.Context, string) ([]byte, error) {
		return nil, failure
	}

	_, err := p.Lines(context.Background(), "2024-03_chase.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)

	// failures are not cached
	_, err = p.Lines(context.Background(), "2024-03_chase.pdf")
	assert.Error(t, err)
}

func TestTextDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024-03_chase.txt"), []byte("03/14 COFFEE -4.50 95.50\n"), 0o644))

	src := NewTextDir(dir)
	r, err := src.Lines(context.Background(), "2024-03_chase.txt")
	require.NoError(t, err)
	assert.Equal(t, "03/14 COFFEE -4.50 95.50\n", readAll(t, r))

	_, err = src.Lines(context.Background(), "absent.txt")
	assert.Error(t, err)
}
