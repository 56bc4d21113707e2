package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = "<!DOCTYPE html><html><body><h1>Ada</h1></body></html>"

func tempEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestHTMLExporter_Export(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.html")

	require.NoError(t, HTMLExporter{}.Export(context.Background(), sampleHTML, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleHTML, string(content))
	assert.Equal(t, []string{"resume.html"}, tempEntries(t, dir))
}

func TestHTMLExporter_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.html")

	err := HTMLExporter{}.Export(context.Background(), "", path)
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.NoFileExists(t, path)
}

func TestHTMLExporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "resume.html")
	err := HTMLExporter{}.Export(ctx, sampleHTML, path)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestPDFExporter_WritesPrintedBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.pdf")

	exporter := NewPDFExporter(0, nil)
	var printed string
	exporter.print = func(_ context.Context, html string) ([]byte, error) {
		printed = html
		return []byte("%PDF-1.7 fake"), nil
	}

	require.NoError(t, exporter.Export(context.Background(), sampleHTML, path))
	assert.Equal(t, sampleHTML, printed)
	assert.Equal(t, DefaultIdleTimeout, exporter.IdleTimeout)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(content))
	assert.Equal(t, ".pdf", exporter.Extension())
}

func TestPDFExporter_PrintFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.pdf")

	exporter := NewPDFExporter(0, nil)
	exporter.print = func(context.Context, string) ([]byte, error) {
		return nil, errors.New("chrome crashed")
	}

	err := exporter.Export(context.Background(), sampleHTML, path)
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Contains(t, err.Error(), "chrome crashed")
	assert.Empty(t, tempEntries(t, dir))
}

func TestPDFExporter_EmptyOutput(t *testing.T) {
	exporter := NewPDFExporter(0, nil)
	exporter.print = func(context.Context, string) ([]byte, error) { return nil, nil }

	err := exporter.Export(context.Background(), sampleHTML, filepath.Join(t.TempDir(), "resume.pdf"))
	assert.ErrorContains(t, err, "empty PDF")
}

func TestPDFExporter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	exporter := NewPDFExporter(0, nil)
	exporter.print = func(ctx context.Context, _ string) ([]byte, error) {
		cancel()
		<-ctx.Done()
		return nil, ctx.Err()
	}

	path := filepath.Join(t.TempDir(), "resume.pdf")
	err := exporter.Export(ctx, sampleHTML, path)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestWriteAtomic_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, writeAtomic(path, []byte("new")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}
