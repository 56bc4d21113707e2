package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/fetch"
)

func newTestFetcher(useBrowser bool) *Fetcher {
	f := NewFetcher(useBrowser, nil)
	f.Now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func serve(t *testing.T, contentType, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIngest_URL(t *testing.T) {
	server := serve(t, "text/html", `<html><body>
		<nav>Home | Jobs</nav>
		<div class="job-description">
			<h1>Senior Go Engineer</h1>
			<p>Acme   Corp is hiring.</p>
			<ul><li>Go</li><li>Kubernetes</li></ul>
		</div>
		<footer>© Acme</footer>
	</body></html>`)

	posting, err := newTestFetcher(false).Ingest(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer\nAcme Corp is hiring.\n- Go\n- Kubernetes", posting.Text)
	assert.Equal(t, server.URL, posting.Metadata.Source)
	assert.Equal(t, string(fetch.PlatformUnknown), posting.Metadata.Platform)
	assert.False(t, posting.Metadata.Browser)
}

func TestIngest_PlainTextResponse(t *testing.T) {
	server := serve(t, "text/plain; charset=utf-8", "Role: Engineer\n\n\n\nRequirements:\n• Go")

	text, err := newTestFetcher(false).FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Role: Engineer\n\nRequirements:\n- Go", text)
}

func TestIngest_EmptyPosting(t *testing.T) {
	server := serve(t, "text/html", `<html><body><script>render()</script></body></html>`)

	_, err := newTestFetcher(false).FetchPosting(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyPosting))
}

func TestIngest_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	_, err := newTestFetcher(false).FetchPosting(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "410")
}

func TestIngest_BrowserFallback(t *testing.T) {
	server := serve(t, "text/html", `<html><body><div id="root">Loading...</div></body></html>`)

	f := newTestFetcher(true)
	var renderedURL string
	f.render = func(_ context.Context, url string) (string, error) {
		renderedURL = url
		return `<html><body><main><h1>Platform Engineer</h1><p>` + strings.Repeat("Build things. ", 10) + `</p></main></body></html>`, nil
	}

	posting, err := f.Ingest(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL, renderedURL)
	assert.True(t, posting.Metadata.Browser)
	assert.True(t, strings.HasPrefix(posting.Text, "Platform Engineer\n"))
}

func TestIngest_BrowserFailureKeepsHTTPContent(t *testing.T) {
	server := serve(t, "text/html", `<html><body><main>Short but real posting</main></body></html>`)

	f := newTestFetcher(true)
	f.render = func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	posting, err := f.Ingest(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Short but real posting", posting.Text)
	assert.False(t, posting.Metadata.Browser)
}

func TestIngest_BrowserDisabled(t *testing.T) {
	server := serve(t, "text/html", `<html><body><main>Short posting</main></body></html>`)

	f := newTestFetcher(false)
	f.render = func(context.Context, string) (string, error) {
		t.Fatal("browser must not be used")
		return "", nil
	}

	_, err := f.Ingest(context.Background(), server.URL)
	require.NoError(t, err)
}

func TestIngest_LocalFiles(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "posting.txt")
	require.NoError(t, os.WriteFile(txt, []byte("# Backend Engineer\n\n\n\nWe use   Go."), 0o644))

	html := filepath.Join(dir, "posting.html")
	require.NoError(t, os.WriteFile(html, []byte("<!DOCTYPE html><html><body><article><p>Data Engineer</p></article></body></html>"), 0o644))

	f := newTestFetcher(false)

	posting, err := f.Ingest(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, "# Backend Engineer\n\nWe use Go.", posting.Text)
	assert.Equal(t, txt, posting.Metadata.Source)
	assert.Empty(t, posting.Metadata.Platform)

	text, err := f.FetchPosting(context.Background(), html)
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", text)
}

func TestIngest_MissingFile(t *testing.T) {
	_, err := newTestFetcher(false).Ingest(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "not found")
}
