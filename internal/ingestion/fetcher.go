// Package ingestion fetches a job posting from a URL or a local file and reduces it to clean text.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/fetch"
)

// ErrEmptyPosting is returned when no posting text could be extracted
var ErrEmptyPosting = errors.New("job posting is empty")

// Posting is a fetched job posting
type Posting struct {
	Text     string
	Metadata *Metadata
}

// Fetcher retrieves postings over HTTP, with an optional headless-browser fallback
type Fetcher struct {
	Options        *fetch.Options
	UseBrowser     bool
	BrowserTimeout time.Duration
	Logger         *zap.Logger
	Now            func() time.Time

	// render replaces the headless browser in tests
	render func(ctx context.Context, url string) (string, error)
}

// NewFetcher creates a Fetcher with default HTTP options
func NewFetcher(useBrowser bool, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		Options:        fetch.DefaultOptions(),
		UseBrowser:     useBrowser,
		BrowserTimeout: fetch.DefaultBrowserTimeout,
		Logger:         logger,
		Now:            time.Now,
	}
}

// FetchPosting implements the pipeline's posting fetcher
func (f *Fetcher) FetchPosting(ctx context.Context, source string) (string, error) {
	posting, err := f.Ingest(ctx, source)
	if err != nil {
		return "", err
	}
	return posting.Text, nil
}

// Ingest fetches source, which is an http(s) URL or a path to a local text or HTML file
func (f *Fetcher) Ingest(ctx context.Context, source string) (*Posting, error) {
	var (
		posting *Posting
		err     error
	)
	if fetch.IsURL(source) {
		posting, err = f.ingestURL(ctx, source)
	} else {
		posting, err = f.ingestFile(source)
	}
	if err != nil {
		return nil, err
	}
	if posting.Text == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPosting, source)
	}

	f.logger().Debug("posting ingested",
		zap.String("source", source),
		zap.String("platform", posting.Metadata.Platform),
		zap.Bool("browser", posting.Metadata.Browser),
		zap.Int("chars", posting.Metadata.Chars),
		zap.String("hash", posting.Metadata.Hash),
	)
	return posting, nil
}

func (f *Fetcher) ingestURL(ctx context.Context, urlStr string) (*Posting, error) {
	logger := f.logger()
	platform := fetch.DetectPlatform(urlStr)
	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	result, err := fetch.URL(ctx, urlStr, f.Options)
	if err != nil {
		return nil, err
	}

	var text string
	if result.IsHTML() {
		text, err = fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
		if err != nil {
			return nil, fmt.Errorf("content extraction failed: %w", err)
		}
	} else {
		text = result.HTML
	}

	usedBrowser := false
	if f.UseBrowser && result.IsHTML() && (fetch.ShouldUseBrowser(text) || fetch.RequiresBrowser(platform)) {
		logger.Debug("falling back to browser rendering",
			zap.Int("chars", len(text)),
			zap.String("platform", string(platform)),
		)
		html, browserErr := f.renderPage(ctx, urlStr)
		switch {
		case browserErr != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("browser rendering failed, using HTTP content", zap.Error(browserErr))
		default:
			rendered, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
			if extractErr != nil {
				logger.Warn("browser content extraction failed", zap.Error(extractErr))
			} else if len(rendered) > len(text) {
				text = rendered
				usedBrowser = true
			}
		}
	}

	cleaned := CleanText(text)
	meta := NewMetadata(cleaned, urlStr, f.now())
	meta.Platform = string(platform)
	meta.Browser = usedBrowser
	return &Posting{Text: cleaned, Metadata: meta}, nil
}

func (f *Fetcher) ingestFile(path string) (*Posting, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("posting file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read posting file: %w", err)
	}

	text := string(content)
	if looksLikeHTML(text) {
		text, err = fetch.ExtractMainText(text, fetch.JobPostingSelectors(), fetch.PlatformNoiseSelectors(fetch.PlatformUnknown)...)
		if err != nil {
			return nil, fmt.Errorf("content extraction failed: %w", err)
		}
	}

	cleaned := CleanText(text)
	return &Posting{Text: cleaned, Metadata: NewMetadata(cleaned, path, f.now())}, nil
}

func (f *Fetcher) renderPage(ctx context.Context, urlStr string) (string, error) {
	if f.render != nil {
		return f.render(ctx, urlStr)
	}
	return fetch.WithBrowser(ctx, urlStr, f.BrowserTimeout, f.logger())
}

func (f *Fetcher) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

func (f *Fetcher) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}
