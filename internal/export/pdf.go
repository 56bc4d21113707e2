package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/fetch"
)

const (
	// DefaultIdleTimeout bounds the wait for network idle after loading the document
	DefaultIdleTimeout = 10 * time.Second
	// DefaultPrintTimeout bounds a whole browser session
	DefaultPrintTimeout = 60 * time.Second

	// A4 in inches, used when the stylesheet declares no @page size
	a4Width  = 8.27
	a4Height = 11.69
)

// PDFExporter prints HTML to PDF with headless Chrome
type PDFExporter struct {
	IdleTimeout  time.Duration
	PrintTimeout time.Duration
	Logger       *zap.Logger

	// print replaces the browser in tests
	print func(ctx context.Context, html string) ([]byte, error)
}

// NewPDFExporter creates a PDFExporter with default timeouts
func NewPDFExporter(idleTimeout time.Duration, logger *zap.Logger) *PDFExporter {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFExporter{
		IdleTimeout:  idleTimeout,
		PrintTimeout: DefaultPrintTimeout,
		Logger:       logger,
	}
}

// Extension returns the file extension PDFExporter produces
func (e *PDFExporter) Extension() string { return ".pdf" }

// Export prints html to a PDF file at path
func (e *PDFExporter) Export(ctx context.Context, html, path string) error {
	if html == "" {
		return &Error{Path: path, Message: "document is empty"}
	}

	printFn := e.print
	if printFn == nil {
		printFn = e.printPDF
	}

	start := time.Now()
	data, err := printFn(ctx, html)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &Error{Path: path, Message: "failed to print PDF", Cause: err}
	}
	if len(data) == 0 {
		return &Error{Path: path, Message: "browser returned an empty PDF"}
	}

	if err := writeAtomic(path, data); err != nil {
		return err
	}

	e.logger().Debug("pdf exported",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// printPDF loads html from a temp file, waits for that load to reach network idle and for fonts, then prints.
// The browser is shut down on every return path.
func (e *PDFExporter) printPDF(ctx context.Context, html string) ([]byte, error) {
	timeout := e.PrintTimeout
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}
	idleTimeout := e.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}

	docPath, err := writeTempDocument(html)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(docPath) }()

	browserCtx, cancel := fetch.NewBrowser(ctx)
	defer cancel()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	tracker := newIdleTracker()
	chromedp.ListenTarget(browserCtx, tracker.observe)

	var (
		loaderID   cdp.LoaderID
		pdf        []byte
		fontsReady bool
	)
	err = chromedp.Run(browserCtx,
		page.SetLifecycleEventsEnabled(true),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, id, errorText, _, err := page.Navigate(fileURL(docPath)).Do(ctx)
			if err != nil {
				return err
			}
			if errorText != "" {
				return fmt.Errorf("failed to load document: %s", errorText)
			}
			loaderID = id
			return nil
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			reached, err := tracker.wait(ctx, loaderID, idleTimeout)
			if err != nil {
				return err
			}
			if !reached {
				e.logger().Debug("network idle not reached, printing anyway", zap.Duration("idle_timeout", idleTimeout))
			}
			return nil
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, errors.New("browser timed out while printing")
		}
		return nil, err
	}
	return pdf, nil
}

// writeTempDocument stores html where the browser can navigate to it
func writeTempDocument(html string) (string, error) {
	f, err := os.CreateTemp("", "cv-tailor-*.html")
	if err != nil {
		return "", fmt.Errorf("failed to create temp document: %w", err)
	}
	_, werr := f.WriteString(html)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp document: %w", err)
	}
	return f.Name(), nil
}

// fileURL converts a local path to a file:// URL
func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return (&url.URL{Scheme: "file", Path: path}).String()
}

// idleTracker records which loaders have reached networkIdle.
// Lifecycle events for earlier loads (the initial blank page) never satisfy a wait for a later one.
type idleTracker struct {
	mu     sync.Mutex
	idle   map[cdp.LoaderID]bool
	notify chan struct{}
}

func newIdleTracker() *idleTracker {
	return &idleTracker{
		idle:   make(map[cdp.LoaderID]bool),
		notify: make(chan struct{}, 1),
	}
}

func (t *idleTracker) observe(ev interface{}) {
	lifecycle, ok := ev.(*page.EventLifecycleEvent)
	if !ok || lifecycle.Name != "networkIdle" {
		return
	}
	t.mu.Lock()
	t.idle[lifecycle.LoaderID] = true
	t.mu.Unlock()
	select {
	case t.notify <- struct{}{}:
	default:
	}
}

func (t *idleTracker) reached(loaderID cdp.LoaderID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.idle[loaderID]
}

// wait blocks until loaderID reaches network idle. It reports false when timeout passes first.
func (t *idleTracker) wait(ctx context.Context, loaderID cdp.LoaderID, timeout time.Duration) (bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		if t.reached(loaderID) {
			return true, nil
		}
		select {
		case <-t.notify:
		case <-timer.C:
			return false, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

func (e *PDFExporter) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
