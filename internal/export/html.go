package export

import (
	"context"
)

// HTMLExporter writes the rendered document as a standalone HTML file
type HTMLExporter struct{}

// Extension returns the file extension HTMLExporter produces
func (HTMLExporter) Extension() string { return ".html" }

// Export writes html to path
func (HTMLExporter) Export(ctx context.Context, html, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if html == "" {
		return &Error{Path: path, Message: "document is empty"}
	}
	return writeAtomic(path, []byte(html))
}
