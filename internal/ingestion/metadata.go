package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where a posting came from
type Metadata struct {
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
	Hash      string    `json:"hash"`               // SHA256 hex digest of the cleaned text
	Platform  string    `json:"platform,omitempty"` // Detected job board platform
	Browser   bool      `json:"browser,omitempty"`  // Rendered with a headless browser
	Chars     int       `json:"chars"`
}

// NewMetadata creates Metadata for cleaned content
func NewMetadata(content, source string, now time.Time) *Metadata {
	return &Metadata{
		Source:    source,
		FetchedAt: now.UTC(),
		Hash:      computeHash(content),
		Chars:     len([]rune(content)),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
