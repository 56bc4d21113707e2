package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultOutputDir is where tailored résumés are written unless configured otherwise
const DefaultOutputDir = "outputs/tailored_resumes"

// TimestampLayout is the minute-resolution stamp used in output file names
const TimestampLayout = "20060102_1504"

const (
	unknownCompany = "Unknown_Company"
	unknownRole    = "Unknown_Role"
	maxCollisions  = 1000
)

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// BuildOutputPath returns {dir}/{company}_{role}_{YYYYMMDD_HHMM}.pdf, creating dir if needed
func BuildOutputPath(dir, company, role string, now time.Time) (string, error) {
	return BuildPath(dir, company, role, now, ".pdf")
}

// BuildPath is BuildOutputPath with an explicit extension.
// When the file already exists a numeric suffix (_2, _3, ...) is appended.
func BuildPath(dir, company, role string, now time.Time, ext string) (string, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{Path: dir, Message: "failed to create output directory", Cause: err}
	}

	base := fmt.Sprintf("%s_%s_%s",
		sanitizeName(company, unknownCompany),
		sanitizeName(role, unknownRole),
		now.Format(TimestampLayout),
	)

	path := filepath.Join(dir, base+ext)
	for n := 2; exists(path); n++ {
		if n > maxCollisions {
			return "", &Error{Path: path, Message: "too many files with the same name"}
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}
	return path, nil
}

func sanitizeName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return nameReplacer.Replace(name)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
