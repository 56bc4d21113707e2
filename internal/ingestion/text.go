package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	bulletGlyph = regexp.MustCompile(`^[•·▪●◦]\s*`)
)

// CleanText normalizes posting text while keeping its line structure:
// line endings become LF, runs of spaces collapse, bullet glyphs become "- ",
// and no more than one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line, keeps markdown headings and bullets, and collapses inner spaces
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	trimmed = bulletGlyph.ReplaceAllString(trimmed, "- ")
	if strings.HasPrefix(trimmed, "* ") {
		trimmed = "- " + strings.TrimPrefix(trimmed, "* ")
	}
	return innerSpace.ReplaceAllString(trimmed, " ")
}
