// Package validation checks tailored profiles for wording the résumé should not contain.
package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultForbiddenPhrases are filler phrases that tailoring tends to introduce
var DefaultForbiddenPhrases = []string{
	"responsible for",
	"results-driven",
	"synergy",
	"go-getter",
	"team player",
	"think outside the box",
	"detail-oriented",
	"passionate about",
}

// CheckForbiddenPhrases scans the free-text fields of a profile for taboo phrases.
// Matching is case-insensitive and reports at most one violation per field.
func CheckForbiddenPhrases(p *types.Profile, tabooPhrases []string) []Violation {
	if p == nil || len(tabooPhrases) == 0 {
		return nil
	}

	var violations []Violation
	check := func(location, text string) {
		normalized := normalizeForMatching(text)
		if normalized == "" {
			return
		}
		for _, phrase := range tabooPhrases {
			needle := normalizeForMatching(phrase)
			if needle == "" {
				continue
			}
			if strings.Contains(normalized, needle) {
				violations = append(violations, Violation{
					Type:     TypeForbiddenPhrase,
					Severity: SeverityWarning,
					Location: location,
					Phrase:   phrase,
					Details:  fmt.Sprintf("%s contains forbidden phrase: %s", location, phrase),
				})
				return
			}
		}
	}

	check("candidate.title", p.Candidate.Title)
	check("summary", p.Summary)
	for i, e := range p.Experience {
		check(fmt.Sprintf("experience[%d].description", i), e.Description)
		for j, a := range e.Achievements {
			check(fmt.Sprintf("experience[%d].achievements[%d]", i, j), a)
		}
	}
	for i, e := range p.Education {
		for j, d := range e.Details {
			check(fmt.Sprintf("education[%d].details[%d]", i, j), d)
		}
	}
	return violations
}

// normalizeForMatching lowercases text, folds typographic quotes and dashes, and collapses whitespace
func normalizeForMatching(text string) string {
	text = strings.NewReplacer(
		"\u2018", "'", "\u2019", "'",
		"\u201c", `"`, "\u201d", `"`,
		"\u2010", "-", "\u2011", "-", "\u2013", "-",
	).Replace(text)
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
