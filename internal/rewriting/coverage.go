package rewriting

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Coverage reports which keywords appear in a profile
type Coverage struct {
	Found   []string
	Missing []string
}

// Ratio returns the share of keywords found, or 1 when there are none
func (c Coverage) Ratio() float64 {
	total := len(c.Found) + len(c.Missing)
	if total == 0 {
		return 1
	}
	return float64(len(c.Found)) / float64(total)
}

// KeywordCoverage checks each keyword against the profile's text, case-insensitively
func KeywordCoverage(p *types.Profile, keywords []string) Coverage {
	text := strings.ToLower(profileText(p))

	var c Coverage
	seen := make(map[string]bool)
	for _, kw := range keywords {
		norm := strings.ToLower(strings.TrimSpace(kw))
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		if containsTerm(text, norm) {
			c.Found = append(c.Found, kw)
		} else {
			c.Missing = append(c.Missing, kw)
		}
	}
	return c
}

// containsTerm matches whole terms so that "go" does not match "google"
func containsTerm(text, term string) bool {
	pattern := `(^|[^a-z0-9])` + regexp.QuoteMeta(term) + `($|[^a-z0-9])`
	return regexp.MustCompile(pattern).MatchString(text)
}

func profileText(p *types.Profile) string {
	var sb strings.Builder
	write := func(s string) {
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	write(p.Candidate.Title)
	write(p.Summary)
	for _, e := range p.Experience {
		write(e.Title)
		write(e.Description)
		for _, a := range e.Achievements {
			write(a)
		}
	}
	for _, e := range p.Education {
		write(e.Degree)
		for _, d := range e.Details {
			write(d)
		}
	}
	for _, s := range p.Skills {
		write(s.Name)
		for _, skill := range s.Skills {
			write(skill)
		}
	}
	return sb.String()
}
