package validation

// Violation types
const (
	TypeForbiddenPhrase = "forbidden_phrase"
)

// Severity levels
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Violation is one finding about a tailored profile
type Violation struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Location string `json:"location"`
	Phrase   string `json:"phrase,omitempty"`
	Details  string `json:"details"`
}

// Phrases returns the distinct phrases found, in first-seen order
func Phrases(violations []Violation) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range violations {
		if v.Phrase == "" || seen[v.Phrase] {
			continue
		}
		seen[v.Phrase] = true
		out = append(out, v.Phrase)
	}
	return out
}
