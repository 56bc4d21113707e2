package parsing

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"ci/cd":      "CI/CD",
	"ci cd":      "CI/CD",
}

// NormalizeSkillName maps a skill to its canonical spelling.
// Unknown names are trimmed and otherwise kept as written.
func NormalizeSkillName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if canonical, ok := skillNormalizations[strings.ToLower(normalized)]; ok {
		return canonical
	}
	return normalized
}

// NormalizeList trims items, drops empties and removes case-insensitive duplicates.
// When canonical is set, skill names are mapped to their canonical spelling first.
func NormalizeList(items []string, canonical bool) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		v := strings.Join(strings.Fields(item), " ")
		if canonical {
			v = NormalizeSkillName(v)
		}
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// normalizeRequirements cleans every list field in place
func normalizeRequirements(req *types.Requirements) {
	req.Company = strings.TrimSpace(req.Company)
	req.Role = strings.TrimSpace(req.Role)
	req.KeyRequirements = NormalizeList(req.KeyRequirements, false)
	req.TechnicalSkills = NormalizeList(req.TechnicalSkills, true)
	req.SoftSkills = NormalizeList(req.SoftSkills, false)
	req.KeywordsForATS = NormalizeList(req.KeywordsForATS, true)
	req.MainResponsibilities = NormalizeList(req.MainResponsibilities, false)
	req.NiceToHave = NormalizeList(req.NiceToHave, false)
}
