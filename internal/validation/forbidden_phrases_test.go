package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/types"
)

func profileWith(summary string, achievements ...string) *types.Profile {
	return &types.Profile{
		Candidate: types.Candidate{Name: "Ada Lovelace", Title: "Engineer"},
		Summary:   summary,
		Experience: []types.ExperienceEntry{
			{Title: "Engineer", Company: "Acme", Achievements: achievements},
		},
	}
}

func TestCheckForbiddenPhrases(t *testing.T) {
	tests := []struct {
		name          string
		profile       *types.Profile
		phrases       []string
		wantLocations []string
	}{
		{
			name:    "no phrases configured",
			profile: profileWith("Responsible for everything"),
			phrases: nil,
		},
		{
			name:    "nil profile",
			phrases: DefaultForbiddenPhrases,
		},
		{
			name:    "clean profile",
			profile: profileWith("Backend engineer shipping Go services.", "Cut p99 latency by 40%"),
			phrases: DefaultForbiddenPhrases,
		},
		{
			name:          "case insensitive match in summary",
			profile:       profileWith("RESULTS-DRIVEN engineer."),
			phrases:       DefaultForbiddenPhrases,
			wantLocations: []string{"summary"},
		},
		{
			name:          "whitespace and typographic dash folded",
			profile:       profileWith("", "Was  responsible for billing", "Results\u2010driven delivery"),
			phrases:       DefaultForbiddenPhrases,
			wantLocations: []string{"experience[0].achievements[0]", "experience[0].achievements[1]"},
		},
		{
			name:          "one violation per field",
			profile:       profileWith("A passionate about synergy team player"),
			phrases:       DefaultForbiddenPhrases,
			wantLocations: []string{"summary"},
		},
		{
			name:    "blank phrase ignored",
			profile: profileWith("Anything"),
			phrases: []string{"  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckForbiddenPhrases(tt.profile, tt.phrases)
			var locations []string
			for _, v := range got {
				assert.Equal(t, TypeForbiddenPhrase, v.Type)
				assert.Equal(t, SeverityWarning, v.Severity)
				locations = append(locations, v.Location)
			}
			assert.Equal(t, tt.wantLocations, locations)
		})
	}
}

func TestCheckForbiddenPhrases_EducationDetails(t *testing.T) {
	p := &types.Profile{
		Education: []types.EducationEntry{{Degree: "BSc", Details: []string{"Known as a go-getter"}}},
	}

	got := CheckForbiddenPhrases(p, DefaultForbiddenPhrases)
	require.Len(t, got, 1)
	assert.Equal(t, "education[0].details[0]", got[0].Location)
	assert.Equal(t, "go-getter", got[0].Phrase)
	assert.Contains(t, got[0].Details, "forbidden phrase: go-getter")
}

func TestPhrases(t *testing.T) {
	violations := []Violation{
		{Phrase: "synergy"},
		{Phrase: "team player"},
		{Phrase: "synergy"},
		{},
	}
	assert.Equal(t, []string{"synergy", "team player"}, Phrases(violations))
	assert.Nil(t, Phrases(nil))
}
