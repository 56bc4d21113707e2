package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(RequirementsFile, "extract-requirements")
	require.NoError(t, err)
	assert.Contains(t, prompt, "keywords_for_ats")
	assert.Contains(t, prompt, "{{.JobText}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(TailoringFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(TailoringFile, SystemKey))
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{"fills values", "Hello {{.Name}}, welcome to {{.Company}}!", map[string]string{"Name": "Alice", "Company": "Acme Corp"}, "Hello Alice, welcome to Acme Corp!"},
		{"no placeholders", "No placeholders here", map[string]string{"Key": "Value"}, "No placeholders here"},
		{"missing value kept", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"value containing placeholder is not expanded", "{{.A}} {{.B}}", map[string]string{"A": "{{.B}}", "B": "b"}, "{{.B}} b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Placeholders("{{.B}} {{.A}} {{.B}}"))
	assert.Empty(t, Placeholders("{{ .NotAPlaceholder }}"))
}

func TestRender(t *testing.T) {
	ClearCache()

	_, err := Render(RequirementsFile, "extract-requirements", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JobText")

	out, err := Render(RequirementsFile, "extract-requirements", map[string]string{"JobText": "Go engineer wanted"})
	require.NoError(t, err)
	assert.Contains(t, out, "Go engineer wanted")
	assert.NotContains(t, out, "{{.")
}

func TestTailoringPlaceholders(t *testing.T) {
	ClearCache()

	tmpl := MustGet(TailoringFile, "tailor-profile")
	assert.Equal(t, []string{
		"Company", "JobDescription", "KeyRequirements", "Keywords", "Profile",
		"Responsibilities", "Role", "SoftSkills", "TechnicalSkills",
	}, Placeholders(tmpl))
}
