package rendering

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-tailor/internal/types"
)

func TestContactLinks_SkipsEmptySlots(t *testing.T) {
	links := ContactLinks(types.Contact{"", "me@example.com", "  ", "github.com/me"})

	assert.Equal(t, []ContactLink{
		{Kind: "email", Text: "me@example.com", Href: "mailto:me@example.com"},
		{Kind: "github", Text: "github.com/me", Href: "https://github.com/me"},
	}, links)
}

func TestDisplayURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.linkedin.com/in/ada/", "linkedin.com/in/ada"},
		{"http://github.com/ada", "github.com/ada"},
		{"github.com/ada/", "github.com/ada/"},
		{"ada@example.com", "ada@example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DisplayURL(tt.input), tt.input)
	}
}

func TestContactHref(t *testing.T) {
	tests := []struct {
		kind     string
		value    string
		expected template.URL
	}{
		{"phone", "+44 20 7946 0000", "tel:+442079460000"},
		{"phone", "n/a", ""},
		{"email", "ada@example.com", "mailto:ada@example.com"},
		{"email", "not an email", ""},
		{"linkedin", "linkedin.com/in/ada", "https://linkedin.com/in/ada"},
		{"github", "javascript:alert(1)", ""},
		{"github", "ftp://github.com/ada", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, contactHref(tt.kind, tt.value), tt.kind+" "+tt.value)
	}
}
