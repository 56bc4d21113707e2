package rendering

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// ContactLink is one rendered contact slot
type ContactLink struct {
	Kind string
	Text string
	Href template.URL
}

var contactKinds = [types.ContactSlots]string{"phone", "email", "linkedin", "github"}

// ContactLinks converts the contact slots into display links, skipping empty slots
func ContactLinks(c types.Contact) []ContactLink {
	links := make([]ContactLink, 0, len(c))
	for i, value := range c {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		kind := contactKinds[i]
		links = append(links, ContactLink{
			Kind: kind,
			Text: DisplayURL(value),
			Href: contactHref(kind, value),
		})
	}
	return links
}

// DisplayURL strips the scheme, "www." and a trailing slash from web addresses
func DisplayURL(value string) string {
	out := strings.TrimPrefix(strings.TrimPrefix(value, "https://"), "http://")
	out = strings.TrimPrefix(out, "www.")
	if out != value {
		out = strings.TrimSuffix(out, "/")
	}
	return out
}

// contactHref builds a link target; values that cannot be linked safely get none
func contactHref(kind, value string) template.URL {
	switch kind {
	case "phone":
		digits := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '+' {
				return r
			}
			return -1
		}, value)
		if digits == "" {
			return ""
		}
		return template.URL("tel:" + digits)
	case "email":
		if !strings.Contains(value, "@") || strings.ContainsAny(value, " <>\"") {
			return ""
		}
		return template.URL("mailto:" + value)
	default:
		if !strings.Contains(value, "://") {
			value = "https://" + value
		}
		parsed, err := url.Parse(value)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return ""
		}
		return template.URL(parsed.String())
	}
}
