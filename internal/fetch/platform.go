// Package fetch - platform.go maps job board hosts to content and noise selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformAshby is the Ashby ATS platform
	PlatformAshby Platform = "ashby"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

type platformSpec struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
	// spa marks boards that render the posting client-side
	spa bool
}

var platforms = []platformSpec{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
		spa:      true,
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='_descriptionText']", "[class*='_description_']", "main"},
		noise:    []string{"[class*='_applicationForm']"},
		spa:      true,
	},
}

// commonNoiseSelectors apply to every page
var commonNoiseSelectors = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	if spec := lookupPlatform(urlStr); spec != nil {
		return spec.platform
	}
	return PlatformUnknown
}

func lookupPlatform(urlStr string) *platformSpec {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for i := range platforms {
		for _, h := range platforms[i].hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return &platforms[i]
			}
		}
	}
	return nil
}

func specFor(platform Platform) *platformSpec {
	for i := range platforms {
		if platforms[i].platform == platform {
			return &platforms[i]
		}
	}
	return nil
}

// PlatformContentSelectors returns content selectors for a platform, most specific first.
// Unknown platforms get the generic job posting selectors.
func PlatformContentSelectors(platform Platform) []string {
	spec := specFor(platform)
	if spec == nil {
		return JobPostingSelectors()
	}
	return append(append([]string{}, spec.content...), JobPostingSelectors()...)
}

// PlatformNoiseSelectors returns noise exclusion selectors for a platform.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string{}, commonNoiseSelectors...)
	if spec := specFor(platform); spec != nil {
		out = append(out, spec.noise...)
	}
	return out
}

// RequiresBrowser reports whether a platform renders postings client-side
func RequiresBrowser(platform Platform) bool {
	spec := specFor(platform)
	return spec != nil && spec.spa
}
