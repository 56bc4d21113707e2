package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
		{"https://jobs.lever.co/company/abc-123", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://wd1.workday.com/acme/job/1", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/5f2c", PlatformAshby},
		{"https://notgreenhouse.io.example.com/jobs", PlatformUnknown},
		{"https://example.com/careers/engineer", PlatformUnknown},
		{"://bad url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	greenhouse := PlatformContentSelectors(PlatformGreenhouse)
	assert.Equal(t, ".job__description.body", greenhouse[0])
	assert.Contains(t, greenhouse, "main")

	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformContentSelectors_DoesNotAliasTable(t *testing.T) {
	first := PlatformContentSelectors(PlatformLever)
	first[0] = "mutated"
	assert.Equal(t, ".posting-page", PlatformContentSelectors(PlatformLever)[0])
}

func TestPlatformNoiseSelectors(t *testing.T) {
	lever := PlatformNoiseSelectors(PlatformLever)
	assert.Contains(t, lever, "form")
	assert.Contains(t, lever, ".posting-apply")

	unknown := PlatformNoiseSelectors(PlatformUnknown)
	assert.Equal(t, commonNoiseSelectors, unknown)
}

func TestRequiresBrowser(t *testing.T) {
	assert.True(t, RequiresBrowser(PlatformWorkday))
	assert.True(t, RequiresBrowser(PlatformAshby))
	assert.False(t, RequiresBrowser(PlatformGreenhouse))
	assert.False(t, RequiresBrowser(PlatformUnknown))
}
