// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Requirements represents a job posting reduced to the fields used for tailoring
type Requirements struct {
	Company              string    `json:"company,omitempty" yaml:"company,omitempty"`
	Role                 string    `json:"role" yaml:"role" validate:"required"`
	RawDescription       string    `json:"raw_description" yaml:"raw_description" validate:"required"`
	KeyRequirements      []string  `json:"key_requirements" yaml:"key_requirements"`
	TechnicalSkills      []string  `json:"technical_skills" yaml:"technical_skills"`
	SoftSkills           []string  `json:"soft_skills" yaml:"soft_skills"`
	KeywordsForATS       []string  `json:"keywords_for_ats" yaml:"keywords_for_ats"`
	MainResponsibilities []string  `json:"main_responsibilities" yaml:"main_responsibilities"`
	NiceToHave           []string  `json:"nice_to_have" yaml:"nice_to_have"`
	SourceURL            string    `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	ParsedAt             time.Time `json:"parsed_at" yaml:"parsed_at"`
}

// HasMinimumData reports whether the role and the raw description are both present
func (r *Requirements) HasMinimumData() bool {
	if r == nil {
		return false
	}
	return r.Validate() == nil
}

// Validate validates the Requirements using the validator.
// Whitespace-only values count as missing. Field errors use JSON names.
func (r *Requirements) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	trimmed := *r
	trimmed.Role = strings.TrimSpace(r.Role)
	trimmed.RawDescription = strings.TrimSpace(r.RawDescription)
	return validate.Struct(&trimmed)
}

// AllKeywords returns ATS keywords followed by technical and soft skills,
// without case-insensitive duplicates
func (r *Requirements) AllKeywords() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{r.KeywordsForATS, r.TechnicalSkills, r.SoftSkills} {
		for _, kw := range list {
			key := strings.ToLower(strings.TrimSpace(kw))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(kw))
		}
	}
	return out
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
