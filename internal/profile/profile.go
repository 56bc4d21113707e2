package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/cv-tailor/internal/schemas"
	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultPath is the base profile used when none is given
const DefaultPath = "data/user_profile_resume_format.yaml"

// Defaults applied to fields absent from the file
const (
	DefaultName          = "Unknown"
	DefaultTitle         = "Professional"
	DefaultPosition      = "Position"
	DefaultCompany       = "Company"
	DefaultDegree        = "Degree"
	DefaultUniversity    = "University"
	DefaultSkillCategory = "General"
)

// ErrEmpty is returned for a file with no YAML content
var ErrEmpty = errors.New("profile is empty")

// Loader reads profiles from disk
type Loader struct{}

// LoadProfile implements the pipeline's profile loader
func (Loader) LoadProfile(path string) (*types.Profile, error) {
	return Load(path)
}

// Load reads and decodes a profile file
func Load(path string) (*types.Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	p, err := Decode(content)
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to parse profile",
			Cause:   err,
		}
	}
	return p, nil
}

type rawCandidate struct {
	Name  *string `yaml:"name"`
	Title *string `yaml:"title"`
}

type rawExperience struct {
	Title        *string  `yaml:"title"`
	Dates        string   `yaml:"dates"`
	Company      *string  `yaml:"company"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
}

type rawEducation struct {
	Degree         *string  `yaml:"degree"`
	GraduationDate string   `yaml:"graduation_date"`
	University     *string  `yaml:"university"`
	Details        []string `yaml:"details"`
}

type rawSkillCategory struct {
	Name   *string  `yaml:"name"`
	Skills []string `yaml:"skills"`
}

type rawProfile struct {
	Candidate  rawCandidate       `yaml:"candidate"`
	Summary    string             `yaml:"summary"`
	Contact    yaml.Node          `yaml:"contact"`
	Experience []rawExperience    `yaml:"experience"`
	Education  []rawEducation     `yaml:"education"`
	Skills     []rawSkillCategory `yaml:"skills"`
}

// Decode parses YAML content into a profile.
// The document is checked against the profile schema first, then missing
// fields are filled with defaults and the contact block is normalized to four slots.
func Decode(content []byte) (*types.Profile, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmpty
	}

	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, &DecodeError{Message: "invalid YAML", Cause: err}
	}
	if doc == nil {
		return nil, ErrEmpty
	}
	if err := schemas.ValidateDocument(schemas.Profile, doc); err != nil {
		return nil, &DecodeError{Message: "profile does not match schema", Cause: err}
	}

	var raw rawProfile
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, &DecodeError{Message: "invalid profile structure", Cause: err}
	}

	contact, err := decodeContact(&raw.Contact)
	if err != nil {
		return nil, err
	}

	p := &types.Profile{
		Candidate: types.Candidate{
			Name:  orDefault(raw.Candidate.Name, DefaultName),
			Title: orDefault(raw.Candidate.Title, DefaultTitle),
		},
		Summary: raw.Summary,
		Contact: contact,
	}
	for _, e := range raw.Experience {
		p.Experience = append(p.Experience, types.ExperienceEntry{
			Title:        orDefault(e.Title, DefaultPosition),
			Dates:        e.Dates,
			Company:      orDefault(e.Company, DefaultCompany),
			Description:  e.Description,
			Achievements: nonNil(e.Achievements),
		})
	}
	for _, e := range raw.Education {
		p.Education = append(p.Education, types.EducationEntry{
			Degree:         orDefault(e.Degree, DefaultDegree),
			GraduationDate: e.GraduationDate,
			University:     orDefault(e.University, DefaultUniversity),
			Details:        nonNil(e.Details),
		})
	}
	for _, s := range raw.Skills {
		p.Skills = append(p.Skills, types.SkillCategory{
			Name:   orDefault(s.Name, DefaultSkillCategory),
			Skills: nonNil(s.Skills),
		})
	}
	return p, nil
}

// decodeContact accepts either a list (padded or truncated to four entries)
// or a mapping with phone, email, linkedin and github keys.
func decodeContact(node *yaml.Node) (types.Contact, error) {
	var contact types.Contact

	switch node.Kind {
	case 0:
		return contact, nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return contact, &DecodeError{Message: "invalid contact list", Cause: err}
		}
		copy(contact[:], list)
	case yaml.MappingNode:
		var m struct {
			Phone    string `yaml:"phone"`
			Email    string `yaml:"email"`
			LinkedIn string `yaml:"linkedin"`
			GitHub   string `yaml:"github"`
		}
		if err := node.Decode(&m); err != nil {
			return contact, &DecodeError{Message: "invalid contact mapping", Cause: err}
		}
		contact = types.Contact{m.Phone, m.Email, m.LinkedIn, m.GitHub}
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return contact, &DecodeError{Message: fmt.Sprintf("contact must be a list or mapping, got %q", node.Value)}
		}
	}
	return contact, nil
}

// Encode serializes a profile to YAML in the base-profile file format
func Encode(p *types.Profile) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes a profile as YAML to w
func Write(w io.Writer, p *types.Profile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return enc.Close()
}

func orDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	return strings.TrimSpace(*v)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
