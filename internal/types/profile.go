package types

// ContactSlots is the fixed number of contact entries: phone, email, linkedin, github
const ContactSlots = 4

// Profile represents a résumé in the base-profile file format
type Profile struct {
	Candidate  Candidate         `yaml:"candidate" json:"candidate"`
	Summary    string            `yaml:"summary" json:"summary"`
	Contact    Contact           `yaml:"contact" json:"contact"`
	Experience []ExperienceEntry `yaml:"experience" json:"experience"`
	Education  []EducationEntry  `yaml:"education" json:"education"`
	Skills     []SkillCategory   `yaml:"skills" json:"skills"`
}

// Candidate holds the name and headline title
type Candidate struct {
	Name  string `yaml:"name" json:"name"`
	Title string `yaml:"title" json:"title"`
}

// Contact holds the four ordered contact slots
type Contact [ContactSlots]string

// Phone returns the phone slot
func (c Contact) Phone() string { return c[0] }

// Email returns the email slot
func (c Contact) Email() string { return c[1] }

// LinkedIn returns the linkedin slot
func (c Contact) LinkedIn() string { return c[2] }

// GitHub returns the github slot
func (c Contact) GitHub() string { return c[3] }

// ExperienceEntry is one position held
type ExperienceEntry struct {
	Title        string   `yaml:"title" json:"title"`
	Dates        string   `yaml:"dates" json:"dates"`
	Company      string   `yaml:"company" json:"company"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	Achievements []string `yaml:"achievements" json:"achievements"`
}

// EducationEntry is one degree
type EducationEntry struct {
	Degree         string   `yaml:"degree" json:"degree"`
	GraduationDate string   `yaml:"graduation_date" json:"graduation_date"`
	University     string   `yaml:"university" json:"university"`
	Details        []string `yaml:"details" json:"details"`
}

// SkillCategory groups skills under a heading
type SkillCategory struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Clone returns a deep copy of the profile
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := &Profile{
		Candidate: p.Candidate,
		Summary:   p.Summary,
		Contact:   p.Contact,
	}
	for _, e := range p.Experience {
		e.Achievements = cloneStrings(e.Achievements)
		out.Experience = append(out.Experience, e)
	}
	for _, e := range p.Education {
		e.Details = cloneStrings(e.Details)
		out.Education = append(out.Education, e)
	}
	for _, s := range p.Skills {
		s.Skills = cloneStrings(s.Skills)
		out.Skills = append(out.Skills, s)
	}
	return out
}

// SkillNames returns every skill across all categories, in order
func (p *Profile) SkillNames() []string {
	var out []string
	for _, cat := range p.Skills {
		out = append(out, cat.Skills...)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
