package rendering

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultStyle is used when no style is requested
const DefaultStyle = "default"

// TemplateName is the file name of the base résumé template
const TemplateName = "resume.html.tmpl"

const styleExt = ".css"

//go:embed templates/resume.html.tmpl styles/*.css
var assets embed.FS

// Renderer renders profiles with the embedded template and stylesheets.
// StylesDir, when set, is searched first for both "<style>.css" and the template.
// TemplatePath, when set, replaces the template entirely.
type Renderer struct {
	StylesDir    string
	TemplatePath string
}

// NewRenderer creates a Renderer with an optional override directory
func NewRenderer(stylesDir string) *Renderer {
	return &Renderer{StylesDir: stylesDir}
}

// TemplateData is the value the résumé template executes against
type TemplateData struct {
	Name       string
	Title      string
	Summary    string
	Contacts   []ContactLink
	Companies  []CompanySection
	Education  []types.EducationEntry
	Skills     []types.SkillCategory
	Style      string
	Stylesheet template.CSS
}

// CompanySection groups consecutive positions held at the same company
type CompanySection struct {
	Company string
	Roles   []RoleSection
}

// RoleSection is one position within a company
type RoleSection struct {
	Title        string
	Dates        string
	Description  string
	Achievements []string
}

// Render produces a complete HTML document for the profile in the given style
func (r *Renderer) Render(profile *types.Profile, style string) (string, error) {
	if profile == nil {
		return "", errors.New("profile is nil")
	}
	if style == "" {
		style = DefaultStyle
	}

	css, err := r.loadStyle(style)
	if err != nil {
		return "", err
	}

	tmpl, err := r.parseTemplate()
	if err != nil {
		return "", err
	}

	data := buildTemplateData(profile)
	data.Style = style
	data.Stylesheet = template.CSS(css)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// ListStyles returns the names of every available style, sorted
func (r *Renderer) ListStyles() ([]string, error) {
	seen := make(map[string]bool)

	embedded, err := fs.Glob(assets, "styles/*"+styleExt)
	if err != nil {
		return nil, err
	}
	for _, path := range embedded {
		seen[strings.TrimSuffix(filepath.Base(path), styleExt)] = true
	}

	if r.StylesDir != "" {
		entries, err := os.ReadDir(r.StylesDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read styles directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), styleExt) {
				seen[strings.TrimSuffix(entry.Name(), styleExt)] = true
			}
		}
	}

	styles := make([]string, 0, len(seen))
	for name := range seen {
		styles = append(styles, name)
	}
	sort.Strings(styles)
	return styles, nil
}

func (r *Renderer) loadStyle(style string) (string, error) {
	if !validStyleName(style) {
		return "", r.styleNotFound(style)
	}
	file := style + styleExt

	if r.StylesDir != "" {
		content, err := os.ReadFile(filepath.Join(r.StylesDir, file))
		if err == nil {
			return string(content), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read style %q: %w", style, err)
		}
	}

	content, err := assets.ReadFile("styles/" + file)
	if err != nil {
		return "", r.styleNotFound(style)
	}
	return string(content), nil
}

func (r *Renderer) styleNotFound(style string) error {
	available, _ := r.ListStyles()
	return &StyleNotFoundError{Style: style, Available: available}
}

// parseTemplate reads the template from TemplatePath, StylesDir or the embedded copy
func (r *Renderer) parseTemplate() (*template.Template, error) {
	var (
		content []byte
		err     error
	)
	switch {
	case r.TemplatePath != "":
		content, err = os.ReadFile(r.TemplatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{
					Message: fmt.Sprintf("template file not found: %s", r.TemplatePath),
					Cause:   err,
				}
			}
			return nil, &TemplateError{
				Message: fmt.Sprintf("failed to read template file: %s", r.TemplatePath),
				Cause:   err,
			}
		}
	case r.StylesDir != "":
		content, err = os.ReadFile(filepath.Join(r.StylesDir, TemplateName))
		if err != nil && !os.IsNotExist(err) {
			return nil, &TemplateError{Message: "failed to read template file", Cause: err}
		}
	}
	if content == nil {
		content, err = assets.ReadFile("templates/" + TemplateName)
		if err != nil {
			return nil, &TemplateError{Message: "embedded template missing", Cause: err}
		}
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// buildTemplateData constructs the template data from a profile.
// Entry order is preserved; only adjacent entries at the same company are grouped.
func buildTemplateData(p *types.Profile) *TemplateData {
	return &TemplateData{
		Name:      p.Candidate.Name,
		Title:     p.Candidate.Title,
		Summary:   p.Summary,
		Contacts:  ContactLinks(p.Contact),
		Companies: groupByCompany(p.Experience),
		Education: p.Education,
		Skills:    nonEmptySkills(p.Skills),
	}
}

func groupByCompany(entries []types.ExperienceEntry) []CompanySection {
	companies := make([]CompanySection, 0, len(entries))
	for _, e := range entries {
		role := RoleSection{
			Title:        e.Title,
			Dates:        e.Dates,
			Description:  e.Description,
			Achievements: e.Achievements,
		}
		if n := len(companies); n > 0 && companies[n-1].Company == e.Company {
			companies[n-1].Roles = append(companies[n-1].Roles, role)
			continue
		}
		companies = append(companies, CompanySection{Company: e.Company, Roles: []RoleSection{role}})
	}
	return companies
}

func nonEmptySkills(categories []types.SkillCategory) []types.SkillCategory {
	out := make([]types.SkillCategory, 0, len(categories))
	for _, c := range categories {
		if len(c.Skills) > 0 {
			out = append(out, c)
		}
	}
	return out
}

func validStyleName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
