// Package rendering turns a career record plus design settings into a LaTeX document.
package rendering

import (
	_ "embed"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/cv-workbench/internal/types"
)

//go:embed templates/cv.tex
var defaultTemplate string

// Template actions use << >> so LaTeX braces never collide with them.
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

var sectionTitles = map[string]string{
	types.SectionSummary:        "Professional Summary",
	types.SectionExperience:     "Experience",
	types.SectionSkills:         "Core Skills",
	types.SectionEducation:      "Education",
	types.SectionCertifications: "Certifications",
}

// TemplateData is what the LaTeX template sees. Every string is already escaped.
type TemplateData struct {
	Name     string
	Title    string
	Contact  string
	Photo    string
	Accent   string
	FontSize int
	Paper    string
	Sections []SectionData
}

// SectionData is one rendered section. Only the field matching Key is populated.
type SectionData struct {
	Key            string
	Title          string
	Summary        string
	Experiences    []ExperienceEntry
	Skills         []SkillGroup
	Education      []EducationEntry
	Certifications []CertificationEntry
}

// ExperienceEntry is a role with its achievement bullets
type ExperienceEntry struct {
	Role     string
	Company  string
	Period   string
	Location string
	Bullets  []string
}

// SkillGroup is one labelled line of comma-joined skills
type SkillGroup struct {
	Label string
	Items string
}

// EducationEntry is a degree line
type EducationEntry struct {
	Degree      string
	Institution string
	Year        string
}

// CertificationEntry is a certification line
type CertificationEntry struct {
	Name   string
	Issuer string
	Year   string
}

// RenderLaTeX renders record with the embedded CV template
func RenderLaTeX(record *types.CareerRecord, settings types.DesignSettings) (string, error) {
	tmpl, err := parseTemplate("cv", defaultTemplate)
	if err != nil {
		return "", err
	}
	return execute(tmpl, record, settings)
}

// RenderLaTeXFromFile renders record with a template read from templatePath
func RenderLaTeXFromFile(record *types.CareerRecord, settings types.DesignSettings, templatePath string) (string, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{Template: templatePath, Message: "template file not found", Cause: err}
		}
		return "", &TemplateError{Template: templatePath, Message: "failed to read template file", Cause: err}
	}

	tmpl, err := parseTemplate(templatePath, string(content))
	if err != nil {
		return "", err
	}
	return execute(tmpl, record, settings)
}

func parseTemplate(name, content string) (*template.Template, error) {
	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Funcs(template.FuncMap{"escape": EscapeLaTeX}).
		Parse(content)
	if err != nil {
		return nil, &TemplateError{Template: name, Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, record *types.CareerRecord, settings types.DesignSettings) (string, error) {
	if record == nil {
		return "", &RenderError{Message: "no career record to render"}
	}
	if err := settings.Validate(); err != nil {
		return "", &RenderError{Message: "invalid design settings", Cause: err}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(record, settings)); err != nil {
		return "", &TemplateError{Template: tmpl.Name(), Message: "failed to execute template", Cause: err}
	}
	return result.String(), nil
}

func buildTemplateData(record *types.CareerRecord, settings types.DesignSettings) *TemplateData {
	settings = settings.WithDefaults()

	data := &TemplateData{
		Name:     EscapeLaTeX(record.Profile.Name),
		Title:    EscapeLaTeX(record.Profile.Title),
		Contact:  contactLine(record.Profile),
		Accent:   strings.ToUpper(strings.TrimPrefix(settings.AccentColor, "#")),
		FontSize: settings.FontSize,
		Paper:    paperOption(settings.PaperSize),
	}
	if len(data.Accent) == 3 {
		data.Accent = expandShortHex(data.Accent)
	}
	if settings.ShowPhoto && isLocalImage(record.Profile.Photo) {
		data.Photo = record.Profile.Photo
	}

	for _, key := range OrderedSections(record) {
		if section, ok := buildSection(record, key); ok {
			data.Sections = append(data.Sections, section)
		}
	}
	return data
}

// OrderedSections returns the visible sections in render order. The record's order comes
// first; known sections it omits follow in default order. Unknown and duplicate keys are dropped.
func OrderedSections(record *types.CareerRecord) []string {
	if record == nil {
		return nil
	}

	seen := make(map[string]bool)
	var ordered []string
	add := func(key string) {
		if _, known := sectionTitles[key]; !known || seen[key] {
			return
		}
		seen[key] = true
		if visible, set := record.SectionVisibility[key]; set && !visible {
			return
		}
		ordered = append(ordered, key)
	}

	for _, key := range record.SectionOrder {
		add(key)
	}
	for _, key := range types.DefaultSectionOrder() {
		add(key)
	}
	return ordered
}

// buildSection reports false for sections with nothing to show
func buildSection(record *types.CareerRecord, key string) (SectionData, bool) {
	section := SectionData{Key: key, Title: sectionTitles[key]}

	switch key {
	case types.SectionSummary:
		section.Summary = EscapeLaTeX(strings.TrimSpace(record.Summary))
		return section, section.Summary != ""

	case types.SectionExperience:
		for _, exp := range record.Experiences {
			entry := ExperienceEntry{
				Role:     EscapeLaTeX(exp.Role),
				Company:  EscapeLaTeX(exp.Company),
				Period:   EscapeLaTeX(exp.Period),
				Location: EscapeLaTeX(exp.Location),
			}
			for _, a := range exp.Achievements {
				if text := strings.TrimSpace(a.Text); text != "" {
					entry.Bullets = append(entry.Bullets, EscapeLaTeX(text))
				}
			}
			if entry.Role == "" && entry.Company == "" && len(entry.Bullets) == 0 {
				continue
			}
			section.Experiences = append(section.Experiences, entry)
		}
		return section, len(section.Experiences) > 0

	case types.SectionSkills:
		groups := []struct {
			label  string
			skills []string
		}{
			{"Technical", record.Skills.Technical},
			{"Governance", record.Skills.Governance},
			{"Leadership", record.Skills.Leadership},
		}
		for _, g := range groups {
			if len(g.skills) == 0 {
				continue
			}
			section.Skills = append(section.Skills, SkillGroup{
				Label: g.label,
				Items: EscapeLaTeX(strings.Join(g.skills, ", ")),
			})
		}
		return section, len(section.Skills) > 0

	case types.SectionEducation:
		for _, ed := range record.Education {
			degree := ed.Degree
			if ed.Field != "" {
				degree = strings.TrimSpace(degree + " in " + ed.Field)
			}
			if degree == "" && ed.Institution == "" {
				continue
			}
			section.Education = append(section.Education, EducationEntry{
				Degree:      EscapeLaTeX(degree),
				Institution: EscapeLaTeX(ed.Institution),
				Year:        EscapeLaTeX(ed.Year),
			})
		}
		return section, len(section.Education) > 0

	case types.SectionCertifications:
		for _, cert := range record.Certifications {
			if strings.TrimSpace(cert.Name) == "" {
				continue
			}
			section.Certifications = append(section.Certifications, CertificationEntry{
				Name:   EscapeLaTeX(cert.Name),
				Issuer: EscapeLaTeX(cert.Issuer),
				Year:   EscapeLaTeX(cert.Year),
			})
		}
		return section, len(section.Certifications) > 0
	}

	return section, false
}

func contactLine(p types.Profile) string {
	var parts []string
	for _, field := range []string{p.Email, p.Phone, p.Location, p.LinkedIn, p.Website, p.GitHub} {
		if field = strings.TrimSpace(field); field != "" {
			parts = append(parts, EscapeLaTeX(field))
		}
	}
	return strings.Join(parts, ` \textbar{} `)
}

func paperOption(size string) string {
	if size == types.PaperLetter {
		return "letterpaper"
	}
	return "a4paper"
}

func expandShortHex(hex string) string {
	var b strings.Builder
	for _, r := range hex {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

// isLocalImage rejects data URLs and remote images, which LaTeX cannot include.
func isLocalImage(photo string) bool {
	photo = strings.ToLower(strings.TrimSpace(photo))
	if photo == "" || strings.HasPrefix(photo, "data:") || strings.Contains(photo, "://") {
		return false
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".pdf"} {
		if strings.HasSuffix(photo, ext) {
			return true
		}
	}
	return false
}
