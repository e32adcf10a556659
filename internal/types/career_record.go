// Package types provides type definitions for structured data used throughout the cv-workbench system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// Section names used by sectionOrder and sectionVisibility
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionSkills         = "skills"
	SectionEducation      = "education"
	SectionCertifications = "certifications"
)

// CareerRecord is the structured career data produced by the parser and consumed by
// the scorer, the analyzer and the renderer.
type CareerRecord struct {
	Profile           Profile         `json:"profile"`
	Summary           string          `json:"summary"`
	Experiences       []Experience    `json:"experiences" validate:"dive"`
	Education         []Education     `json:"education" validate:"dive"`
	Certifications    []Certification `json:"certifications" validate:"dive"`
	Skills            Skills          `json:"skills"`
	SectionOrder      []string        `json:"sectionOrder"`
	SectionVisibility map[string]bool `json:"sectionVisibility"`
}

// Profile holds contact and headline fields
type Profile struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	GitHub   string `json:"github"`
	Photo    string `json:"photo"`
}

// Experience is a single role held at a company
type Experience struct {
	ID           string        `json:"id" validate:"required"`
	Role         string        `json:"role"`
	Company      string        `json:"company"`
	Period       string        `json:"period"`
	Location     string        `json:"location"`
	Achievements []Achievement `json:"achievements" validate:"dive"`
}

// Achievement is a single accomplishment statement under an experience
type Achievement struct {
	ID      string   `json:"id" validate:"required"`
	Text    string   `json:"text"`
	Metrics string   `json:"metrics"`
	Tags    []string `json:"tags"`
}

// Education is a degree or qualification entry
type Education struct {
	ID          string `json:"id" validate:"required"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Certification is a professional certification entry
type Certification struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
	Valid  bool   `json:"valid"`
}

// Skills groups distinct skill strings into three buckets
type Skills struct {
	Technical  []string `json:"technical"`
	Governance []string `json:"governance"`
	Leadership []string `json:"leadership"`
}

// NewID mints a fresh opaque identifier for an entity
func NewID() string {
	return uuid.NewString()
}

// DefaultSectionOrder returns the section order used when a record carries none
func DefaultSectionOrder() []string {
	return []string{SectionSummary, SectionExperience, SectionSkills, SectionEducation, SectionCertifications}
}

// DefaultSectionVisibility returns a visibility map with every section shown
func DefaultSectionVisibility() map[string]bool {
	visibility := make(map[string]bool, 5)
	for _, section := range DefaultSectionOrder() {
		visibility[section] = true
	}
	return visibility
}

// NewCareerRecord returns an empty record with all collections and scaffolding initialized
func NewCareerRecord() *CareerRecord {
	record := &CareerRecord{}
	record.Normalize()
	return record
}

// Normalize replaces nil collections with empty ones so serialized records never carry null
// for a collection field. It is idempotent.
func (r *CareerRecord) Normalize() {
	if r.Experiences == nil {
		r.Experiences = []Experience{}
	}
	for i := range r.Experiences {
		if r.Experiences[i].Achievements == nil {
			r.Experiences[i].Achievements = []Achievement{}
		}
		for j := range r.Experiences[i].Achievements {
			if r.Experiences[i].Achievements[j].Tags == nil {
				r.Experiences[i].Achievements[j].Tags = []string{}
			}
		}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Skills.Technical == nil {
		r.Skills.Technical = []string{}
	}
	if r.Skills.Governance == nil {
		r.Skills.Governance = []string{}
	}
	if r.Skills.Leadership == nil {
		r.Skills.Leadership = []string{}
	}
	if len(r.SectionOrder) == 0 {
		r.SectionOrder = DefaultSectionOrder()
	}
	if r.SectionVisibility == nil {
		r.SectionVisibility = DefaultSectionVisibility()
	}
}

// Clone returns a deep copy of the record
func (r *CareerRecord) Clone() *CareerRecord {
	if r == nil {
		return nil
	}

	clone := *r
	clone.Experiences = cloneExperiences(r.Experiences)
	if r.Education != nil {
		clone.Education = append([]Education{}, r.Education...)
	}
	if r.Certifications != nil {
		clone.Certifications = append([]Certification{}, r.Certifications...)
	}
	clone.Skills = Skills{
		Technical:  cloneStrings(r.Skills.Technical),
		Governance: cloneStrings(r.Skills.Governance),
		Leadership: cloneStrings(r.Skills.Leadership),
	}
	clone.SectionOrder = cloneStrings(r.SectionOrder)
	if r.SectionVisibility != nil {
		clone.SectionVisibility = make(map[string]bool, len(r.SectionVisibility))
		for k, v := range r.SectionVisibility {
			clone.SectionVisibility[k] = v
		}
	}
	return &clone
}

// Clone returns a deep copy of the experience
func (e Experience) Clone() Experience {
	clone := e
	if e.Achievements != nil {
		clone.Achievements = make([]Achievement, len(e.Achievements))
		for i, a := range e.Achievements {
			clone.Achievements[i] = a
			clone.Achievements[i].Tags = cloneStrings(a.Tags)
		}
	}
	return clone
}

// AllAchievements returns every achievement in record order
func (r *CareerRecord) AllAchievements() []Achievement {
	if r == nil {
		return nil
	}
	var achievements []Achievement
	for _, exp := range r.Experiences {
		achievements = append(achievements, exp.Achievements...)
	}
	return achievements
}

func cloneExperiences(in []Experience) []Experience {
	if in == nil {
		return nil
	}
	out := make([]Experience, len(in))
	for i, exp := range in {
		out[i] = exp.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
