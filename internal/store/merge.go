package store

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/types"
)

// ImportMode selects how an imported record combines with the current one
type ImportMode string

// Import modes
const (
	ImportMerge     ImportMode = "merge"
	ImportOverwrite ImportMode = "overwrite"
)

// ParseImportMode parses a mode name; an empty name means merge
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ImportMerge:
		return ImportMerge, nil
	case ImportOverwrite:
		return ImportOverwrite, nil
	default:
		return "", fmt.Errorf("unknown import mode %q (want merge or overwrite)", s)
	}
}

// Import applies an imported record. Overwrite replaces everything; merge keeps the current
// record and adds what the import brings that is not already there.
func (s *Store) Import(record *types.CareerRecord, mode ImportMode) (*types.CareerRecord, error) {
	if mode == ImportOverwrite {
		return s.ReplaceAll(record)
	}

	incoming := record.Clone()
	if incoming == nil {
		return s.Record(), nil
	}
	if err := experience.NormalizeCareerRecord(incoming); err != nil {
		return s.Record(), &ValidationError{Message: "imported record is not valid", Cause: err}
	}

	return s.update(func(r *types.CareerRecord) error {
		Merge(r, incoming)
		return nil
	})
}

// Merge folds incoming into base in place:
//   - empty profile fields and an empty summary are filled from incoming
//   - experiences, education and certifications not already present are appended
//   - skills are unioned
//
// Appended entities get fresh ids so ids stay unique within base.
func Merge(base, incoming *types.CareerRecord) {
	if base == nil || incoming == nil {
		return
	}

	mergeProfile(&base.Profile, incoming.Profile)
	if strings.TrimSpace(base.Summary) == "" {
		base.Summary = incoming.Summary
	}

	for _, exp := range incoming.Experiences {
		if existing := matchExperience(base, exp); existing != nil {
			mergeAchievements(existing, exp.Achievements)
			continue
		}
		exp = exp.Clone()
		exp.ID = types.NewID()
		for i := range exp.Achievements {
			exp.Achievements[i].ID = types.NewID()
		}
		base.Experiences = append(base.Experiences, exp)
	}

	for _, ed := range incoming.Education {
		if !hasEducation(base, ed) {
			ed.ID = types.NewID()
			base.Education = append(base.Education, ed)
		}
	}

	for _, cert := range incoming.Certifications {
		if !hasCertification(base, cert) {
			cert.ID = types.NewID()
			base.Certifications = append(base.Certifications, cert)
		}
	}

	base.Skills.Technical = append(base.Skills.Technical, incoming.Skills.Technical...)
	base.Skills.Governance = append(base.Skills.Governance, incoming.Skills.Governance...)
	base.Skills.Leadership = append(base.Skills.Leadership, incoming.Skills.Leadership...)
	experience.NormalizeSkills(&base.Skills)
}

func mergeProfile(base *types.Profile, incoming types.Profile) {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&base.Name, incoming.Name)
	fill(&base.Title, incoming.Title)
	fill(&base.Email, incoming.Email)
	fill(&base.Phone, incoming.Phone)
	fill(&base.Location, incoming.Location)
	fill(&base.LinkedIn, incoming.LinkedIn)
	fill(&base.Website, incoming.Website)
	fill(&base.GitHub, incoming.GitHub)
	fill(&base.Photo, incoming.Photo)
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// matchExperience finds an experience with the same role and company
func matchExperience(base *types.CareerRecord, exp types.Experience) *types.Experience {
	for i := range base.Experiences {
		existing := &base.Experiences[i]
		if sameText(existing.Role, exp.Role) && sameText(existing.Company, exp.Company) {
			return existing
		}
	}
	return nil
}

func mergeAchievements(existing *types.Experience, incoming []types.Achievement) {
	for _, a := range incoming {
		duplicate := false
		for _, current := range existing.Achievements {
			if sameText(current.Text, a.Text) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			a.ID = types.NewID()
			a.Tags = append([]string{}, a.Tags...)
			existing.Achievements = append(existing.Achievements, a)
		}
	}
}

func hasEducation(base *types.CareerRecord, ed types.Education) bool {
	for _, existing := range base.Education {
		if sameText(existing.Degree, ed.Degree) && sameText(existing.Institution, ed.Institution) {
			return true
		}
	}
	return false
}

func hasCertification(base *types.CareerRecord, cert types.Certification) bool {
	for _, existing := range base.Certifications {
		if sameText(existing.Name, cert.Name) {
			return true
		}
	}
	return false
}
