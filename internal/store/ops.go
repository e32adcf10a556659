package store

import (
	"strings"

	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/types"
)

// Entity kinds reported by NotFoundError
const (
	KindExperience    = "experience"
	KindAchievement   = "achievement"
	KindEducation     = "education"
	KindCertification = "certification"
)

// SetProfile replaces the profile
func (s *Store) SetProfile(profile types.Profile) (*types.CareerRecord, error) {
	if err := experience.ValidateProfile(profile); err != nil {
		return s.Record(), &ValidationError{Message: "profile is not valid", Cause: err}
	}
	return s.update(func(r *types.CareerRecord) error {
		r.Profile = profile
		return nil
	})
}

// SetSummary replaces the summary
func (s *Store) SetSummary(summary string) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		r.Summary = strings.TrimSpace(summary)
		return nil
	})
}

// SetSkills replaces all skill buckets after normalization
func (s *Store) SetSkills(skills types.Skills) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		r.Skills = types.Skills{
			Technical:  append([]string{}, skills.Technical...),
			Governance: append([]string{}, skills.Governance...),
			Leadership: append([]string{}, skills.Leadership...),
		}
		experience.NormalizeSkills(&r.Skills)
		return nil
	})
}

// SetLayout replaces the section order and visibility
func (s *Store) SetLayout(order []string, visibility map[string]bool) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		if len(order) > 0 {
			r.SectionOrder = append([]string{}, order...)
		}
		if visibility != nil {
			r.SectionVisibility = make(map[string]bool, len(visibility))
			for k, v := range visibility {
				r.SectionVisibility[k] = v
			}
		}
		return nil
	})
}

// AddExperience appends an experience with fresh ids for it and its achievements.
// The returned string is the new experience id.
func (s *Store) AddExperience(exp types.Experience) (*types.CareerRecord, string, error) {
	exp = exp.Clone()
	exp.ID = types.NewID()
	if exp.Achievements == nil {
		exp.Achievements = []types.Achievement{}
	}
	for i := range exp.Achievements {
		if err := requireText(exp.Achievements[i]); err != nil {
			return s.Record(), "", err
		}
		exp.Achievements[i] = prepareAchievement(exp.Achievements[i])
	}

	record, err := s.update(func(r *types.CareerRecord) error {
		r.Experiences = append(r.Experiences, exp)
		return nil
	})
	return record, exp.ID, err
}

// UpdateExperience replaces the header fields (role, company, period, location) of an
// experience. Achievements are edited with the achievement operations.
func (s *Store) UpdateExperience(exp types.Experience) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		target := findExperience(r, exp.ID)
		if target == nil {
			return &NotFoundError{Kind: KindExperience, ID: exp.ID}
		}
		target.Role = exp.Role
		target.Company = exp.Company
		target.Period = exp.Period
		target.Location = exp.Location
		return nil
	})
}

// RemoveExperience deletes an experience and its achievements
func (s *Store) RemoveExperience(id string) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		for i, exp := range r.Experiences {
			if exp.ID == id {
				r.Experiences = append(r.Experiences[:i], r.Experiences[i+1:]...)
				return nil
			}
		}
		return &NotFoundError{Kind: KindExperience, ID: id}
	})
}

// MoveExperience moves an experience to a new position, clamped to the valid range
func (s *Store) MoveExperience(id string, index int) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		from := -1
		for i, exp := range r.Experiences {
			if exp.ID == id {
				from = i
			}
		}
		if from < 0 {
			return &NotFoundError{Kind: KindExperience, ID: id}
		}

		index = max(0, min(index, len(r.Experiences)-1))
		moved := r.Experiences[from]
		rest := append(r.Experiences[:from:from], r.Experiences[from+1:]...)
		r.Experiences = append(rest[:index:index], append([]types.Experience{moved}, rest[index:]...)...)
		return nil
	})
}

// AddAchievement appends an achievement created from text to an experience. Tags and metrics
// are inferred from the text. Blank text is a ValidationError. The returned string is the new
// achievement id.
func (s *Store) AddAchievement(experienceID, text string) (*types.CareerRecord, string, error) {
	a := experience.NewAchievement(text)
	record, err := s.update(func(r *types.CareerRecord) error {
		target := findExperience(r, experienceID)
		if target == nil {
			return &NotFoundError{Kind: KindExperience, ID: experienceID}
		}
		if err := requireText(a); err != nil {
			return err
		}
		target.Achievements = append(target.Achievements, a)
		return nil
	})
	return record, a.ID, err
}

// UpdateAchievement replaces the text, metrics and tags of an achievement, keeping its id.
// Blank text is a ValidationError.
func (s *Store) UpdateAchievement(experienceID string, a types.Achievement) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		target := findAchievement(r, experienceID, a.ID)
		if target == nil {
			return &NotFoundError{Kind: KindAchievement, ID: a.ID}
		}
		if err := requireText(a); err != nil {
			return err
		}
		updated := prepareAchievement(a)
		updated.ID = target.ID
		*target = updated
		return nil
	})
}

// RemoveAchievement deletes an achievement from an experience
func (s *Store) RemoveAchievement(experienceID, achievementID string) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		exp := findExperience(r, experienceID)
		if exp == nil {
			return &NotFoundError{Kind: KindExperience, ID: experienceID}
		}
		for i, a := range exp.Achievements {
			if a.ID == achievementID {
				exp.Achievements = append(exp.Achievements[:i], exp.Achievements[i+1:]...)
				return nil
			}
		}
		return &NotFoundError{Kind: KindAchievement, ID: achievementID}
	})
}

// AddEducation appends an education entry with a fresh id
func (s *Store) AddEducation(ed types.Education) (*types.CareerRecord, string, error) {
	ed.ID = types.NewID()
	record, err := s.update(func(r *types.CareerRecord) error {
		r.Education = append(r.Education, ed)
		return nil
	})
	return record, ed.ID, err
}

// UpdateEducation replaces an education entry matched by id
func (s *Store) UpdateEducation(ed types.Education) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		for i := range r.Education {
			if r.Education[i].ID == ed.ID {
				r.Education[i] = ed
				return nil
			}
		}
		return &NotFoundError{Kind: KindEducation, ID: ed.ID}
	})
}

// RemoveEducation deletes an education entry
func (s *Store) RemoveEducation(id string) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		for i := range r.Education {
			if r.Education[i].ID == id {
				r.Education = append(r.Education[:i], r.Education[i+1:]...)
				return nil
			}
		}
		return &NotFoundError{Kind: KindEducation, ID: id}
	})
}

// AddCertification appends a certification with a fresh id
func (s *Store) AddCertification(cert types.Certification) (*types.CareerRecord, string, error) {
	cert.ID = types.NewID()
	record, err := s.update(func(r *types.CareerRecord) error {
		r.Certifications = append(r.Certifications, cert)
		return nil
	})
	return record, cert.ID, err
}

// UpdateCertification replaces a certification matched by id
func (s *Store) UpdateCertification(cert types.Certification) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		for i := range r.Certifications {
			if r.Certifications[i].ID == cert.ID {
				r.Certifications[i] = cert
				return nil
			}
		}
		return &NotFoundError{Kind: KindCertification, ID: cert.ID}
	})
}

// RemoveCertification deletes a certification
func (s *Store) RemoveCertification(id string) (*types.CareerRecord, error) {
	return s.update(func(r *types.CareerRecord) error {
		for i := range r.Certifications {
			if r.Certifications[i].ID == id {
				r.Certifications = append(r.Certifications[:i], r.Certifications[i+1:]...)
				return nil
			}
		}
		return &NotFoundError{Kind: KindCertification, ID: id}
	})
}

// ReplaceAll swaps in a whole record. Missing ids are minted and existing ids are kept.
func (s *Store) ReplaceAll(record *types.CareerRecord) (*types.CareerRecord, error) {
	replacement := record.Clone()
	if replacement == nil {
		replacement = types.NewCareerRecord()
	}
	if err := experience.NormalizeCareerRecord(replacement); err != nil {
		return s.Record(), &ValidationError{Message: "record is not valid", Cause: err}
	}
	for _, a := range replacement.AllAchievements() {
		if err := requireText(a); err != nil {
			return s.Record(), err
		}
	}

	return s.update(func(r *types.CareerRecord) error {
		*r = *replacement
		return nil
	})
}

// Export returns a copy of the current record for serialization
func (s *Store) Export() *types.CareerRecord {
	return s.Record()
}

func findExperience(r *types.CareerRecord, id string) *types.Experience {
	for i := range r.Experiences {
		if r.Experiences[i].ID == id {
			return &r.Experiences[i]
		}
	}
	return nil
}

func findAchievement(r *types.CareerRecord, experienceID, achievementID string) *types.Achievement {
	exp := findExperience(r, experienceID)
	if exp == nil {
		return nil
	}
	for i := range exp.Achievements {
		if exp.Achievements[i].ID == achievementID {
			return &exp.Achievements[i]
		}
	}
	return nil
}

// requireText rejects blank achievements, which the career record schema refuses on import
func requireText(a types.Achievement) error {
	if strings.TrimSpace(a.Text) == "" {
		return &ValidationError{Message: "achievement text is required"}
	}
	return nil
}

// prepareAchievement gives an achievement a fresh id and fills tags and metrics like the parser does
func prepareAchievement(a types.Achievement) types.Achievement {
	a.ID = types.NewID()
	a.Text = strings.TrimSpace(a.Text)
	a.Tags = experience.FilterTags(a.Tags)
	if len(a.Tags) == 0 {
		a.Tags = experience.InferTags(a.Text)
	}
	if strings.TrimSpace(a.Metrics) == "" {
		a.Metrics = experience.ExtractMetrics(a.Text)
	}
	return a
}
