package experience

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-workbench/internal/taxonomy"
	"github.com/jonathan/cv-workbench/internal/types"
)

var validate = validator.New()

// NewAchievement creates an achievement with a fresh id, inferred tags and extracted metrics
func NewAchievement(text string) types.Achievement {
	text = strings.TrimSpace(text)
	return types.Achievement{
		ID:      types.NewID(),
		Text:    text,
		Metrics: ExtractMetrics(text),
		Tags:    InferTags(text),
	}
}

// NormalizeCareerRecord applies all normalization steps to a record in place:
// collection scaffolding, missing ids, skill casing and tag vocabulary.
func NormalizeCareerRecord(record *types.CareerRecord) error {
	if record == nil {
		return &NormalizationError{Message: "record is nil"}
	}

	record.Normalize()
	EnsureIDs(record)
	NormalizeSkills(&record.Skills)
	NormalizeAchievements(record)

	if err := validate.Struct(record); err != nil {
		return newNormalizationError("structural validation failed", err)
	}
	return nil
}

// ValidateProfile applies the profile rules NormalizeCareerRecord enforces, so a profile
// accepted here survives export and re-import
func ValidateProfile(profile types.Profile) error {
	if err := validate.Struct(profile); err != nil {
		return newNormalizationError("invalid profile", err)
	}
	return nil
}

// EnsureIDs mints ids for every identity-bearing entity that lacks one. Existing ids are kept.
// A duplicate id is replaced so ids stay unique within the record.
func EnsureIDs(record *types.CareerRecord) {
	if record == nil {
		return
	}
	seen := make(map[string]bool)
	mint := func(id string) string {
		if id == "" || seen[id] {
			id = types.NewID()
		}
		seen[id] = true
		return id
	}

	for i := range record.Experiences {
		exp := &record.Experiences[i]
		exp.ID = mint(exp.ID)
		for j := range exp.Achievements {
			exp.Achievements[j].ID = mint(exp.Achievements[j].ID)
		}
	}
	for i := range record.Education {
		record.Education[i].ID = mint(record.Education[i].ID)
	}
	for i := range record.Certifications {
		record.Certifications[i].ID = mint(record.Certifications[i].ID)
	}
}

// NormalizeSkills trims skill names, applies canonical acronym casing and removes duplicates.
// Deduplication is case-sensitive after canonicalization.
func NormalizeSkills(skills *types.Skills) {
	if skills == nil {
		return
	}
	skills.Technical = normalizeSkillList(skills.Technical)
	skills.Governance = normalizeSkillList(skills.Governance)
	skills.Leadership = normalizeSkillList(skills.Leadership)
}

func normalizeSkillList(list []string) []string {
	normalized := make([]string, 0, len(list))
	seen := make(map[string]struct{})

	for _, skill := range list {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue // Skip empty skills
		}
		if canonical, ok := taxonomy.CanonicalAcronym(skill); ok {
			skill = canonical
		}
		if _, exists := seen[skill]; !exists {
			normalized = append(normalized, skill)
			seen[skill] = struct{}{}
		}
	}
	return normalized
}

// NormalizeAchievements restricts tags to the vocabulary and fills empty tags and metrics
// from the achievement text. It is idempotent, and store operations fill achievements the same
// way, which is what lets an exported record re-import unchanged.
func NormalizeAchievements(record *types.CareerRecord) {
	if record == nil {
		return
	}
	for i := range record.Experiences {
		for j := range record.Experiences[i].Achievements {
			a := &record.Experiences[i].Achievements[j]
			a.Text = strings.TrimSpace(a.Text)
			a.Tags = FilterTags(a.Tags)
			if len(a.Tags) == 0 {
				a.Tags = InferTags(a.Text)
			}
			if strings.TrimSpace(a.Metrics) == "" {
				a.Metrics = ExtractMetrics(a.Text)
			}
		}
	}
}
