package ats

import (
	"testing"

	"github.com/jonathan/cv-workbench/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strongRecord() *types.CareerRecord {
	record := types.NewCareerRecord()
	record.Profile = types.Profile{
		Name:     "Alex Morgan",
		Email:    "alex@example.com",
		Phone:    "+44 7700 900123",
		LinkedIn: "linkedin.com/in/alexmorgan",
	}
	record.Summary = "Head of IT accountable for a £4m budget across 6 sites."
	record.Experiences = []types.Experience{
		{ID: "e1", Role: "Head of IT", Achievements: []types.Achievement{
			{ID: "a1", Text: "Led a team of 35 engineers through an ITIL-aligned governance programme"},
			{ID: "a2", Text: "Cut infrastructure costs by 22% through vendor consolidation"},
		}},
		{ID: "e2", Role: "IT Manager", Achievements: []types.Achievement{
			{ID: "a3", Text: "Delivered the cloud migration roadmap to the board", Metrics: "40 applications"},
		}},
	}
	record.Education = []types.Education{{ID: "ed1", Degree: "BSc", Institution: "University of Leeds"}}
	record.Certifications = []types.Certification{{ID: "c1", Name: "ITIL 4 Foundation"}}
	record.Skills.Technical = []string{"Azure", "AWS", "VMware"}
	record.Skills.Governance = []string{"ITIL", "COBIT"}
	return record
}

func checkMap(score *types.ATSScore) map[string]bool {
	m := make(map[string]bool, len(score.Checks))
	for _, c := range score.Checks {
		m[c.Label] = c.Pass
	}
	return m
}

func TestScore_AllPass(t *testing.T) {
	score := Score(strongRecord())
	require.Len(t, score.Checks, len(Checks))
	for _, c := range score.Checks {
		assert.True(t, c.Pass, c.Label)
	}
	assert.Equal(t, 100, score.Score)
}

func TestScore_NilRecord(t *testing.T) {
	score := Score(nil)
	assert.Equal(t, 0, score.Score)
	assert.NotNil(t, score.Checks)
	assert.Empty(t, score.Checks)
}

func TestScore_ZeroValueRecord(t *testing.T) {
	score := Score(&types.CareerRecord{})
	assert.Equal(t, 0, score.Score)
	assert.Len(t, score.Checks, len(Checks))
	assert.Equal(t, LabelSummary, score.Checks[0].Label)
	assert.Equal(t, LabelQuantified, score.Checks[len(score.Checks)-1].Label)
}

func TestScore_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *types.CareerRecord)
		label  string
	}{
		{"blank summary", func(r *types.CareerRecord) { r.Summary = "   " }, LabelSummary},
		{"four core skills", func(r *types.CareerRecord) { r.Skills.Governance = []string{"ITIL"} }, LabelSkills},
		{"one titled role", func(r *types.CareerRecord) { r.Experiences[1].Role = "" }, LabelRoles},
		{"unnamed certification", func(r *types.CareerRecord) { r.Certifications[0].Name = "" }, LabelCertification},
		{"education without degree", func(r *types.CareerRecord) { r.Education[0].Degree = "" }, LabelDegree},
		{"missing phone", func(r *types.CareerRecord) { r.Profile.Phone = "" }, LabelContact},
		{"two quantified achievements", func(r *types.CareerRecord) { r.Experiences[1].Achievements[0].Metrics = "" }, LabelQuantified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := strongRecord()
			tt.mutate(record)

			score := Score(record)
			checks := checkMap(score)
			assert.False(t, checks[tt.label])
			assert.Equal(t, 91, score.Score)
		})
	}
}

func TestScore_KeywordChecks(t *testing.T) {
	record := types.NewCareerRecord()
	record.Experiences = []types.Experience{{ID: "e1", Role: "Manager", Achievements: []types.Achievement{
		{ID: "a1", Text: "Handled printer tickets for the office"},
	}}}

	checks := checkMap(Score(record))
	assert.False(t, checks[LabelGovernanceRisk])
	assert.False(t, checks[LabelBusinessStrategy])
	assert.False(t, checks[LabelLeadershipVerbs])
	assert.False(t, checks[LabelExecutiveScale])

	record.Skills.Governance = []string{"GDPR"}
	record.Experiences[0].Achievements[0].Text = "Oversaw the regional growth plan for 12 countries"

	checks = checkMap(Score(record))
	assert.True(t, checks[LabelGovernanceRisk])
	assert.True(t, checks[LabelBusinessStrategy])
	assert.True(t, checks[LabelLeadershipVerbs])
	assert.True(t, checks[LabelExecutiveScale])
}

func TestScore_Monotonic(t *testing.T) {
	record := &types.CareerRecord{}
	previous := Score(record).Score

	steps := []func(r *types.CareerRecord){
		func(r *types.CareerRecord) { r.Summary = "IT leader" },
		func(r *types.CareerRecord) { r.Certifications = []types.Certification{{Name: "CISSP"}} },
		func(r *types.CareerRecord) { r.Education = []types.Education{{Degree: "MBA"}} },
		func(r *types.CareerRecord) {
			r.Profile = types.Profile{Email: "a@b.co", Phone: "0161 496 0000", LinkedIn: "linkedin.com/in/a"}
		},
	}
	for _, step := range steps {
		step(record)
		current := Score(record).Score
		assert.GreaterOrEqual(t, current, previous)
		assert.LessOrEqual(t, current, 100)
		previous = current
	}
	assert.Equal(t, 36, previous)
}
