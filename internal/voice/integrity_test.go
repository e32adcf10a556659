package voice

import (
	"strings"
	"testing"

	"github.com/jonathan/cv-workbench/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagPhrases(flags []types.ToneFlag, flagType string) []string {
	var phrases []string
	for _, f := range flags {
		if f.Type == flagType {
			phrases = append(phrases, f.Phrase)
		}
	}
	return phrases
}

func TestToneIntegrityCheck(t *testing.T) {
	t.Run("buzzwords are medium and whole word", func(t *testing.T) {
		flags := ToneIntegrityCheck("Leveraged synergies to deliver best-in-class outcomes")
		assert.ElementsMatch(t, []string{"synergies", "leveraged", "best-in-class"}, flagPhrases(flags, types.FlagBuzzword))
		for _, f := range flags {
			assert.Equal(t, types.SeverityMedium, f.Severity)
		}
	})

	t.Run("generic phrases are high", func(t *testing.T) {
		flags := ToneIntegrityCheck("Results-driven team player with a proven track record")
		assert.ElementsMatch(t, []string{"results-driven", "team player", "proven track record"}, flagPhrases(flags, types.FlagGeneric))
		for _, f := range flags {
			assert.Equal(t, types.SeverityHigh, f.Severity)
		}
	})

	t.Run("weak opener only at start", func(t *testing.T) {
		flags := ToneIntegrityCheck("Responsible for the WAN refresh")
		assert.Equal(t, []string{"responsible for"}, flagPhrases(flags, types.FlagWeakOpener))

		flags = ToneIntegrityCheck("Took over as responsible for the WAN refresh")
		assert.Empty(t, flagPhrases(flags, types.FlagWeakOpener))
	})

	t.Run("formulaic metric groups", func(t *testing.T) {
		flags := ToneIntegrityCheck("Cut cost (20%), time (30%) and incidents (12 per month)")
		require.Len(t, flags, 1)
		assert.Equal(t, types.FlagFormulaic, flags[0].Type)
		assert.Equal(t, types.SeverityLow, flags[0].Severity)

		assert.Empty(t, ToneIntegrityCheck("Cut cost (20%) and time (30%)"))
	})

	t.Run("returns every flag", func(t *testing.T) {
		flags := ToneIntegrityCheck("Helped drive synergy as a self-starter")
		assert.Len(t, flags, 3)
	})

	t.Run("clean text", func(t *testing.T) {
		flags := ToneIntegrityCheck("Delivered a 12-month Azure migration under budget")
		assert.NotNil(t, flags)
		assert.Empty(t, flags)
	})
}

func TestAuditAIFeel_Repetition(t *testing.T) {
	achievements := []types.Achievement{
		{ID: "a1", Text: "Led the ERP rollout"},
		{ID: "a2", Text: "LED the service desk redesign"},
		{ID: "a3", Text: "led, with the CFO, a vendor review"},
		{ID: "a4", Text: "Helped the security team"},
	}

	audit := AuditAIFeel(achievements)
	repetition := flagPhrases(audit.Flags, types.FlagRepetition)
	assert.Equal(t, []string{"led"}, repetition)

	weak := flagPhrases(audit.Flags, types.FlagWeakOpener)
	assert.Equal(t, []string{"helped"}, weak)
	assert.Equal(t, "a4", audit.Flags[0].AchievementID)

	// two high-severity flags: 2*8 + 2*15
	assert.Equal(t, 46, audit.RiskScore)
}

func TestAuditAIFeel_Scoring(t *testing.T) {
	assert.Equal(t, 0, AuditAIFeel(nil).RiskScore)
	assert.NotNil(t, AuditAIFeel(nil).Flags)

	two := []types.Achievement{{ID: "a1", Text: "Led X"}, {ID: "a2", Text: "Led Y"}}
	assert.Empty(t, AuditAIFeel(two).Flags)

	three := append(two, types.Achievement{ID: "a3", Text: "Led Z"})
	assert.Equal(t, 23, AuditAIFeel(three).RiskScore)

	var noisy []types.Achievement
	for i := 0; i < 5; i++ {
		noisy = append(noisy, types.Achievement{ID: strings.Repeat("n", i+1), Text: "Responsible for synergy as a team player"})
	}
	assert.Equal(t, 100, AuditAIFeel(noisy).RiskScore)
}

func TestRiskScore(t *testing.T) {
	flags := []types.ToneFlag{
		{Severity: types.SeverityLow},
		{Severity: types.SeverityMedium},
		{Severity: types.SeverityHigh},
	}
	assert.Equal(t, 3*8+15, RiskScore(flags))
	assert.Equal(t, 0, RiskScore(nil))
}
