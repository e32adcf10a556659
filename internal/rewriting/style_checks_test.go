package rewriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		rewritten string
		mode      string
		want      StyleChecksResult
	}{
		{
			name:      "clean rewrite",
			original:  "Helped cut costs by 20%",
			rewritten: "Cut infrastructure costs by 20%",
			mode:      "hybrid",
			want:      StyleChecksResult{StrongVerb: false, NoNewFigures: true, NoBuzzwords: true, TargetLength: true},
		},
		{
			name:      "bank verb and invented figure",
			original:  "Ran the service desk",
			rewritten: "Led the service desk of 25 staff",
			mode:      "hybrid",
			want: StyleChecksResult{StrongVerb: true, NoNewFigures: false, NoBuzzwords: true, TargetLength: false,
				InventedFigure: []string{"25"}},
		},
		{
			name:      "buzzword",
			original:  "Worked on the ERP programme",
			rewritten: "Delivered a best-in-class ERP programme",
			mode:      "digital",
			want:      StyleChecksResult{StrongVerb: true, NoNewFigures: true, NoBuzzwords: false, TargetLength: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateStyle(tt.original, tt.rewritten, tt.mode))
		})
	}
}

func TestInventedFigures(t *testing.T) {
	assert.Empty(t, inventedFigures("Saved £1.2m across 3 sites", "Saved £1.2m in total across 3 sites"))
	assert.Equal(t, []string{"2023"}, inventedFigures("Saved £1.2m across 3 sites", "Saved £1.2m across 3 sites in 2023"))
	assert.Equal(t, []string{"1,500"}, inventedFigures("Supported users", "Supported 1,500 users"))
}

func TestCheckTargetLength(t *testing.T) {
	assert.True(t, checkTargetLength(5, 0))
	assert.False(t, checkTargetLength(0, 0))
	assert.True(t, checkTargetLength(100, 100))
	assert.True(t, checkTargetLength(150, 100))
	assert.False(t, checkTargetLength(151, 100))
	assert.False(t, checkTargetLength(49, 100))
}
