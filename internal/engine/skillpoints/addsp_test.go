package skillpoints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/skillpoints"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

func TestSplit(t *testing.T) {
	pair := [2]wynn.Attribute{wynn.Strength, wynn.Dexterity}

	testCases := []struct {
		name     string
		required wynn.SkillPoints
		bonus    wynn.SkillPoints
		expected wynn.SkillPoints
	}{
		{
			name:     "odd remainder favours first",
			required: wynn.SkillPoints{0, 0, 59, 0, 60},
			expected: wynn.SkillPoints{41, 40, 0, 0, 0},
		},
		{
			name:     "first capped sends all to the lower",
			required: wynn.SkillPoints{100, 20, 0, 0, 0},
			expected: wynn.SkillPoints{0, 80, 0, 0, 0},
		},
		{
			name:     "bonus counts towards the cap",
			required: wynn.SkillPoints{10, 50, 0, 0, 0},
			bonus:    wynn.SkillPoints{0, 60, 0, 0, 0},
			expected: wynn.SkillPoints{140, 0, 0, 0, 0},
		},
		{
			name:     "budget exhausted",
			required: wynn.SkillPoints{50, 50, 50, 50, 10},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, skillpoints.Split(tc.required, tc.bonus, pair))
		})
	}
}

func TestAddSP(t *testing.T) {
	agg := &wynn.Item{
		Name: "build",
		Type: wynn.SlotBuild,
		Identifications: wynn.StatBag{
			"rawStrength": wynn.NewStatRange(4, 2, 6),
			"spellDamage": wynn.Fixed(30),
		},
	}
	required := wynn.SkillPoints{20, 0, 40, 0, 0}
	bonus := wynn.SkillPoints{4, 0, 0, 0, 0}

	out := skillpoints.AddSP(agg, required, bonus, nil)

	// remainder 140 split 70/70
	assert.Equal(t, wynn.Fixed(94), out.Identifications.Get("rawStrength"))
	assert.Equal(t, wynn.Fixed(70), out.Identifications.Get("rawDexterity"))
	assert.Equal(t, wynn.Fixed(40), out.Identifications.Get("rawIntelligence"))
	assert.Equal(t, wynn.Fixed(0), out.Identifications.Get("rawAgility"))
	assert.Equal(t, wynn.Fixed(30), out.Identifications.Get("spellDamage"))

	assert.Equal(t, wynn.NewStatRange(4, 2, 6), agg.Identifications.Get("rawStrength"))
	_, ok := agg.Identifications["rawDexterity"]
	assert.False(t, ok)
}

func TestAddSPCustomPair(t *testing.T) {
	agg := &wynn.Item{Name: "build", Type: wynn.SlotBuild, Identifications: wynn.StatBag{}}
	opts := &skillpoints.Options{Pair: [2]wynn.Attribute{wynn.Intelligence, wynn.Agility}}

	out := skillpoints.AddSP(agg, wynn.SkillPoints{}, wynn.SkillPoints{}, opts)
	assert.Equal(t, 100, out.Identifications.Get("rawIntelligence").Raw)
	assert.Equal(t, 100, out.Identifications.Get("rawAgility").Raw)
	assert.Equal(t, 0, out.Identifications.Get("rawStrength").Raw)
}
