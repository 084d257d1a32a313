package wynn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

func TestRequirementsAddIsComponentMax(t *testing.T) {
	a := wynn.Requirements{Strength: 40, Dexterity: 10, Level: 80}
	b := wynn.Requirements{Strength: 25, Agility: 55, Level: 95}

	sum := a.Add(b)
	assert.Equal(t, wynn.SkillPoints{40, 10, 0, 0, 55}, sum.SkillPoints())
	assert.Equal(t, 95, sum.Level)
}

func TestRequirementsAddIsIdempotent(t *testing.T) {
	r := wynn.Requirements{Strength: 30, Dexterity: 30, Intelligence: 15, Defence: 5, Agility: 1, Level: 60}

	// equipping the same requirement twice must not double it
	assert.Equal(t, r.SkillPoints(), r.Add(r).SkillPoints())
	assert.Equal(t, r.Level, r.Add(r).Level)
}

func TestRequirementsLessOrEqual(t *testing.T) {
	low := wynn.Requirements{Strength: 10, Dexterity: 20}
	high := wynn.Requirements{Strength: 10, Dexterity: 25, Defence: 1}
	mixed := wynn.Requirements{Strength: 5, Dexterity: 30}

	assert.True(t, low.LessOrEqual(high))
	assert.True(t, low.LessOrEqual(low))
	assert.False(t, high.LessOrEqual(low))
	assert.False(t, low.LessOrEqual(mixed))
	assert.False(t, mixed.LessOrEqual(low))
}

func TestRequirementsSkillsUnion(t *testing.T) {
	a := wynn.Requirements{Skills: []string{"jeweling", "tailoring"}}
	b := wynn.Requirements{Skills: []string{"armouring", "jeweling"}}

	assert.Equal(t, []string{"armouring", "jeweling", "tailoring"}, a.Add(b).Skills)
	assert.Nil(t, wynn.Requirements{}.Add(wynn.Requirements{}).Skills)
}

func TestAttributeFromString(t *testing.T) {
	a, ok := wynn.AttributeFromString("Dex")
	assert.True(t, ok)
	assert.Equal(t, wynn.Dexterity, a)
	assert.Equal(t, "rawDexterity", a.BonusStat())

	_, ok = wynn.AttributeFromString("luck")
	assert.False(t, ok)
}
