package skillpoints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/skillpoints"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/testutils"
	"github.com/KirkDiggler/wynn-optimizer/internal/testutils/builders"
)

func item(name string) *builders.ItemBuilder {
	return builders.NewItem(name, wynn.SlotHelmet)
}

func TestAllocate(t *testing.T) {
	testCases := []struct {
		name     string
		items    []*wynn.Item
		required wynn.SkillPoints
		bonus    wynn.SkillPoints
	}{
		{
			name:  "no items",
			items: nil,
		},
		{
			name: "requirement without bonuses",
			items: []*wynn.Item{
				item("a").WithRequirement(wynn.Strength, 40).Build(),
				item("b").WithRequirement(wynn.Strength, 25).WithRequirement(wynn.Agility, 60).Build(),
			},
			required: wynn.SkillPoints{40, 0, 0, 0, 60},
		},
		{
			name: "zero requirement bonus helps",
			items: []*wynn.Item{
				item("a").WithRequirement(wynn.Dexterity, 50).Build(),
				item("b").WithBonus(wynn.Dexterity, 15).Build(),
			},
			required: wynn.SkillPoints{0, 35, 0, 0, 0},
			bonus:    wynn.SkillPoints{0, 15, 0, 0, 0},
		},
		{
			name: "lower threshold bonus chains into higher threshold",
			items: []*wynn.Item{
				item("high").WithRequirement(wynn.Intelligence, 70).Build(),
				item("low").WithRequirement(wynn.Intelligence, 30).WithBonus(wynn.Intelligence, 20).Build(),
			},
			required: wynn.SkillPoints{0, 0, 50, 0, 0},
			bonus:    wynn.SkillPoints{0, 0, 20, 0, 0},
		},
		{
			name: "deferred negative bonus raises the requirement",
			items: []*wynn.Item{
				item("needs").WithRequirement(wynn.Strength, 50).WithBonus(wynn.Strength, 20).Build(),
				item("drains").WithBonus(wynn.Strength, -30).Build(),
			},
			required: wynn.SkillPoints{60, 0, 0, 0, 0},
			bonus:    wynn.SkillPoints{-10, 0, 0, 0, 0},
		},
		{
			name: "negative bonus on a required item",
			items: []*wynn.Item{
				item("c").WithRequirement(wynn.Defence, 40).WithBonus(wynn.Defence, -10).Build(),
				item("d").WithRequirement(wynn.Defence, 30).Build(),
			},
			required: wynn.SkillPoints{0, 0, 0, 50, 0},
			bonus:    wynn.SkillPoints{0, 0, 0, -10, 0},
		},
		{
			name: "bonus larger than requirement never goes negative",
			items: []*wynn.Item{
				item("a").WithRequirement(wynn.Agility, 10).Build(),
				item("b").WithBonus(wynn.Agility, 40).Build(),
			},
			bonus: wynn.SkillPoints{0, 0, 0, 0, 40},
		},
		{
			name: "crafted bonus does not lower requirements",
			items: []*wynn.Item{
				item("normal").WithRequirement(wynn.Strength, 40).Build(),
				item("crafted").Crafted().WithBonus(wynn.Strength, 30).Build(),
			},
			required: wynn.SkillPoints{40, 0, 0, 0, 0},
			bonus:    wynn.SkillPoints{30, 0, 0, 0, 0},
		},
		{
			name: "crafted requirement checked against non crafted bonuses",
			items: []*wynn.Item{
				item("crafted").Crafted().WithRequirement(wynn.Strength, 60).WithBonus(wynn.Strength, 10).Build(),
				item("gives").WithBonus(wynn.Strength, 25).Build(),
			},
			required: wynn.SkillPoints{35, 0, 0, 0, 0},
			bonus:    wynn.SkillPoints{35, 0, 0, 0, 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			required, bonus := skillpoints.Allocate(tc.items)
			assert.Equal(t, tc.required, required)
			assert.Equal(t, tc.bonus, bonus)
		})
	}
}

// The greedy pass alone settles on 50 here: the drain item is worn last and
// leaves 40 points against a requirement of 50.
func TestAllocateGreedyCounterexample(t *testing.T) {
	needs := item("needs").WithRequirement(wynn.Strength, 50).WithBonus(wynn.Strength, 20).Build()
	drains := item("drains").WithBonus(wynn.Strength, -30).Build()

	required, bonus := skillpoints.Allocate([]*wynn.Item{needs, drains})
	assert.Equal(t, 60, required[wynn.Strength])
	assert.GreaterOrEqual(t, required[wynn.Strength]+bonus[wynn.Strength], 50)

	less := required
	less[wynn.Strength]--
	assert.Less(t, less[wynn.Strength]+bonus[wynn.Strength], 50)
}

func TestAllocateMonotonicInPositiveBonus(t *testing.T) {
	base := []*wynn.Item{
		item("a").WithRequirement(wynn.Strength, 45).WithBonus(wynn.Strength, 5).Build(),
		item("b").WithRequirement(wynn.Strength, 80).WithBonus(wynn.Dexterity, -8).Build(),
		item("c").WithRequirement(wynn.Dexterity, 30).WithBonus(wynn.Strength, -5).Build(),
		item("d").Crafted().WithRequirement(wynn.Agility, 20).Build(),
	}
	before, _ := skillpoints.Allocate(base)

	for _, a := range wynn.AllAttributes() {
		for _, v := range []int{1, 7, 40} {
			extra := item("extra").WithBonus(a, v).Build()
			after, _ := skillpoints.Allocate(append(append([]*wynn.Item(nil), base...), extra))
			assert.LessOrEqual(t, after[a], before[a], "attribute %s bonus %d", a, v)
		}
	}
}

func TestAllocateBuildIncludesWeapon(t *testing.T) {
	weapon := builders.NewWeapon("Spear").WithRequirement(wynn.Agility, 55).Build()
	gear := testutils.GearBySlot(testutils.ZeroGear())
	gear[0] = builders.NewItem("Cap", wynn.SlotHelmet).WithBonus(wynn.Agility, 5).Build()

	b, err := wynn.NewBuild(weapon, gear...)
	require.NoError(t, err)

	required, bonus := skillpoints.AllocateBuild(b)
	assert.Equal(t, wynn.SkillPoints{0, 0, 0, 0, 50}, required)
	assert.Equal(t, wynn.SkillPoints{0, 0, 0, 0, 5}, bonus)
	assert.True(t, skillpoints.Feasible(required))
}

func TestFeasible(t *testing.T) {
	assert.True(t, skillpoints.Feasible(wynn.SkillPoints{100, 100, 5, 0, 0}))
	assert.False(t, skillpoints.Feasible(wynn.SkillPoints{100, 100, 6, 0, 0}))
}
