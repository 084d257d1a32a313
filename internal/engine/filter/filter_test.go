package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/filter"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/score"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/testutils/builders"
)

func names(items []*wynn.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestRemoveBadItemsDropsDominated(t *testing.T) {
	a := builders.NewItem("A", wynn.SlotHelmet).WithRequirement(wynn.Strength, 30).WithStat("spellDamage", 12).Build()
	b := builders.NewItem("B", wynn.SlotHelmet).WithRequirement(wynn.Strength, 30).WithStat("spellDamage", 10).Build()
	boots := builders.NewItem("Boots", wynn.SlotBoots).Build()

	out := filter.RemoveBadItems([]*wynn.Item{b, boots, a}, &filter.Criteria{Higher: filter.DefaultRelevant})
	assert.Equal(t, []string{"Boots", "A"}, names(out))
}

func TestRemoveBadItemsKeepsTradeoffs(t *testing.T) {
	testCases := []struct {
		name string
		a    *wynn.Item
		b    *wynn.Item
	}{
		{
			name: "better stat but higher requirement",
			a:    builders.NewItem("A", wynn.SlotHelmet).WithRequirement(wynn.Strength, 40).WithStat("spellDamage", 12).Build(),
			b:    builders.NewItem("B", wynn.SlotHelmet).WithRequirement(wynn.Strength, 30).WithStat("spellDamage", 10).Build(),
		},
		{
			name: "better stat but lower bonus",
			a:    builders.NewItem("A", wynn.SlotHelmet).WithStat("spellDamage", 12).Build(),
			b:    builders.NewItem("B", wynn.SlotHelmet).WithStat("spellDamage", 10).WithBonus(wynn.Agility, 3).Build(),
		},
		{
			name: "identical items",
			a:    builders.NewItem("A", wynn.SlotHelmet).WithStat("spellDamage", 10).Build(),
			b:    builders.NewItem("B", wynn.SlotHelmet).WithStat("spellDamage", 10).Build(),
		},
		{
			name: "difference only on an irrelevant stat",
			a:    builders.NewItem("A", wynn.SlotHelmet).WithStat("walkSpeed", 30).Build(),
			b:    builders.NewItem("B", wynn.SlotHelmet).Build(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := filter.RemoveBadItems([]*wynn.Item{tc.a, tc.b}, &filter.Criteria{Higher: filter.DefaultRelevant})
			assert.Len(t, out, 2)
		})
	}
}

func TestRemoveBadItemsRingsNeedTwoDominators(t *testing.T) {
	best := builders.NewItem("Best", wynn.SlotRing).WithStat("spellDamage", 9).Build()
	mid := builders.NewItem("Mid", wynn.SlotRing).WithStat("spellDamage", 6).Build()
	low := builders.NewItem("Low", wynn.SlotRing).WithStat("spellDamage", 3).Build()

	out := filter.RemoveBadItems([]*wynn.Item{best, mid, low}, &filter.Criteria{Higher: filter.DefaultRelevant})
	assert.Equal(t, []string{"Best", "Mid"}, names(out))
}

func TestRemoveBadItemsIgnoresExclusiveDominators(t *testing.T) {
	hive := builders.NewItem("Hive Helm", wynn.SlotHelmet).WithStat("spellDamage", 10).Build()
	plain := builders.NewItem("Plain Helm", wynn.SlotHelmet).Build()
	items := []*wynn.Item{hive, plain}

	out := filter.RemoveBadItems(items, &filter.Criteria{Higher: filter.DefaultRelevant})
	assert.Equal(t, []string{"Hive Helm"}, names(out))

	out = filter.RemoveBadItems(items, &filter.Criteria{
		Higher:    filter.DefaultRelevant,
		Exclusive: []string{"Hive Helm", "Hive Boots"},
	})
	assert.Equal(t, []string{"Hive Helm", "Plain Helm"}, names(out))
}

func TestDominatesCriteria(t *testing.T) {
	sharp := builders.NewItem("Sharp Helm", wynn.SlotHelmet).WithStat("spellDamage", 10).Build()
	tanky := builders.NewItem("Tanky Helm", wynn.SlotHelmet).WithStat("rawHealth", 500).Build()
	costly := builders.NewItem("Costly Helm", wynn.SlotHelmet).WithStat("spellDamage", 10).WithStat("manaCost", 5).Build()
	strong := builders.NewItem("Strong Helm", wynn.SlotHelmet).WithStat("spellDamage", 10).WithBonus(wynn.Strength, 5).Build()
	crafted := builders.NewItem("Crafted Helm", wynn.SlotHelmet).WithStat("spellDamage", 20).Crafted().Build()

	testCases := []struct {
		name     string
		a        *wynn.Item
		b        *wynn.Item
		criteria *filter.Criteria
		expected bool
	}{
		{
			name:     "higher stat wins when health is not compared",
			a:        sharp,
			b:        tanky,
			criteria: &filter.Criteria{Higher: filter.DefaultRelevant},
			expected: true,
		},
		{
			name:     "minimum identification keeps the tank",
			a:        sharp,
			b:        tanky,
			criteria: &filter.Criteria{Higher: append([]string{"rawHealth"}, filter.DefaultRelevant...)},
			expected: false,
		},
		{
			name:     "maximum identification prefers the lower value",
			a:        sharp,
			b:        costly,
			criteria: &filter.Criteria{Higher: filter.DefaultRelevant, Lower: []string{"manaCost"}},
			expected: true,
		},
		{
			name:     "lower is worse on a maximum identification",
			a:        costly,
			b:        sharp,
			criteria: &filter.Criteria{Higher: filter.DefaultRelevant, Lower: []string{"manaCost"}},
			expected: false,
		},
		{
			name:     "extra bonus dominates",
			a:        strong,
			b:        sharp,
			criteria: &filter.Criteria{Higher: filter.DefaultRelevant},
			expected: true,
		},
		{
			name:     "capped attribute bonus has to match",
			a:        strong,
			b:        sharp,
			criteria: &filter.Criteria{Higher: filter.DefaultRelevant, FixedBonus: []wynn.Attribute{wynn.Strength}},
			expected: false,
		},
		{
			name:     "crafted items never dominate",
			a:        crafted,
			b:        sharp,
			criteria: &filter.Criteria{Higher: filter.DefaultRelevant},
			expected: false,
		},
		{
			name:     "nil criteria compares bonuses only",
			a:        strong,
			b:        sharp,
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, filter.Dominates(tc.a, tc.b, tc.criteria))
		})
	}
}

func TestRelevantForDamage(t *testing.T) {
	base := [score.NumElements]float64{10, 0, 5, 0, 0, 0}
	relevant := filter.RelevantForDamage(base)

	assert.Contains(t, relevant, "damage")
	assert.Contains(t, relevant, "thunderDamage")
	assert.NotContains(t, relevant, "fireDamage")
	assert.Len(t, filter.DefaultRelevant, 7)
}

func TestPredicates(t *testing.T) {
	items := []*wynn.Item{
		builders.NewItem("Low", wynn.SlotHelmet).WithLevel(40).Build(),
		builders.NewItem("High", wynn.SlotHelmet).WithLevel(100).Build(),
		builders.NewItem("Strong", wynn.SlotRing).WithLevel(60).WithRequirement(wynn.Strength, 90).Build(),
		builders.NewItem("Banned", wynn.SlotRing).WithLevel(10).Build(),
	}

	out := filter.Apply(items,
		filter.MaxLevel(80),
		filter.ExcludeNames("Banned"),
		filter.MaxRequirement(wynn.Strength, 60),
	)
	assert.Equal(t, []string{"Low"}, names(out))

	assert.Equal(t, []string{"Strong", "Banned"}, names(filter.Apply(items, filter.Types(wynn.SlotRing))))
	assert.Len(t, filter.Apply(items), 4)
}
