// Package filter prunes the candidate item pool before a model is built
package filter

import (
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/score"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

// DefaultRelevant are the identifications that matter to spell damage no
// matter which elements the weapon deals
var DefaultRelevant = []string{
	"rawStrength", "rawDexterity", "rawIntelligence", "rawDefence", "rawAgility",
	"rawSpellDamage", "spellDamage",
}

// RelevantForDamage adds the damage identification of every element with a
// non-zero base to DefaultRelevant.
func RelevantForDamage(base [score.NumElements]float64) []string {
	out := append([]string(nil), DefaultRelevant...)
	stats := score.DamageStats()
	for i, v := range base {
		if v > 0 {
			out = append(out, stats[i])
		}
	}
	return out
}

// Criteria decides when one item can stand in for another in every build.
// The zero value compares attribute bonuses and requirements only.
type Criteria struct {
	// Higher are identifications where a larger max value is better
	Higher []string
	// Lower are identifications where a smaller max value is better. An
	// identification listed in both has to match exactly.
	Lower []string
	// FixedBonus are attributes whose bonus has to match exactly, for
	// attributes under a total skill-point cap where more is not better
	FixedBonus []wynn.Attribute
	// Exclusive names the members of mutual exclusion sets. They never
	// count as a dominator since the set can force them out of a build.
	Exclusive []string
}

// Dominates reports whether a can replace b in any build: it is at least as
// good on every compared identification and attribute bonus, strictly better
// on one, and needs no more of any attribute. Crafted items never dominate
// since their bonus does not count toward other requirements.
func Dominates(a, b *wynn.Item, c *Criteria) bool {
	if c == nil {
		c = &Criteria{}
	}
	if a.IsCrafted() || !a.Requirements.LessOrEqual(b.Requirements) {
		return false
	}

	strict := false
	ab, bb := a.Bonus(), b.Bonus()
	for _, attr := range c.FixedBonus {
		if ab[attr] != bb[attr] {
			return false
		}
	}
	for i := range ab {
		if ab[i] < bb[i] {
			return false
		}
		if ab[i] > bb[i] {
			strict = true
		}
	}
	for _, id := range c.Higher {
		av, bv := a.Identifications.Get(id).Max, b.Identifications.Get(id).Max
		if av < bv {
			return false
		}
		if av > bv {
			strict = true
		}
	}
	for _, id := range c.Lower {
		av, bv := a.Identifications.Get(id).Max, b.Identifications.Get(id).Max
		if av > bv {
			return false
		}
		if av < bv {
			strict = true
		}
	}
	return strict
}

// RemoveBadItems drops every item another item of the same type dominates.
// A ring has to be dominated by two different rings to go, since a build
// wears two. Order is preserved.
func RemoveBadItems(items []*wynn.Item, c *Criteria) []*wynn.Item {
	exclusive := make(map[string]bool)
	if c != nil {
		for _, name := range c.Exclusive {
			exclusive[name] = true
		}
	}
	byType := wynn.GroupByType(items)

	out := make([]*wynn.Item, 0, len(items))
	for _, item := range items {
		needed := 1
		if item.Type == wynn.SlotRing {
			needed = 2
		}

		dominators := 0
		for _, other := range byType[item.GetType()] {
			if other == item || exclusive[other.GetID()] {
				continue
			}
			if Dominates(other, item, c) {
				dominators++
				if dominators >= needed {
					break
				}
			}
		}
		if dominators < needed {
			out = append(out, item)
		}
	}
	return out
}
