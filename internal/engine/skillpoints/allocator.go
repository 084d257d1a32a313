package skillpoints

import (
	"sort"

	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

const (
	// Budget is the most skill points a build may require. Builds needing more
	// are rejected by validation.
	Budget = 205

	// Assignable is the number of points a character can distribute
	Assignable = 200

	// AttributeCap is the most points that can be assigned to one attribute
	AttributeCap = 100

	// MaxAssign bounds the per-attribute assignment variables of the model
	MaxAssign = 102
)

type entry struct {
	req   int
	bonus int
}

// Allocate returns the points that must be assigned per attribute to equip
// every item, and the summed attribute bonus of the items.
func Allocate(items []*wynn.Item) (required, bonus wynn.SkillPoints) {
	for _, a := range wynn.AllAttributes() {
		required[a], bonus[a] = allocateAttribute(items, a)
	}
	return required, bonus
}

// AllocateBuild runs Allocate on the weapon and gear of b. The result is
// memoized on the build.
func AllocateBuild(b *wynn.Build) (required, bonus wynn.SkillPoints) {
	return b.Allocation(Allocate)
}

// Feasible reports whether required fits in Budget
func Feasible(required wynn.SkillPoints) bool {
	return required.Sum() <= Budget
}

func allocateAttribute(items []*wynn.Item, a wynn.Attribute) (int, int) {
	var (
		pool     int
		total    int
		all      int
		ordered  []entry
		checked  []entry
		crafted  []int
		required int
	)

	for _, item := range items {
		if item == nil {
			continue
		}
		req := item.Requirements.Get(a)
		b := item.Bonus()[a]
		all += b

		if item.IsCrafted() {
			if req > 0 {
				crafted = append(crafted, req)
			}
			continue
		}

		total += b
		switch {
		case req <= 0:
			if b > 0 {
				pool += b
			}
		case b >= 0:
			ordered = append(ordered, entry{req: req, bonus: b})
			checked = append(checked, entry{req: req, bonus: b})
		default:
			checked = append(checked, entry{req: req, bonus: b})
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].req < ordered[j].req
	})

	for _, e := range ordered {
		required = max(required, e.req-pool)
		pool += e.bonus
	}

	// Once everything is on, negative bonuses apply too, so each item has to
	// hold against the full total.
	for _, e := range checked {
		required = max(required, e.req-total)
	}

	for _, req := range crafted {
		required = max(required, req-total)
	}

	return max(required, 0), all
}
