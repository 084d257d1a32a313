package filter

import (
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

// Predicate keeps an item when it returns true
type Predicate func(*wynn.Item) bool

// MaxLevel keeps items usable at level or below
func MaxLevel(level int) Predicate {
	return func(item *wynn.Item) bool {
		return item.Requirements.Level <= level
	}
}

// ExcludeNames drops the named items
func ExcludeNames(names ...string) Predicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(item *wynn.Item) bool {
		_, ok := set[item.Name]
		return !ok
	}
}

// MaxRequirement drops items needing more than value of a
func MaxRequirement(a wynn.Attribute, value int) Predicate {
	return func(item *wynn.Item) bool {
		return item.Requirements.Get(a) <= value
	}
}

// Types keeps items of the given slot types
func Types(types ...wynn.SlotType) Predicate {
	return func(item *wynn.Item) bool {
		for _, t := range types {
			if item.Type == t {
				return true
			}
		}
		return false
	}
}

// Apply returns the items every predicate keeps
func Apply(items []*wynn.Item, preds ...Predicate) []*wynn.Item {
	out := make([]*wynn.Item, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}
