// Package score holds the scoring strategies used to rank builds
package score

import (
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

// Func scores an aggregate stat bag. Higher is better.
type Func func(bag wynn.StatBag) float64

// ForItem returns the per-item proxy the model optimises: the score of the
// item's identifications added to the weapon's.
func ForItem(fn Func, weapon *wynn.Weapon) func(*wynn.Item) float64 {
	var base wynn.StatBag
	if weapon != nil {
		base = weapon.Identifications
	}
	return func(item *wynn.Item) float64 {
		return fn(base.Add(item.Identifications))
	}
}

// IdentificationSum scores a bag as a weighted sum of identification maxima
type IdentificationSum struct {
	Weights map[string]float64
}

// Score implements Func
func (s *IdentificationSum) Score(bag wynn.StatBag) float64 {
	total := 0.0
	for name, w := range s.Weights {
		total += w * float64(bag.Get(name).Max)
	}
	return total
}
