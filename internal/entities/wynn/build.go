package wynn

import (
	"strings"
	"sync"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

// Positions of the two rings within Build.Items
const (
	Ring1Index = 4
	Ring2Index = 5
)

// AllocatorFunc computes the manually assigned and item granted skill points
// of a set of equipped items.
type AllocatorFunc func(items []*Item) (required, bonus SkillPoints)

// Build is a full equipped set: a weapon plus the 8 gear positions in
// GearSlots order. The aggregate item and skill-point allocation are computed
// once and cached. A Build must not be copied after first use.
type Build struct {
	Weapon *Weapon
	Items  [NumGearSlots]*Item

	aggOnce   sync.Once
	aggregate *Item

	spOnce   sync.Once
	required SkillPoints
	bonus    SkillPoints
}

// NewBuild validates slot order and returns a build
func NewBuild(weapon *Weapon, items ...*Item) (*Build, error) {
	if weapon == nil {
		return nil, errors.InvalidArgument("build requires a weapon")
	}
	if len(items) != NumGearSlots {
		return nil, errors.InvalidArgumentf("build requires %d items, got %d", NumGearSlots, len(items))
	}

	b := &Build{Weapon: weapon}
	slots := GearSlots()
	for i, item := range items {
		if item == nil {
			return nil, errors.InvalidArgumentf("build position %d (%s) is empty", i, slots[i])
		}
		if item.Type != slots[i] {
			return nil, errors.InvalidArgumentf("item %q is a %s, position %d needs a %s",
				item.Name, item.Type, i, slots[i])
		}
		b.Items[i] = item
	}
	return b, nil
}

// Equipped returns the weapon followed by the 8 gear items
func (b *Build) Equipped() []*Item {
	out := make([]*Item, 0, NumGearSlots+1)
	out = append(out, b.Weapon.AsItem())
	out = append(out, b.Items[:]...)
	return out
}

// Aggregate returns the sum of the weapon and all gear items
func (b *Build) Aggregate() *Item {
	b.aggOnce.Do(func() {
		agg := NoItem
		for _, item := range b.Equipped() {
			agg = agg.Add(item)
		}
		b.aggregate = agg
	})
	return b.aggregate
}

// Allocation returns the skill points computed by fn, memoized on first call
func (b *Build) Allocation(fn AllocatorFunc) (required, bonus SkillPoints) {
	b.spOnce.Do(func() {
		b.required, b.bonus = fn(b.Equipped())
	})
	return b.required, b.bonus
}

// Names returns the gear item names in build order
func (b *Build) Names() []string {
	names := make([]string, NumGearSlots)
	for i, item := range b.Items {
		names[i] = item.Name
	}
	return names
}

// Key identifies the item set of the build. The rings are ordered by name so
// two builds that only swap rings share a key.
func (b *Build) Key() string {
	return SetKey(b.Weapon.Name, b.Names())
}

// SetKey builds the canonical key for a weapon and gear names in build order
func SetKey(weapon string, names []string) string {
	parts := make([]string, 0, len(names)+1)
	parts = append(parts, weapon)
	parts = append(parts, names...)
	if len(names) == NumGearSlots {
		r1, r2 := names[Ring1Index], names[Ring2Index]
		if r2 < r1 {
			parts[Ring1Index+1], parts[Ring2Index+1] = r2, r1
		}
	}
	return strings.Join(parts, "|")
}

// String lists the weapon and gear names
func (b *Build) String() string {
	return b.Weapon.Name + ": " + strings.Join(b.Names(), ", ")
}
