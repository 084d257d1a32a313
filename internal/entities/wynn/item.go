package wynn

import "github.com/KirkDiggler/rpg-toolkit/core"

// CraftedStats are the extra properties of a crafted item
type CraftedStats struct {
	Charges    int `json:"charges"`
	Duration   int `json:"duration"`
	Durability int `json:"durability"`
}

// Item is a piece of gear: helmet, chestplate, leggings, boots, ring,
// bracelet or necklace. Items are built from catalog records at load time
// and never mutated afterwards; operations return new items.
type Item struct {
	Name            string       `json:"name"`
	Type            SlotType     `json:"type"`
	Identifications StatBag      `json:"identifications,omitempty"`
	Requirements    Requirements `json:"requirements"`

	// Crafted is set for crafted items. Their attributes are fixed once built
	// and their own bonuses never help satisfy requirements.
	Crafted *CraftedStats `json:"crafted,omitempty"`
}

// NoItem is the additive identity: no stats and no requirements
var NoItem = &Item{Name: "No Item", Type: SlotBuild, Identifications: StatBag{}}

var _ core.Entity = (*Item)(nil)

// GetID returns the item name, which is unique within a catalog
func (i *Item) GetID() string {
	return i.Name
}

// GetType returns the slot type
func (i *Item) GetType() string {
	return string(i.Type)
}

// IsCrafted reports whether the item is crafted
func (i *Item) IsCrafted() bool {
	return i.Crafted != nil
}

// Bonus returns the item's own attribute bonuses
func (i *Item) Bonus() SkillPoints {
	var sp SkillPoints
	for _, a := range AllAttributes() {
		sp[a] = i.Identifications.Get(a.BonusStat()).Raw
	}
	return sp
}

// Add aggregates two items into a build item: identifications are summed and
// requirements take the component-wise max.
func (i *Item) Add(o *Item) *Item {
	return &Item{
		Name:            "build",
		Type:            SlotBuild,
		Identifications: i.Identifications.Add(o.Identifications),
		Requirements:    i.Requirements.Add(o.Requirements),
	}
}

// WithIdentifications returns a copy of the item carrying bag
func (i *Item) WithIdentifications(bag StatBag) *Item {
	cp := *i
	cp.Identifications = bag
	return &cp
}

// Weapon is an item with base damage and an attack speed
type Weapon struct {
	Item
	AttackSpeed AttackSpeed `json:"attackSpeed"`
	Damage      StatBag     `json:"damage"`
}

var _ core.Entity = (*Weapon)(nil)

// AsItem returns the weapon's item part, used when aggregating a build
func (w *Weapon) AsItem() *Item {
	return &w.Item
}
