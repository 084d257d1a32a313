// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

// ItemBuilder provides a fluent interface for building test items
type ItemBuilder struct {
	item *wynn.Item
}

// NewItem creates a builder for a zero-stat item of the given slot type
func NewItem(name string, slot wynn.SlotType) *ItemBuilder {
	return &ItemBuilder{
		item: &wynn.Item{
			Name:            name,
			Type:            slot,
			Identifications: wynn.StatBag{},
		},
	}
}

// WithRequirement sets the requirement on one attribute
func (b *ItemBuilder) WithRequirement(a wynn.Attribute, v int) *ItemBuilder {
	switch a {
	case wynn.Strength:
		b.item.Requirements.Strength = v
	case wynn.Dexterity:
		b.item.Requirements.Dexterity = v
	case wynn.Intelligence:
		b.item.Requirements.Intelligence = v
	case wynn.Defence:
		b.item.Requirements.Defence = v
	case wynn.Agility:
		b.item.Requirements.Agility = v
	}
	return b
}

// WithLevel sets the level requirement
func (b *ItemBuilder) WithLevel(level int) *ItemBuilder {
	b.item.Requirements.Level = level
	return b
}

// WithBonus sets a fixed attribute bonus
func (b *ItemBuilder) WithBonus(a wynn.Attribute, v int) *ItemBuilder {
	b.item.Identifications[a.BonusStat()] = wynn.Fixed(v)
	return b
}

// WithStat sets a fixed identification
func (b *ItemBuilder) WithStat(name string, v int) *ItemBuilder {
	b.item.Identifications[name] = wynn.Fixed(v)
	return b
}

// WithRange sets a rolled identification
func (b *ItemBuilder) WithRange(name string, raw, minValue, maxValue int) *ItemBuilder {
	b.item.Identifications[name] = wynn.NewStatRange(raw, minValue, maxValue)
	return b
}

// Crafted marks the item as crafted
func (b *ItemBuilder) Crafted() *ItemBuilder {
	b.item.Crafted = &wynn.CraftedStats{Durability: 100}
	return b
}

// Build returns the item
func (b *ItemBuilder) Build() *wynn.Item {
	return b.item
}

// WeaponBuilder provides a fluent interface for building test weapons
type WeaponBuilder struct {
	weapon *wynn.Weapon
}

// NewWeapon creates a builder for a normal speed weapon with no damage
func NewWeapon(name string) *WeaponBuilder {
	return &WeaponBuilder{
		weapon: &wynn.Weapon{
			Item: wynn.Item{
				Name:            name,
				Type:            wynn.SlotWeapon,
				Identifications: wynn.StatBag{},
			},
			AttackSpeed: wynn.SpeedNormal,
			Damage:      wynn.StatBag{},
		},
	}
}

// WithDamage sets a fixed base damage for one element
func (b *WeaponBuilder) WithDamage(stat string, v int) *WeaponBuilder {
	b.weapon.Damage[stat] = wynn.Fixed(v)
	return b
}

// WithSpeed sets the attack speed
func (b *WeaponBuilder) WithSpeed(speed wynn.AttackSpeed) *WeaponBuilder {
	b.weapon.AttackSpeed = speed
	return b
}

// WithRequirement sets the requirement on one attribute
func (b *WeaponBuilder) WithRequirement(a wynn.Attribute, v int) *WeaponBuilder {
	ib := &ItemBuilder{item: &b.weapon.Item}
	ib.WithRequirement(a, v)
	return b
}

// WithBonus sets a fixed attribute bonus
func (b *WeaponBuilder) WithBonus(a wynn.Attribute, v int) *WeaponBuilder {
	b.weapon.Identifications[a.BonusStat()] = wynn.Fixed(v)
	return b
}

// WithStat sets a fixed identification
func (b *WeaponBuilder) WithStat(name string, v int) *WeaponBuilder {
	b.weapon.Identifications[name] = wynn.Fixed(v)
	return b
}

// Build returns the weapon
func (b *WeaponBuilder) Build() *wynn.Weapon {
	return b.weapon
}
