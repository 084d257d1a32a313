package testutils

import (
	"fmt"

	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/testutils/builders"
)

// TestWeaponName is the name of the weapon returned by ZeroWeapon
const TestWeaponName = "Training Spear"

// ZeroWeapon returns a weapon with no damage, stats or requirements
func ZeroWeapon() *wynn.Weapon {
	return builders.NewWeapon(TestWeaponName).Build()
}

// ZeroGear returns one zero-stat item per gear type, named after the type.
// Ring is included once; a build wears it twice.
func ZeroGear() []*wynn.Item {
	items := make([]*wynn.Item, 0, len(wynn.GearTypes()))
	for _, slot := range wynn.GearTypes() {
		items = append(items, builders.NewItem(fmt.Sprintf("Plain %s", slot), slot).Build())
	}
	return items
}

// GearBySlot picks the first item of each slot type from items and returns
// them in build order with the ring repeated.
func GearBySlot(items []*wynn.Item) []*wynn.Item {
	first := make(map[wynn.SlotType]*wynn.Item)
	for _, item := range items {
		if _, ok := first[item.Type]; !ok {
			first[item.Type] = item
		}
	}
	slots := wynn.GearSlots()
	out := make([]*wynn.Item, len(slots))
	for i, slot := range slots {
		out[i] = first[slot]
	}
	return out
}
