package wynn

// SlotType is the equipment type of an item
type SlotType string

// Equipment types as they appear in catalog records
const (
	SlotHelmet     SlotType = "helmet"
	SlotChestplate SlotType = "chestplate"
	SlotLeggings   SlotType = "leggings"
	SlotBoots      SlotType = "boots"
	SlotRing       SlotType = "ring"
	SlotBracelet   SlotType = "bracelet"
	SlotNecklace   SlotType = "necklace"
	SlotWeapon     SlotType = "weapon"

	// SlotBuild marks the aggregate item of a whole build
	SlotBuild SlotType = "build"
)

// NumGearSlots is the number of non-weapon positions in a build
const NumGearSlots = 8

// String returns the string representation of the slot type
func (s SlotType) String() string {
	return string(s)
}

// IsValid checks if the slot type is one an item can have
func (s SlotType) IsValid() bool {
	switch s {
	case SlotHelmet, SlotChestplate, SlotLeggings, SlotBoots,
		SlotRing, SlotBracelet, SlotNecklace, SlotWeapon:
		return true
	default:
		return false
	}
}

// IsGear reports whether the slot type fills one of the 8 gear positions
func (s SlotType) IsGear() bool {
	return s.IsValid() && s != SlotWeapon
}

// GearTypes returns the distinct gear slot types
func GearTypes() []SlotType {
	return []SlotType{
		SlotHelmet,
		SlotChestplate,
		SlotLeggings,
		SlotBoots,
		SlotRing,
		SlotBracelet,
		SlotNecklace,
	}
}

// GearSlots returns the 8 build positions in order. Ring appears twice.
func GearSlots() [NumGearSlots]SlotType {
	return [NumGearSlots]SlotType{
		SlotHelmet,
		SlotChestplate,
		SlotLeggings,
		SlotBoots,
		SlotRing,
		SlotRing,
		SlotBracelet,
		SlotNecklace,
	}
}

// SlotTypeFromString converts a string to a SlotType
// Returns the slot and true if valid, empty slot and false if invalid
func SlotTypeFromString(s string) (SlotType, bool) {
	slot := SlotType(s)
	if slot.IsValid() {
		return slot, true
	}
	return "", false
}

// AttackSpeed is a weapon's attack speed tier
type AttackSpeed string

// Attack speeds from slowest to fastest
const (
	SpeedSuperSlow AttackSpeed = "super_slow"
	SpeedVerySlow  AttackSpeed = "very_slow"
	SpeedSlow      AttackSpeed = "slow"
	SpeedNormal    AttackSpeed = "normal"
	SpeedFast      AttackSpeed = "fast"
	SpeedVeryFast  AttackSpeed = "very_fast"
	SpeedSuperFast AttackSpeed = "super_fast"
)

// IsValid checks the attack speed is a known tier
func (a AttackSpeed) IsValid() bool {
	switch a {
	case SpeedSuperSlow, SpeedVerySlow, SpeedSlow, SpeedNormal,
		SpeedFast, SpeedVeryFast, SpeedSuperFast:
		return true
	default:
		return false
	}
}
