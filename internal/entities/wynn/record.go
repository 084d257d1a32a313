package wynn

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one raw catalog entry as served by the item database
type Record struct {
	Type          string `json:"type,omitempty"`
	AccessoryType string `json:"accessoryType,omitempty"`
	ArmourType    string `json:"armourType,omitempty"`
	WeaponType    string `json:"weaponType,omitempty"`

	Requirements    *RecordRequirements            `json:"requirements,omitempty"`
	Identifications map[string]IdentificationValue `json:"identifications,omitempty"`
	Base            map[string]IdentificationValue `json:"base,omitempty"`
	AttackSpeed     string                         `json:"attackSpeed,omitempty"`

	ItemOnlyIDs       map[string]int     `json:"itemOnlyIDs,omitempty"`
	ConsumableOnlyIDs map[string]int     `json:"consumableOnlyIDs,omitempty"`
	PositionModifiers *PositionModifiers `json:"ingredientPositionModifiers,omitempty"`
}

// RecordRequirements is the requirements object of a record
type RecordRequirements struct {
	Strength     int      `json:"strength,omitempty"`
	Dexterity    int      `json:"dexterity,omitempty"`
	Intelligence int      `json:"intelligence,omitempty"`
	Defence      int      `json:"defence,omitempty"`
	Agility      int      `json:"agility,omitempty"`
	Level        int      `json:"level,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

// ToRequirements converts the record form to Requirements
func (r *RecordRequirements) ToRequirements() Requirements {
	if r == nil {
		return Requirements{}
	}
	return Requirements{
		Strength:     r.Strength,
		Dexterity:    r.Dexterity,
		Intelligence: r.Intelligence,
		Defence:      r.Defence,
		Agility:      r.Agility,
		Level:        r.Level,
		Skills:       r.Skills,
	}
}

// ResolvedType returns the record's slot type. Newer records carry a family
// in "type" and the concrete kind in armourType/accessoryType/weaponType;
// older ones put the kind directly in "type" or only in "accessoryType".
func (r *Record) ResolvedType() string {
	switch r.Type {
	case "armour", "armor":
		return r.ArmourType
	case "accessory":
		return r.AccessoryType
	case "weapon":
		return string(SlotWeapon)
	case "":
		return r.AccessoryType
	default:
		return r.Type
	}
}

// HasBaseDamage reports whether the record carries any base damage
func (r *Record) HasBaseDamage() bool {
	for name, v := range r.Base {
		if IsDamageStat(name) && !v.Range().IsZero() {
			return true
		}
	}
	return false
}

// IsIngredient reports whether the record belongs to the craft domain
func (r *Record) IsIngredient() bool {
	if r.Type == "ingredient" {
		return true
	}
	return r.Type == "" && r.AccessoryType == "" && (r.ItemOnlyIDs != nil || r.ConsumableOnlyIDs != nil)
}

// IsDamageStat reports whether a base stat name is a damage range
func IsDamageStat(name string) bool {
	switch name {
	case "damage", "earthDamage", "thunderDamage", "waterDamage", "fireDamage", "airDamage":
		return true
	default:
		return false
	}
}

// IdentificationValue is either a bare integer or a {min, max, raw} object
type IdentificationValue struct {
	r StatRange
}

// Range returns the decoded range
func (v IdentificationValue) Range() StatRange {
	return v.r
}

// IdentificationFrom wraps a range, for building records in code
func IdentificationFrom(r StatRange) IdentificationValue {
	return IdentificationValue{r: r}
}

// UnmarshalJSON accepts 12 or {"min": 9, "max": 15, "raw": 12}. When raw is
// missing it is the midpoint of min and max.
func (v *IdentificationValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("identification must be an integer or object: %w", err)
		}
		v.r = Fixed(n)
		return nil
	}

	var obj struct {
		Min *int `json:"min"`
		Max *int `json:"max"`
		Raw *int `json:"raw"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Min == nil || obj.Max == nil {
		if obj.Raw == nil {
			return fmt.Errorf("identification object needs min and max or raw")
		}
		v.r = Fixed(*obj.Raw)
		return nil
	}
	raw := (*obj.Min + *obj.Max) / 2
	if obj.Raw != nil {
		raw = *obj.Raw
	}
	v.r = NewStatRange(raw, *obj.Min, *obj.Max)
	return nil
}

// MarshalJSON writes the object form
func (v IdentificationValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.r)
}

// Bag converts decoded identifications to a StatBag
func Bag(values map[string]IdentificationValue) StatBag {
	bag := make(StatBag, len(values))
	for k, v := range values {
		bag[k] = v.Range()
	}
	return bag
}
