package catalog

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

// snapshot is one decoded catalog
type snapshot struct {
	items       map[string]*wynn.Item
	weapons     map[string]*wynn.Weapon
	notWeapons  map[string]struct{}
	ingredients map[string]*wynn.Ingredient
	loadedAt    time.Time
}

// decode converts raw records into typed entities. Records of kinds the
// optimizer has no use for (tomes, charms, materials) are skipped.
func decode(raw map[string]json.RawMessage) (*snapshot, error) {
	snap := &snapshot{
		items:       make(map[string]*wynn.Item),
		weapons:     make(map[string]*wynn.Weapon),
		notWeapons:  make(map[string]struct{}),
		ingredients: make(map[string]*wynn.Ingredient),
	}

	for name, body := range raw {
		var rec wynn.Record
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, errors.MalformedRecord(name, err)
		}

		if rec.IsIngredient() {
			ing, err := toIngredient(name, &rec)
			if err != nil {
				return nil, err
			}
			snap.ingredients[name] = ing
			continue
		}

		slot, ok := wynn.SlotTypeFromString(rec.ResolvedType())
		if !ok {
			continue
		}
		if rec.Requirements == nil {
			return nil, errors.MalformedRecord(name, nil).WithMeta("reason", "missing requirements")
		}

		if slot == wynn.SlotWeapon {
			if !rec.HasBaseDamage() {
				snap.notWeapons[name] = struct{}{}
				continue
			}
			w, err := toWeapon(name, &rec)
			if err != nil {
				return nil, err
			}
			snap.weapons[name] = w
			continue
		}

		snap.items[name] = &wynn.Item{
			Name:            name,
			Type:            slot,
			Identifications: wynn.Bag(rec.Identifications),
			Requirements:    rec.Requirements.ToRequirements(),
		}
	}
	return snap, nil
}

func toWeapon(name string, rec *wynn.Record) (*wynn.Weapon, error) {
	speed := wynn.AttackSpeed(rec.AttackSpeed)
	if !speed.IsValid() {
		return nil, errors.MalformedRecord(name, nil).WithMeta("attack_speed", rec.AttackSpeed)
	}

	damage := make(wynn.StatBag)
	for stat, v := range rec.Base {
		if wynn.IsDamageStat(stat) {
			damage[stat] = v.Range()
		}
	}

	return &wynn.Weapon{
		Item: wynn.Item{
			Name:            name,
			Type:            wynn.SlotWeapon,
			Identifications: wynn.Bag(rec.Identifications),
			Requirements:    rec.Requirements.ToRequirements(),
		},
		AttackSpeed: speed,
		Damage:      damage,
	}, nil
}

// toIngredient reads attribute requirements from itemOnlyIDs, where the
// craft domain keeps them, and level and professions from requirements.
func toIngredient(name string, rec *wynn.Record) (*wynn.Ingredient, error) {
	if rec.Requirements == nil {
		return nil, errors.MalformedRecord(name, nil).WithMeta("reason", "missing requirements")
	}

	ing := &wynn.Ingredient{
		Name:            name,
		Charges:         rec.ConsumableOnlyIDs["charges"],
		Duration:        rec.ConsumableOnlyIDs["duration"],
		Durability:      rec.ItemOnlyIDs["durabilityModifier"],
		Identifications: wynn.Bag(rec.Identifications),
		Requirements: wynn.Requirements{
			Strength:     rec.ItemOnlyIDs["strengthRequirement"],
			Dexterity:    rec.ItemOnlyIDs["dexterityRequirement"],
			Intelligence: rec.ItemOnlyIDs["intelligenceRequirement"],
			Defence:      rec.ItemOnlyIDs["defenceRequirement"],
			Agility:      rec.ItemOnlyIDs["agilityRequirement"],
			Level:        rec.Requirements.Level,
			Skills:       rec.Requirements.Skills,
		},
	}
	if rec.PositionModifiers != nil {
		ing.Modifiers = *rec.PositionModifiers
	}
	return ing, nil
}
