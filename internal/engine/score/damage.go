package score

import (
	"math"

	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

// NumElements counts neutral plus the five elements
const NumElements = 6

// Element indexes the damage arrays
type Element int

// Elements in damage order
const (
	Neutral Element = iota
	Earth
	Thunder
	Water
	Fire
	Air
)

var damageStats = [NumElements]string{"damage", "earthDamage", "thunderDamage", "waterDamage", "fireDamage", "airDamage"}

var masteryBonus = [NumElements]float64{0, 4, 8, 4, 5, 4}

// elementSkill is the attribute boosting each element; neutral has none
var elementSkill = [NumElements]string{"", "rawStrength", "rawDexterity", "rawIntelligence", "rawDefence", "rawAgility"}

var speedModifier = map[wynn.AttackSpeed]float64{
	wynn.SpeedSuperSlow: 0.51,
	wynn.SpeedVerySlow:  0.83,
	wynn.SpeedSlow:      1.5,
	wynn.SpeedNormal:    2.05,
	wynn.SpeedFast:      2.5,
	wynn.SpeedVeryFast:  3.1,
	wynn.SpeedSuperFast: 4.3,
}

type powder struct {
	element Element
	conv    float64
	add     int
}

// tier 6 powders
var powders = map[rune]powder{
	'e': {Earth, 0.46, 13},
	't': {Thunder, 0.28, 20},
	'w': {Water, 0.32, 11},
	'a': {Air, 0.35, 14},
	'f': {Fire, 0.37, 12},
}

// DamageConfig describes the attack being scored
type DamageConfig struct {
	Weapon *wynn.Weapon

	// Powders lists tier 6 powders applied to the weapon, e.g. "ttt"
	Powders string

	// SpellModifiers are the neutral then elemental conversion fractions of
	// the spell
	SpellModifiers [NumElements]float64

	// Mastery flags the elements whose skill tree mastery is active
	Mastery [NumElements]bool

	// Crit averages in critical hits through dexterity
	Crit bool
}

// Validate checks the damage config
func (c *DamageConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Weapon == nil {
		vb.RequiredField("weapon")
	} else if _, ok := speedModifier[c.Weapon.AttackSpeed]; !ok {
		vb.Fieldf("weapon.attackSpeed", "unknown attack speed %q", c.Weapon.AttackSpeed)
	}
	for _, p := range c.Powders {
		if _, ok := powders[p]; !ok {
			vb.Fieldf("powders", "unknown powder %q", string(p))
		}
	}
	return vb.Build()
}

// Damage scores builds by average spell damage per cast
type Damage struct {
	cfg     *DamageConfig
	base    [NumElements]float64
	modSum  float64
	baseSum float64
}

// NewDamage precomputes the weapon's base damage
func NewDamage(cfg *DamageConfig) (*Damage, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("damage config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid damage config")
	}

	d := &Damage{cfg: cfg}
	d.base = BaseDamage(cfg.Weapon, cfg.Powders, cfg.SpellModifiers, cfg.Mastery)
	for i := 0; i < NumElements; i++ {
		d.modSum += cfg.SpellModifiers[i]
		d.baseSum += d.base[i]
	}
	return d, nil
}

// Base returns the per element base damage
func (d *Damage) Base() [NumElements]float64 {
	return d.base
}

// Score implements Func
func (d *Damage) Score(bag wynn.StatBag) float64 {
	if d.baseSum == 0 {
		return 0
	}

	strPct := SkillPointPct(bag.Get("rawStrength").Max)
	dexPct := SkillPointPct(bag.Get("rawDexterity").Max)
	multiplier := 1 + strPct
	if d.cfg.Crit {
		multiplier += dexPct
	}
	rawSpell := float64(bag.Get("rawSpellDamage").Max)
	spellPct := float64(bag.Get("spellDamage").Max)

	total := 0.0
	for i := 0; i < NumElements; i++ {
		if d.base[i] == 0 {
			continue
		}
		pct := float64(bag.Get(damageStats[i]).Max) + spellPct
		if d.cfg.Mastery[i] {
			pct += 15
		}
		if elementSkill[i] != "" {
			pct += 100 * SkillPointPct(bag.Get(elementSkill[i]).Max)
		}

		dmg := d.base[i] * (1 + pct/100)
		dmg += d.base[i] / d.baseSum * d.modSum * rawSpell
		total += dmg * multiplier
	}
	return total
}

// BaseDamage applies powders, spell conversion, attack speed and mastery to
// the weapon's max damage.
func BaseDamage(w *wynn.Weapon, powderList string, mods [NumElements]float64, mastery [NumElements]bool) [NumElements]float64 {
	var dmg [NumElements]float64
	for i := 0; i < NumElements; i++ {
		dmg[i] = float64(w.Damage.Get(damageStats[i]).Max)
	}
	dmg = applyPowders(dmg, powderList)

	speed := speedModifier[w.AttackSpeed]
	sum := 0.0
	for _, v := range dmg {
		sum += v
	}

	var base [NumElements]float64
	for i := 0; i < NumElements; i++ {
		base[i] = (dmg[i]*mods[Neutral] + sum*mods[i]) * speed
		if base[i] != 0 && mastery[i] {
			base[i] += masteryBonus[i]
		}
	}
	// neutral only scales its own damage
	base[Neutral] = dmg[Neutral] * speed * mods[Neutral]
	return base
}

func applyPowders(dmg [NumElements]float64, powderList string) [NumElements]float64 {
	for _, r := range powderList {
		p, ok := powders[r]
		if !ok {
			continue
		}
		dmg[p.element] += math.Floor(dmg[Neutral]*p.conv) + float64(p.add)
		dmg[Neutral] -= math.Ceil(dmg[Neutral] * p.conv)
	}
	return dmg
}

const spRatio = 0.9908

// SkillPointPct converts attribute points to the damage fraction they grant.
// Points are clamped to [0, 150].
func SkillPointPct(sp int) float64 {
	if sp <= 0 {
		return 0
	}
	if sp > 150 {
		sp = 150
	}
	return spRatio / (1 - spRatio) * (1 - math.Pow(spRatio, float64(sp))) / 100
}

// DamageStats returns the damage identification of each element
func DamageStats() [NumElements]string {
	return damageStats
}
