package model

import (
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

// SkillPointSumCap bounds the net skill-point cost of the selected items over a
// set of attributes: the sum of requirement minus bonus.
type SkillPointSumCap struct {
	Value      int
	Attributes []wynn.Attribute
}

// Config describes one optimization problem
type Config struct {
	// Items is the candidate universe. Items of a type outside the 7 gear
	// types are ignored.
	Items  []*wynn.Item
	Weapon *wynn.Weapon

	// ItemScore is the per-item objective coefficient
	ItemScore func(*wynn.Item) float64

	// MaxRequirement removes candidates requiring more than the cap
	MaxRequirement map[wynn.Attribute]int

	// Identification caps on the build's max values, weapon included
	MaxIdentification map[string]int
	MinIdentification map[string]int

	SkillPointSumCaps []SkillPointSumCap

	// MaxAssignable caps the points assigned by hand per attribute
	MaxAssignable map[wynn.Attribute]int

	// Bounds on the final attribute value: bonuses plus assigned points
	MaxSkillPoints map[wynn.Attribute]int
	MinSkillPoints map[wynn.Attribute]int

	// Exclusions lists item names of which at most one may be worn
	Exclusions [][]string

	// SPFactor weighs the points that end up in SPPair, as a linear proxy for
	// their effect on the score
	SPFactor float64
	SPPair   [2]wynn.Attribute

	// MinScore bounds the summed item scores, MinScoreSP the full objective
	MinScore   *float64
	MinScoreSP *float64
}

// Validate checks the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Weapon == nil {
		vb.RequiredField("Weapon")
	}
	if c.ItemScore == nil {
		vb.RequiredField("ItemScore")
	}
	errors.ValidateNonNegative("SPFactor", c.SPFactor, vb)
	for _, a := range c.SPPair {
		if !a.IsValid() {
			vb.InvalidField("SPPair", "unknown attribute")
		}
	}
	for _, capped := range c.SkillPointSumCaps {
		if len(capped.Attributes) == 0 {
			vb.InvalidField("SkillPointSumCaps", "cap needs at least one attribute")
		}
	}
	for i, set := range c.Exclusions {
		if len(set) < 2 {
			vb.Fieldf("Exclusions", "set %d needs at least two names", i)
		}
	}

	return vb.Build()
}
