package config

import (
	"time"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/model"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/score"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/orchestrators/optimizer"
)

// OptimizerConfig is the run profile. Attribute keys accept full or short
// names ("strength" or "str"). Identification names are case sensitive, and
// viper lowercases map keys, so they are given as name/value lists.
type OptimizerConfig struct {
	Weapon  string `mapstructure:"weapon"`
	Powders string `mapstructure:"powders"`
	// SpellMod lists the neutral, earth, thunder, water, fire and air
	// conversion of the spell
	SpellMod []float64 `mapstructure:"spell_mod"`
	Mastery  []bool    `mapstructure:"mastery"`
	Crit     bool      `mapstructure:"crit"`
	Weights  []Weight  `mapstructure:"weights"`

	SPFactor float64  `mapstructure:"sp_factor"`
	SPPair   []string `mapstructure:"sp_pair"`
	Shrink   float64  `mapstructure:"shrink"`

	Workers   int           `mapstructure:"workers"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Backend   string        `mapstructure:"backend"`
	NodeLimit int64         `mapstructure:"node_limit"`

	MaxLevel int      `mapstructure:"max_level"`
	Exclude  []string `mapstructure:"exclude"`
	Relevant []string `mapstructure:"relevant"`

	Caps             CapsConfig `mapstructure:"caps"`
	Exclusions       [][]string `mapstructure:"exclusions"`
	ExclusionPresets []string   `mapstructure:"exclusion_presets"`
	MinScore         *float64   `mapstructure:"min_score"`
	MinScoreSP       *float64   `mapstructure:"min_score_sp"`
}

// CapsConfig holds the model constraints
type CapsConfig struct {
	MaxRequirement    map[string]int `mapstructure:"max_requirement"`
	MaxIdentification []IDCap        `mapstructure:"max_identification"`
	MinIdentification []IDCap        `mapstructure:"min_identification"`
	SPSum             []SPSumCap     `mapstructure:"sp_sum"`
	MaxAssignable     map[string]int `mapstructure:"max_assignable"`
	MaxSkillPoints    map[string]int `mapstructure:"max_skill_points"`
	MinSkillPoints    map[string]int `mapstructure:"min_skill_points"`
}

// Weight scores one identification
type Weight struct {
	Name  string  `mapstructure:"name"`
	Value float64 `mapstructure:"value"`
}

// IDCap bounds one identification
type IDCap struct {
	Name  string `mapstructure:"name"`
	Value int    `mapstructure:"value"`
}

// SPSumCap caps the net skill-point cost over a set of attributes
type SPSumCap struct {
	Value      int      `mapstructure:"value"`
	Attributes []string `mapstructure:"attributes"`
}

func (o *OptimizerConfig) validate(vb *errors.ValidationBuilder) {
	if len(o.SpellMod) > score.NumElements {
		vb.Fieldf("optimizer.spell_mod", "at most %d values", score.NumElements)
	}
	if len(o.Mastery) > score.NumElements {
		vb.Fieldf("optimizer.mastery", "at most %d values", score.NumElements)
	}
	if len(o.SPPair) != 0 && len(o.SPPair) != 2 {
		vb.InvalidField("optimizer.sp_pair", "needs exactly two attributes")
	}
	errors.ValidateNonNegative("optimizer.sp_factor", o.SPFactor, vb)
	if o.Workers < 0 {
		vb.InvalidField("optimizer.workers", "must not be negative")
	}
	if o.Timeout < 0 {
		vb.InvalidField("optimizer.timeout", "must not be negative")
	}

	for _, names := range [][]string{o.SPPair, attrKeys(o.Caps.MaxRequirement), attrKeys(o.Caps.MaxAssignable),
		attrKeys(o.Caps.MaxSkillPoints), attrKeys(o.Caps.MinSkillPoints)} {
		for _, name := range names {
			if _, ok := wynn.AttributeFromString(name); !ok {
				vb.Fieldf("optimizer", "unknown attribute %q", name)
			}
		}
	}
	for _, caps := range [][]IDCap{o.Caps.MaxIdentification, o.Caps.MinIdentification} {
		for _, c := range caps {
			if c.Name == "" {
				vb.RequiredField("optimizer.caps identification name")
			}
		}
	}
	for _, w := range o.Weights {
		if w.Name == "" {
			vb.RequiredField("optimizer.weights name")
		}
	}
	for i, c := range o.Caps.SPSum {
		if len(c.Attributes) == 0 {
			vb.Fieldf("optimizer.caps.sp_sum", "cap %d needs attributes", i)
		}
		for _, name := range c.Attributes {
			if _, ok := wynn.AttributeFromString(name); !ok {
				vb.Fieldf("optimizer.caps.sp_sum", "unknown attribute %q", name)
			}
		}
	}
	for _, name := range o.ExclusionPresets {
		if _, ok := model.ExclusionPresets[name]; !ok {
			vb.Fieldf("optimizer.exclusion_presets", "unknown preset %q", name)
		}
	}
}

// Profile converts the configuration into an optimizer profile. Call it on a
// validated config.
func (o *OptimizerConfig) Profile() *optimizer.Profile {
	p := &optimizer.Profile{
		Weapon:            o.Weapon,
		Powders:           o.Powders,
		Crit:              o.Crit,
		SPFactor:          o.SPFactor,
		Shrink:            o.Shrink,
		MaxLevel:          o.MaxLevel,
		ExcludeNames:      o.Exclude,
		Relevant:          o.Relevant,
		MaxRequirement:    attrMap(o.Caps.MaxRequirement),
		MaxIdentification: idMap(o.Caps.MaxIdentification),
		MinIdentification: idMap(o.Caps.MinIdentification),
		MaxAssignable:     attrMap(o.Caps.MaxAssignable),
		MaxSkillPoints:    attrMap(o.Caps.MaxSkillPoints),
		MinSkillPoints:    attrMap(o.Caps.MinSkillPoints),
		Exclusions:        o.Exclusions,
		ExclusionPresets:  o.ExclusionPresets,
		MinScore:          o.MinScore,
		MinScoreSP:        o.MinScoreSP,
		Backend:           o.Backend,
		NodeLimit:         o.NodeLimit,
	}
	if len(o.Weights) > 0 {
		p.Weights = make(map[string]float64, len(o.Weights))
		for _, w := range o.Weights {
			p.Weights[w.Name] = w.Value
		}
	}
	copy(p.SpellModifiers[:], o.SpellMod)
	copy(p.Mastery[:], o.Mastery)
	if len(o.SPPair) == 2 {
		p.SPPair[0], _ = wynn.AttributeFromString(o.SPPair[0])
		p.SPPair[1], _ = wynn.AttributeFromString(o.SPPair[1])
	}
	for _, c := range o.Caps.SPSum {
		capped := model.SkillPointSumCap{Value: c.Value}
		for _, name := range c.Attributes {
			a, _ := wynn.AttributeFromString(name)
			capped.Attributes = append(capped.Attributes, a)
		}
		p.SkillPointSumCaps = append(p.SkillPointSumCaps, capped)
	}
	return p
}

func attrKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func attrMap(m map[string]int) map[wynn.Attribute]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[wynn.Attribute]int, len(m))
	for k, v := range m {
		if a, ok := wynn.AttributeFromString(k); ok {
			out[a] = v
		}
	}
	return out
}

func idMap(caps []IDCap) map[string]int {
	if len(caps) == 0 {
		return nil
	}
	out := make(map[string]int, len(caps))
	for _, c := range caps {
		out[c.Name] = c.Value
	}
	return out
}
