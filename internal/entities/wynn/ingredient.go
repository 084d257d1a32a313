package wynn

// PositionModifiers scale the effectiveness of neighbouring ingredients in a
// recipe grid, in percent.
type PositionModifiers struct {
	Left        int `json:"left"`
	Right       int `json:"right"`
	Above       int `json:"above"`
	Under       int `json:"under"`
	Touching    int `json:"touching"`
	NotTouching int `json:"notTouching"`
}

// AbsTotal is the sum of absolute modifier values
func (m PositionModifiers) AbsTotal() int {
	return abs(m.Left) + abs(m.Right) + abs(m.Above) + abs(m.Under) + abs(m.Touching) + abs(m.NotTouching)
}

// Ingredient is a crafting component from the craft domain of the catalog
type Ingredient struct {
	Name            string            `json:"name"`
	Charges         int               `json:"charges"`
	Duration        int               `json:"duration"`
	Durability      int               `json:"durability"`
	Requirements    Requirements      `json:"requirements"`
	Identifications StatBag           `json:"identifications,omitempty"`
	Modifiers       PositionModifiers `json:"modifiers"`
}

// UsableBy reports whether a crafting profession may use the ingredient
func (i *Ingredient) UsableBy(profession string) bool {
	for _, s := range i.Requirements.Skills {
		if s == profession {
			return true
		}
	}
	return false
}

// Scale applies a position modifier to the ingredient's identifications and
// attribute requirements. Charges, duration and durability are unaffected.
func (i *Ingredient) Scale(pct int) *Ingredient {
	cp := *i
	cp.Identifications = i.Identifications.Scale(pct)
	cp.Requirements.Strength = i.Requirements.Strength * pct / 100
	cp.Requirements.Dexterity = i.Requirements.Dexterity * pct / 100
	cp.Requirements.Intelligence = i.Requirements.Intelligence * pct / 100
	cp.Requirements.Defence = i.Requirements.Defence * pct / 100
	cp.Requirements.Agility = i.Requirements.Agility * pct / 100
	return &cp
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
