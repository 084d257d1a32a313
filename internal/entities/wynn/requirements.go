package wynn

import "sort"

// Requirements are the minimum attribute values and level needed to equip an
// item. Skills lists crafting professions for ingredients.
type Requirements struct {
	Strength     int      `json:"strength,omitempty"`
	Dexterity    int      `json:"dexterity,omitempty"`
	Intelligence int      `json:"intelligence,omitempty"`
	Defence      int      `json:"defence,omitempty"`
	Agility      int      `json:"agility,omitempty"`
	Level        int      `json:"level,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

// Get returns the requirement on a single attribute
func (r Requirements) Get(a Attribute) int {
	switch a {
	case Strength:
		return r.Strength
	case Dexterity:
		return r.Dexterity
	case Intelligence:
		return r.Intelligence
	case Defence:
		return r.Defence
	case Agility:
		return r.Agility
	default:
		return 0
	}
}

// SkillPoints returns the five attribute requirements as a vector
func (r Requirements) SkillPoints() SkillPoints {
	return SkillPoints{r.Strength, r.Dexterity, r.Intelligence, r.Defence, r.Agility}
}

// Add combines the requirements of two equipped items. Each item imposes an
// independent threshold so the result is the component-wise max, not a sum.
func (r Requirements) Add(o Requirements) Requirements {
	return Requirements{
		Strength:     max(r.Strength, o.Strength),
		Dexterity:    max(r.Dexterity, o.Dexterity),
		Intelligence: max(r.Intelligence, o.Intelligence),
		Defence:      max(r.Defence, o.Defence),
		Agility:      max(r.Agility, o.Agility),
		Level:        max(r.Level, o.Level),
		Skills:       unionSkills(r.Skills, o.Skills),
	}
}

// LessOrEqual reports whether every attribute requirement of r is at most o's
func (r Requirements) LessOrEqual(o Requirements) bool {
	a, b := r.SkillPoints(), o.SkillPoints()
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}
	return true
}

func unionSkills(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
