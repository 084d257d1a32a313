package wynn

import "strings"

// Attribute is one of the five skill-point attributes
type Attribute int

// The five attributes in canonical order
const (
	Strength Attribute = iota
	Dexterity
	Intelligence
	Defence
	Agility
)

// NumAttributes is the number of skill-point attributes
const NumAttributes = 5

var attributeNames = [NumAttributes]string{"strength", "dexterity", "intelligence", "defence", "agility"}

var attributeShort = [NumAttributes]string{"str", "dex", "int", "def", "agi"}

var bonusStats = [NumAttributes]string{"rawStrength", "rawDexterity", "rawIntelligence", "rawDefence", "rawAgility"}

// AllAttributes returns the attributes in canonical order
func AllAttributes() []Attribute {
	return []Attribute{Strength, Dexterity, Intelligence, Defence, Agility}
}

// String returns the lowercase attribute name
func (a Attribute) String() string {
	if !a.IsValid() {
		return "unknown"
	}
	return attributeNames[a]
}

// IsValid checks the attribute is one of the five
func (a Attribute) IsValid() bool {
	return a >= Strength && a <= Agility
}

// BonusStat returns the identification carrying the attribute bonus
func (a Attribute) BonusStat() string {
	return bonusStats[a]
}

// AttributeFromString accepts full ("strength") and short ("str") names
func AttributeFromString(s string) (Attribute, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := 0; i < NumAttributes; i++ {
		if attributeNames[i] == s || attributeShort[i] == s {
			return Attribute(i), true
		}
	}
	return 0, false
}

// SkillPoints is a per-attribute vector in canonical order
type SkillPoints [NumAttributes]int

// Get returns the value for a
func (s SkillPoints) Get(a Attribute) int {
	return s[a]
}

// Sum adds up all five attributes
func (s SkillPoints) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Add sums component-wise
func (s SkillPoints) Add(o SkillPoints) SkillPoints {
	for i := range s {
		s[i] += o[i]
	}
	return s
}
