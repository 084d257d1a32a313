package skillpoints

import (
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

// Options controls where AddSP puts the unassigned remainder
type Options struct {
	// Pair receives the remainder, first attribute first
	Pair [2]wynn.Attribute
}

// DefaultOptions spends the remainder on strength and dexterity
func DefaultOptions() *Options {
	return &Options{Pair: [2]wynn.Attribute{wynn.Strength, wynn.Dexterity}}
}

// Remainder returns the points left after covering required
func Remainder(required wynn.SkillPoints) int {
	return max(0, Assignable-required.Sum())
}

// Split returns the extra points given to each attribute of the pair. When
// both attributes are below AttributeCap the remainder is halved with the
// first attribute taking the odd point; otherwise it all goes to the lower one.
func Split(required, bonus wynn.SkillPoints, pair [2]wynn.Attribute) wynn.SkillPoints {
	var extra wynn.SkillPoints
	r := Remainder(required)
	if r == 0 {
		return extra
	}

	p0, p1 := pair[0], pair[1]
	v0 := required[p0] + bonus[p0]
	v1 := required[p1] + bonus[p1]

	if v0 < AttributeCap && v1 < AttributeCap {
		extra[p0] = (r + 1) / 2
		extra[p1] = r / 2
		return extra
	}
	if v0 <= v1 {
		extra[p0] = r
	} else {
		extra[p1] = r
	}
	return extra
}

// AddSP returns a copy of item whose raw attribute identifications hold the
// final attribute values: assigned points plus item bonuses plus the split
// remainder. item itself is left untouched.
func AddSP(item *wynn.Item, required, bonus wynn.SkillPoints, opts *Options) *wynn.Item {
	if opts == nil {
		opts = DefaultOptions()
	}
	extra := Split(required, bonus, opts.Pair)

	bag := item.Identifications.Clone()
	for _, a := range wynn.AllAttributes() {
		bag[a.BonusStat()] = wynn.Fixed(required[a] + bonus[a] + extra[a])
	}
	return item.WithIdentifications(bag)
}

// Materialize allocates b and returns its aggregate with skill points applied
func Materialize(b *wynn.Build, opts *Options) (*wynn.Item, wynn.SkillPoints, wynn.SkillPoints) {
	required, bonus := AllocateBuild(b)
	return AddSP(b.Aggregate(), required, bonus, opts), required, bonus
}
