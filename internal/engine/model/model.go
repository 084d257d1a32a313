// Package model turns an optimization config into a 0/1 selection model: one
// exactly-one group per gear position, linear rows over the selection
// variables, and a linear relaxation of skill-point assignment.
package model

import (
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

// Op is the sense of a linear row
type Op int

// Row senses
const (
	LE Op = iota
	GE
	EQ
)

// String returns the operator symbol
func (o Op) String() string {
	switch o {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "=="
	default:
		return "?"
	}
}

// eps absorbs float noise when comparing activities and objectives
const eps = 1e-9

// Row is a linear constraint over the selection variables. Coef is indexed by
// item, so a ring worn twice contributes twice.
type Row struct {
	Name string
	Coef []float64
	Op   Op
	RHS  float64
}

// Holds reports whether activity satisfies the row
func (r *Row) Holds(activity float64) bool {
	switch r.Op {
	case LE:
		return activity <= r.RHS+eps
	case GE:
		return activity >= r.RHS-eps
	default:
		return activity >= r.RHS-eps && activity <= r.RHS+eps
	}
}

// Selection holds an item index per gear position
type Selection [wynn.NumGearSlots]int

// Model is a formulated problem. It is read-only once built and safe to share
// between solvers.
type Model struct {
	Weapon *wynn.Weapon

	// Items is the filtered universe. Item indices elsewhere refer to it.
	Items []*wynn.Item

	// Groups lists candidate item indices per gear position, best proxy score
	// first. The two ring positions share one list.
	Groups [wynn.NumGearSlots][]int

	// Pos is the position of each item within its group list
	Pos []int

	// Score is the per-item objective coefficient
	Score []float64

	Rows []Row

	// Per-item skill-point data
	Req     []wynn.SkillPoints
	Bonus   []wynn.SkillPoints
	Crafted []bool

	WeaponReq   wynn.SkillPoints
	WeaponBonus wynn.SkillPoints

	// AssignCap bounds each assignment variable
	AssignCap wynn.SkillPoints

	// Final attribute bounds, unset when HasMinSP/HasMaxSP is false
	MinSP    wynn.SkillPoints
	HasMinSP [wynn.NumAttributes]bool
	MaxSP    wynn.SkillPoints
	HasMaxSP [wynn.NumAttributes]bool

	SPFactor float64
	SPPair   [2]wynn.Attribute

	MinScoreSP    float64
	HasMinScoreSP bool
}

// Infeasible reports whether some position has no candidate left
func (m *Model) Infeasible() bool {
	for _, g := range m.Groups {
		if len(g) == 0 {
			return true
		}
	}
	return false
}

// Size returns the number of selection variables
func (m *Model) Size() int {
	n := 0
	for _, g := range m.Groups {
		n += len(g)
	}
	return n
}

// ItemsOf resolves a selection to items in build order
func (m *Model) ItemsOf(sel Selection) []*wynn.Item {
	out := make([]*wynn.Item, len(sel))
	for i, idx := range sel {
		out[i] = m.Items[idx]
	}
	return out
}
