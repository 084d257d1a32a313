package model

import (
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/skillpoints"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

// Evaluation is the outcome of checking one selection against the model
type Evaluation struct {
	Feasible bool
	// Violation names the first failed constraint of an infeasible selection
	Violation string

	ItemScore float64
	Objective float64
	Assign    wynn.SkillPoints
}

// SkillPointTotals are the attribute sums of a selection, weapon included
type SkillPointTotals struct {
	// MaxReq is the highest requirement per attribute
	MaxReq wynn.SkillPoints
	// Lending counts bonuses that help meet requirements; crafted items do not lend
	Lending wynn.SkillPoints
	// All counts every bonus
	All wynn.SkillPoints
}

// Totals sums the skill-point data of sel
func (m *Model) Totals(sel Selection) SkillPointTotals {
	t := SkillPointTotals{
		MaxReq:  m.WeaponReq,
		Lending: m.WeaponBonus,
		All:     m.WeaponBonus,
	}
	for _, idx := range sel {
		for a := 0; a < wynn.NumAttributes; a++ {
			t.MaxReq[a] = max(t.MaxReq[a], m.Req[idx][a])
			t.All[a] += m.Bonus[idx][a]
			if !m.Crafted[idx] {
				t.Lending[a] += m.Bonus[idx][a]
			}
		}
	}
	return t
}

// AssignBounds returns the smallest and largest assignment per attribute the
// relaxation allows for the totals. ok is false when no assignment fits.
func (m *Model) AssignBounds(t SkillPointTotals) (lower, upper wynn.SkillPoints, ok bool) {
	for a := 0; a < wynn.NumAttributes; a++ {
		lower[a] = max(0, t.MaxReq[a]-t.Lending[a])
		if m.HasMinSP[a] {
			lower[a] = max(lower[a], m.MinSP[a]-t.All[a])
		}
		upper[a] = m.AssignCap[a]
		if m.HasMaxSP[a] {
			upper[a] = min(upper[a], m.MaxSP[a]-t.All[a])
		}
		if lower[a] > upper[a] {
			return lower, upper, false
		}
	}
	return lower, upper, lower.Sum() <= skillpoints.Budget
}

// pairAttributes returns SPPair without a repeated attribute
func (m *Model) pairAttributes() []wynn.Attribute {
	if m.SPPair[0] == m.SPPair[1] {
		return m.SPPair[:1]
	}
	return m.SPPair[:]
}

// Assign picks the assignment maximising the objective: the lower bounds,
// then whatever is left of the assignable points poured into SPPair when
// SPFactor rewards it.
func (m *Model) Assign(lower, upper wynn.SkillPoints) wynn.SkillPoints {
	assign := lower
	if m.SPFactor <= 0 {
		return assign
	}
	slack := skillpoints.Assignable - lower.Sum()
	for _, p := range m.pairAttributes() {
		add := min(upper[p]-assign[p], slack)
		if add <= 0 {
			continue
		}
		assign[p] += add
		slack -= add
	}
	return assign
}

// SkillPointValue is the SPFactor weighted proxy for the pair attributes
func (m *Model) SkillPointValue(assign, bonus wynn.SkillPoints) float64 {
	if m.SPFactor == 0 {
		return 0
	}
	v := 0
	for _, p := range m.pairAttributes() {
		v += assign[p] + bonus[p]
	}
	return m.SPFactor * float64(v)
}

// Evaluate checks sel against every constraint and computes its objective
func (m *Model) Evaluate(sel Selection) Evaluation {
	var ev Evaluation

	slots := wynn.GearSlots()
	for g, idx := range sel {
		if idx < 0 || idx >= len(m.Items) || m.Items[idx].Type != slots[g] {
			ev.Violation = "slot"
			return ev
		}
	}
	if m.Pos[sel[wynn.Ring1Index]] > m.Pos[sel[wynn.Ring2Index]] {
		ev.Violation = "ring_order"
		return ev
	}

	for _, idx := range sel {
		ev.ItemScore += m.Score[idx]
	}

	for r := range m.Rows {
		row := &m.Rows[r]
		activity := 0.0
		for _, idx := range sel {
			activity += row.Coef[idx]
		}
		if !row.Holds(activity) {
			ev.Violation = row.Name
			return ev
		}
	}

	totals := m.Totals(sel)
	lower, upper, ok := m.AssignBounds(totals)
	if !ok {
		ev.Violation = "skill_points"
		return ev
	}
	ev.Assign = m.Assign(lower, upper)
	ev.Objective = ev.ItemScore + m.SkillPointValue(ev.Assign, totals.All)

	if m.HasMinScoreSP && ev.Objective < m.MinScoreSP-eps {
		ev.Violation = "min_score_sp"
		return ev
	}
	ev.Feasible = true
	return ev
}
