package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/skillpoints"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

// Formulate builds the model for cfg. A position left without candidates is
// not an error; the model is infeasible and solves to an empty result.
func Formulate(cfg *Config) (*Model, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	m := &Model{
		Weapon:      cfg.Weapon,
		SPFactor:    cfg.SPFactor,
		SPPair:      cfg.SPPair,
		WeaponReq:   cfg.Weapon.Requirements.SkillPoints(),
		WeaponBonus: cfg.Weapon.Bonus(),
	}
	if m.SPPair[0] == m.SPPair[1] {
		m.SPPair = [2]wynn.Attribute{wynn.Strength, wynn.Dexterity}
	}

	for _, item := range cfg.Items {
		if item == nil || !item.Type.IsGear() || exceedsCaps(item, cfg.MaxRequirement) {
			continue
		}
		m.Items = append(m.Items, item)
		m.Score = append(m.Score, cfg.ItemScore(item))
		m.Req = append(m.Req, item.Requirements.SkillPoints())
		m.Bonus = append(m.Bonus, item.Bonus())
		m.Crafted = append(m.Crafted, item.IsCrafted())
	}

	m.buildGroups()
	m.buildSkillPointBounds(cfg)
	m.buildRows(cfg)

	if cfg.MinScoreSP != nil {
		m.MinScoreSP = *cfg.MinScoreSP
		m.HasMinScoreSP = true
	}
	return m, nil
}

func exceedsCaps(item *wynn.Item, caps map[wynn.Attribute]int) bool {
	for a, v := range caps {
		if item.Requirements.Get(a) > v {
			return true
		}
	}
	return false
}

func (m *Model) buildGroups() {
	byType := make(map[wynn.SlotType][]int)
	for i, item := range m.Items {
		byType[item.Type] = append(byType[item.Type], i)
	}

	m.Pos = make([]int, len(m.Items))
	for t, idx := range byType {
		sort.SliceStable(idx, func(a, b int) bool {
			ia, ib := idx[a], idx[b]
			if m.Score[ia] != m.Score[ib] {
				return m.Score[ia] > m.Score[ib]
			}
			return m.Items[ia].Name < m.Items[ib].Name
		})
		for p, i := range idx {
			m.Pos[i] = p
		}
		byType[t] = idx
	}

	for g, slot := range wynn.GearSlots() {
		m.Groups[g] = byType[slot]
	}
}

func (m *Model) buildSkillPointBounds(cfg *Config) {
	for _, a := range wynn.AllAttributes() {
		m.AssignCap[a] = skillpoints.MaxAssign
		if v, ok := cfg.MaxAssignable[a]; ok {
			m.AssignCap[a] = max(0, min(m.AssignCap[a], v))
		}
		if v, ok := cfg.MinSkillPoints[a]; ok {
			m.MinSP[a] = v
			m.HasMinSP[a] = true
		}
		if v, ok := cfg.MaxSkillPoints[a]; ok {
			m.MaxSP[a] = v
			m.HasMaxSP[a] = true
		}
	}
}

func (m *Model) buildRows(cfg *Config) {
	for _, name := range sortedKeys(cfg.MaxIdentification) {
		m.addIdentificationRow(name, LE, cfg.MaxIdentification[name])
	}
	for _, name := range sortedKeys(cfg.MinIdentification) {
		m.addIdentificationRow(name, GE, cfg.MinIdentification[name])
	}

	for _, capped := range cfg.SkillPointSumCaps {
		coef := make([]float64, len(m.Items))
		for i := range m.Items {
			for _, a := range capped.Attributes {
				coef[i] += float64(m.Req[i][a] - m.Bonus[i][a])
			}
		}
		m.Rows = append(m.Rows, Row{
			Name: "sp_sum:" + attributeList(capped.Attributes),
			Coef: coef,
			Op:   LE,
			RHS:  float64(capped.Value),
		})
	}

	for n, set := range cfg.Exclusions {
		names := make(map[string]struct{}, len(set))
		for _, s := range set {
			names[s] = struct{}{}
		}
		coef := make([]float64, len(m.Items))
		present := 0
		for i, item := range m.Items {
			if _, ok := names[item.Name]; ok {
				coef[i] = 1
				present++
			}
		}
		if present == 0 {
			continue
		}
		m.Rows = append(m.Rows, Row{Name: fmt.Sprintf("exclusion:%d", n), Coef: coef, Op: LE, RHS: 1})
	}

	if cfg.MinScore != nil {
		m.Rows = append(m.Rows, Row{
			Name: "min_score",
			Coef: append([]float64(nil), m.Score...),
			Op:   GE,
			RHS:  *cfg.MinScore,
		})
	}
}

// addIdentificationRow bounds the build total of an identification. The
// weapon's share is moved to the right hand side.
func (m *Model) addIdentificationRow(name string, op Op, value int) {
	coef := make([]float64, len(m.Items))
	for i, item := range m.Items {
		coef[i] = float64(item.Identifications.Get(name).Max)
	}
	m.Rows = append(m.Rows, Row{
		Name: fmt.Sprintf("id:%s%s", name, op),
		Coef: coef,
		Op:   op,
		RHS:  float64(value - m.Weapon.Identifications.Get(name).Max),
	})
}

func sortedKeys(in map[string]int) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func attributeList(attrs []wynn.Attribute) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}
