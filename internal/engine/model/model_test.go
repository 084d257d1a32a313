package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/model"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/score"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/skillpoints"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/testutils"
	"github.com/KirkDiggler/wynn-optimizer/internal/testutils/builders"
)

type ModelTestSuite struct {
	suite.Suite

	weapon *wynn.Weapon
	items  []*wynn.Item
	scorer *score.IdentificationSum
}

func (s *ModelTestSuite) SetupTest() {
	s.weapon = builders.NewWeapon("Spear").WithStat("spellDamage", 4).Build()
	s.scorer = &score.IdentificationSum{Weights: map[string]float64{"spellDamage": 1}}
	s.items = append(testutils.ZeroGear(),
		builders.NewItem("Good Cap", wynn.SlotHelmet).WithStat("spellDamage", 10).WithRequirement(wynn.Strength, 40).Build(),
		builders.NewItem("Ok Cap", wynn.SlotHelmet).WithStat("spellDamage", 5).Build(),
		builders.NewItem("Band", wynn.SlotRing).WithStat("spellDamage", 3).WithBonus(wynn.Strength, 10).Build(),
	)
}

func (s *ModelTestSuite) config() *model.Config {
	return &model.Config{
		Items:     s.items,
		Weapon:    s.weapon,
		ItemScore: func(item *wynn.Item) float64 { return s.scorer.Score(item.Identifications) },
	}
}

func (s *ModelTestSuite) index(m *model.Model, name string) int {
	for i, item := range m.Items {
		if item.Name == name {
			return i
		}
	}
	s.FailNow("item not in model", name)
	return -1
}

func (s *ModelTestSuite) selection(m *model.Model, names ...string) model.Selection {
	var sel model.Selection
	for i, n := range names {
		sel[i] = s.index(m, n)
	}
	return sel
}

func (s *ModelTestSuite) plain(slot wynn.SlotType) string {
	return "Plain " + string(slot)
}

func (s *ModelTestSuite) plainNames() []string {
	out := make([]string, 0, wynn.NumGearSlots)
	for _, slot := range wynn.GearSlots() {
		out = append(out, s.plain(slot))
	}
	return out
}

func (s *ModelTestSuite) TestFormulateValidation() {
	_, err := model.Formulate(nil)
	s.True(errors.IsInvalidArgument(err))

	cfg := s.config()
	cfg.ItemScore = nil
	_, err = model.Formulate(cfg)
	s.True(errors.IsInvalidArgument(err))

	cfg = s.config()
	cfg.Exclusions = [][]string{{"Lonely"}}
	_, err = model.Formulate(cfg)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ModelTestSuite) TestGroupsOrderedByScore() {
	m, err := model.Formulate(s.config())
	s.Require().NoError(err)

	helmets := m.Groups[0]
	s.Require().Len(helmets, 3)
	s.Equal("Good Cap", m.Items[helmets[0]].Name)
	s.Equal("Ok Cap", m.Items[helmets[1]].Name)
	s.Equal(s.plain(wynn.SlotHelmet), m.Items[helmets[2]].Name)

	s.Equal(m.Groups[wynn.Ring1Index], m.Groups[wynn.Ring2Index])
	s.Equal(3+1+1+1+2+2+1+1, m.Size())
	s.False(m.Infeasible())
}

func (s *ModelTestSuite) TestMaxRequirementDropsCandidates() {
	cfg := s.config()
	cfg.MaxRequirement = map[wynn.Attribute]int{wynn.Strength: 30}

	m, err := model.Formulate(cfg)
	s.Require().NoError(err)
	for _, item := range m.Items {
		s.NotEqual("Good Cap", item.Name)
	}
}

func (s *ModelTestSuite) TestMissingSlotIsInfeasible() {
	cfg := s.config()
	cfg.Items = nil
	for _, item := range s.items {
		if item.Type != wynn.SlotNecklace {
			cfg.Items = append(cfg.Items, item)
		}
	}

	m, err := model.Formulate(cfg)
	s.Require().NoError(err)
	s.True(m.Infeasible())
}

func (s *ModelTestSuite) TestEvaluateZeroBuild() {
	m, err := model.Formulate(s.config())
	s.Require().NoError(err)

	ev := m.Evaluate(s.selection(m, s.plainNames()...))
	s.True(ev.Feasible)
	s.Equal(0.0, ev.ItemScore)
	s.Equal(wynn.SkillPoints{}, ev.Assign)
}

func (s *ModelTestSuite) TestEvaluateRelaxation() {
	m, err := model.Formulate(s.config())
	s.Require().NoError(err)

	names := s.plainNames()
	names[0] = "Good Cap"
	names[wynn.Ring1Index] = "Band"
	ev := m.Evaluate(s.selection(m, names...))
	s.Require().True(ev.Feasible)
	s.Equal(13.0, ev.ItemScore)
	s.Equal(30, ev.Assign[wynn.Strength], "40 required less the ring's 10")
}

func (s *ModelTestSuite) TestEvaluateRingOrder() {
	m, err := model.Formulate(s.config())
	s.Require().NoError(err)

	names := s.plainNames()
	names[wynn.Ring1Index] = s.plain(wynn.SlotRing)
	names[wynn.Ring2Index] = "Band"
	ev := m.Evaluate(s.selection(m, names...))
	s.False(ev.Feasible)
	s.Equal("ring_order", ev.Violation)

	names[wynn.Ring1Index], names[wynn.Ring2Index] = "Band", s.plain(wynn.SlotRing)
	s.True(m.Evaluate(s.selection(m, names...)).Feasible)
}

func (s *ModelTestSuite) TestEvaluateWrongSlot() {
	m, err := model.Formulate(s.config())
	s.Require().NoError(err)

	names := s.plainNames()
	names[0], names[1] = names[1], names[0]
	ev := m.Evaluate(s.selection(m, names...))
	s.False(ev.Feasible)
	s.Equal("slot", ev.Violation)
}

func (s *ModelTestSuite) TestIdentificationRowCountsWeapon() {
	cfg := s.config()
	cfg.MaxIdentification = map[string]int{"spellDamage": 13}

	m, err := model.Formulate(cfg)
	s.Require().NoError(err)
	s.Require().Len(m.Rows, 1)
	s.Equal(9.0, m.Rows[0].RHS)

	names := s.plainNames()
	names[0] = "Ok Cap"
	s.True(m.Evaluate(s.selection(m, names...)).Feasible)

	names[0] = "Good Cap"
	ev := m.Evaluate(s.selection(m, names...))
	s.False(ev.Feasible)
	s.Equal("id:spellDamage<=", ev.Violation)
}

func (s *ModelTestSuite) TestExclusionRow() {
	cfg := s.config()
	cfg.Exclusions = [][]string{{"Good Cap", "Band"}, {"Absent", "Also Absent"}}

	m, err := model.Formulate(cfg)
	s.Require().NoError(err)
	s.Require().Len(m.Rows, 1)

	names := s.plainNames()
	names[wynn.Ring1Index] = "Band"
	s.True(m.Evaluate(s.selection(m, names...)).Feasible)

	names[wynn.Ring2Index] = "Band"
	s.False(m.Evaluate(s.selection(m, names...)).Feasible, "the same ring twice counts twice")
}

func (s *ModelTestSuite) TestSkillPointSumCap() {
	cfg := s.config()
	cfg.SkillPointSumCaps = []model.SkillPointSumCap{{Value: 20, Attributes: []wynn.Attribute{wynn.Strength}}}

	m, err := model.Formulate(cfg)
	s.Require().NoError(err)

	names := s.plainNames()
	names[0] = "Good Cap"
	s.False(m.Evaluate(s.selection(m, names...)).Feasible)

	names[wynn.Ring1Index] = "Band"
	names[wynn.Ring2Index] = "Band"
	s.True(m.Evaluate(s.selection(m, names...)).Feasible, "40 - 10 - 10 fits 20")
}

func (s *ModelTestSuite) TestAssignFillsPairWithinBudget() {
	cfg := s.config()
	cfg.SPFactor = 0.5
	cfg.MaxAssignable = map[wynn.Attribute]int{wynn.Dexterity: 60}

	m, err := model.Formulate(cfg)
	s.Require().NoError(err)

	names := s.plainNames()
	names[0] = "Good Cap"
	ev := m.Evaluate(s.selection(m, names...))
	s.Require().True(ev.Feasible)
	s.Equal(skillpoints.MaxAssign, ev.Assign[wynn.Strength])
	s.Equal(60, ev.Assign[wynn.Dexterity])
	s.InDelta(10+0.5*float64(skillpoints.MaxAssign+60), ev.Objective, 1e-9)
}

func (s *ModelTestSuite) TestAssignStopsAtAssignablePoints() {
	cfg := s.config()
	cfg.SPFactor = 1

	m, err := model.Formulate(cfg)
	s.Require().NoError(err)

	ev := m.Evaluate(s.selection(m, s.plainNames()...))
	s.Require().True(ev.Feasible)
	s.Equal(skillpoints.MaxAssign, ev.Assign[wynn.Strength])
	s.Equal(skillpoints.Assignable-skillpoints.MaxAssign, ev.Assign[wynn.Dexterity])
	s.Equal(skillpoints.Assignable, ev.Assign.Sum())
}

func (s *ModelTestSuite) TestSkillPointBudgetViolation() {
	cfg := s.config()
	cfg.Items = append(cfg.Items,
		builders.NewItem("Heavy Boots", wynn.SlotBoots).WithRequirement(wynn.Intelligence, 100).WithRequirement(wynn.Defence, 100).Build(),
		builders.NewItem("Heavy Chest", wynn.SlotChestplate).WithRequirement(wynn.Agility, 10).Build(),
	)
	m, err := model.Formulate(cfg)
	s.Require().NoError(err)

	names := s.plainNames()
	names[3] = "Heavy Boots"
	s.True(m.Evaluate(s.selection(m, names...)).Feasible)

	names[1] = "Heavy Chest"
	ev := m.Evaluate(s.selection(m, names...))
	s.False(ev.Feasible)
	s.Equal("skill_points", ev.Violation)
}

func (s *ModelTestSuite) TestMinScoreRows() {
	cfg := s.config()
	minScore := 12.0
	cfg.MinScore = &minScore

	m, err := model.Formulate(cfg)
	s.Require().NoError(err)

	names := s.plainNames()
	names[0] = "Good Cap"
	s.False(m.Evaluate(s.selection(m, names...)).Feasible)
	names[wynn.Ring1Index] = "Band"
	s.True(m.Evaluate(s.selection(m, names...)).Feasible)
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelTestSuite))
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "<=", model.LE.String())
	assert.Equal(t, ">=", model.GE.String())
	assert.Equal(t, "==", model.EQ.String())
}

func TestExclusionPresets(t *testing.T) {
	hive, ok := model.ExclusionPresets["hive_master"]
	require.True(t, ok)
	assert.Contains(t, hive, "Contrast")
	assert.Len(t, hive, 13)
}
