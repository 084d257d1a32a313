package optimizer

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/filter"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/model"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/ranking"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/score"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/skillpoints"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/solver"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

// DefaultShrink keeps candidates within 10% of the best objective
const DefaultShrink = 0.9

// validateProfile checks a profile and fills defaults
func validateProfile(p *Profile, needWeapon bool) error {
	if p == nil {
		return errors.InvalidArgument("profile is required")
	}
	if p.Shrink == 0 {
		p.Shrink = DefaultShrink
	}
	if p.Backend == "" {
		p.Backend = BackendBranchAndBound
	}

	vb := errors.NewValidationBuilder()
	if needWeapon && p.Weapon == "" {
		vb.RequiredField("Profile.Weapon")
	}
	if p.Shrink < 0 || p.Shrink > 1 {
		vb.InvalidField("Profile.Shrink", "must be in (0, 1]")
	}
	errors.ValidateEnum("Profile.Backend", p.Backend, []string{BackendBranchAndBound, BackendBruteForce}, vb)
	for _, name := range p.ExclusionPresets {
		if _, ok := model.ExclusionPresets[name]; !ok {
			vb.Fieldf("Profile.ExclusionPresets", "unknown preset %q", name)
		}
	}
	if p.NodeLimit < 0 {
		vb.InvalidField("Profile.NodeLimit", "must not be negative")
	}
	return vb.Build()
}

// problem is everything needed to solve and rank one weapon's run
type problem struct {
	weapon   *wynn.Weapon
	model    *model.Model
	pipeline *ranking.Pipeline
}

func (o *orchestrator) buildProblem(ctx context.Context, p *Profile, weaponName string) (*problem, error) {
	weapon, err := o.catalog.GetWeapon(ctx, weaponName)
	if err != nil {
		return nil, err
	}
	all, err := o.catalog.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}

	fn, higher, err := scorer(p, weapon)
	if err != nil {
		return nil, err
	}
	itemScore := score.ForItem(fn, weapon)

	exclusions := append([][]string(nil), p.Exclusions...)
	for _, name := range p.ExclusionPresets {
		exclusions = append(exclusions, model.ExclusionPresets[name])
	}

	pool := filter.Apply(wynn.SortedByID(all), poolPredicates(p)...)
	before := len(pool)
	pool = filter.RemoveBadItems(pool, dominanceCriteria(p, higher, exclusions))
	o.logger.Debug("candidate pool filtered",
		zap.String("weapon", weaponName),
		zap.Int("candidates", before),
		zap.Int("kept", len(pool)))

	m, err := model.Formulate(&model.Config{
		Items:             pool,
		Weapon:            weapon,
		ItemScore:         itemScore,
		MaxRequirement:    p.MaxRequirement,
		MaxIdentification: p.MaxIdentification,
		MinIdentification: p.MinIdentification,
		SkillPointSumCaps: p.SkillPointSumCaps,
		MaxAssignable:     p.MaxAssignable,
		MaxSkillPoints:    p.MaxSkillPoints,
		MinSkillPoints:    p.MinSkillPoints,
		Exclusions:        exclusions,
		SPFactor:          p.SPFactor,
		SPPair:            p.SPPair,
		MinScore:          p.MinScore,
		MinScoreSP:        p.MinScoreSP,
	})
	if err != nil {
		return nil, err
	}

	var spOpts *skillpoints.Options
	if p.SPPair[0] != p.SPPair[1] {
		spOpts = &skillpoints.Options{Pair: p.SPPair}
	}
	pipeline, err := ranking.NewPipeline(&ranking.Config{
		Weapon:      weapon,
		Items:       all,
		Score:       fn,
		ItemScore:   itemScore,
		SkillPoints: spOpts,
		Logger:      o.logger,
	})
	if err != nil {
		return nil, err
	}

	return &problem{weapon: weapon, model: m, pipeline: pipeline}, nil
}

// scorer picks the build score and the identifications it rewards
func scorer(p *Profile, weapon *wynn.Weapon) (score.Func, []string, error) {
	if len(p.Weights) > 0 {
		sum := &score.IdentificationSum{Weights: p.Weights}
		higher := append([]string(nil), filter.DefaultRelevant...)
		for name, w := range p.Weights {
			if w > 0 {
				higher = append(higher, name)
			}
		}
		return sum.Score, higher, nil
	}

	dmg, err := score.NewDamage(&score.DamageConfig{
		Weapon:         weapon,
		Powders:        p.Powders,
		SpellModifiers: p.SpellModifiers,
		Mastery:        p.Mastery,
		Crit:           p.Crit,
	})
	if err != nil {
		return nil, nil, err
	}
	return dmg.Score, filter.RelevantForDamage(dmg.Base()), nil
}

// dominanceCriteria folds the score's identifications and every constraint
// row of the profile into what the pool filter compares. Dropping an item
// is only safe when its dominator is no worse against any row.
func dominanceCriteria(p *Profile, higher []string, exclusions [][]string) *filter.Criteria {
	c := &filter.Criteria{}

	up := make(map[string]bool)
	down := make(map[string]bool)
	for _, name := range higher {
		up[name] = true
	}
	for _, name := range p.Relevant {
		up[name] = true
	}
	for name := range p.MinIdentification {
		up[name] = true
	}
	for name, w := range p.Weights {
		if w < 0 {
			down[name] = true
		}
	}
	for name := range p.MaxIdentification {
		down[name] = true
	}
	c.Higher = sortedNames(up)
	c.Lower = sortedNames(down)

	for _, a := range wynn.AllAttributes() {
		if _, ok := p.MaxSkillPoints[a]; ok {
			c.FixedBonus = append(c.FixedBonus, a)
		}
	}
	for _, set := range exclusions {
		c.Exclusive = append(c.Exclusive, set...)
	}
	return c
}

func sortedNames(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func poolPredicates(p *Profile) []filter.Predicate {
	var preds []filter.Predicate
	if p.MaxLevel > 0 {
		preds = append(preds, filter.MaxLevel(p.MaxLevel))
	}
	if len(p.ExcludeNames) > 0 {
		preds = append(preds, filter.ExcludeNames(p.ExcludeNames...))
	}
	return preds
}

func newSolver(m *model.Model, p *Profile, opts *solver.Options) solver.Solver {
	if p.Backend == BackendBruteForce {
		return solver.NewBruteForce(m, opts)
	}
	return solver.NewBranchAndBound(m, opts)
}
