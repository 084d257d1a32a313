// Package ranking turns raw solver candidates into a validated, scored and
// sorted list of builds.
//
// The model's skill-point rows are a relaxation, so a candidate it accepts
// can still be unwearable. Every candidate is re-checked with the exact
// allocator here and scored on its materialised stat bag.
package ranking

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/score"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/skillpoints"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/metrics"
)

const checkEvery = 1024

// Config holds the dependencies of a Pipeline
type Config struct {
	Weapon *wynn.Weapon
	// Items resolves candidate names
	Items map[string]*wynn.Item
	Score score.Func

	// ItemScore, when set, fills Ranked.Objective with the model's proxy
	ItemScore func(*wynn.Item) float64

	SkillPoints *skillpoints.Options
	Logger      *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Weapon == nil {
		vb.RequiredField("Weapon")
	}
	if c.Items == nil {
		vb.RequiredField("Items")
	}
	if c.Score == nil {
		vb.RequiredField("Score")
	}

	return vb.Build()
}

// Ranked is one validated build
type Ranked struct {
	Build     *wynn.Build
	Score     float64
	Objective float64
	Required  wynn.SkillPoints
	Bonus     wynn.SkillPoints
}

// Stats counts what happened to the candidates
type Stats struct {
	Seen       int
	Duplicates int
	Rejected   int
	Unresolved int
}

// Ranking is the pipeline output. An empty Ranked list means no viable build
// was found, which is a normal outcome.
type Ranking struct {
	Ranked []*Ranked
	Stats  Stats
}

// Best returns the top build, or nil
func (r *Ranking) Best() *Ranked {
	if r == nil || len(r.Ranked) == 0 {
		return nil
	}
	return r.Ranked[0]
}

// Pipeline validates and ranks candidates
type Pipeline struct {
	weapon    *wynn.Weapon
	items     map[string]*wynn.Item
	score     score.Func
	itemScore func(*wynn.Item) float64
	spOpts    *skillpoints.Options
	logger    *zap.Logger
}

// NewPipeline creates a pipeline with the provided dependencies
func NewPipeline(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	p := &Pipeline{
		weapon:    cfg.Weapon,
		items:     cfg.Items,
		score:     cfg.Score,
		itemScore: cfg.ItemScore,
		spOpts:    cfg.SkillPoints,
		logger:    cfg.Logger,
	}
	if p.spOpts == nil {
		p.spOpts = skillpoints.DefaultOptions()
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p, nil
}

// Resolve reconstructs the build named by candidate, gear names in build order
func (p *Pipeline) Resolve(candidate []string) (*wynn.Build, error) {
	items := make([]*wynn.Item, len(candidate))
	for i, name := range candidate {
		item, ok := p.items[name]
		if !ok {
			return nil, errors.NotFoundf("item %q not found", name).WithMeta("item", name)
		}
		items[i] = item
	}
	return wynn.NewBuild(p.weapon, items...)
}

// Evaluate validates one build. A build needing more than the skill-point
// budget, or more than the cap on a single attribute, is a FailedPrecondition
// error.
func (p *Pipeline) Evaluate(b *wynn.Build) (*Ranked, error) {
	bag, required, bonus := skillpoints.Materialize(b, p.spOpts)
	for _, a := range wynn.AllAttributes() {
		if required.Get(a) > skillpoints.AttributeCap {
			return nil, errors.FailedPreconditionf("build needs %d %s, cap is %d",
				required.Get(a), a, skillpoints.AttributeCap).WithMeta("build", b.Key())
		}
	}
	if !skillpoints.Feasible(required) {
		return nil, errors.FailedPreconditionf("build needs %d skill points, budget is %d",
			required.Sum(), skillpoints.Budget).WithMeta("build", b.Key())
	}

	r := &Ranked{
		Build:    b,
		Score:    p.score(bag.Identifications),
		Required: required,
		Bonus:    bonus,
	}
	if p.itemScore != nil {
		for _, item := range b.Items {
			r.Objective += p.itemScore(item)
		}
	}
	return r, nil
}

// Rank validates, scores and sorts candidates, best first. Equal scores keep
// their input order. A cancelled context stops the pass; the candidates ranked
// so far are returned with the error.
func (p *Pipeline) Rank(ctx context.Context, candidates [][]string) (*Ranking, error) {
	out := &Ranking{}
	seen := make(map[string]struct{}, len(candidates))

	var err error
	for i, candidate := range candidates {
		if i%checkEvery == 0 && ctx.Err() != nil {
			err = errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "ranking interrupted")
			break
		}
		out.Stats.Seen++

		b, rerr := p.Resolve(candidate)
		if rerr != nil {
			out.Stats.Unresolved++
			metrics.CandidatesTotal.WithLabelValues(metrics.OutcomeUnresolved).Inc()
			p.logger.Debug("skipping unresolved candidate",
				zap.Strings("items", candidate),
				zap.Error(rerr))
			continue
		}

		key := b.Key()
		if _, dup := seen[key]; dup {
			out.Stats.Duplicates++
			metrics.CandidatesTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			continue
		}
		seen[key] = struct{}{}

		r, verr := p.Evaluate(b)
		if verr != nil {
			out.Stats.Rejected++
			metrics.CandidatesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
			continue
		}
		metrics.CandidatesTotal.WithLabelValues(metrics.OutcomeRanked).Inc()
		out.Ranked = append(out.Ranked, r)
	}

	sort.SliceStable(out.Ranked, func(i, j int) bool {
		return out.Ranked[i].Score > out.Ranked[j].Score
	})

	p.logger.Info("ranked candidates",
		zap.Int("seen", out.Stats.Seen),
		zap.Int("ranked", len(out.Ranked)),
		zap.Int("duplicates", out.Stats.Duplicates),
		zap.Int("rejected", out.Stats.Rejected),
		zap.Int("unresolved", out.Stats.Unresolved))

	return out, err
}

// Merge combines rankings from independent runs into one sorted ranking
func Merge(rankings ...*Ranking) *Ranking {
	out := &Ranking{}
	for _, r := range rankings {
		if r == nil {
			continue
		}
		out.Ranked = append(out.Ranked, r.Ranked...)
		out.Stats.Seen += r.Stats.Seen
		out.Stats.Duplicates += r.Stats.Duplicates
		out.Stats.Rejected += r.Stats.Rejected
		out.Stats.Unresolved += r.Stats.Unresolved
	}
	sort.SliceStable(out.Ranked, func(i, j int) bool {
		return out.Ranked[i].Score > out.Ranked[j].Score
	})
	return out
}
