// Package optimizer orchestrates optimizer runs: it holds the run lease, loads
// the catalog once, solves the model into the result log and ranks the log.
package optimizer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/ranking"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/solver"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/idgen"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/metrics"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/pool"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/lease"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/results"
	"github.com/KirkDiggler/wynn-optimizer/internal/services/catalog"
)

const (
	// DefaultLeaseTTL is renewed every third of its length while a run is active
	DefaultLeaseTTL = 10 * time.Minute

	statusOK          = "ok"
	statusInterrupted = "interrupted"
	statusError       = "error"
)

// Service defines the optimizer run operations
type Service interface {
	// Optimize solves a fresh run into the result log and ranks it. A
	// cancelled context still ranks whatever was logged.
	Optimize(ctx context.Context, input *OptimizeInput) (*OptimizeOutput, error)

	// Resume continues a run, skipping item sets already in its log
	Resume(ctx context.Context, input *ResumeInput) (*ResumeOutput, error)

	// Rank ranks a stored log without solving
	Rank(ctx context.Context, input *RankInput) (*RankOutput, error)

	// Sweep runs Optimize for many weapons on the worker pool and merges the
	// rankings
	Sweep(ctx context.Context, input *SweepInput) (*SweepOutput, error)
}

// Config holds the dependencies for the optimizer orchestrator
type Config struct {
	Catalog catalog.Service
	Results results.Store
	// Leases is optional; without it runs are not guarded against a second
	// process using the same run id
	Leases      lease.Manager
	IDGenerator idgen.Generator
	LeaseTTL    time.Duration
	Workers     int
	Logger      *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.IDGenerator == nil {
		c.IDGenerator = idgen.NewUUID("run")
	}
	if c.LeaseTTL == 0 {
		c.LeaseTTL = DefaultLeaseTTL
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Results == nil {
		vb.RequiredField("Results")
	}
	if c.LeaseTTL < 3*time.Millisecond {
		vb.InvalidField("LeaseTTL", "too short to renew")
	}
	if c.Workers < 0 {
		vb.InvalidField("Workers", "must be positive")
	}
	return vb.Build()
}

type orchestrator struct {
	catalog  catalog.Service
	results  results.Store
	leases   lease.Manager
	idGen    idgen.Generator
	leaseTTL time.Duration
	workers  int
	logger   *zap.Logger
}

// New creates a new optimizer orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		catalog:  cfg.Catalog,
		results:  cfg.Results,
		leases:   cfg.Leases,
		idGen:    cfg.IDGenerator,
		leaseTTL: cfg.LeaseTTL,
		workers:  cfg.Workers,
		logger:   cfg.Logger,
	}, nil
}

func (o *orchestrator) Optimize(ctx context.Context, input *OptimizeInput) (*OptimizeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateProfile(input.Profile, true); err != nil {
		return nil, err
	}

	runID := input.RunID
	if runID == "" {
		runID = o.idGen.Generate()
	}
	logger := o.logger.With(zap.String("run_id", runID), zap.String("weapon", input.Profile.Weapon))

	start := time.Now()
	status := statusError
	defer func() {
		metrics.RunDuration.WithLabelValues("optimize", status).Observe(time.Since(start).Seconds())
	}()

	runCtx, release, err := o.acquire(ctx, runID)
	if err != nil {
		if !errors.IsFailedPrecondition(err) || !input.ReuseInProgress {
			return nil, errors.Wrapf(err, "failed to start run %s", runID)
		}

		logger.Info("run in progress elsewhere, ranking its log")
		prob, err := o.buildProblem(ctx, input.Profile, input.Profile.Weapon)
		if err != nil {
			return nil, err
		}
		rnk, err := o.rankLog(ctx, prob, runID)
		if err != nil {
			return nil, err
		}
		status = statusOK
		return &OptimizeOutput{RunID: runID, Ranking: rnk, Reused: true}, nil
	}
	defer release()

	if err := o.results.Delete(runCtx, runID); err != nil {
		return nil, errors.Wrapf(err, "failed to reset run %s", runID)
	}

	prob, err := o.buildProblem(runCtx, input.Profile, input.Profile.Weapon)
	if err != nil {
		return nil, err
	}

	best, enum, _, err := o.solve(runCtx, runID, prob, input.Profile, nil)
	if err != nil {
		return nil, err
	}

	rnk, err := o.rankLog(ctx, prob, runID)
	if err != nil {
		return nil, err
	}

	status = statusOK
	if enum.Interrupted {
		status = statusInterrupted
		logger.Warn("run interrupted, ranked partial results",
			zap.String("reason", enum.Reason),
			zap.Int("logged", enum.Count))
	}

	return &OptimizeOutput{
		RunID:       runID,
		Best:        best,
		Enumeration: enum,
		Ranking:     rnk,
	}, nil
}

func (o *orchestrator) Resume(ctx context.Context, input *ResumeInput) (*ResumeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.RunID == "" {
		return nil, errors.InvalidArgument("run ID is required")
	}
	if err := validateProfile(input.Profile, true); err != nil {
		return nil, err
	}

	start := time.Now()
	status := statusError
	defer func() {
		metrics.RunDuration.WithLabelValues("resume", status).Observe(time.Since(start).Seconds())
	}()

	runCtx, release, err := o.acquire(ctx, input.RunID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resume run %s", input.RunID)
	}
	defer release()

	existing, err := o.results.List(runCtx, input.RunID)
	if err != nil {
		return nil, err
	}

	prob, err := o.buildProblem(runCtx, input.Profile, input.Profile.Weapon)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, names := range existing {
		seen[wynn.SetKey(prob.weapon.Name, names)] = struct{}{}
	}

	_, enum, skipped, err := o.solve(runCtx, input.RunID, prob, input.Profile, seen)
	if err != nil {
		return nil, err
	}

	rnk, err := o.rankLog(ctx, prob, input.RunID)
	if err != nil {
		return nil, err
	}

	status = statusOK
	if enum.Interrupted {
		status = statusInterrupted
	}
	o.logger.Info("run resumed",
		zap.String("run_id", input.RunID),
		zap.Int("existing", len(existing)),
		zap.Int("skipped", skipped),
		zap.Int("emitted", enum.Count))

	return &ResumeOutput{
		RunID:       input.RunID,
		Existing:    len(existing),
		Skipped:     skipped,
		Enumeration: enum,
		Ranking:     rnk,
	}, nil
}

func (o *orchestrator) Rank(ctx context.Context, input *RankInput) (*RankOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.RunID == "" {
		return nil, errors.InvalidArgument("run ID is required")
	}
	if err := validateProfile(input.Profile, true); err != nil {
		return nil, err
	}

	prob, err := o.buildProblem(ctx, input.Profile, input.Profile.Weapon)
	if err != nil {
		return nil, err
	}
	rnk, err := o.rankLog(ctx, prob, input.RunID)
	if err != nil {
		return nil, err
	}
	return &RankOutput{Ranking: rnk}, nil
}

func (o *orchestrator) Sweep(ctx context.Context, input *SweepInput) (*SweepOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateProfile(input.Profile, false); err != nil {
		return nil, err
	}

	weapons := input.Weapons
	if len(weapons) == 0 {
		all, err := o.catalog.GetAllWeapons(ctx)
		if err != nil {
			return nil, err
		}
		for _, w := range wynn.SortedByID(all) {
			weapons = append(weapons, w.GetID())
		}
	}

	tasks := make([]pool.Task[*OptimizeOutput], len(weapons))
	for i, weapon := range weapons {
		profile := *input.Profile
		profile.Weapon = weapon
		tasks[i] = func(ctx context.Context) (*OptimizeOutput, error) {
			return o.Optimize(ctx, &OptimizeInput{Profile: &profile})
		}
	}

	done, err := pool.Run(ctx, o.workers, tasks)

	out := &SweepOutput{
		RunIDs:      make(map[string]string),
		Failed:      make(map[string]error),
		Interrupted: err != nil,
	}
	rankings := make([]*ranking.Ranking, 0, len(done))
	for _, r := range done {
		weapon := weapons[r.Index]
		if r.Err != nil {
			out.Failed[weapon] = r.Err
			o.logger.Warn("sweep weapon failed", zap.String("weapon", weapon), zap.Error(r.Err))
			continue
		}
		out.RunIDs[weapon] = r.Value.RunID
		rankings = append(rankings, r.Value.Ranking)
		if r.Value.Enumeration != nil && r.Value.Enumeration.Interrupted {
			out.Interrupted = true
		}
	}
	out.Ranking = ranking.Merge(rankings...)

	o.logger.Info("sweep finished",
		zap.Int("weapons", len(weapons)),
		zap.Int("completed", len(out.RunIDs)),
		zap.Int("failed", len(out.Failed)),
		zap.Bool("interrupted", out.Interrupted))
	return out, nil
}

// solve runs Tighten and appends every emitted item set to the run's log.
// Item sets already in seen are skipped. Appends outlive cancellation so a
// solution the solver emitted is never lost.
func (o *orchestrator) solve(ctx context.Context, runID string, prob *problem, p *Profile, seen map[string]struct{}) (*solver.Solution, *solver.Enumeration, int, error) {
	store := context.WithoutCancel(ctx)
	skipped := 0
	emit := func(sol *solver.Solution) error {
		names := sol.Names()
		if seen != nil {
			key := wynn.SetKey(prob.weapon.Name, names)
			if _, ok := seen[key]; ok {
				skipped++
				return nil
			}
			seen[key] = struct{}{}
		}
		return o.results.Append(store, runID, names)
	}

	s := newSolver(prob.model, p, &solver.Options{
		NodeLimit: p.NodeLimit,
		Logger:    o.logger.With(zap.String("run_id", runID)),
	})
	best, enum, err := solver.Tighten(ctx, s, p.Shrink, emit)
	if err != nil {
		return nil, nil, 0, errors.Wrapf(err, "failed to solve run %s", runID)
	}
	return best, enum, skipped, nil
}

// rankLog ranks everything logged for the run. It ignores cancellation so an
// interrupted run still reports its partial results.
func (o *orchestrator) rankLog(ctx context.Context, prob *problem, runID string) (*ranking.Ranking, error) {
	bg := context.WithoutCancel(ctx)
	candidates, err := o.results.List(bg, runID)
	if err != nil {
		return nil, err
	}
	return prob.pipeline.Rank(bg, candidates)
}

// acquire takes the run lease and keeps it renewed until release is called.
// Losing the lease cancels the returned context.
func (o *orchestrator) acquire(ctx context.Context, runID string) (context.Context, func(), error) {
	if o.leases == nil {
		return ctx, func() {}, nil
	}

	l, err := o.leases.Acquire(ctx, runID, o.leaseTTL)
	if err != nil {
		return nil, nil, err
	}
	metrics.ActiveRuns.Inc()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(o.leaseTTL / 3)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if err := o.leases.Renew(runCtx, l, o.leaseTTL); err != nil {
					if runCtx.Err() == nil {
						o.logger.Error("run lease lost, stopping run",
							zap.String("run_id", runID),
							zap.Error(err))
						cancel()
					}
					return
				}
			}
		}
	}()

	release := func() {
		close(done)
		cancel()
		wg.Wait()
		metrics.ActiveRuns.Dec()
		if err := o.leases.Release(context.WithoutCancel(ctx), l); err != nil {
			o.logger.Warn("failed to release run lease",
				zap.String("run_id", runID),
				zap.Error(err))
		}
	}
	return runCtx, release, nil
}
