package solver

import (
	"context"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/model"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/metrics"
)

const backendBruteForce = "brute_force"

// BruteForce evaluates every selection. It is only practical for a handful of
// candidates per position.
type BruteForce struct {
	m    *model.Model
	opts Options
}

// NewBruteForce returns the exhaustive backend for m
func NewBruteForce(m *model.Model, opts *Options) *BruteForce {
	return &BruteForce{m: m, opts: opts.withDefaults()}
}

// FindBest implements Solver
func (b *BruteForce) FindBest(ctx context.Context) (*Solution, error) {
	var best *Solution
	reason, err := b.walk(ctx, func(sel model.Selection, ev model.Evaluation) error {
		if best == nil || ev.Objective > best.Objective+eps {
			best = newSolution(b.m, sel, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if best == nil {
		return &Solution{Interrupted: reason != ""}, nil
	}
	best.Interrupted = reason != ""
	return best, nil
}

// FindAllSatisfying implements Solver
func (b *BruteForce) FindAllSatisfying(ctx context.Context, minScore float64, emit EmitFunc) (*Enumeration, error) {
	out := &Enumeration{}
	reason, err := b.walk(ctx, func(sel model.Selection, ev model.Evaluation) error {
		if ev.Objective < minScore-eps {
			return nil
		}
		out.Count++
		metrics.SolverSolutionsTotal.WithLabelValues(backendBruteForce).Inc()
		if emit == nil {
			return nil
		}
		return emit(newSolution(b.m, sel, ev))
	})
	out.Interrupted = reason != ""
	out.Reason = reason
	return out, err
}

// walk calls fn for every feasible selection in lexicographic order
func (b *BruteForce) walk(ctx context.Context, fn func(model.Selection, model.Evaluation) error) (string, error) {
	if b.m.Infeasible() {
		return "", nil
	}

	var (
		sel    model.Selection
		nodes  int64
		reason string
		err    error
	)
	defer func() {
		metrics.SolverNodesTotal.WithLabelValues(backendBruteForce).Add(float64(nodes))
		if reason != "" {
			metrics.SolverInterruptionsTotal.WithLabelValues(backendBruteForce, reason).Inc()
		}
	}()

	var rec func(d int) bool
	rec = func(d int) bool {
		nodes++
		if b.opts.NodeLimit > 0 && nodes >= b.opts.NodeLimit {
			reason = ReasonNodeLimit
			return false
		}
		if nodes&checkMask == 0 {
			if cerr := ctx.Err(); cerr != nil {
				reason = contextReason(cerr)
				return false
			}
		}
		if d == wynn.NumGearSlots {
			ev := b.m.Evaluate(sel)
			if ev.Feasible {
				err = fn(sel, ev)
			}
			return err == nil
		}
		for _, idx := range b.m.Groups[d] {
			sel[d] = idx
			if d == wynn.Ring2Index && b.m.Pos[idx] < b.m.Pos[sel[wynn.Ring1Index]] {
				continue
			}
			if !rec(d + 1) {
				return false
			}
		}
		return true
	}
	rec(0)
	return reason, err
}
