package solver

import (
	"context"
	"math"
)

// Floor returns the enumeration floor for a best objective: best*shrink for a
// positive best, and the same relative slack below a negative one.
func Floor(best, shrink float64) float64 {
	return best - math.Abs(best)*(1-shrink)
}

// Tighten finds the best objective, then enumerates everything within shrink
// of it. The best solution is returned even when enumeration is interrupted.
// An infeasible model returns the zero Solution and an empty Enumeration.
func Tighten(ctx context.Context, s Solver, shrink float64, emit EmitFunc) (*Solution, *Enumeration, error) {
	best, err := s.FindBest(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !best.Found() {
		return best, &Enumeration{Interrupted: best.Interrupted}, nil
	}
	if best.Interrupted {
		// the incumbent may be far from optimal; report it without enumerating
		// against a floor derived from it
		if emit != nil {
			if err := emit(best); err != nil {
				return best, nil, err
			}
		}
		return best, &Enumeration{Count: 1, Interrupted: true}, nil
	}

	enum, err := s.FindAllSatisfying(ctx, Floor(best.Objective, shrink), emit)
	return best, enum, err
}
