// Package solver searches a formulated model for the best selection, or for
// every selection above a score floor.
//
// Two backends share one contract. BranchAndBound is an exact depth-first
// search with deterministic branching and admissible bounds; BruteForce walks
// the full cartesian product and exists to cross-check it on small inputs.
//
// Interruption is not an error. When the context is cancelled, its deadline
// passes, or the node limit is hit, the search stops and returns whatever it
// found with Interrupted set.
package solver

import (
	"context"
	stderrors "errors"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/model"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

// Interruption reasons
const (
	ReasonCanceled  = "canceled"
	ReasonDeadline  = "deadline"
	ReasonNodeLimit = "node_limit"
)

// Solution is one feasible selection. The zero Solution means none was found.
type Solution struct {
	Selection model.Selection
	Items     []*wynn.Item
	ItemScore float64
	Objective float64
	Assign    wynn.SkillPoints

	// Interrupted is set on a FindBest result when the search stopped early
	Interrupted bool
}

// Found reports whether the solution holds a selection
func (s *Solution) Found() bool {
	return s != nil && len(s.Items) > 0
}

// Names returns the item names in build order
func (s *Solution) Names() []string {
	names := make([]string, len(s.Items))
	for i, item := range s.Items {
		names[i] = item.Name
	}
	return names
}

// Enumeration summarises a FindAllSatisfying run
type Enumeration struct {
	Count       int
	Nodes       int64
	Interrupted bool
	Reason      string
}

// EmitFunc receives every solution found by FindAllSatisfying. Returning an
// error stops the enumeration and the error is passed back to the caller.
type EmitFunc func(*Solution) error

// Solver is the uniform contract over search backends
type Solver interface {
	// FindBest returns the highest objective selection, or the zero Solution
	// when the model is infeasible
	FindBest(ctx context.Context) (*Solution, error)

	// FindAllSatisfying emits every feasible selection with objective at least
	// minScore. The two rings are emitted in one order only.
	FindAllSatisfying(ctx context.Context, minScore float64, emit EmitFunc) (*Enumeration, error)
}

func newSolution(m *model.Model, sel model.Selection, ev model.Evaluation) *Solution {
	return &Solution{
		Selection: sel,
		Items:     m.ItemsOf(sel),
		ItemScore: ev.ItemScore,
		Objective: ev.Objective,
		Assign:    ev.Assign,
	}
}

func contextReason(err error) string {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return ReasonDeadline
	}
	return ReasonCanceled
}
