package solver

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/engine/model"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/skillpoints"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/metrics"
)

const (
	backendBnB = "branch_and_bound"
	eps        = 1e-9
	depth      = wynn.NumGearSlots
)

// BranchAndBound is an exact depth-first search over the gear positions.
//
// Candidates are tried best proxy score first, so good incumbents show up
// early. A node is pruned when
//   - the objective upper bound (score so far, best remaining score per
//     position, most the skill-point proxy could add) cannot beat the
//     incumbent or reach the floor,
//   - some row cannot be satisfied even by the most favourable remaining picks,
//   - the optimistic assignment lower bound already breaks an attribute cap
//     or the total budget.
type BranchAndBound struct {
	m    *model.Model
	opts Options

	// suffix bounds over positions d..7, indexed by d
	scoreUB  [depth + 1]float64
	pairUB   [depth + 1]float64
	lendUB   [depth + 1]wynn.SkillPoints
	rowLo    [][depth + 1]float64
	rowHi    [][depth + 1]float64
	assignUB float64
}

// NewBranchAndBound precomputes the suffix bounds of m
func NewBranchAndBound(m *model.Model, opts *Options) *BranchAndBound {
	b := &BranchAndBound{m: m, opts: opts.withDefaults()}
	if m.Infeasible() {
		return b
	}

	pair := pairOf(m)
	for d := depth - 1; d >= 0; d-- {
		bestScore, bestPair := math.Inf(-1), math.Inf(-1)
		var bestLend wynn.SkillPoints
		for _, idx := range m.Groups[d] {
			bestScore = math.Max(bestScore, m.Score[idx])
			p := 0
			for _, a := range pair {
				p += m.Bonus[idx][a]
			}
			bestPair = math.Max(bestPair, float64(p))
			if !m.Crafted[idx] {
				for a := range bestLend {
					bestLend[a] = max(bestLend[a], m.Bonus[idx][a])
				}
			}
		}
		b.scoreUB[d] = b.scoreUB[d+1] + bestScore
		b.pairUB[d] = b.pairUB[d+1] + bestPair
		b.lendUB[d] = b.lendUB[d+1].Add(bestLend)
	}

	b.rowLo = make([][depth + 1]float64, len(m.Rows))
	b.rowHi = make([][depth + 1]float64, len(m.Rows))
	for r := range m.Rows {
		coef := m.Rows[r].Coef
		for d := depth - 1; d >= 0; d-- {
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, idx := range m.Groups[d] {
				lo = math.Min(lo, coef[idx])
				hi = math.Max(hi, coef[idx])
			}
			b.rowLo[r][d] = b.rowLo[r][d+1] + lo
			b.rowHi[r][d] = b.rowHi[r][d+1] + hi
		}
	}

	assign := 0
	for _, a := range pair {
		assign += m.AssignCap[a]
	}
	b.assignUB = float64(min(assign, skillpoints.Budget))
	return b
}

func pairOf(m *model.Model) []wynn.Attribute {
	if m.SPPair[0] == m.SPPair[1] {
		return m.SPPair[:1]
	}
	return m.SPPair[:]
}

// FindBest implements Solver
func (b *BranchAndBound) FindBest(ctx context.Context) (*Solution, error) {
	s := b.newSearch(ctx, false)
	if !b.m.Infeasible() {
		s.dfs(0)
	}
	b.record(s)

	if s.best == nil {
		return &Solution{Interrupted: s.reason != ""}, nil
	}
	s.best.Interrupted = s.reason != ""
	return s.best, nil
}

// FindAllSatisfying implements Solver
func (b *BranchAndBound) FindAllSatisfying(ctx context.Context, minScore float64, emit EmitFunc) (*Enumeration, error) {
	s := b.newSearch(ctx, true)
	s.floor = minScore
	s.emit = emit
	if !b.m.Infeasible() {
		s.dfs(0)
	}
	b.record(s)

	return &Enumeration{
		Count:       s.count,
		Nodes:       s.nodes,
		Interrupted: s.reason != "",
		Reason:      s.reason,
	}, s.err
}

func (b *BranchAndBound) record(s *search) {
	metrics.SolverNodesTotal.WithLabelValues(backendBnB).Add(float64(s.nodes))
	if s.reason != "" {
		metrics.SolverInterruptionsTotal.WithLabelValues(backendBnB, s.reason).Inc()
		b.opts.Logger.Info("search interrupted",
			zap.String("reason", s.reason),
			zap.Int64("nodes", s.nodes),
			zap.Int("solutions", s.count))
	}
}

func (b *BranchAndBound) newSearch(ctx context.Context, all bool) *search {
	s := &search{
		b:        b,
		m:        b.m,
		ctx:      ctx,
		all:      all,
		activity: make([]float64, len(b.m.Rows)),
	}
	s.totals[0] = model.SkillPointTotals{
		MaxReq:  b.m.WeaponReq,
		Lending: b.m.WeaponBonus,
		All:     b.m.WeaponBonus,
	}
	return s
}

type search struct {
	b   *BranchAndBound
	m   *model.Model
	ctx context.Context

	all   bool
	floor float64
	emit  EmitFunc

	sel      model.Selection
	score    float64
	activity []float64
	totals   [depth + 1]model.SkillPointTotals

	best   *Solution
	count  int
	nodes  int64
	reason string
	err    error
}

func (s *search) stopped() bool {
	return s.reason != "" || s.err != nil
}

// tick counts a node and polls for interruption
func (s *search) tick() bool {
	s.nodes++
	if s.b.opts.NodeLimit > 0 && s.nodes >= s.b.opts.NodeLimit {
		s.reason = ReasonNodeLimit
		return true
	}
	if s.nodes&checkMask == 0 {
		if err := s.ctx.Err(); err != nil {
			s.reason = contextReason(err)
			return true
		}
	}
	return false
}

func (s *search) dfs(d int) {
	if s.tick() {
		return
	}
	if d == depth {
		s.leaf()
		return
	}

	cands := s.m.Groups[d]
	if d == wynn.Ring2Index {
		cands = cands[s.m.Pos[s.sel[wynn.Ring1Index]]:]
	}

	for _, idx := range cands {
		s.push(d, idx)
		if !s.prune(d + 1) {
			s.dfs(d + 1)
		}
		s.pop(d, idx)
		if s.stopped() {
			return
		}
	}
}

func (s *search) push(d, idx int) {
	s.sel[d] = idx
	s.score += s.m.Score[idx]
	for r := range s.m.Rows {
		s.activity[r] += s.m.Rows[r].Coef[idx]
	}

	t := s.totals[d]
	for a := 0; a < wynn.NumAttributes; a++ {
		t.MaxReq[a] = max(t.MaxReq[a], s.m.Req[idx][a])
		t.All[a] += s.m.Bonus[idx][a]
		if !s.m.Crafted[idx] {
			t.Lending[a] += s.m.Bonus[idx][a]
		}
	}
	s.totals[d+1] = t
}

func (s *search) pop(d, idx int) {
	s.score -= s.m.Score[idx]
	for r := range s.m.Rows {
		s.activity[r] -= s.m.Rows[r].Coef[idx]
	}
}

// prune reports whether no completion of the first d positions can qualify
func (s *search) prune(d int) bool {
	b, m := s.b, s.m

	for r := range m.Rows {
		row := &m.Rows[r]
		lo := s.activity[r] + b.rowLo[r][d]
		hi := s.activity[r] + b.rowHi[r][d]
		switch row.Op {
		case model.LE:
			if lo > row.RHS+eps {
				return true
			}
		case model.GE:
			if hi < row.RHS-eps {
				return true
			}
		default:
			if lo > row.RHS+eps || hi < row.RHS-eps {
				return true
			}
		}
	}

	t := s.totals[d]
	needed := 0
	for a := 0; a < wynn.NumAttributes; a++ {
		lower := max(0, t.MaxReq[a]-t.Lending[a]-b.lendUB[d][a])
		if lower > m.AssignCap[a] {
			return true
		}
		needed += lower
	}
	if needed > skillpoints.Budget {
		return true
	}

	ub := s.score + b.scoreUB[d]
	if m.SPFactor > 0 {
		pair := 0.0
		for _, a := range pairOf(m) {
			pair += float64(t.All[a])
		}
		ub += m.SPFactor * (b.assignUB + pair + b.pairUB[d])
	}
	if m.HasMinScoreSP && ub < m.MinScoreSP-eps {
		return true
	}
	if s.all {
		return ub < s.floor-eps
	}
	return s.best != nil && ub <= s.best.Objective+eps
}

func (s *search) leaf() {
	ev := s.m.Evaluate(s.sel)
	if !ev.Feasible {
		return
	}

	if !s.all {
		if s.best == nil || ev.Objective > s.best.Objective+eps {
			s.best = newSolution(s.m, s.sel, ev)
			s.b.opts.Logger.Debug("new incumbent",
				zap.Float64("objective", ev.Objective),
				zap.Int64("nodes", s.nodes))
		}
		return
	}

	if ev.Objective < s.floor-eps {
		return
	}
	s.count++
	metrics.SolverSolutionsTotal.WithLabelValues(backendBnB).Inc()
	if every := s.b.opts.ProgressEvery; every > 0 && s.count%every == 0 {
		s.b.opts.Logger.Info("enumeration progress",
			zap.Int("solutions", s.count),
			zap.Int64("nodes", s.nodes))
	}
	if s.emit != nil {
		if err := s.emit(newSolution(s.m, s.sel, ev)); err != nil {
			s.err = err
		}
	}
}
