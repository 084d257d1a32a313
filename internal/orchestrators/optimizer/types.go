package optimizer

import (
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/model"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/ranking"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/score"
	"github.com/KirkDiggler/wynn-optimizer/internal/engine/solver"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
)

// Solver backends
const (
	BackendBranchAndBound = "branch_and_bound"
	BackendBruteForce     = "brute_force"
)

// Profile describes what to optimise for one weapon
type Profile struct {
	Weapon string

	// Damage scoring. When Weights is set the build is scored as a weighted
	// identification sum instead.
	Powders        string
	SpellModifiers [score.NumElements]float64
	Mastery        [score.NumElements]bool
	Crit           bool
	Weights        map[string]float64

	SPFactor float64
	SPPair   [2]wynn.Attribute

	// Shrink is the enumeration floor as a fraction of the best objective
	Shrink float64

	// Candidate pool
	MaxLevel     int
	ExcludeNames []string
	Relevant     []string

	// Model constraints
	MaxRequirement    map[wynn.Attribute]int
	MaxIdentification map[string]int
	MinIdentification map[string]int
	SkillPointSumCaps []model.SkillPointSumCap
	MaxAssignable     map[wynn.Attribute]int
	MaxSkillPoints    map[wynn.Attribute]int
	MinSkillPoints    map[wynn.Attribute]int
	Exclusions        [][]string
	ExclusionPresets  []string
	MinScore          *float64
	MinScoreSP        *float64

	Backend   string
	NodeLimit int64
}

// OptimizeInput starts or continues a run
type OptimizeInput struct {
	// RunID names the result log and the lease. Generated when empty.
	RunID   string
	Profile *Profile
	// ReuseInProgress ranks the log of a run whose lease is held elsewhere
	// instead of failing
	ReuseInProgress bool
}

// OptimizeOutput is the outcome of a run
type OptimizeOutput struct {
	RunID       string
	Best        *solver.Solution
	Enumeration *solver.Enumeration
	Ranking     *ranking.Ranking
	// Reused is set when the log of an in-progress run was ranked
	Reused bool
}

// ResumeInput continues an interrupted run
type ResumeInput struct {
	RunID   string
	Profile *Profile
}

// ResumeOutput is the outcome of a resumed run
type ResumeOutput struct {
	RunID       string
	Existing    int
	Skipped     int
	Enumeration *solver.Enumeration
	Ranking     *ranking.Ranking
}

// RankInput ranks a stored log without solving
type RankInput struct {
	RunID   string
	Profile *Profile
}

// RankOutput holds the ranking of a stored log
type RankOutput struct {
	Ranking *ranking.Ranking
}

// SweepInput solves one run per weapon
type SweepInput struct {
	// Weapons to try. Empty means every weapon in the catalog.
	Weapons []string
	Profile *Profile
}

// SweepOutput merges the per-weapon rankings
type SweepOutput struct {
	Ranking *ranking.Ranking
	// RunIDs maps each completed weapon to its run
	RunIDs map[string]string
	// Failed maps weapons whose run errored to the error
	Failed map[string]error
	// Interrupted is set when the sweep was cancelled before every weapon ran
	Interrupted bool
}
