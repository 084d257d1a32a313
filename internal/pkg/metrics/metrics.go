// Package metrics holds the prometheus collectors of the optimizer
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SolverNodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wynnopt_solver_nodes_total",
			Help: "Search nodes expanded by the solver",
		},
		[]string{"backend"},
	)

	SolverSolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wynnopt_solver_solutions_total",
			Help: "Feasible assignments emitted by the solver",
		},
		[]string{"backend"},
	)

	SolverInterruptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wynnopt_solver_interruptions_total",
			Help: "Solver runs that stopped early and returned partial results",
		},
		[]string{"backend", "reason"},
	)

	CandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wynnopt_ranking_candidates_total",
			Help: "Candidates processed by the ranking pipeline by outcome",
		},
		[]string{"outcome"},
	)

	CatalogLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wynnopt_catalog_lookups_total",
			Help: "Catalog snapshot loads by tier",
		},
		[]string{"tier"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wynnopt_run_duration_seconds",
			Help:    "Optimizer run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900, 3600},
		},
		[]string{"operation", "status"},
	)

	ActiveRuns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wynnopt_active_runs",
			Help: "Optimizer runs currently holding a lease",
		},
	)
)

// Candidate outcomes
const (
	OutcomeRanked     = "ranked"
	OutcomeDuplicate  = "duplicate"
	OutcomeRejected   = "rejected"
	OutcomeUnresolved = "unresolved"
)

// Catalog tiers
const (
	TierMemory = "memory"
	TierRedis  = "redis"
	TierSource = "source"
)
