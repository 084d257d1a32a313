// Package results is the append-only candidate log of an optimizer run. Each
// record is one candidate: the gear item names in build order.
package results

//go:generate mockgen -destination=mock/mock_store.go -package=resultsmock github.com/KirkDiggler/wynn-optimizer/internal/repositories/results Store

import "context"

// Store defines the interface for the run result log
type Store interface {
	// Append adds one candidate to the run's log
	// Returns errors.InvalidArgument for an empty run id or candidate
	Append(ctx context.Context, runID string, names []string) error

	// List returns every candidate of the run in append order
	// A run with no log returns an empty slice
	List(ctx context.Context, runID string) ([][]string, error)

	// Count returns the number of candidates in the run's log
	Count(ctx context.Context, runID string) (int, error)

	// Delete removes the run's log. Deleting a missing log is not an error.
	Delete(ctx context.Context, runID string) error
}

// Backends supported by the configuration
const (
	BackendRedis = "redis"
	BackendFile  = "file"
)
