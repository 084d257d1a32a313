// Package catalogcache stores raw catalog snapshots in redis so separate
// processes share one download per TTL window.
package catalogcache

import (
	"context"
	"encoding/json"
	"time"
)

// Repository defines the interface for catalog snapshot persistence
type Repository interface {
	// Get retrieves a stored snapshot
	// Returns errors.InvalidArgument for an empty key
	// Returns errors.NotFound if no snapshot exists or it expired
	// Returns errors.DataLoss if the stored blob cannot be decoded
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put stores a snapshot, replacing any previous one under the key
	// Returns errors.InvalidArgument for validation failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
}

// GetInput defines the input for reading a snapshot
type GetInput struct {
	Key string
}

// GetOutput carries the stored records and when they were written
type GetOutput struct {
	Records  map[string]json.RawMessage
	StoredAt time.Time
}

// PutInput defines the input for storing a snapshot
type PutInput struct {
	Key     string
	Records map[string]json.RawMessage
	// TTL of zero stores without expiry
	TTL time.Duration
}

// PutOutput defines the output for storing a snapshot
type PutOutput struct {
	StoredAt time.Time
}
