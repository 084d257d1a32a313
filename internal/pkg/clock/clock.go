// Package clock provides time utilities for cache expiry and lease timing
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/wynn-optimizer/internal/pkg/clock Clock

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Expired reports whether a value stored at storedAt with the given ttl has
// expired at now. A non-positive ttl never expires.
func Expired(c Clock, storedAt time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return !c.Now().Before(storedAt.Add(ttl))
}
