package solver

import (
	"go.uber.org/zap"
)

// checkMask sets how often the context is polled: every 4096 nodes
const checkMask = 4095

// Options tunes a backend. The zero value is usable.
type Options struct {
	// NodeLimit stops the search after this many nodes; 0 means no limit
	NodeLimit int64

	// ProgressEvery logs progress every N emitted solutions; 0 disables it
	ProgressEvery int

	Logger *zap.Logger
}

func (o *Options) logger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *Options) withDefaults() Options {
	if o == nil {
		return Options{ProgressEvery: 10000, Logger: zap.NewNop()}
	}
	out := *o
	out.Logger = o.logger()
	return out
}
