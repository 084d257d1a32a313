package wynnapi

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

type fallback struct {
	sources []Client
	logger  *zap.Logger
}

// NewFallback returns a Client trying each source in order until one succeeds
func NewFallback(logger *zap.Logger, sources ...Client) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fallback{sources: sources, logger: logger}
}

// Database returns the first successful source's records. A cancelled context
// stops the chain.
func (f *fallback) Database(ctx context.Context) (map[string]json.RawMessage, error) {
	var lastErr error = errors.Unavailable("no catalog source configured")
	for i, src := range f.sources {
		records, err := src.Database(ctx)
		if err == nil {
			return records, nil
		}
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "catalog load aborted")
		}
		f.logger.Warn("catalog source failed, trying next",
			zap.Int("source", i),
			zap.Error(err))
		lastErr = err
	}
	return nil, errors.Wrap(lastErr, "all catalog sources failed")
}
