package results

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	redisclient "github.com/KirkDiggler/wynn-optimizer/internal/redis"
)

const keyPrefix = "wynn:results:"

// RedisConfig contains configuration for the redis result log
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

type redisStore struct {
	client redisclient.Client
}

var _ Store = (*redisStore)(nil)

// NewRedis creates a result log backed by one redis list per run
func NewRedis(cfg *RedisConfig) (Store, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &redisStore{client: cfg.Client}, nil
}

func (r *redisStore) Append(ctx context.Context, runID string, names []string) error {
	if err := validateAppend(runID, names); err != nil {
		return err
	}

	record, err := json.Marshal(names)
	if err != nil {
		return errors.Wrap(err, "failed to marshal candidate")
	}
	if err := r.client.RPush(ctx, keyPrefix+runID, record).Err(); err != nil {
		return errors.Wrapf(err, "failed to append candidate to run %s", runID)
	}
	return nil
}

func (r *redisStore) List(ctx context.Context, runID string) ([][]string, error) {
	if runID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	raw, err := r.client.LRange(ctx, keyPrefix+runID, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list candidates of run %s", runID)
	}

	out := make([][]string, 0, len(raw))
	for i, rec := range raw {
		names, err := decodeRecord(rec)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "corrupt candidate record").
				WithMeta("run_id", runID).
				WithMeta("index", i)
		}
		out = append(out, names)
	}
	return out, nil
}

func (r *redisStore) Count(ctx context.Context, runID string) (int, error) {
	if runID == "" {
		return 0, errors.InvalidArgument(errRunIDEmpty)
	}
	n, err := r.client.LLen(ctx, keyPrefix+runID).Result()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count candidates of run %s", runID)
	}
	return int(n), nil
}

func (r *redisStore) Delete(ctx context.Context, runID string) error {
	if runID == "" {
		return errors.InvalidArgument(errRunIDEmpty)
	}
	if err := r.client.Del(ctx, keyPrefix+runID).Err(); err != nil {
		return errors.Wrapf(err, "failed to delete run %s", runID)
	}
	return nil
}

func decodeRecord(rec string) ([]string, error) {
	var names []string
	if err := json.Unmarshal([]byte(rec), &names); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New(errors.CodeDataLoss, "empty candidate record")
	}
	return names, nil
}

const errRunIDEmpty = "run ID cannot be empty"

func validateAppend(runID string, names []string) error {
	vb := errors.NewValidationBuilder()
	if runID == "" {
		vb.RequiredField("RunID")
	}
	if len(names) == 0 {
		vb.RequiredField("Names")
	}
	return vb.Build()
}
