package catalogcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/wynn-optimizer/internal/redis"
)

const keyPrefix = "wynn:catalog:"

// Config contains configuration for the redis catalog cache
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the Config and defaults the clock
func (cfg *Config) Validate() error {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

var _ Repository = (*redisRepository)(nil)

// NewRedis creates a redis backed catalog cache
func NewRedis(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// snapshotData is what gets serialized to redis
type snapshotData struct {
	StoredAt time.Time                  `json:"stored_at"`
	Records  map[string]json.RawMessage `json:"records"`
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument("key cannot be empty")
	}

	result, err := r.client.Get(ctx, keyPrefix+input.Key).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("catalog snapshot %s not found", input.Key)
		}
		return nil, errors.Wrapf(err, "failed to get catalog snapshot %s", input.Key)
	}

	var data snapshotData
	if err := json.Unmarshal(result, &data); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal catalog snapshot")
	}

	return &GetOutput{
		Records:  data.Records,
		StoredAt: data.StoredAt,
	}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	vb := errors.NewValidationBuilder()
	if input.Key == "" {
		vb.RequiredField("Key")
	}
	if input.Records == nil {
		vb.RequiredField("Records")
	}
	if input.TTL < 0 {
		vb.InvalidField("TTL", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	data := snapshotData{
		StoredAt: r.clock.Now().UTC(),
		Records:  input.Records,
	}
	blob, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal catalog snapshot")
	}

	if err := r.client.Set(ctx, keyPrefix+input.Key, blob, input.TTL).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store catalog snapshot %s", input.Key)
	}

	return &PutOutput{StoredAt: data.StoredAt}, nil
}
