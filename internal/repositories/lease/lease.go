// Package lease guards an optimizer run so two processes never enumerate the
// same run at once. A lease is a redis key holding the owner's token; it is
// taken with SET NX PX and only the owner may renew or release it.
package lease

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/clock"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/wynn-optimizer/internal/redis"
)

const keyPrefix = "wynn:lease:"

// MetaHolder is the error meta key carrying the current holder's token
const MetaHolder = "holder"

var (
	renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

	releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)
)

// Lease is a held run lease
type Lease struct {
	Name      string
	Token     string
	ExpiresAt time.Time
}

// Manager acquires and releases run leases
type Manager interface {
	// Acquire takes the named lease for ttl
	// Returns errors.FailedPrecondition with the holder in meta when it is held
	Acquire(ctx context.Context, name string, ttl time.Duration) (*Lease, error)

	// Renew extends a held lease
	// Returns errors.FailedPrecondition when the lease was lost
	Renew(ctx context.Context, l *Lease, ttl time.Duration) error

	// Release frees a held lease
	// Returns errors.FailedPrecondition when the lease was lost
	Release(ctx context.Context, l *Lease) error

	// Holder returns the token currently holding the lease
	// Returns errors.NotFound when the lease is free
	Holder(ctx context.Context, name string) (string, error)
}

// Config contains configuration for the redis lease manager
type Config struct {
	Client      redisclient.Client
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate validates the Config and sets defaults
func (cfg *Config) Validate() error {
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = idgen.NewUUID("lease")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

type redisManager struct {
	client redisclient.Client
	ids    idgen.Generator
	clock  clock.Clock
}

var _ Manager = (*redisManager)(nil)

// NewRedis creates a lease manager on redis
func NewRedis(cfg *Config) (Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisManager{
		client: cfg.Client,
		ids:    cfg.IDGenerator,
		clock:  cfg.Clock,
	}, nil
}

func validateTTL(name string, ttl time.Duration) error {
	vb := errors.NewValidationBuilder()
	if name == "" {
		vb.RequiredField("Name")
	}
	if ttl < time.Millisecond {
		vb.InvalidField("TTL", "must be at least one millisecond")
	}
	return vb.Build()
}

func (m *redisManager) Acquire(ctx context.Context, name string, ttl time.Duration) (*Lease, error) {
	if err := validateTTL(name, ttl); err != nil {
		return nil, err
	}

	token := m.ids.Generate()
	ok, err := m.client.SetNX(ctx, keyPrefix+name, token, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to acquire lease %s", name)
	}
	if !ok {
		holder, herr := m.client.Get(ctx, keyPrefix+name).Result()
		busy := errors.FailedPreconditionf("lease %s is held", name)
		if herr == nil {
			busy = busy.WithMeta(MetaHolder, holder)
		}
		return nil, busy
	}

	return &Lease{
		Name:      name,
		Token:     token,
		ExpiresAt: m.clock.Now().Add(ttl),
	}, nil
}

func (m *redisManager) Renew(ctx context.Context, l *Lease, ttl time.Duration) error {
	if l == nil {
		return errors.InvalidArgument("lease cannot be nil")
	}
	if err := validateTTL(l.Name, ttl); err != nil {
		return err
	}

	n, err := renewScript.Run(ctx, m.client, []string{keyPrefix + l.Name}, l.Token, ttl.Milliseconds()).Int()
	if err != nil {
		return errors.Wrapf(err, "failed to renew lease %s", l.Name)
	}
	if n == 0 {
		return errors.FailedPreconditionf("lease %s was lost", l.Name)
	}
	l.ExpiresAt = m.clock.Now().Add(ttl)
	return nil
}

func (m *redisManager) Release(ctx context.Context, l *Lease) error {
	if l == nil {
		return errors.InvalidArgument("lease cannot be nil")
	}

	n, err := releaseScript.Run(ctx, m.client, []string{keyPrefix + l.Name}, l.Token).Int()
	if err != nil {
		return errors.Wrapf(err, "failed to release lease %s", l.Name)
	}
	if n == 0 {
		return errors.FailedPreconditionf("lease %s was lost", l.Name)
	}
	return nil
}

func (m *redisManager) Holder(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", errors.InvalidArgument("name cannot be empty")
	}
	token, err := m.client.Get(ctx, keyPrefix+name).Result()
	if err != nil {
		if err == redisclient.Nil {
			return "", errors.NotFoundf("lease %s is free", name)
		}
		return "", errors.Wrapf(err, "failed to read lease %s", name)
	}
	return token, nil
}
