// Package catalog serves typed items, weapons and ingredients decoded from the
// item database. Snapshots are read through an in-process TTL cache and an
// optional redis tier before the data source is asked.
package catalog

//go:generate mockgen -destination=mock/mock_service.go -package=catalogmock github.com/KirkDiggler/wynn-optimizer/internal/services/catalog Service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/clients/wynnapi"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/clock"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/metrics"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/catalogcache"
)

// DefaultTTL matches the item database refresh cadence
const DefaultTTL = time.Hour

// DefaultCacheKey names the redis snapshot
const DefaultCacheKey = "items"

// Service defines the catalog operations
type Service interface {
	// GetAllItems returns the build domain: every gear item keyed by name
	GetAllItems(ctx context.Context) (map[string]*wynn.Item, error)

	// GetItem returns one gear item
	// Returns errors.NotFound when absent
	GetItem(ctx context.Context, name string) (*wynn.Item, error)

	// GetWeapon returns one weapon
	// Returns errors.NotFound when absent
	// Returns errors.NotAWeapon when the record has no base damage
	GetWeapon(ctx context.Context, name string) (*wynn.Weapon, error)

	// GetAllWeapons returns every weapon with base damage
	GetAllWeapons(ctx context.Context) (map[string]*wynn.Weapon, error)

	// GetAllIngredients returns the craft domain
	GetAllIngredients(ctx context.Context) (map[string]*wynn.Ingredient, error)

	// Refresh drops the in-process snapshot so the next read reloads
	Refresh(ctx context.Context) error
}

// Config contains configuration for the catalog service
type Config struct {
	Source wynnapi.Client
	// Cache is the optional redis tier
	Cache    catalogcache.Repository
	CacheKey string
	TTL      time.Duration
	Clock    clock.Clock
	Logger   *zap.Logger
}

// Validate validates the Config and sets defaults
func (cfg *Config) Validate() error {
	if cfg.CacheKey == "" {
		cfg.CacheKey = DefaultCacheKey
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	vb := errors.NewValidationBuilder()
	if cfg.Source == nil {
		vb.RequiredField("Source")
	}
	if cfg.TTL < 0 {
		vb.InvalidField("TTL", "must not be negative")
	}
	return vb.Build()
}

type service struct {
	source   wynnapi.Client
	cache    catalogcache.Repository
	cacheKey string
	ttl      time.Duration
	clock    clock.Clock
	logger   *zap.Logger

	mu   sync.Mutex
	snap *snapshot
}

// New creates a catalog service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &service{
		source:   cfg.Source,
		cache:    cfg.Cache,
		cacheKey: cfg.CacheKey,
		ttl:      cfg.TTL,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}, nil
}

func (s *service) GetAllItems(ctx context.Context) (map[string]*wynn.Item, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.items, nil
}

func (s *service) GetItem(ctx context.Context, name string) (*wynn.Item, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := snap.items[name]
	if !ok {
		return nil, errors.NotFoundf("item %q not found", name).WithMeta("item", name)
	}
	return item, nil
}

func (s *service) GetWeapon(ctx context.Context, name string) (*wynn.Weapon, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if w, ok := snap.weapons[name]; ok {
		return w, nil
	}
	if _, ok := snap.notWeapons[name]; ok {
		return nil, errors.NotAWeapon(name)
	}
	if _, ok := snap.items[name]; ok {
		return nil, errors.NotAWeapon(name)
	}
	return nil, errors.NotFoundf("weapon %q not found", name).WithMeta("item", name)
}

func (s *service) GetAllWeapons(ctx context.Context) (map[string]*wynn.Weapon, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.weapons, nil
}

func (s *service) GetAllIngredients(ctx context.Context) (map[string]*wynn.Ingredient, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.ingredients, nil
}

func (s *service) Refresh(_ context.Context) error {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
	s.logger.Info("catalog snapshot dropped")
	return nil
}

// load returns the current snapshot, reloading it when missing or expired.
// Concurrent callers wait on the same load.
func (s *service) load(ctx context.Context) (*snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && !clock.Expired(s.clock, s.snap.loadedAt, s.ttl) {
		metrics.CatalogLookupsTotal.WithLabelValues(metrics.TierMemory).Inc()
		return s.snap, nil
	}

	raw, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := decode(raw)
	if err != nil {
		return nil, err
	}
	snap.loadedAt = s.clock.Now()
	s.snap = snap

	s.logger.Info("catalog loaded",
		zap.Int("items", len(snap.items)),
		zap.Int("weapons", len(snap.weapons)),
		zap.Int("ingredients", len(snap.ingredients)))
	return snap, nil
}

func (s *service) fetch(ctx context.Context) (map[string]json.RawMessage, error) {
	if s.cache != nil {
		out, err := s.cache.Get(ctx, catalogcache.GetInput{Key: s.cacheKey})
		switch {
		case err == nil:
			metrics.CatalogLookupsTotal.WithLabelValues(metrics.TierRedis).Inc()
			return out.Records, nil
		case !errors.IsNotFound(err):
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
	}

	raw, err := s.source.Database(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load item database")
	}
	metrics.CatalogLookupsTotal.WithLabelValues(metrics.TierSource).Inc()

	if s.cache != nil {
		_, err := s.cache.Put(ctx, catalogcache.PutInput{
			Key:     s.cacheKey,
			Records: raw,
			TTL:     s.ttl,
		})
		if err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return raw, nil
}
