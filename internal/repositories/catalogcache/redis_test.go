package catalogcache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	mockclock "github.com/KirkDiggler/wynn-optimizer/internal/pkg/clock/mock"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/catalogcache"
	"github.com/KirkDiggler/wynn-optimizer/internal/testutils"
)

type CatalogCacheTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	clock *mockclock.MockClock
	mr    *miniredis.Miniredis
	repo  catalogcache.Repository
	ctx   context.Context
	now   time.Time
}

func (s *CatalogCacheTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clock = mockclock.NewMockClock(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr

	repo, err := catalogcache.NewRedis(&catalogcache.Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *CatalogCacheTestSuite) records() map[string]json.RawMessage {
	return map[string]json.RawMessage{
		"Stardust": json.RawMessage(`{"type":"accessory","accessoryType":"ring"}`),
	}
}

func (s *CatalogCacheTestSuite) TestNewRedisRequiresClient() {
	_, err := catalogcache.NewRedis(&catalogcache.Config{})
	s.True(errors.IsInvalidArgument(err))

	_, err = catalogcache.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CatalogCacheTestSuite) TestPutThenGet() {
	s.clock.EXPECT().Now().Return(s.now)

	put, err := s.repo.Put(s.ctx, catalogcache.PutInput{
		Key:     "items",
		Records: s.records(),
		TTL:     time.Hour,
	})
	s.Require().NoError(err)
	s.Equal(s.now, put.StoredAt)

	got, err := s.repo.Get(s.ctx, catalogcache.GetInput{Key: "items"})
	s.Require().NoError(err)
	s.True(got.StoredAt.Equal(s.now))
	s.JSONEq(string(s.records()["Stardust"]), string(got.Records["Stardust"]))
	s.Equal(time.Hour, s.mr.TTL("wynn:catalog:items"))
}

func (s *CatalogCacheTestSuite) TestExpiredSnapshotIsNotFound() {
	s.clock.EXPECT().Now().Return(s.now)

	_, err := s.repo.Put(s.ctx, catalogcache.PutInput{
		Key:     "items",
		Records: s.records(),
		TTL:     time.Minute,
	})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, catalogcache.GetInput{Key: "items"})
	s.True(errors.IsNotFound(err))
}

func (s *CatalogCacheTestSuite) TestCorruptBlobIsDataLoss() {
	s.Require().NoError(s.mr.Set("wynn:catalog:items", "{not json"))

	_, err := s.repo.Get(s.ctx, catalogcache.GetInput{Key: "items"})
	s.True(errors.IsDataLoss(err))
}

func (s *CatalogCacheTestSuite) TestValidation() {
	_, err := s.repo.Get(s.ctx, catalogcache.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, catalogcache.PutInput{Key: "items"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, catalogcache.PutInput{Key: "items", Records: s.records(), TTL: -time.Second})
	s.True(errors.IsInvalidArgument(err))
}

func TestCatalogCacheSuite(t *testing.T) {
	suite.Run(t, new(CatalogCacheTestSuite))
}
