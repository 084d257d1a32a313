package results_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/results"
	"github.com/KirkDiggler/wynn-optimizer/internal/testutils"
)

var (
	candidateA = []string{"Cancer", "Nether's Reach", "Aleph Null", "Silkwrap", "Diamond Hydro Ring", "Moon Pool Circlet", "Prowess", "Diamond Fusion Necklace"}
	candidateB = []string{"Sano's Care", "Boreal-Patterned Aegis", "Aleph Null", "Silkwrap", "Moon Pool Circlet", "Moon Pool Circlet", "Prowess", "Recollection"}
)

// StoreTestSuite runs the same behaviour checks against every backend
type StoreTestSuite struct {
	suite.Suite
	newStore func(t *testing.T) results.Store
	store    results.Store
	ctx      context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore(s.T())
}

func (s *StoreTestSuite) TestAppendListCount() {
	s.Require().NoError(s.store.Append(s.ctx, "run_1", candidateA))
	s.Require().NoError(s.store.Append(s.ctx, "run_1", candidateB))
	s.Require().NoError(s.store.Append(s.ctx, "run_2", candidateB))

	sets, err := s.store.List(s.ctx, "run_1")
	s.Require().NoError(err)
	s.Equal([][]string{candidateA, candidateB}, sets)

	n, err := s.store.Count(s.ctx, "run_2")
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *StoreTestSuite) TestMissingRunIsEmpty() {
	sets, err := s.store.List(s.ctx, "never")
	s.Require().NoError(err)
	s.Empty(sets)

	n, err := s.store.Count(s.ctx, "never")
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *StoreTestSuite) TestDelete() {
	s.Require().NoError(s.store.Append(s.ctx, "run_1", candidateA))
	s.Require().NoError(s.store.Delete(s.ctx, "run_1"))
	s.Require().NoError(s.store.Delete(s.ctx, "run_1"))

	n, err := s.store.Count(s.ctx, "run_1")
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *StoreTestSuite) TestValidation() {
	s.True(errors.IsInvalidArgument(s.store.Append(s.ctx, "", candidateA)))
	s.True(errors.IsInvalidArgument(s.store.Append(s.ctx, "run_1", nil)))

	_, err := s.store.List(s.ctx, "")
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newStore: func(t *testing.T) results.Store {
		client, _ := testutils.CreateTestRedisClient(t)
		store, err := results.NewRedis(&results.RedisConfig{Client: client})
		require.NoError(t, err)
		return store
	}})
}

func TestFileStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newStore: func(t *testing.T) results.Store {
		store, err := results.NewFile(&results.FileConfig{Dir: t.TempDir()})
		require.NoError(t, err)
		return store
	}})
}

func TestFileStoreIgnoresTruncatedTail(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store, err := results.NewFile(&results.FileConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, "run_1", candidateA))

	f, err := os.OpenFile(filepath.Join(dir, "run_1.jsonl"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`["Sano's Care", "Boreal`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	sets, err := store.List(ctx, "run_1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{candidateA}, sets)
}

func TestFileStoreAppendAfterTruncatedTail(t *testing.T) {
	testCases := []struct {
		name     string
		tail     string
		expected [][]string
	}{
		{
			name:     "torn record is cut off",
			tail:     `["Sano's Care", "Boreal`,
			expected: [][]string{candidateA, candidateB},
		},
		{
			name:     "complete record missing its newline is kept",
			tail:     `["Prowess"]`,
			expected: [][]string{candidateA, {"Prowess"}, candidateB},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			ctx := context.Background()
			store, err := results.NewFile(&results.FileConfig{Dir: dir})
			require.NoError(t, err)
			require.NoError(t, store.Append(ctx, "run_1", candidateA))

			f, err := os.OpenFile(filepath.Join(dir, "run_1.jsonl"), os.O_APPEND|os.O_WRONLY, 0o644)
			require.NoError(t, err)
			_, err = f.WriteString(tc.tail)
			require.NoError(t, err)
			require.NoError(t, f.Close())

			require.NoError(t, store.Append(ctx, "run_1", candidateB))

			sets, err := store.List(ctx, "run_1")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, sets)

			n, err := store.Count(ctx, "run_1")
			require.NoError(t, err)
			assert.Equal(t, len(tc.expected), n)
		})
	}
}

func TestFileStoreCorruptMiddleLineIsDataLoss(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	body := "[\"a\"]\nnot json\n[\"b\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run_1.jsonl"), []byte(body), 0o644))

	store, err := results.NewFile(&results.FileConfig{Dir: dir})
	require.NoError(t, err)

	_, err = store.List(ctx, "run_1")
	assert.True(t, errors.IsDataLoss(err))
}

func TestFileStoreRejectsPathRunIDs(t *testing.T) {
	store, err := results.NewFile(&results.FileConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	err = store.Append(context.Background(), "../escape", candidateA)
	assert.True(t, errors.IsInvalidArgument(err))
}
