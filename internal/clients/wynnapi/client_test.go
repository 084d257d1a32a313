package wynnapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/wynn-optimizer/internal/clients/wynnapi"
	wynnapimock "github.com/KirkDiggler/wynn-optimizer/internal/clients/wynnapi/mock"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

const databaseBody = `{
	"Stardust": {"type": "accessory", "accessoryType": "ring", "requirements": {"level": 75, "dexterity": 45}},
	"Cancer": {"type": "armour", "armourType": "helmet", "requirements": {"level": 87, "defence": 50}}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, retries int) wynnapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := wynnapi.New(&wynnapi.Config{
		BaseURL:    srv.URL,
		MaxRetries: retries,
	})
	require.NoError(t, err)
	return c
}

func TestDatabase(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/item/database", r.URL.Path)
		assert.Equal(t, "True", r.URL.Query().Get("fullResult"))
		_, _ = w.Write([]byte(databaseBody))
	}, 0)

	records, err := c.Database(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Contains(t, records, "Stardust")
}

func TestDatabaseRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(databaseBody))
	}, 1)

	records, err := c.Database(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDatabaseErrorCodes(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		code   errors.Code
	}{
		{name: "server error", status: http.StatusServiceUnavailable, code: errors.CodeUnavailable},
		{name: "rate limited", status: http.StatusTooManyRequests, code: errors.CodeResourceExhausted},
		{name: "client error", status: http.StatusNotFound, code: errors.CodeFailedPrecondition},
		{name: "not an object", status: http.StatusOK, body: `[1, 2]`, code: errors.CodeDataLoss},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}, 0)

			_, err := c.Database(context.Background())
			require.Error(t, err)
			assert.Equal(t, tc.code, errors.GetCode(err))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &wynnapi.Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, wynnapi.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, wynnapi.DefaultRequestsPerMinute, cfg.RequestsPerMinute)

	_, err := wynnapi.New(&wynnapi.Config{MaxRetries: -1})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "items.json")
	records := map[string]json.RawMessage{
		"Stardust": json.RawMessage(`{"type":"accessory","accessoryType":"ring"}`),
	}
	require.NoError(t, wynnapi.WriteSnapshot(path, records))

	c, err := wynnapi.NewFile(path)
	require.NoError(t, err)
	got, err := c.Database(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, string(records["Stardust"]), string(got["Stardust"]))
}

func TestSnapshotMissing(t *testing.T) {
	c, err := wynnapi.NewFile(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	_, err = c.Database(context.Background())
	assert.True(t, errors.IsNotFound(err))

	_, err = wynnapi.NewFile("")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := wynnapimock.NewMockClient(ctrl)
	secondary := wynnapimock.NewMockClient(ctrl)
	ctx := context.Background()
	want := map[string]json.RawMessage{"Stardust": json.RawMessage(`{}`)}

	t.Run("uses first success", func(t *testing.T) {
		primary.EXPECT().Database(ctx).Return(want, nil)

		got, err := wynnapi.NewFallback(nil, primary, secondary).Database(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("falls through failures", func(t *testing.T) {
		primary.EXPECT().Database(ctx).Return(nil, errors.Unavailable("down"))
		secondary.EXPECT().Database(ctx).Return(want, nil)

		got, err := wynnapi.NewFallback(nil, primary, secondary).Database(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("reports last error", func(t *testing.T) {
		primary.EXPECT().Database(ctx).Return(nil, errors.Unavailable("down"))
		secondary.EXPECT().Database(ctx).Return(nil, errors.NotFound("no snapshot"))

		_, err := wynnapi.NewFallback(nil, primary, secondary).Database(ctx)
		assert.True(t, errors.IsNotFound(err))
	})
}
