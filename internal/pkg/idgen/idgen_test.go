package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("run")

	assert.Equal(t, "run_1", gen.Generate())
	assert.Equal(t, "run_2", gen.Generate())
	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("lease")

	id := gen.Generate()
	require.True(t, strings.HasPrefix(id, "lease_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "lease_"))
	require.NoError(t, err)
	assert.NotEqual(t, id, gen.Generate())
}
