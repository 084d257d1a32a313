package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/wynn-optimizer/internal/config"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

const profileYAML = `
log:
  level: debug
  format: console
redis:
  addr: localhost:6379
results:
  backend: redis
optimizer:
  weapon: Nirvana
  powders: ttt
  spell_mod: [0.3, 0, 0, 0.7]
  mastery: [false, false, false, true]
  sp_factor: 0.1
  sp_pair: [int, def]
  weights:
    - {name: spellDamage, value: 1.5}
  caps:
    max_requirement: {str: 80}
    max_identification:
      - {name: manaRegen, value: 12}
    sp_sum:
      - {value: 120, attributes: [str, dex]}
    min_skill_points: {intelligence: 40}
  exclusion_presets: [hive_master]
  min_score: 250
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "optimizer:\n  weapon: Nirvana\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Results.Backend)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
	assert.Equal(t, 180, cfg.Catalog.RequestsPerMinute)
	assert.Equal(t, 10*time.Minute, cfg.Lease.TTL)
	assert.InDelta(t, 0.9, cfg.Optimizer.Shrink, 1e-9)

	p := cfg.Optimizer.Profile()
	assert.Equal(t, [2]wynn.Attribute{wynn.Strength, wynn.Dexterity}, p.SPPair)
}

func TestLoadProfile(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, profileYAML))
	require.NoError(t, err)

	p := cfg.Optimizer.Profile()
	assert.Equal(t, "Nirvana", p.Weapon)
	assert.InDelta(t, 0.7, p.SpellModifiers[3], 1e-9)
	assert.True(t, p.Mastery[3])
	assert.Equal(t, [2]wynn.Attribute{wynn.Intelligence, wynn.Defence}, p.SPPair)
	assert.Equal(t, map[string]float64{"spellDamage": 1.5}, p.Weights)
	assert.Equal(t, map[wynn.Attribute]int{wynn.Strength: 80}, p.MaxRequirement)
	assert.Equal(t, map[string]int{"manaRegen": 12}, p.MaxIdentification)
	assert.Equal(t, map[wynn.Attribute]int{wynn.Intelligence: 40}, p.MinSkillPoints)
	require.Len(t, p.SkillPointSumCaps, 1)
	assert.Equal(t, []wynn.Attribute{wynn.Strength, wynn.Dexterity}, p.SkillPointSumCaps[0].Attributes)
	assert.Equal(t, []string{"hive_master"}, p.ExclusionPresets)
	require.NotNil(t, p.MinScore)
	assert.InDelta(t, 250, *p.MinScore, 1e-9)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WYNNOPT_OPTIMIZER_WEAPON", "Divzer")
	t.Setenv("WYNNOPT_LOG_LEVEL", "warn")

	cfg, err := config.Load(writeConfig(t, profileYAML))
	require.NoError(t, err)
	assert.Equal(t, "Divzer", cfg.Optimizer.Weapon)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "unknown backend", body: "results:\n  backend: s3\n"},
		{name: "redis backend without addr", body: "results:\n  backend: redis\n"},
		{name: "unknown attribute", body: "optimizer:\n  caps:\n    max_requirement: {luck: 10}\n"},
		{name: "bad pair", body: "optimizer:\n  sp_pair: [str]\n"},
		{name: "unknown preset", body: "optimizer:\n  exclusion_presets: [nope]\n"},
		{name: "bad log level", body: "log:\n  level: loud\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.IsInvalidArgument(err))
}
