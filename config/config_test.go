package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledflasher/core"
)

func TestLoadConfigEmptyIsDefault(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, core.DefaultConfig(), *cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{
		"fast_preset_us": 50000,
		"slow_preset_us": 250000,
		"max_duty": 40
	}`))
	require.NoError(t, err)

	def := core.DefaultConfig()
	assert.Equal(t, core.TicksFromMS(50), cfg.FastPreset)
	assert.Equal(t, core.TicksFromMS(250), cfg.SlowPreset)
	assert.Equal(t, core.DutyCycle(40), cfg.MaxDuty)
	assert.Equal(t, def.MinDuty, cfg.MinDuty)
	assert.Equal(t, def.PressSettle, cfg.PressSettle)
	assert.Equal(t, def.FilterSeed, cfg.FilterSeed)
}

func TestLoadConfigCustomTargetKeepsZeroSeed(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"target": 20}`))
	require.NoError(t, err)
	assert.Equal(t, core.ADCValue(20), cfg.Target)
	assert.Zero(t, cfg.FilterSeed)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	_, err := LoadConfig([]byte(`{"min_duty": 50, "max_duty": 20}`))
	assert.True(t, errors.Is(err, core.ErrDutyRange), "got %v", err)

	_, err = LoadConfig([]byte(`{"initial_duty": 64}`))
	assert.ErrorIs(t, err, core.ErrDutyRange)

	_, err = LoadConfig([]byte(`{"max_duty": 300}`))
	assert.Error(t, err, "out of range for uint8")

	_, err = LoadConfig([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flasher.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"wake_settle_us": 45000}`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, core.TicksFromMS(45), cfg.WakeSettle)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMarshalRoundTripsDefaults(t *testing.T) {
	data, err := Marshal(core.DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fast_preset_us": 80000`)

	cfg, err := LoadConfig(data)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultConfig(), *cfg)
}
