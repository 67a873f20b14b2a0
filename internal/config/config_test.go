package config_test

import (
	"os"
	"testing"

	"github.com/saanuregh/deepcool-ch170/internal/config"
	"github.com/saanuregh/deepcool-ch170/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"deepcool-ch170"}

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, config.DefaultInterval, cfg.Interval, "Expected default Interval")
	assert.Equal(t, config.DefaultCyclesPerMode, cfg.CyclesPerMode, "Expected default CyclesPerMode")
	assert.Equal(t, config.SourceAuto, cfg.Source, "Expected default Source auto")
	assert.Equal(t, config.TempUnitCelsius, cfg.TemperatureUnit, "Expected default unit celsius")
	assert.Empty(t, cfg.MetricsListen, "Expected metrics endpoint disabled by default")
	assert.False(t, cfg.Debug, "Expected default Debug false")
	assert.False(t, cfg.Verbose, "Expected default Verbose false")
	assert.False(t, cfg.Fahrenheit(), "Expected Fahrenheit false for celsius")
}

func TestLoadFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{
		"deepcool-ch170",
		"--interval", "5",
		"--cycles-per-mode", "10",
		"--temperature-unit", "fahrenheit",
		"--source", "local",
		"--metrics-listen", "127.0.0.1:9187",
		"--verbose",
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Interval, "Expected Interval 5")
	assert.Equal(t, 10, cfg.CyclesPerMode, "Expected CyclesPerMode 10")
	assert.Equal(t, config.TempUnitFahrenheit, cfg.TemperatureUnit, "Expected fahrenheit")
	assert.True(t, cfg.Fahrenheit(), "Expected Fahrenheit true")
	assert.Equal(t, config.SourceLocal, cfg.Source, "Expected Source local")
	assert.Equal(t, "127.0.0.1:9187", cfg.MetricsListen, "Expected MetricsListen set")
	assert.True(t, cfg.Verbose, "Expected Verbose true")
}

func TestLoadEnvironment(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"deepcool-ch170"}

	t.Setenv("DEEPCOOL_CYCLES_PER_MODE", "3")
	t.Setenv("DEEPCOOL_SOURCE", "hwinfo")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.CyclesPerMode, "Expected CyclesPerMode from environment")
	assert.Equal(t, config.SourceHWiNFO, cfg.Source, "Expected Source from environment")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		wantCode errors.ErrorCode
	}{
		{
			name:     "zero interval",
			mutate:   func(c *config.Config) { c.Interval = 0 },
			wantCode: errors.ErrInvalidInterval,
		},
		{
			name:     "zero cycles per mode",
			mutate:   func(c *config.Config) { c.CyclesPerMode = 0 },
			wantCode: errors.ErrInvalidCyclesPerMode,
		},
		{
			name:     "unknown source",
			mutate:   func(c *config.Config) { c.Source = "hwmon" },
			wantCode: errors.ErrInvalidSensorSource,
		},
		{
			name:     "unknown temperature unit",
			mutate:   func(c *config.Config) { c.TemperatureUnit = "kelvin" },
			wantCode: errors.ErrInvalidTempUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Interval:        config.DefaultInterval,
				CyclesPerMode:   config.DefaultCyclesPerMode,
				TemperatureUnit: config.DefaultTempUnit,
				Source:          config.DefaultSource,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode), "expected code %s, got %v", tt.wantCode, err)
		})
	}
}
