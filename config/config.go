// Package config loads flasher tunables from JSON for the host tools.
// The firmware itself always runs core.DefaultConfig.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"ledflasher/core"
)

// LoadConfig parses a JSON configuration and returns a validated core.Config.
// Fields left out (or zero) take the firmware defaults.
func LoadConfig(jsonData []byte) (*core.Config, error) {
	var config core.Config

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Apply defaults
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFile reads and parses a JSON configuration file
func LoadFile(path string) (*core.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data)
}

// applyDefaults fills in missing configuration values from the firmware defaults
func applyDefaults(config *core.Config) {
	def := core.DefaultConfig()

	if config.Target == 0 {
		config.Target = def.Target
	}

	// Duty range
	if config.MinDuty == 0 {
		config.MinDuty = def.MinDuty
	}
	if config.MaxDuty == 0 {
		config.MaxDuty = def.MaxDuty
	}
	if config.InitialDuty == 0 {
		config.InitialDuty = def.InitialDuty
	}

	// Blink half periods
	if config.FastPreset == 0 {
		config.FastPreset = def.FastPreset
	}
	if config.SlowPreset == 0 {
		config.SlowPreset = def.SlowPreset
	}

	// Debounce timings
	if config.PressSettle == 0 {
		config.PressSettle = def.PressSettle
	}
	if config.WakeSettle == 0 {
		config.WakeSettle = def.WakeSettle
	}
	if config.RetriggerWindow == 0 {
		config.RetriggerWindow = def.RetriggerWindow
	}

	// The seed primes the filter at the default target; a zero seed
	// is legal, so it is kept whenever the target is overridden.
	if config.FilterSeed == 0 && config.Target == def.Target {
		config.FilterSeed = def.FilterSeed
	}
}

// Marshal renders a configuration as indented JSON, for writing a template
func Marshal(config core.Config) ([]byte, error) {
	return json.MarshalIndent(config, "", "  ")
}
