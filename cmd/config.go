package cmd

import (
	"fmt"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/store"

	"github.com/spf13/viper"
)

// TargetConfig is one store the tool can recover into.
type TargetConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveTarget returns the target to use. An entry of the "targets" list
// marked active wins over the single "target" section; --driver and --dsn
// override either.
func GetActiveTarget() (*TargetConfig, error) {
	var configs []TargetConfig
	if err := viper.UnmarshalKey("targets", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse targets config: %w", err)
	}

	var active *TargetConfig
	count := 0
	for i := range configs {
		if configs[i].Active {
			active = &configs[i]
			count++
		}
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active targets found (only one can be active)")
	}
	if active == nil {
		active = &TargetConfig{
			Name:   "default",
			Driver: viper.GetString("target.driver"),
			DSN:    viper.GetString("target.dsn"),
			Active: true,
		}
	}

	if driver != "" {
		active.Driver = driver
	}
	if dsn != "" {
		active.DSN = dsn
	}
	if active.Driver == "" {
		active.Driver = "sqlite"
	}
	if active.DSN == "" && active.Driver == "sqlite" {
		active.DSN = store.DefaultLocation()
	}
	return active, nil
}

// resolveTarget returns the active target with its dialect.
func resolveTarget() (*TargetConfig, dialect.Dialect, error) {
	cfg, err := GetActiveTarget()
	if err != nil {
		return nil, nil, err
	}
	d, err := dialect.GetDialect(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}
	return cfg, d, nil
}

// openStore opens the active target without resetting it.
func openStore() (*store.Store, error) {
	cfg, d, err := resolveTarget()
	if err != nil {
		return nil, err
	}
	return store.Open(d, cfg.DSN, viper.GetString("table"))
}
