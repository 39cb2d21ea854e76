package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"lock-check/internal/migration"
)

// DefaultLargeTables is the monitored set used when neither flags nor the
// config file name any.
var DefaultLargeTables = []string{"users", "orders", "payments", "audit_logs", "logs"}

// CheckConfig is the merged check configuration. Flags are bound into
// viper, so each key resolves flag-first, then config file, then default.
type CheckConfig struct {
	Tables    []string `mapstructure:"tables" json:"tables"`
	App       string   `mapstructure:"app" json:"app,omitempty"`
	MinTables int      `mapstructure:"min_tables" json:"min_tables"`
	Verbose   bool     `mapstructure:"verbose" json:"verbose,omitempty"`
}

// GetCheckConfig resolves the effective configuration.
func GetCheckConfig() (*CheckConfig, error) {
	var cfg CheckConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if len(cfg.Tables) == 0 {
		cfg.Tables = DefaultLargeTables
	}
	if cfg.MinTables <= 0 {
		cfg.MinTables = migration.DefaultMinTables
	}
	return &cfg, nil
}
