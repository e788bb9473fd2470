// Package config loads CLI settings from flags, environment and an optional
// config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MERCHANT_MEMORY_DB.
const EnvPrefix = "MERCHANT_MEMORY"

// Config is the resolved CLI configuration.
type Config struct {
	DB    string      `mapstructure:"db"`
	Slot  string      `mapstructure:"slot"`
	Keep  int         `mapstructure:"keep"`
	Log   LogConfig   `mapstructure:"log"`
	Clock ClockConfig `mapstructure:"clock"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ClockConfig maps wall time onto game ticks for the CLI host.
type ClockConfig struct {
	Epoch string        `mapstructure:"epoch"`
	Tick  time.Duration `mapstructure:"tick"`
}

// EpochTime parses the configured epoch.
func (c ClockConfig) EpochTime() (time.Time, error) {
	return time.Parse(time.RFC3339, c.Epoch)
}

// Dir is the default home of the database and config file.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".merchant-memory")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", filepath.Join(Dir(), "saves.db"))
	v.SetDefault("slot", "default")
	v.SetDefault("keep", 20)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("clock.epoch", "2024-01-01T00:00:00Z")
	v.SetDefault("clock.tick", time.Second)
}

// Load resolves configuration into v. file, when set, names an explicit
// config file; otherwise config.yaml is looked up in the working directory
// and Dir(). A missing config file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check on its own.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB) == "" {
		return fmt.Errorf("config: db path is required")
	}
	if strings.TrimSpace(c.Slot) == "" {
		return fmt.Errorf("config: slot name is required")
	}
	if c.Keep < 0 {
		return fmt.Errorf("config: keep must be >= 0, got %d", c.Keep)
	}
	if c.Clock.Tick <= 0 {
		return fmt.Errorf("config: clock.tick must be positive, got %s", c.Clock.Tick)
	}
	if _, err := c.Clock.EpochTime(); err != nil {
		return fmt.Errorf("config: clock.epoch: %w", err)
	}
	return nil
}
