// Package config loads upgrader settings from flags, environment and an
// optional YAML file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/napolitain/lacuna-upgrader/internal/lacuna"
	"github.com/napolitain/lacuna-upgrader/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. LACUNA_EMPIRE_PASSWORD
const EnvPrefix = "LACUNA"

// Config is the complete upgrader configuration
type Config struct {
	Server      string       `mapstructure:"server"`
	APIKey      string       `mapstructure:"api_key"`
	CallsPerMin int          `mapstructure:"calls_per_minute"`
	Empire      EmpireConfig `mapstructure:"empire"`
	Run         RunConfig    `mapstructure:"run"`
	Priorities  string       `mapstructure:"priorities"`
	Verbose     bool         `mapstructure:"verbose"`
}

// EmpireConfig holds the login credentials
type EmpireConfig struct {
	Name     string `mapstructure:"name"`
	Password string `mapstructure:"password"`
}

// RunConfig mirrors models.RunConfig for file/env loading
type RunConfig struct {
	DryRun  bool   `mapstructure:"dry_run"`
	Skip    string `mapstructure:"skip"`
	MaxTime int    `mapstructure:"max_time"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server:      lacuna.DefaultServer,
		CallsPerMin: lacuna.DefaultCallsPerMinute,
		Run: RunConfig{
			MaxTime: models.DefaultMaxTime,
		},
	}
}

// SetDefaults registers defaults on v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server", d.Server)
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("calls_per_minute", d.CallsPerMin)
	v.SetDefault("empire.name", d.Empire.Name)
	v.SetDefault("empire.password", d.Empire.Password)
	v.SetDefault("run.dry_run", d.Run.DryRun)
	v.SetDefault("run.skip", d.Run.Skip)
	v.SetDefault("run.max_time", d.Run.MaxTime)
	v.SetDefault("priorities", d.Priorities)
	v.SetDefault("verbose", d.Verbose)
}

// ConfigDir returns the directory searched for config.yaml
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "lacuna-upgrader")
	}
	return "."
}

// Load reads configuration into v and decodes it. When file is empty the
// usual locations are searched and a missing file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	// LACUNA_RUN_MAX_TIME for run.max_time
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || file != "" {
			return nil, &models.ConfigError{Field: "config", Reason: err.Error()}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &models.ConfigError{Field: "config", Reason: err.Error()}
	}

	return cfg, nil
}

// RunOptions converts the run section for the scheduler
func (c *Config) RunOptions() models.RunConfig {
	return models.RunConfig{
		DryRun:  c.Run.DryRun,
		Skip:    c.Run.Skip,
		MaxTime: c.Run.MaxTime,
	}
}

// Validate checks everything needed before the first remote call
func (c *Config) Validate() error {
	if c.Empire.Name == "" {
		return &models.ConfigError{Field: "empire.name", Reason: "required"}
	}
	if c.Empire.Password == "" {
		return &models.ConfigError{Field: "empire.password", Reason: "required"}
	}
	if c.Server == "" {
		return &models.ConfigError{Field: "server", Reason: "required"}
	}
	if c.CallsPerMin < 0 {
		return &models.ConfigError{Field: "calls_per_minute", Reason: "must not be negative"}
	}
	return c.RunOptions().Validate()
}

// ClientOptions returns the options for the game server client
func (c *Config) ClientOptions() lacuna.Options {
	return lacuna.Options{
		Server:         c.Server,
		APIKey:         c.APIKey,
		CallsPerMinute: c.CallsPerMin,
	}
}
