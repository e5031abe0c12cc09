package core

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// Config holds the client-side settings read from .taskdeckrc.
type Config struct {
	ServerURL       string
	TimeoutSeconds  int
	DefaultPriority models.Priority
	EventLogEnabled bool
}

// defaultConfig returns a Config populated with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		ServerURL:       "http://localhost:8080",
		TimeoutSeconds:  5,
		DefaultPriority: models.DefaultPriority,
		EventLogEnabled: true,
	}
}

// LoadConfig reads the .taskdeckrc file from basePath using Viper. If the
// file does not exist, defaults are returned.
func LoadConfig(basePath string) (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName(".taskdeckrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("server.url", cfg.ServerURL)
	v.SetDefault("server.timeout_seconds", cfg.TimeoutSeconds)
	v.SetDefault("defaults.priority", string(cfg.DefaultPriority))
	v.SetDefault("eventlog.enabled", cfg.EventLogEnabled)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .taskdeckrc: %w", err)
	}

	cfg.ServerURL = v.GetString("server.url")
	cfg.TimeoutSeconds = v.GetInt("server.timeout_seconds")
	cfg.EventLogEnabled = v.GetBool("eventlog.enabled")

	priority, err := models.ParsePriority(v.GetString("defaults.priority"))
	if err != nil {
		return nil, fmt.Errorf("defaults.priority in .taskdeckrc: %w", err)
	}
	cfg.DefaultPriority = priority

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server.url in .taskdeckrc must not be empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("server.timeout_seconds in .taskdeckrc must be positive, got %d", cfg.TimeoutSeconds)
	}

	return cfg, nil
}

// Timeout returns the configured request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
