// Package config loads assistant settings from an optional YAML file with
// environment variable overrides. The precedence is defaults, then file,
// then environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variable names. They override the corresponding file fields.
const (
	EnvGoogleMapsKey  = "GOOGLE_MAPS_KEY"
	EnvGmailToken     = "GMAIL_BEARER_TOKEN"
	EnvGmailUser      = "GMAIL_USER_ID"
	EnvRecipientEmail = "USER_EMAIL"
	EnvDatasetPath    = "HELIOS_DATASET"
	EnvStoreBackend   = "HELIOS_STORE"
	EnvStoreDir       = "HELIOS_STORE_DIR"
	EnvRedisAddr      = "HELIOS_REDIS_ADDR"
	EnvHTTPAddr       = "HELIOS_HTTP_ADDR"
	EnvExecutionMode  = "HELIOS_EXECUTION_MODE"
	EnvLogLevel       = "HELIOS_LOG_LEVEL"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the resolved assistant configuration.
type Config struct {
	// Google holds the Maps platform credentials.
	Google struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"google"`

	// Gmail holds the mail credentials and the escalation recipient.
	Gmail struct {
		BearerToken string `yaml:"bearer_token"`
		UserID      string `yaml:"user_id"`
		Recipient   string `yaml:"recipient"`
	} `yaml:"gmail"`

	// Dataset is the path to the hospital CSV.
	Dataset string `yaml:"dataset"`

	// AverageSpeedKmh tunes travel time estimates.
	AverageSpeedKmh float64 `yaml:"average_speed_kmh"`

	// SearchRadiusMeters bounds the nearby-places search.
	SearchRadiusMeters int `yaml:"search_radius_meters"`

	// ExecutionMode selects direct or graph orchestration.
	ExecutionMode string `yaml:"execution_mode"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	Store struct {
		// Backend is memory, file or redis.
		Backend string `yaml:"backend"`

		// Dir is the document directory for the file backend.
		Dir string `yaml:"dir"`

		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"store"`

	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.Dataset = "chennai_hospitals_dshm.csv"
	cfg.AverageSpeedKmh = 30
	cfg.SearchRadiusMeters = 2000
	cfg.ExecutionMode = "direct"
	cfg.LogLevel = "info"
	cfg.Store.Backend = StoreMemory
	cfg.Store.Dir = ".helios/conversations"
	cfg.Store.Redis.Addr = "localhost:6379"
	cfg.HTTP.Addr = ":8080"
	return cfg
}

// Load resolves the configuration. A missing file at the default path is not
// an error; a missing file at an explicitly requested path is.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if explicit {
			return cfg, fmt.Errorf("config file %s not found", path)
		}
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Google.APIKey, EnvGoogleMapsKey)
	setString(&c.Gmail.BearerToken, EnvGmailToken)
	setString(&c.Gmail.UserID, EnvGmailUser)
	setString(&c.Gmail.Recipient, EnvRecipientEmail)
	setString(&c.Dataset, EnvDatasetPath)
	setString(&c.Store.Backend, EnvStoreBackend)
	setString(&c.Store.Dir, EnvStoreDir)
	setString(&c.Store.Redis.Addr, EnvRedisAddr)
	setString(&c.HTTP.Addr, EnvHTTPAddr)
	setString(&c.ExecutionMode, EnvExecutionMode)
	setString(&c.LogLevel, EnvLogLevel)
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.ExecutionMode {
	case "direct", "graph":
	default:
		return fmt.Errorf("unknown execution mode %q", c.ExecutionMode)
	}
	if c.AverageSpeedKmh <= 0 {
		return fmt.Errorf("average speed must be positive, got %s",
			strconv.FormatFloat(c.AverageSpeedKmh, 'g', -1, 64))
	}
	if c.SearchRadiusMeters <= 0 {
		return fmt.Errorf("search radius must be positive, got %d", c.SearchRadiusMeters)
	}
	return nil
}

func setString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}
