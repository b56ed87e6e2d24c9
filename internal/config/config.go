package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service settings. Values come from built-in defaults,
// then the optional YAML file named by CONFIG_FILE, then the environment.
type Config struct {
	Port             string        `yaml:"port"`
	Environment      string        `yaml:"environment"`
	DBDriver         string        `yaml:"db_driver"`
	DBPath           string        `yaml:"db_path"`
	DatabaseURL      string        `yaml:"database_url"`
	SeedPath         string        `yaml:"seed_path"`
	RedisURL         string        `yaml:"redis_url"`
	DepotID          string        `yaml:"depot_id"`
	DefaultDrivers   int           `yaml:"default_drivers"`
	MaxDrivers       int           `yaml:"max_drivers"`
	SequencerWorkers int           `yaml:"sequencer_workers"`
	PlanCacheTTL     time.Duration `yaml:"plan_cache_ttl"`
	DatasetURL       string        `yaml:"dataset_url"`
	DatasetToken     string        `yaml:"dataset_token"`
}

func Default() Config {
	return Config{
		Port:             "8080",
		Environment:      "development",
		DBDriver:         "sqlite",
		DBPath:           "data/app.db",
		SeedPath:         "data/seeds/network.yaml",
		DepotID:          "depot",
		DefaultDrivers:   3,
		MaxDrivers:       20,
		SequencerWorkers: 4,
		PlanCacheTTL:     10 * time.Minute,
	}
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds the configuration. The .env file, if any, must already be
// loaded into the environment by the caller.
func Load() (Config, error) {
	cfg := Default()

	if path := Get("CONFIG_FILE", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Port = Get("PORT", c.Port)
	c.Environment = Get("ENVIRONMENT", c.Environment)
	c.DBDriver = strings.ToLower(Get("DB_DRIVER", c.DBDriver))
	c.DBPath = Get("DB_PATH", c.DBPath)
	c.DatabaseURL = Get("DATABASE_URL", c.DatabaseURL)
	c.SeedPath = Get("SEED_PATH", c.SeedPath)
	c.RedisURL = Get("REDIS_URL", c.RedisURL)
	c.DepotID = Get("DEPOT_ID", c.DepotID)
	c.DatasetURL = Get("DATASET_URL", c.DatasetURL)
	c.DatasetToken = Get("DATASET_TOKEN", c.DatasetToken)

	var errs []error
	for _, f := range []struct {
		key string
		dst *int
	}{
		{"DEFAULT_DRIVERS", &c.DefaultDrivers},
		{"MAX_DRIVERS", &c.MaxDrivers},
		{"SEQUENCER_WORKERS", &c.SequencerWorkers},
	} {
		v := Get(f.key, "")
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid integer %q", f.key, v))
			continue
		}
		*f.dst = n
	}

	if v := Get("PLAN_CACHE_TTL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PLAN_CACHE_TTL: invalid duration %q", v))
		} else {
			c.PlanCacheTTL = d
		}
	}

	return errors.Join(errs...)
}

// Validate checks settings that would otherwise fail later at startup.
func (c Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH is required for the sqlite driver"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver))
	}

	if c.MaxDrivers < 1 {
		errs = append(errs, fmt.Errorf("MAX_DRIVERS must be at least 1, got %d", c.MaxDrivers))
	}
	if c.DefaultDrivers < 1 || c.DefaultDrivers > c.MaxDrivers {
		errs = append(errs, fmt.Errorf("DEFAULT_DRIVERS must be between 1 and %d, got %d", c.MaxDrivers, c.DefaultDrivers))
	}
	if c.SequencerWorkers < 1 {
		errs = append(errs, fmt.Errorf("SEQUENCER_WORKERS must be at least 1, got %d", c.SequencerWorkers))
	}
	if c.PlanCacheTTL < 0 {
		errs = append(errs, errors.New("PLAN_CACHE_TTL cannot be negative"))
	}
	if strings.TrimSpace(c.DepotID) == "" {
		errs = append(errs, errors.New("DEPOT_ID cannot be empty"))
	}

	return errors.Join(errs...)
}
