// Package config provides unified configuration for the rubric engine.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (RUBRIC_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import (
	"time"

	"github.com/skoenig/rubric/pkg/batch"
	"github.com/skoenig/rubric/pkg/classify"
)

// Config holds all configuration for the rubric engine.
type Config struct {
	Engine        EngineConfig        `yaml:"engine"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// EngineConfig holds classification engine and backend settings.
type EngineConfig struct {
	Model                string        `yaml:"model"`                   // required
	APIKey               string        `yaml:"api_key"`                 // optional, for the provider adapter
	APIKeyFile           string        `yaml:"api_key_file"`            // _file variant for api_key
	MaxCategoriesPerRepo int           `yaml:"max_categories_per_repo"` // default: 3
	MinCategoriesPerRepo int           `yaml:"min_categories_per_repo"` // default: 1
	BatchSize            int           `yaml:"batch_size"`              // default: 10
	BatchDelay           time.Duration `yaml:"batch_delay"`             // default: 2s
	Concurrency          int           `yaml:"concurrency"`             // default: 3
	MinRequestInterval   time.Duration `yaml:"min_request_interval"`    // default: 1s
	MaxRetries           int           `yaml:"max_retries"`             // default: 3
	InitialRetryDelay    time.Duration `yaml:"initial_retry_delay"`     // default: 1s
	MaxRetryDelay        time.Duration `yaml:"max_retry_delay"`         // default: 10s
}

// CatalogConfig holds category catalog settings.
type CatalogConfig struct {
	Path string `yaml:"path"` // YAML catalog file, optional
}

// StorageConfig holds run persistence settings.
type StorageConfig struct {
	Type     string         `yaml:"type"`     // "memory" or "postgres", default: "memory"
	MaxSize  int            `yaml:"max_size"` // for memory store, default: 10000
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 25
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			MaxCategoriesPerRepo: 3,
			MinCategoriesPerRepo: 1,
			BatchSize:            10,
			BatchDelay:           2 * time.Second,
			Concurrency:          3,
			MinRequestInterval:   time.Second,
			MaxRetries:           3,
			InitialRetryDelay:    time.Second,
			MaxRetryDelay:        10 * time.Second,
		},
		Storage: StorageConfig{
			Type:    "memory",
			MaxSize: 10000,
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}

// ClassifyConfig converts the engine section into the runtime config the
// classification engine consumes.
func (e EngineConfig) ClassifyConfig() classify.Config {
	return classify.Config{
		Model:                e.Model,
		MaxCategoriesPerRepo: e.MaxCategoriesPerRepo,
		MinCategoriesPerRepo: e.MinCategoriesPerRepo,
		BatchSize:            e.BatchSize,
		BatchDelay:           e.BatchDelay,
		Concurrency:          e.Concurrency,
		MinRequestInterval:   e.MinRequestInterval,
		Retry: batch.RetryPolicy{
			MaxRetries:   e.MaxRetries,
			InitialDelay: e.InitialRetryDelay,
			MaxDelay:     e.MaxRetryDelay,
		},
	}
}
