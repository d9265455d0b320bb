package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Engine.Model == "" {
		errs = append(errs, fmt.Errorf("engine.model is required"))
	}

	if c.Engine.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("engine.batch_size must be >= 1, got %d", c.Engine.BatchSize))
	}
	if c.Engine.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("engine.concurrency must be >= 1, got %d", c.Engine.Concurrency))
	}
	if c.Engine.BatchDelay < 0 {
		errs = append(errs, fmt.Errorf("engine.batch_delay must be >= 0, got %v", c.Engine.BatchDelay))
	}
	if c.Engine.MinRequestInterval < 0 {
		errs = append(errs, fmt.Errorf("engine.min_request_interval must be >= 0, got %v", c.Engine.MinRequestInterval))
	}

	if c.Engine.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("engine.max_retries must be >= 0, got %d", c.Engine.MaxRetries))
	}
	if c.Engine.InitialRetryDelay <= 0 {
		errs = append(errs, fmt.Errorf("engine.initial_retry_delay must be > 0, got %v", c.Engine.InitialRetryDelay))
	}
	if c.Engine.MaxRetryDelay < c.Engine.InitialRetryDelay {
		errs = append(errs, fmt.Errorf("engine.max_retry_delay must be >= engine.initial_retry_delay, got %v < %v",
			c.Engine.MaxRetryDelay, c.Engine.InitialRetryDelay))
	}

	if c.Engine.MaxCategoriesPerRepo < 1 {
		errs = append(errs, fmt.Errorf("engine.max_categories_per_repo must be >= 1, got %d", c.Engine.MaxCategoriesPerRepo))
	}
	if c.Engine.MinCategoriesPerRepo > c.Engine.MaxCategoriesPerRepo {
		errs = append(errs, fmt.Errorf("engine.min_categories_per_repo must be <= engine.max_categories_per_repo, got %d > %d",
			c.Engine.MinCategoriesPerRepo, c.Engine.MaxCategoriesPerRepo))
	}

	// storage.type must be a known value.
	switch c.Storage.Type {
	case "memory", "postgres":
		// valid
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\" or \"postgres\", got %q", c.Storage.Type))
	}

	// If storage.type is "postgres", DSN or DSNFile must be set.
	if c.Storage.Type == "postgres" {
		if c.Storage.Postgres.DSN == "" && c.Storage.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.dsn or storage.postgres.dsn_file is required when storage.type is \"postgres\""))
		}
	}

	return errors.Join(errs...)
}
