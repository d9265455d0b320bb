package classify

import (
	"time"

	"github.com/skoenig/rubric/pkg/batch"
)

// Config holds tuning parameters for the classification engine.
type Config struct {
	// Model is the backend model identifier sent with every request.
	Model string

	// MaxCategoriesPerRepo bounds the number of categories kept per item.
	MaxCategoriesPerRepo int

	// MinCategoriesPerRepo is the desired lower bound per item. It shapes
	// the prompt only; recovered responses below it are not rejected.
	MinCategoriesPerRepo int

	// BatchSize is the number of items processed per chunk.
	BatchSize int

	// BatchDelay is the pause inserted between consecutive chunks.
	BatchDelay time.Duration

	// Concurrency bounds in-flight provider requests within a chunk.
	Concurrency int

	// MinRequestInterval spaces consecutive provider requests. Zero
	// disables throttling.
	MinRequestInterval time.Duration

	// Retry governs per-request retry behavior.
	Retry batch.RetryPolicy

	// Prompt builds the completion prompt. Nil selects BatchPrompt.
	Prompt PromptFunc

	// OnProgress, when set, is invoked after each chunk with the
	// cumulative number of completed items and the total.
	OnProgress func(completed, total int)
}

// Defaults returns the engine configuration used when a field is unset.
func Defaults() Config {
	return Config{
		MaxCategoriesPerRepo: 3,
		MinCategoriesPerRepo: 1,
		BatchSize:            10,
		BatchDelay:           2 * time.Second,
		Concurrency:          3,
		MinRequestInterval:   time.Second,
		Retry:                batch.DefaultRetryPolicy(),
		Prompt:               BatchPrompt,
	}
}

// withDefaults fills unset fields from Defaults.
func (c Config) withDefaults() Config {
	d := Defaults()
	if c.MaxCategoriesPerRepo <= 0 {
		c.MaxCategoriesPerRepo = d.MaxCategoriesPerRepo
	}
	if c.MinCategoriesPerRepo <= 0 {
		c.MinCategoriesPerRepo = d.MinCategoriesPerRepo
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.Retry.InitialDelay <= 0 {
		c.Retry.InitialDelay = d.Retry.InitialDelay
	}
	if c.Retry.MaxDelay <= 0 {
		c.Retry.MaxDelay = d.Retry.MaxDelay
	}
	if c.Prompt == nil {
		c.Prompt = d.Prompt
	}
	return c
}
