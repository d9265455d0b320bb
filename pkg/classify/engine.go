package classify

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/skoenig/rubric/pkg/batch"
	"github.com/skoenig/rubric/pkg/catalog"
	"github.com/skoenig/rubric/pkg/observability"
	"github.com/skoenig/rubric/pkg/parse"
	"github.com/skoenig/rubric/pkg/provider"
)

// Engine drives classification runs against a provider backend. One call
// to the provider is issued per repository; chunking, pacing, retries,
// and throttling all happen inside the engine.
type Engine struct {
	provider provider.Provider
	store    RunStore
	catalog  *catalog.Catalog
	cfg      Config
	limiter  *batch.RateLimiter
}

// New creates a new Engine. The provider must not be nil. The store can
// be nil; runs are then not persisted. A nil catalog yields an engine
// that assigns only the fallback category.
func New(p provider.Provider, store RunStore, cat *catalog.Catalog, cfg Config) (*Engine, error) {
	if p == nil {
		return nil, fmt.Errorf("classify: provider must not be nil")
	}
	if cat == nil {
		cat = catalog.New(nil)
	}
	cfg = cfg.withDefaults()
	return &Engine{
		provider: p,
		store:    store,
		catalog:  cat,
		cfg:      cfg,
		limiter:  batch.NewRateLimiter(cfg.MinRequestInterval),
	}, nil
}

// Classify runs one classification pass over repos and returns the
// completed run. The run fails only when a provider request exhausts its
// retries or the context is cancelled; unparseable responses degrade to
// the fallback category instead. Persistence failures are logged, not
// returned.
func (e *Engine) Classify(ctx context.Context, repos []Repo) (*Run, error) {
	started := time.Now()

	var defaulted atomic.Int64
	batches := 0

	opts := batch.Options{
		Size:        e.cfg.BatchSize,
		Delay:       e.cfg.BatchDelay,
		Concurrency: e.cfg.Concurrency,
		OnProgress: func(completed, total int) {
			batches++
			observability.BatchesTotal.Inc()
			if e.cfg.OnProgress != nil {
				e.cfg.OnProgress(completed, total)
			}
		},
	}

	results, err := batch.Process(ctx, repos, func(ctx context.Context, repo Repo, _ int) ([]string, error) {
		text, err := e.complete(ctx, e.cfg.Prompt([]Repo{repo}, e.catalog))
		if err != nil {
			return nil, fmt.Errorf("classify %s: %w", repo.ID, err)
		}

		assignments, report := parse.BatchAssignments(text, []string{repo.ID}, e.catalog, e.cfg.MaxCategoriesPerRepo)
		observability.ParseOutcomesTotal.WithLabelValues(string(report.Stage)).Inc()
		if report.Stage == parse.StageFallback {
			slog.Warn("response unparseable, recovered by scanning",
				"repo", repo.ID, "model", e.cfg.Model)
		}
		if report.Defaulted > 0 {
			defaulted.Add(int64(report.Defaulted))
			observability.DefaultedAssignmentsTotal.Add(float64(report.Defaulted))
		}
		return assignments[repo.ID], nil
	}, opts)
	if err != nil {
		return nil, err
	}

	assignments := make(map[string][]string, len(repos))
	for i, repo := range repos {
		assignments[repo.ID] = results[i]
	}

	run := &Run{
		ID:          uuid.New(),
		Model:       e.cfg.Model,
		StartedAt:   started,
		CompletedAt: time.Now(),
		Assignments: assignments,
		Stats: Stats{
			Items:     len(repos),
			Defaulted: int(defaulted.Load()),
			Batches:   batches,
		},
	}

	if e.store != nil {
		if err := e.store.SaveRun(ctx, run); err != nil {
			slog.Warn("persisting classification run failed",
				"run_id", run.ID, "error", err)
		}
	}

	return run, nil
}

// ClassifyOne classifies a single repository outside of a run. The
// returned reason is empty when the response parsed cleanly and explains
// the fallback otherwise.
func (e *Engine) ClassifyOne(ctx context.Context, repo Repo) ([]string, string, error) {
	text, err := e.complete(ctx, SinglePrompt(repo, e.catalog))
	if err != nil {
		return nil, "", fmt.Errorf("classify %s: %w", repo.ID, err)
	}

	names, reason := parse.SingleAssignment(text, e.catalog, e.cfg.MaxCategoriesPerRepo)
	if reason != "" {
		slog.Warn("single classification fell back to default",
			"repo", repo.ID, "reason", reason)
		observability.DefaultedAssignmentsTotal.Inc()
	}
	return names, reason, nil
}

// complete issues one throttled, retried completion and returns the raw
// response text.
func (e *Engine) complete(ctx context.Context, prompt string) (string, error) {
	attempts := 0

	resp, err := batch.Retry(ctx, e.cfg.Retry, func(ctx context.Context) (*provider.Response, error) {
		attempts++
		if attempts > 1 {
			observability.RetryAttemptsTotal.WithLabelValues(e.provider.Name(), e.cfg.Model).Inc()
		}
		return batch.ThrottleValue(ctx, e.limiter, func() (*provider.Response, error) {
			start := time.Now()
			resp, err := e.provider.Complete(ctx, &provider.Request{
				Model:  e.cfg.Model,
				Prompt: prompt,
			})
			observability.ProviderLatency.WithLabelValues(e.provider.Name(), e.cfg.Model).
				Observe(time.Since(start).Seconds())

			status := "ok"
			if err != nil {
				status = "error"
			}
			observability.ProviderRequestsTotal.WithLabelValues(e.provider.Name(), e.cfg.Model, status).Inc()

			if err == nil {
				observability.ProviderTokensTotal.WithLabelValues(e.provider.Name(), e.cfg.Model, "input").
					Add(float64(resp.Usage.InputTokens))
				observability.ProviderTokensTotal.WithLabelValues(e.provider.Name(), e.cfg.Model, "output").
					Add(float64(resp.Usage.OutputTokens))
			}
			return resp, err
		})
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
