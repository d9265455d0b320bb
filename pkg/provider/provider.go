// Package provider abstracts the LLM inference backend the classify
// engine drives. The interface is protocol-agnostic: adapters own their
// backend protocol and hand back the model's text verbatim, leaving all
// interpretation to the response parser.
package provider

import "context"

// Provider abstracts a generative-model backend. Implementations must
// be safe for concurrent use by multiple goroutines; the engine issues
// overlapping Complete calls up to its concurrency bound.
type Provider interface {
	// Name returns the provider identifier used in logs and metrics.
	Name() string

	// Complete performs a single non-streaming completion.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Close releases provider resources (HTTP clients, connections).
	Close() error
}
