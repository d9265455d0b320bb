// Package batch provides the execution primitives for driving a
// rate-limited, failure-prone remote operation across many items:
// a minimum-interval rate limiter, exponential-backoff retry, an
// order-preserving bounded-concurrency runner, and a chunked batch
// processor with inter-chunk pacing and progress reporting.
//
// The primitives are polymorphic over the operation they drive and
// compose freely: the classify engine wraps each provider call in
// Retry and RateLimiter.Throttle and feeds the items through Process.
package batch
