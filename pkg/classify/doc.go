// Package classify orchestrates repository classification: it drives the
// LLM provider through the batch execution primitives, recovers category
// assignments with the response parser, and persists completed runs.
package classify
