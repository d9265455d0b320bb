// Package storage provides utilities shared across storage adapter
// implementations, currently the sentinel errors.
//
// Storage adapters (memory, postgres) implement the classify.RunStore
// interface plus retrieval operations of their own. This package contains
// only shared helpers, not the interface itself.
package storage
