package domain

import "time"

// CacheRecord is an immutable record of a previously executed notebook.
// Multiple records may exist for the same identity key (re-execution
// history); the one with the greatest Created timestamp is current.
type CacheRecord struct {
	PK      int64     `json:"pk"`
	Key     string    `json:"key,omitzero"`
	URI     string    `json:"uri,omitzero"`
	Created time.Time `json:"created,omitzero"`
	// Outputs holds the per-code-cell outputs of the executed
	// notebook, positionally aligned with the source's code cells.
	Outputs [][]Output `json:"outputs,omitempty"`
}

// StagedRecord is a pending-execution request for a notebook path.
// It lives only within a build pass; it is not durable across passes.
type StagedRecord struct {
	PK       int64     `json:"pk"`
	URI      string    `json:"uri,omitzero"`
	StagedAt time.Time `json:"staged_at,omitzero"`
	// Traceback is populated when execution failed; empty otherwise.
	Traceback string `json:"traceback,omitzero"`
}

// BatchResult is the aggregate outcome of one engine batch run.
type BatchResult struct {
	Executed  int
	Succeeded int
	Failed    int
}
