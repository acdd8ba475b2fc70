// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
)

// ExecutionEngine is the opaque execution service the orchestrator
// drives. Implementations persist cache and staged records and run
// staged notebooks; parallelism inside a batch is theirs to decide.
//
//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type ExecutionEngine interface {
	// Stage marks the notebook at path as a pending execution
	// candidate and returns its staged record. Staging an already
	// staged path returns the existing record.
	Stage(path string) (*domain.StagedRecord, error)

	// CacheDirect records the notebook's present outputs as a cache
	// record without executing it. With overwrite set, prior records
	// for the same identity key are replaced.
	CacheDirect(path string, overwrite bool) (*domain.CacheRecord, error)

	// RunBatch executes staged notebooks and caches their results.
	// A nil pks set means every staged record; an empty non-nil set
	// runs nothing. Per-notebook failures are recorded as tracebacks
	// on the staged records, not returned as errors.
	RunBatch(ctx context.Context, pks []int64) (*domain.BatchResult, error)

	// StagedRecord returns the staged record for a path.
	// Returns nil, nil if not found.
	StagedRecord(path string) (*domain.StagedRecord, error)

	// RecordsForPath returns every cache record whose identity key
	// matches the notebook currently at path, oldest first. An empty
	// slice means the notebook has never been cached.
	RecordsForPath(path string) ([]domain.CacheRecord, error)
}
