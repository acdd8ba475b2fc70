package cache

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ExecutionEngine = (*Engine)(nil)

// Engine implements ports.ExecutionEngine. It stages notebooks,
// executes batches through a NotebookRunner and persists the results
// as cache records. Parallelism within a batch is internal to the
// engine; callers submit one batch and read back per-item outcomes.
type Engine struct {
	store       *Store
	reader      ports.NotebookReader
	runner      ports.NotebookRunner
	logger      ports.Logger
	tracer      ports.Tracer
	parallelism int
}

// NewEngine creates an Engine. A parallelism of zero or less defaults
// to the number of CPUs.
func NewEngine(
	store *Store,
	reader ports.NotebookReader,
	runner ports.NotebookRunner,
	log ports.Logger,
	tracer ports.Tracer,
	parallelism int,
) *Engine {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	return &Engine{
		store:       store,
		reader:      reader,
		runner:      runner,
		logger:      log,
		tracer:      tracer,
		parallelism: parallelism,
	}
}

// Stage marks the notebook at path as a pending execution candidate.
func (e *Engine) Stage(path string) (*domain.StagedRecord, error) {
	return e.store.Stage(path)
}

// CacheDirect records the notebook's present outputs without running it.
func (e *Engine) CacheDirect(path string, overwrite bool) (*domain.CacheRecord, error) {
	nb, err := e.reader.Read(path)
	if err != nil {
		return nil, err
	}
	rec := domain.CacheRecord{
		Key:     e.reader.ContentKey(nb),
		URI:     path,
		Outputs: nb.CodeCellOutputs(),
	}
	return e.store.PutRecord(rec, overwrite)
}

// RunBatch executes staged notebooks. A nil pks set selects every
// staged record; an empty non-nil set selects nothing. Per-notebook
// failures become tracebacks on the staged records and count toward
// the aggregate result; they are not returned as errors.
func (e *Engine) RunBatch(ctx context.Context, pks []int64) (*domain.BatchResult, error) {
	var staged []domain.StagedRecord
	if pks == nil {
		staged = e.store.StagedAll()
	} else {
		staged = e.store.StagedByPKs(pks)
	}

	result := &domain.BatchResult{}
	if len(staged) == 0 {
		return result, nil
	}

	paths := make([]string, len(staged))
	for i, rec := range staged {
		paths[i] = rec.URI
	}
	e.tracer.EmitPlan(ctx, paths)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for _, rec := range staged {
		g.Go(func() error {
			ok := e.executeOne(ctx, rec)
			mu.Lock()
			result.Executed++
			if ok {
				result.Succeeded++
			} else {
				result.Failed++
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, zerr.Wrap(err, "batch execution failed")
	}
	return result, nil
}

// executeOne runs a single staged notebook and persists the outcome.
func (e *Engine) executeOne(ctx context.Context, rec domain.StagedRecord) bool {
	_, span := e.tracer.Start(ctx, "execute "+rec.URI)
	defer span.End()

	executed, err := e.runner.Run(ctx, rec.URI)
	if err != nil {
		span.RecordError(err)
		e.logger.Error(zerr.With(zerr.Wrap(err, "notebook execution failed"), "uri", rec.URI))
		if dbErr := e.store.SetTraceback(rec.PK, fmt.Sprintf("%+v", err)); dbErr != nil {
			e.logger.Error(dbErr)
		}
		return false
	}

	cached := domain.CacheRecord{
		Key:     e.reader.ContentKey(executed),
		URI:     rec.URI,
		Outputs: executed.CodeCellOutputs(),
	}
	if _, err := e.store.PutRecord(cached, true); err != nil {
		span.RecordError(err)
		e.logger.Error(err)
		return false
	}
	if err := e.store.RemoveStaged(rec.PK); err != nil {
		e.logger.Error(err)
	}
	return true
}

// StagedRecord returns the staged record for path. Returns nil, nil if
// not found.
func (e *Engine) StagedRecord(path string) (*domain.StagedRecord, error) {
	return e.store.StagedByURI(path)
}

// RecordsForPath returns the cache records matching the content key of
// the notebook currently at path.
func (e *Engine) RecordsForPath(path string) ([]domain.CacheRecord, error) {
	nb, err := e.reader.Read(path)
	if err != nil {
		return nil, err
	}
	return e.store.RecordsByKey(e.reader.ContentKey(nb)), nil
}
