// Package orchestrator decides which notebooks need re-execution,
// drives the execution engine and merges cached outputs back into
// parsed documents.
package orchestrator

import (
	"context"
	"strings"

	"go.trai.ch/zerr"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

// Status is the best-effort outcome reported to the build driver.
// Engine trouble is non-fatal for the overall build.
type Status int

const (
	// StatusOK means staging and execution completed.
	StatusOK Status = iota
	// StatusEngineUnavailable means the execution engine could not be
	// loaded or run; decisions applied before the failure stand.
	StatusEngineUnavailable
)

// Orchestrator coordinates one build pass against the execution engine.
type Orchestrator struct {
	engine    ports.ExecutionEngine
	reader    ports.NotebookReader
	logger    ports.Logger
	tracer    ports.Tracer
	outputDir string
}

// New creates an Orchestrator. The engine may be nil when the
// execution component is unavailable; every operation then degrades to
// its non-fatal path.
func New(
	engine ports.ExecutionEngine,
	reader ports.NotebookReader,
	log ports.Logger,
	tracer ports.Tracer,
	outputDir string,
) *Orchestrator {
	return &Orchestrator{
		engine:    engine,
		reader:    reader,
		logger:    log,
		tracer:    tracer,
		outputDir: outputDir,
	}
}

// StageOptions carry the per-pass configuration for StageAndExecute.
type StageOptions struct {
	// ForceRun stages every candidate regardless of existing outputs.
	ForceRun bool
	// ExcludePatterns are path substrings; matching documents are
	// neither staged nor cached.
	ExcludePatterns []string
}

// StageAndExecute applies the per-document decision table to the added
// and changed documents, then submits exactly one batch:
//
//	force           -> stage
//	missing outputs -> stage
//	has outputs     -> record directly as cached, overwriting
//
// An empty staged set never reaches the engine; it means run nothing.
func (o *Orchestrator) StageAndExecute(ctx context.Context, docs []string, opts StageOptions) (Status, error) {
	if o.engine == nil {
		o.logger.Error(zerr.Wrap(domain.ErrEngineUnavailable, "cannot stage notebooks"))
		return StatusEngineUnavailable, nil
	}

	ctx, span := o.tracer.Start(ctx, "stage notebooks")
	defer span.End()

	var pks []int64
	for _, doc := range docs {
		if matchesAny(doc, opts.ExcludePatterns) {
			continue
		}

		nb, err := o.reader.Read(doc)
		if err != nil {
			o.logger.Error(err)
			continue
		}

		if opts.ForceRun || !nb.HasAllOutputs() {
			rec, err := o.engine.Stage(doc)
			if err != nil {
				o.logger.Error(err)
				continue
			}
			pks = append(pks, rec.PK)
			continue
		}

		if _, err := o.engine.CacheDirect(doc, true); err != nil {
			o.logger.Error(err)
			continue
		}
		o.logger.Info("notebook has pre-populated outputs, cached directly: " + doc)
	}

	if len(pks) == 0 {
		return StatusOK, nil
	}

	span.SetAttribute("staged", len(pks))
	if _, err := o.engine.RunBatch(ctx, pks); err != nil {
		err = zerr.Wrap(err, "failed to run staged batch")
		span.RecordError(err)
		o.logger.Error(err)
		return StatusEngineUnavailable, nil
	}
	return StatusOK, nil
}

// matchesAny reports whether path contains any of the patterns.
// Substring matching mirrors the configuration surface contract.
func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}
