// Package app implements the application layer for nbbuild.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/engine/orchestrator"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/glue"
)

// GlueSnapshotName is the file the glue snapshot is exported to inside
// the build output directory.
const GlueSnapshotName = "glue_cache.json"

// App represents the main application logic: one build pass over a set
// of notebook documents.
type App struct {
	configLoader ports.ConfigLoader
	orch         *orchestrator.Orchestrator
	reader       ports.NotebookReader
	glue         *glue.Store
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, orch *orchestrator.Orchestrator, reader ports.NotebookReader, store *glue.Store, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		orch:         orch,
		reader:       reader,
		glue:         store,
		logger:       log,
	}
}

// BuildOptions modify a single build pass.
type BuildOptions struct {
	// Force re-executes every document regardless of existing outputs.
	Force bool
}

// Build runs one build pass: stage and execute what needs executing,
// merge cached outputs back into each document, refresh the glue store
// and export its snapshot. Per-document failures are reported and
// skipped; only infrastructure failures abort the pass.
func (a *App) Build(ctx context.Context, docs []string, opts BuildOptions) error {
	settings, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if len(docs) == 0 {
		return domain.ErrNoDocumentsSpecified
	}

	useCache := settings.CacheMode != domain.CacheDisabled

	if settings.ExecuteNotebooks && useCache {
		status, err := a.orch.StageAndExecute(ctx, docs, orchestrator.StageOptions{
			ForceRun:        opts.Force || settings.ForceRun,
			ExcludePatterns: settings.ExcludePatterns,
		})
		if err != nil {
			return zerr.Wrap(err, "execution pass failed")
		}
		if status != orchestrator.StatusOK {
			a.logger.Warn("execution engine unavailable, documents render without fresh outputs")
		}
	}

	for _, doc := range docs {
		if err := a.buildDoc(doc, useCache); err != nil {
			a.logger.Error(zerr.With(zerr.Wrap(err, "document failed"), "doc", doc))
		}
	}

	snapshotPath := filepath.Join(settings.OutputDir, GlueSnapshotName)
	if err := a.glue.ExportSnapshot(snapshotPath); err != nil {
		return zerr.Wrap(err, "failed to export glue snapshot")
	}

	a.logger.Info(fmt.Sprintf("build pass finished for %d document(s)", len(docs)))
	return nil
}

// buildDoc renders a single document: parse, merge cached outputs,
// refresh its glue keys.
func (a *App) buildDoc(doc string, useCache bool) error {
	nb, err := a.reader.Read(doc)
	if err != nil {
		return err
	}

	if useCache {
		nb, err = a.orch.MergeOutputs(doc, nb)
		if err != nil {
			return err
		}
	}

	// A document is re-read from scratch each pass, so its glue keys
	// are rebuilt from scratch too.
	a.glue.ClearDoc(docName(doc))
	a.glue.AddNotebook(nb, docName(doc))
	return nil
}

// Clean removes the execution cache directory.
func (a *App) Clean(_ context.Context) error {
	settings, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if settings.CacheMode == domain.CacheDisabled {
		return domain.ErrCacheDisabled
	}

	if err := os.RemoveAll(settings.CacheDir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove cache directory"), "dir", settings.CacheDir)
	}
	a.logger.Info(fmt.Sprintf("removed cache directory %s", settings.CacheDir))
	return nil
}

// docName is the document identifier used by the glue store: the
// path without its extension.
func docName(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)]
}
