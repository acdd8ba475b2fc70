package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/telemetry"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/app"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports/mocks"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/engine/orchestrator"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/glue"
)

type fixture struct {
	loader *mocks.MockConfigLoader
	engine *mocks.MockExecutionEngine
	reader *mocks.MockNotebookReader
	glue   *glue.Store
	app    *app.App
	outDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader: mocks.NewMockConfigLoader(ctrl),
		engine: mocks.NewMockExecutionEngine(ctrl),
		reader: mocks.NewMockNotebookReader(ctrl),
		outDir: t.TempDir(),
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	f.glue = glue.NewStore(log)
	orch := orchestrator.New(f.engine, f.reader, log, telemetry.NewNoOpTracer(), f.outDir)
	f.app = app.New(f.loader, orch, f.reader, f.glue, log)
	return f
}

func (f *fixture) settings(mutate func(*domain.Settings)) {
	s := &domain.Settings{
		ExecuteNotebooks: true,
		CacheMode:        domain.CacheDefault,
		CacheDir:         filepath.Join(f.outDir, domain.DefaultCacheDirName),
		OutputDir:        f.outDir,
	}
	if mutate != nil {
		mutate(s)
	}
	f.loader.EXPECT().Load(".").Return(s, nil)
}

func executedNotebook() *domain.Notebook {
	return &domain.Notebook{Cells: []domain.Cell{{
		Type:   domain.CellCode,
		Source: "glue(\"answer\", 42)",
		Outputs: []domain.Output{{
			Type:     "display_data",
			Data:     domain.MimeBundle{"text/plain": "42"},
			Metadata: map[string]any{"scrapbook": map[string]any{"name": "answer"}},
		}},
	}}}
}

func TestBuild_FullPass(t *testing.T) {
	f := newFixture(t)
	f.settings(nil)

	nb := executedNotebook()
	f.reader.EXPECT().Read("a.ipynb").Return(nb, nil).Times(2)
	f.engine.EXPECT().CacheDirect("a.ipynb", true).Return(&domain.CacheRecord{PK: 1}, nil)
	f.engine.EXPECT().RecordsForPath("a.ipynb").Return([]domain.CacheRecord{{
		PK:      1,
		URI:     "a.ipynb",
		Created: time.Now(),
		Outputs: [][]domain.Output{nb.Cells[0].Outputs},
	}}, nil)

	require.NoError(t, f.app.Build(context.Background(), []string{"a.ipynb"}, app.BuildOptions{}))

	// The glue store picked up the key under the extension-free name.
	assert.True(t, f.glue.Contains("answer"))
	assert.ElementsMatch(t, []string{"answer"}, f.glue.OwnedKeys("a"))

	// Snapshot lands in the build output directory.
	_, err := os.Stat(filepath.Join(f.outDir, app.GlueSnapshotName))
	assert.NoError(t, err)
}

func TestBuild_NoDocuments(t *testing.T) {
	f := newFixture(t)
	f.settings(nil)

	err := f.app.Build(context.Background(), nil, app.BuildOptions{})
	assert.ErrorIs(t, err, domain.ErrNoDocumentsSpecified)
}

func TestBuild_ConfigLoadFailure(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(nil, assert.AnError)

	err := f.app.Build(context.Background(), []string{"a.ipynb"}, app.BuildOptions{})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_ExecutionDisabledStillMerges(t *testing.T) {
	f := newFixture(t)
	f.settings(func(s *domain.Settings) { s.ExecuteNotebooks = false })

	// One read only: no staging pass happens.
	f.reader.EXPECT().Read("a.ipynb").Return(executedNotebook(), nil).Times(1)
	f.engine.EXPECT().RecordsForPath("a.ipynb").Return(nil, nil)
	f.engine.EXPECT().StagedRecord("a.ipynb").Return(nil, nil)

	require.NoError(t, f.app.Build(context.Background(), []string{"a.ipynb"}, app.BuildOptions{}))
	assert.True(t, f.glue.Contains("answer"))
}

func TestBuild_CacheDisabledBypassesEngine(t *testing.T) {
	f := newFixture(t)
	f.settings(func(s *domain.Settings) { s.CacheMode = domain.CacheDisabled })

	// No engine expectations at all: the engine must never be touched.
	f.reader.EXPECT().Read("a.ipynb").Return(executedNotebook(), nil).Times(1)

	require.NoError(t, f.app.Build(context.Background(), []string{"a.ipynb"}, app.BuildOptions{}))
	assert.True(t, f.glue.Contains("answer"))
}

func TestBuild_DocumentFailureSkipsToNext(t *testing.T) {
	f := newFixture(t)
	f.settings(func(s *domain.Settings) { s.ExecuteNotebooks = false })

	f.reader.EXPECT().Read("broken.ipynb").Return(nil, assert.AnError)
	f.reader.EXPECT().Read("a.ipynb").Return(executedNotebook(), nil)
	f.engine.EXPECT().RecordsForPath("a.ipynb").Return(nil, nil)
	f.engine.EXPECT().StagedRecord("a.ipynb").Return(nil, nil)

	err := f.app.Build(context.Background(), []string{"broken.ipynb", "a.ipynb"}, app.BuildOptions{})
	require.NoError(t, err, "one broken document must not abort the pass")
	assert.True(t, f.glue.Contains("answer"))
}

func TestClean_RemovesCacheDirectory(t *testing.T) {
	f := newFixture(t)
	cacheDir := filepath.Join(f.outDir, domain.DefaultCacheDirName)
	require.NoError(t, os.MkdirAll(cacheDir, 0o750))
	f.settings(nil)

	require.NoError(t, f.app.Clean(context.Background()))

	_, err := os.Stat(cacheDir)
	assert.True(t, os.IsNotExist(err))
}

func TestClean_DisabledCache(t *testing.T) {
	f := newFixture(t)
	f.settings(func(s *domain.Settings) { s.CacheMode = domain.CacheDisabled })

	err := f.app.Clean(context.Background())
	assert.ErrorIs(t, err, domain.ErrCacheDisabled)
}
