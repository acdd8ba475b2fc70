package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.trai.ch/zerr"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/cache"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/nbformat"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/telemetry"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports/mocks"
)

const plainNotebook = `{
  "cells": [
    {"cell_type": "code", "source": "print('hi')", "outputs": []}
  ],
  "nbformat": 4, "nbformat_minor": 5
}`

func writeNotebook(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(plainNotebook), 0o644))
	return path
}

func executedCopy() *domain.Notebook {
	return &domain.Notebook{
		Cells: []domain.Cell{{
			Type:    domain.CellCode,
			Source:  "print('hi')",
			Outputs: []domain.Output{{Type: "stream", Text: "hi\n"}},
		}},
		NBFormat:      4,
		NBFormatMinor: 5,
	}
}

func newEngine(t *testing.T, runner *mocks.MockNotebookRunner) *cache.Engine {
	t.Helper()
	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	return cache.NewEngine(store, nbformat.New(), runner, log, telemetry.NewNoOpTracer(), 2)
}

func TestEngine_RunBatch_ExecutesAndCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockNotebookRunner(ctrl)
	engine := newEngine(t, runner)

	dir := t.TempDir()
	path := writeNotebook(t, dir, "a.ipynb")

	staged, err := engine.Stage(path)
	require.NoError(t, err)

	runner.EXPECT().Run(gomock.Any(), path).Return(executedCopy(), nil)

	result, err := engine.RunBatch(context.Background(), []int64{staged.PK})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Executed)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 0, result.Failed)

	// Staged record consumed, cache record present.
	got, err := engine.StagedRecord(path)
	require.NoError(t, err)
	assert.Nil(t, got)

	recs, err := engine.RecordsForPath(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Len(t, recs[0].Outputs, 1)
	assert.Equal(t, "hi\n", recs[0].Outputs[0][0].Text)

}

func TestEngine_RunBatch_FailureBecomesTraceback(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockNotebookRunner(ctrl)
	engine := newEngine(t, runner)

	dir := t.TempDir()
	path := writeNotebook(t, dir, "b.ipynb")

	staged, err := engine.Stage(path)
	require.NoError(t, err)

	runner.EXPECT().Run(gomock.Any(), path).Return(nil, zerr.New("kernel died"))

	result, err := engine.RunBatch(context.Background(), []int64{staged.PK})
	require.NoError(t, err, "per-item failures must not fail the batch")
	assert.Equal(t, 1, result.Failed)

	got, err := engine.StagedRecord(path)
	require.NoError(t, err)
	require.NotNil(t, got, "failed staged record must survive for traceback lookup")
	assert.Contains(t, got.Traceback, "kernel died")

	recs, err := engine.RecordsForPath(path)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestEngine_RunBatch_EmptyExplicitSetRunsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockNotebookRunner(ctrl)
	engine := newEngine(t, runner)

	dir := t.TempDir()
	path := writeNotebook(t, dir, "c.ipynb")
	_, err := engine.Stage(path)
	require.NoError(t, err)

	// No runner expectations: nothing may execute.
	result, err := engine.RunBatch(context.Background(), []int64{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Executed)
}

func TestEngine_RunBatch_NilMeansAllStaged(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockNotebookRunner(ctrl)
	engine := newEngine(t, runner)

	dir := t.TempDir()
	pathA := writeNotebook(t, dir, "a.ipynb")
	pathB := writeNotebook(t, dir, "b.ipynb")
	_, err := engine.Stage(pathA)
	require.NoError(t, err)
	_, err = engine.Stage(pathB)
	require.NoError(t, err)

	runner.EXPECT().Run(gomock.Any(), pathA).Return(executedCopy(), nil)
	runner.EXPECT().Run(gomock.Any(), pathB).Return(executedCopy(), nil)

	result, err := engine.RunBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
}

func TestEngine_CacheDirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockNotebookRunner(ctrl)
	engine := newEngine(t, runner)

	dir := t.TempDir()
	path := writeNotebook(t, dir, "d.ipynb")

	rec, err := engine.CacheDirect(path, true)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Key)

	again, err := engine.CacheDirect(path, true)
	require.NoError(t, err)
	assert.Equal(t, rec.Key, again.Key)

	recs, err := engine.RecordsForPath(path)
	require.NoError(t, err)
	assert.Len(t, recs, 1, "overwrite keeps at most one record per identity")
}

func TestEngine_RecordsSurviveRename(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockNotebookRunner(ctrl)
	engine := newEngine(t, runner)

	dir := t.TempDir()
	path := writeNotebook(t, dir, "orig.ipynb")

	_, err := engine.CacheDirect(path, true)
	require.NoError(t, err)

	renamed := filepath.Join(dir, "renamed.ipynb")
	require.NoError(t, os.Rename(path, renamed))

	recs, err := engine.RecordsForPath(renamed)
	require.NoError(t, err)
	assert.Len(t, recs, 1, "identity derives from content, not path")
}
