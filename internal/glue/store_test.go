package glue_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports/mocks"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/glue"
)

func newStore(t *testing.T) *glue.Store {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return glue.NewStore(log)
}

func gluedOutput(key string, data domain.MimeBundle) domain.Output {
	return domain.Output{
		Type:     "display_data",
		Data:     data,
		Metadata: map[string]any{"scrapbook": map[string]any{"name": key}},
	}
}

func notebookWith(outs ...domain.Output) *domain.Notebook {
	return &domain.Notebook{Cells: []domain.Cell{
		{Type: domain.CellMarkdown, Source: "# title"},
		{Type: domain.CellCode, Source: "x", Outputs: outs},
	}}
}

func TestAddNotebook_ExtractsGluedOutputs(t *testing.T) {
	s := newStore(t)

	s.AddNotebook(notebookWith(
		gluedOutput("answer", domain.MimeBundle{"text/plain": "42"}),
		domain.Output{Type: "stream", Text: "not glued"},
	), "doc1")

	assert.True(t, s.Contains("answer"))
	assert.False(t, s.Contains("not glued"))
	assert.ElementsMatch(t, []string{"answer"}, s.OwnedKeys("doc1"))
}

func TestLookup_MissingKey(t *testing.T) {
	s := newStore(t)

	entry, ok := s.Lookup("ghost", false, false)
	assert.False(t, ok)
	assert.Nil(t, entry)
}

func TestLookup_ViewIsDeepCopy(t *testing.T) {
	s := newStore(t)
	s.AddNotebook(notebookWith(gluedOutput("nested", domain.MimeBundle{
		"application/json": map[string]any{"a": []any{1, 2}},
	})), "doc1")

	entry, ok := s.Lookup("nested", true, false)
	require.True(t, ok)
	entry.Data["application/json"].(map[string]any)["a"] = "mutated"

	again, ok := s.Lookup("nested", false, false)
	require.True(t, ok)
	assert.Equal(t, []any{1, 2}, again.Data["application/json"].(map[string]any)["a"],
		"mutating a view must not touch the stored value")
}

func TestLookup_ReplaceStripsPrefix(t *testing.T) {
	s := newStore(t)
	s.AddNotebook(notebookWith(gluedOutput("pic", domain.MimeBundle{
		domain.GluePrefix + "image/png": "base64data",
		"text/plain":                    "Figure",
	})), "doc1")

	entry, ok := s.Lookup("pic", false, true)
	require.True(t, ok)
	assert.Equal(t, "base64data", entry.Data["image/png"])
	assert.NotContains(t, entry.Data, domain.GluePrefix+"image/png")
	assert.Equal(t, "Figure", entry.Data["text/plain"])
}

func TestClearDoc_RemovesOnlyOwnedKeys(t *testing.T) {
	s := newStore(t)
	s.AddNotebook(notebookWith(gluedOutput("a", domain.MimeBundle{"text/plain": "1"})), "doc1")
	s.AddNotebook(notebookWith(gluedOutput("b", domain.MimeBundle{"text/plain": "2"})), "doc2")

	s.ClearDoc("doc1")

	assert.False(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
}

func TestClearDoc_UnknownDocIsNoOp(t *testing.T) {
	s := newStore(t)
	s.AddNotebook(notebookWith(gluedOutput("a", domain.MimeBundle{"text/plain": "1"})), "doc1")

	s.ClearDoc("never-seen")

	assert.True(t, s.Contains("a"))
}

func TestAddNotebook_ReplacesPreviousKeySet(t *testing.T) {
	s := newStore(t)
	s.AddNotebook(notebookWith(
		gluedOutput("old", domain.MimeBundle{"text/plain": "1"}),
		gluedOutput("kept", domain.MimeBundle{"text/plain": "2"}),
	), "doc1")

	s.AddNotebook(notebookWith(gluedOutput("kept", domain.MimeBundle{"text/plain": "3"})), "doc1")

	assert.False(t, s.Contains("old"), "keys no longer produced must be dropped")
	entry, ok := s.Lookup("kept", false, false)
	require.True(t, ok)
	assert.Equal(t, "3", entry.Data["text/plain"])
}

func TestAddNotebook_CollisionTransfersOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)
	s := glue.NewStore(log)

	s.AddNotebook(notebookWith(gluedOutput("shared", domain.MimeBundle{"text/plain": "first"})), "doc1")
	s.AddNotebook(notebookWith(gluedOutput("shared", domain.MimeBundle{"text/plain": "second"})), "doc2")

	entry, ok := s.Lookup("shared", false, false)
	require.True(t, ok)
	assert.Equal(t, "second", entry.Data["text/plain"], "the later document wins the value")

	// The original owner no longer controls the key: clearing it must
	// not invalidate doc2's entry.
	s.ClearDoc("doc1")
	assert.True(t, s.Contains("shared"))
	assert.Empty(t, s.OwnedKeys("doc1"))
	assert.ElementsMatch(t, []string{"shared"}, s.OwnedKeys("doc2"))
}

func TestExportSnapshot(t *testing.T) {
	s := newStore(t)
	s.AddNotebook(notebookWith(gluedOutput("a", domain.MimeBundle{"text/plain": "1"})), "doc1")
	// doc2 glued nothing and must not appear in the snapshot.
	s.AddNotebook(notebookWith(domain.Output{Type: "stream", Text: "noise"}), "doc2")

	path := filepath.Join(t.TempDir(), "out", "glue_cache.json")
	require.NoError(t, s.ExportSnapshot(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snapshot map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &snapshot))

	require.Contains(t, snapshot, "doc1")
	assert.NotContains(t, snapshot, "doc2")
	assert.Equal(t, "1", snapshot["doc1"]["a"]["text/plain"])
}

func TestMergeWorkerData_AlwaysRejected(t *testing.T) {
	s := newStore(t)

	err := s.MergeWorkerData([]string{"doc1", "doc2"}, map[string]any{})
	assert.ErrorIs(t, err, domain.ErrParallelMergeUnsupported)
}
