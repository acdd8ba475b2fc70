// Package glue implements the document-scoped store of glued
// artifacts: named values extracted from notebook outputs, referenced
// elsewhere in a document by key.
package glue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

// Store is the process-scoped key→artifact mapping plus the
// document→key-set ownership mapping. It is created fresh per build
// pass and is single-worker by contract; parallel builds fail loudly
// in MergeWorkerData.
type Store struct {
	cache  map[string]domain.GlueEntry
	docmap map[string]map[string]bool
	logger ports.Logger
}

// NewStore creates an empty Store.
func NewStore(log ports.Logger) *Store {
	return &Store{
		cache:  make(map[string]domain.GlueEntry),
		docmap: make(map[string]map[string]bool),
		logger: log,
	}
}

// AddNotebook extracts every glued value from the notebook's outputs
// and records docName as their owner. The document's previous key set
// is replaced, not unioned: keys it no longer produces are dropped
// from the cache. A key already owned by another document is
// overwritten and its ownership transfers to docName, with a warning.
func (s *Store) AddNotebook(nb *domain.Notebook, docName string) {
	entries := extractKeys(nb, s.owners(), docName, s.logger)

	newKeys := make(map[string]bool, len(entries))
	for key := range entries {
		newKeys[key] = true
	}

	// Drop stale entries this document owned but no longer produces.
	for key := range s.docmap[docName] {
		if !newKeys[key] {
			delete(s.cache, key)
		}
	}

	// Transfer ownership on cross-document collisions so that docmap
	// stays the single authority over key ownership.
	for key := range newKeys {
		for other, keys := range s.docmap {
			if other != docName && keys[key] {
				delete(keys, key)
			}
		}
	}

	s.docmap[docName] = newKeys
	for key, entry := range entries {
		s.cache[key] = entry
	}
}

// ClearDoc removes every key currently owned by docName, then forgets
// the document. Unknown documents are a no-op.
func (s *Store) ClearDoc(docName string) {
	for key := range s.docmap[docName] {
		delete(s.cache, key)
	}
	delete(s.docmap, docName)
}

// Contains reports whether the store holds key.
func (s *Store) Contains(key string) bool {
	_, ok := s.cache[key]
	return ok
}

// Lookup returns the artifact for key. With view set the result is a
// defensive deep copy, required whenever the caller may mutate it.
// With replace set the internal glue reservation prefix is stripped
// from the bundle's MIME keys before the entry is exposed.
// The second result is false when the key is absent.
func (s *Store) Lookup(key string, view, replace bool) (*domain.GlueEntry, bool) {
	entry, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if view {
		entry = deepCopyEntry(entry)
	}
	if replace {
		entry.Data = entry.Data.StripPrefix()
	}
	return &entry, true
}

// OwnedKeys returns the keys currently attributed to docName.
func (s *Store) OwnedKeys(docName string) []string {
	var keys []string
	for key := range s.docmap[docName] {
		keys = append(keys, key)
	}
	return keys
}

// ExportSnapshot writes a JSON document mapping each document name to
// the mapping of its keys to current artifact values. Documents owning
// no keys are omitted entirely.
func (s *Store) ExportSnapshot(path string) error {
	snapshot := make(map[string]map[string]domain.MimeBundle)
	for doc, keys := range s.docmap {
		if len(keys) == 0 {
			continue
		}
		bundle := make(map[string]domain.MimeBundle, len(keys))
		for key := range keys {
			if entry, ok := s.cache[key]; ok {
				bundle[key] = entry.Data
			}
		}
		snapshot[doc] = bundle
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal glue snapshot")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create snapshot directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // snapshot is build output
		return zerr.With(zerr.Wrap(err, "failed to write glue snapshot"), "path", path)
	}
	return nil
}

// MergeWorkerData rejects result merging from a parallel build worker.
// This is a capability gap, not a transient condition: it must never
// be caught and ignored.
func (s *Store) MergeWorkerData(docNames []string, _ map[string]any) error {
	return zerr.With(domain.ErrParallelMergeUnsupported, "docs", strings.Join(docNames, ", "))
}

// owners maps each known key to its owning document.
func (s *Store) owners() map[string]string {
	out := make(map[string]string)
	for doc, keys := range s.docmap {
		for key := range keys {
			out[key] = doc
		}
	}
	return out
}

// deepCopyEntry copies an entry including its nested bundle values.
// The value domain is closed under JSON shapes (maps, slices,
// scalars), so an explicit walk suffices.
func deepCopyEntry(entry domain.GlueEntry) domain.GlueEntry {
	entry.Data = copyBundle(entry.Data)
	if entry.Metadata != nil {
		entry.Metadata = copyValue(entry.Metadata).(map[string]any)
	}
	return entry
}

func copyBundle(b domain.MimeBundle) domain.MimeBundle {
	out := make(domain.MimeBundle, len(b))
	for mime, val := range b {
		out[mime] = copyValue(val)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = copyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = copyValue(val)
		}
		return out
	default:
		return v
	}
}

// warnCollision logs a cross-document key collision.
func warnCollision(log ports.Logger, key, owner, docName string) {
	log.Warn(fmt.Sprintf("glue key %q from %s overwrites the value registered by %s", key, docName, owner))
}
