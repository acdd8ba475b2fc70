// Package cache implements the notebook execution engine with a
// file-backed record database.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/zerr"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
)

// dbFilename is the record database file inside the cache directory.
const dbFilename = "records.json"

type dbState struct {
	NextPK  int64                 `json:"next_pk"`
	Records []domain.CacheRecord  `json:"records,omitempty"`
	Staged  []domain.StagedRecord `json:"staged,omitempty"`
}

// Store persists cache and staged records as a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	state dbState
}

// NewStore opens (or creates) the record database under dir.
func NewStore(dir string) (*Store, error) {
	s := &Store{
		path: filepath.Join(filepath.Clean(dir), dbFilename),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read record database")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		return zerr.Wrap(err, "failed to unmarshal record database")
	}

	return nil
}

// save writes the state under the held lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal record database")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write record database")
	}

	return nil
}

// Stage appends a staged record for uri, or returns the existing one.
func (s *Store) Stage(uri string) (*domain.StagedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Staged {
		if s.state.Staged[i].URI == uri {
			rec := s.state.Staged[i]
			return &rec, nil
		}
	}

	s.state.NextPK++
	rec := domain.StagedRecord{
		PK:       s.state.NextPK,
		URI:      uri,
		StagedAt: time.Now(),
	}
	s.state.Staged = append(s.state.Staged, rec)

	if err := s.save(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// PutRecord stores a cache record, assigning its PK and, when unset,
// its creation time. With overwrite, prior records with the same
// identity key are removed first.
func (s *Store) PutRecord(rec domain.CacheRecord, overwrite bool) (*domain.CacheRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if overwrite {
		kept := s.state.Records[:0]
		for _, r := range s.state.Records {
			if r.Key != rec.Key {
				kept = append(kept, r)
			}
		}
		s.state.Records = kept
	}

	s.state.NextPK++
	rec.PK = s.state.NextPK
	if rec.Created.IsZero() {
		rec.Created = time.Now()
	}
	s.state.Records = append(s.state.Records, rec)

	if err := s.save(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// StagedByURI returns the staged record for uri.
// Returns nil, nil if not found.
func (s *Store) StagedByURI(uri string) (*domain.StagedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.state.Staged {
		if s.state.Staged[i].URI == uri {
			rec := s.state.Staged[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// StagedAll returns every staged record.
func (s *Store) StagedAll() []domain.StagedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.StagedRecord, len(s.state.Staged))
	copy(out, s.state.Staged)
	return out
}

// StagedByPKs returns the staged records whose PK is in pks, in store
// order. Unknown PKs are ignored.
func (s *Store) StagedByPKs(pks []int64) []domain.StagedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[int64]bool, len(pks))
	for _, pk := range pks {
		want[pk] = true
	}

	var out []domain.StagedRecord
	for _, rec := range s.state.Staged {
		if want[rec.PK] {
			out = append(out, rec)
		}
	}
	return out
}

// SetTraceback records an execution failure on a staged record.
func (s *Store) SetTraceback(pk int64, traceback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Staged {
		if s.state.Staged[i].PK == pk {
			s.state.Staged[i].Traceback = traceback
			return s.save()
		}
	}
	return zerr.With(zerr.New("staged record not found"), "pk", pk)
}

// RemoveStaged drops a staged record after successful execution.
func (s *Store) RemoveStaged(pk int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Staged[:0]
	for _, rec := range s.state.Staged {
		if rec.PK != pk {
			kept = append(kept, rec)
		}
	}
	s.state.Staged = kept
	return s.save()
}

// RecordsByKey returns every cache record for an identity key, oldest
// first.
func (s *Store) RecordsByKey(key string) []domain.CacheRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CacheRecord
	for _, rec := range s.state.Records {
		if rec.Key == key {
			out = append(out, rec)
		}
	}
	return out
}
