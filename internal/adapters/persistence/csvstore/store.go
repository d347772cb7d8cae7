// Package csvstore implements the durable record collections backing every
// repository: header-first comma-delimited text files with a fixed column
// schema. Values travel as text; typed parsing belongs to the repositories.
package csvstore

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"aquamarket/internal/core/domain"
)

// Store is a durable, appendable, scannable collection of typed records.
//
// All writers to a collection are serialized behind one write lock so that a
// whole-file rewrite never loses a concurrent append and appends never
// interleave mid-record. Readers take the read lock and decode a snapshot.
type Store[T any] struct {
	mu     sync.RWMutex
	path   string
	schema []string
	encode func(T) []string
	decode func([]string) (T, error)
}

// New creates a store for the collection at path with the given column
// schema. The backing file is created lazily with the header row on first
// access.
func New[T any](path string, schema []string, encode func(T) []string, decode func([]string) (T, error)) *Store[T] {
	return &Store[T]{
		path:   path,
		schema: schema,
		encode: encode,
		decode: decode,
	}
}

// Name returns the base name of the backing file.
func (s *Store[T]) Name() string {
	return filepath.Base(s.path)
}

// Load returns every record in insertion order, creating an empty collection
// with the declared header if none exists yet.
func (s *Store[T]) Load() ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readAll()
}

// Scan returns the records matching keep, in insertion order.
func (s *Store[T]) Scan(keep func(T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs, err := s.readAll()
	if err != nil {
		return nil, err
	}
	var out []T
	for _, r := range recs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Append durably adds one record without disturbing existing ones.
func (s *Store[T]) Append(rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFile(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.encode(rec)); err != nil {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	if err := f.Sync(); err != nil {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	return nil
}

// Update applies mutate to the full collection under the write lock and, when
// mutate reports a change, atomically rewrites the whole collection. This is
// the only update primitive: higher layers implement in-place mutation as
// load-modify-rewrite, serialized here.
func (s *Store[T]) Update(mutate func(recs []T) ([]T, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.readAll()
	if err != nil {
		return err
	}
	next, changed, err := mutate(recs)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.rewrite(next)
}

// Export streams a point-in-time copy of the raw collection, header included.
func (s *Store[T]) Export(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ensureFileRead(); err != nil {
		return err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// readAll decodes the whole collection. Callers must hold at least the read
// lock. A missing file is bootstrapped empty; a header that does not match
// the schema is a legacy-format condition; anything unparseable is reported
// as storage unavailability, never silently coerced.
func (s *Store[T]) readAll() ([]T, error) {
	if err := s.ensureFileRead(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		// Header got truncated away; treat as empty rather than fail reads.
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	if !schemaMatches(header, s.schema) {
		return nil, errors.Wrapf(domain.ErrLegacySchema, "collection %s", s.Name())
	}

	var recs []T
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(domain.ErrStorageUnavailable, err.Error())
		}
		if len(row) != len(s.schema) {
			return nil, errors.Wrapf(domain.ErrStorageUnavailable, "collection %s: row has %d fields, want %d", s.Name(), len(row), len(s.schema))
		}
		rec, err := s.decode(row)
		if err != nil {
			return nil, errors.Wrapf(domain.ErrStorageUnavailable, "collection %s: %v", s.Name(), err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// rewrite replaces the whole collection atomically via a temp file rename.
// Callers must hold the write lock.
func (s *Store[T]) rewrite(recs []T) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), s.Name()+".tmp-*")
	if err != nil {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(s.schema); err != nil {
		tmp.Close()
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	for _, rec := range recs {
		if err := w.Write(s.encode(rec)); err != nil {
			tmp.Close()
			return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	return nil
}

// ensureFile creates the collection with its header if it does not exist.
// Callers must hold the write lock.
func (s *Store[T]) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	return s.rewrite(nil)
}

// ensureFileRead is the read-path bootstrap: absence of a collection on first
// access is not an error, so readers may create the empty file too. The
// rename inside rewrite keeps this safe against racing bootstrappers.
func (s *Store[T]) ensureFileRead() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(domain.ErrStorageUnavailable, err.Error())
	}
	return s.rewrite(nil)
}

func schemaMatches(header, schema []string) bool {
	if len(header) != len(schema) {
		return false
	}
	for i := range schema {
		if header[i] != schema[i] {
			return false
		}
	}
	return true
}
