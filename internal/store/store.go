// Package store persists records of one schema in a pebble database. Each
// record is kept as a rowcodec row of its canonical field strings.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/tuannm99/reflected/internal/record"
	"github.com/tuannm99/reflected/internal/rowcodec"
)

var (
	ErrStoreClosed    = errors.New("store: store is closed")
	ErrNotFound       = errors.New("store: record not found")
	ErrSchemaMismatch = errors.New("store: schema does not match stored meta")
	ErrBadKey         = errors.New("store: key does not belong to this type")
)

const keySep = "/"

// Store holds records of type R. Enum fields are not persisted; they come
// back as whatever Schema.New leaves in them.
type Store[R any] struct {
	dir    string
	schema *record.Schema[R]
	fields []record.Field[R]
	layout rowcodec.Layout
	prefix string
	idx    int // position of the id field in fields, -1 if none

	mu     sync.RWMutex
	db     *pebble.DB
	closed bool
}

// Open opens (or creates) the store for schema under dir. The pebble data
// lives in dir/data; the field list is checked against dir/<type>.meta.json.
func Open[R any](dir string, schema *record.Schema[R]) (*Store[R], error) {
	s := &Store[R]{
		dir:    dir,
		schema: schema,
		prefix: schema.TypeName() + keySep,
		idx:    -1,
	}
	for _, f := range schema.Fields() {
		if f.IsEnum() {
			continue
		}
		if f.IsID() {
			s.idx = len(s.fields)
		}
		s.fields = append(s.fields, f)
		s.layout.Cols = append(s.layout.Cols, rowcodec.Column{Name: f.Name, Nullable: f.Optional})
	}

	want := metaFor(schema.TypeName(), s.fields)
	stored, err := readMeta(dir, schema.TypeName())
	if err != nil {
		return nil, err
	}
	if stored == nil {
		if err := writeMeta(dir, want); err != nil {
			return nil, fmt.Errorf("store: write meta: %w", err)
		}
		slog.Info("store:: created type", "type", schema.TypeName(), "columns", len(s.fields))
	} else if diff := sameColumns(stored.Columns, want.Columns); diff != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrSchemaMismatch, schema.TypeName(), diff)
	}

	db, err := pebble.Open(filepath.Join(dir, "data"), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("store: open pebble: %w", err)
	}
	s.db = db
	return s, nil
}

func (s *Store[R]) Schema() *record.Schema[R] { return s.schema }
func (s *Store[R]) Dir() string               { return s.dir }

// Key returns the key rec is stored under: "<type>/<id>" when the schema has
// a present id, otherwise "" (Put then assigns a ksuid).
func (s *Store[R]) Key(rec *R) string {
	if s.idx < 0 {
		return ""
	}
	f := s.fields[s.idx]
	if f.Optional && s.schema.Raw(rec, f) == nil {
		return ""
	}
	return s.prefix + s.schema.GetValue(rec, f)
}

// Put writes rec and returns its key.
func (s *Store[R]) Put(rec *R) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", ErrStoreClosed
	}

	row, err := s.encode(rec)
	if err != nil {
		return "", err
	}

	key := s.Key(rec)
	if key == "" {
		key = s.prefix + ksuid.New().String()
	}
	if err := s.db.Set([]byte(key), row, pebble.Sync); err != nil {
		return "", fmt.Errorf("store: put %s: %w", key, err)
	}
	slog.Debug("store:: put", "key", key, "bytes", len(row))
	return key, nil
}

// Get loads the record stored under key.
func (s *Store[R]) Get(key string) (*R, error) {
	if !strings.HasPrefix(key, s.prefix) {
		return nil, fmt.Errorf("%w: %q", ErrBadKey, key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	data, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", key, err)
	}
	// data is only valid until closer.Close
	row := append([]byte(nil), data...)
	if err := closer.Close(); err != nil {
		return nil, err
	}

	rec, err := s.decode(row)
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", key, err)
	}
	slog.Debug("store:: get", "key", key)
	return rec, nil
}

func (s *Store[R]) Delete(key string) error {
	if !strings.HasPrefix(key, s.prefix) {
		return fmt.Errorf("%w: %q", ErrBadKey, key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}

	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	slog.Debug("store:: delete", "key", key)
	return nil
}

// Scan calls fn for every stored record in key order. Returning an error
// from fn stops the scan and returns that error.
func (s *Store[R]) Scan(fn func(key string, rec *R) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(s.prefix),
		UpperBound: prefixEnd([]byte(s.prefix)),
	})
	if err != nil {
		return fmt.Errorf("store: scan: %w", err)
	}

	for iter.First(); iter.Valid(); iter.Next() {
		key := string(iter.Key())
		rec, err := s.decode(iter.Value())
		if err != nil {
			_ = iter.Close()
			return fmt.Errorf("store: scan %s: %w", key, err)
		}
		if err := fn(key, rec); err != nil {
			_ = iter.Close()
			return err
		}
	}
	return iter.Close()
}

// Count returns the number of stored records.
func (s *Store[R]) Count() (int, error) {
	n := 0
	err := s.Scan(func(string, *R) error {
		n++
		return nil
	})
	return n, err
}

func (s *Store[R]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store[R]) encode(rec *R) ([]byte, error) {
	values := make([]*string, len(s.fields))
	for i, f := range s.fields {
		// Raw, not GetValue: a text value "NULL" is still present
		if f.Optional && s.schema.Raw(rec, f) == nil {
			continue
		}
		v := s.schema.GetValue(rec, f)
		values[i] = &v
	}
	return rowcodec.Encode(s.layout, values)
}

func (s *Store[R]) decode(row []byte) (*R, error) {
	values, err := rowcodec.Decode(s.layout, row)
	if err != nil {
		return nil, err
	}
	rec := s.schema.New()
	for i, f := range s.fields {
		if err := s.schema.SetValue(rec, f, values[i]); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// prefixEnd returns the smallest key greater than every key with prefix p.
func prefixEnd(p []byte) []byte {
	end := append([]byte(nil), p...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
