// Package store persists the set of diagnostic fingerprints seen in
// previous cppcheck runs. The on-disk format is an internal msgpack
// payload; it is not a public contract and only needs to round-trip
// within one quietcheck build.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// DefaultFilename is used when no explicit store path is configured.
const DefaultFilename = "cppcheck.fingerprints"

// Current schema version - increment when diskPayload format changes
const schemaVersion uint16 = 1

// ErrExists is returned by Save when the target file already exists and
// overwrite was not requested.
var ErrExists = errors.New("store file already exists")

type diskPayload struct {
	Schema       uint16
	Fingerprints []string
}

// Store is an in-memory set of diagnostic fingerprints. The zero value
// is not usable; construct with New or Load.
type Store struct {
	seen map[string]struct{}
}

// New returns an empty store.
func New() *Store {
	return &Store{seen: make(map[string]struct{})}
}

// Add records a fingerprint. Empty fingerprints are ignored: a record
// without an id never matches and must never be stored.
func (s *Store) Add(fp string) {
	if fp == "" {
		return
	}
	s.seen[fp] = struct{}{}
}

// Contains reports whether fp was recorded.
func (s *Store) Contains(fp string) bool {
	_, ok := s.seen[fp]
	return ok
}

// Len returns the number of recorded fingerprints.
func (s *Store) Len() int {
	return len(s.seen)
}

// Fingerprints returns the recorded fingerprints in sorted order.
func (s *Store) Fingerprints() []string {
	out := make([]string, 0, len(s.seen))
	for fp := range s.seen {
		out = append(out, fp)
	}
	sort.Strings(out)
	return out
}

// AddAll copies every fingerprint from other into s.
func (s *Store) AddAll(other *Store) {
	if other == nil {
		return
	}
	for fp := range other.seen {
		s.seen[fp] = struct{}{}
	}
}

// Load reads a store from path. A missing file is reported as an error
// wrapping os.ErrNotExist so callers can downgrade it to a warning.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload diskPayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: failed to decode store: %w", path, err)
	}
	if payload.Schema != schemaVersion {
		return nil, fmt.Errorf("%s: unsupported store schema %d (want %d)", path, payload.Schema, schemaVersion)
	}

	s := New()
	for _, fp := range payload.Fingerprints {
		s.Add(fp)
	}
	return s, nil
}

// Save writes the store to path. Unless overwrite is set, an existing
// file is left untouched and ErrExists is returned. The write goes
// through a temp file in the destination directory followed by a
// rename, so a crash mid-write cannot leave a torn store behind. The
// existence check itself stays advisory: another process creating the
// file between the check and the rename still loses.
func (s *Store) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	payload := diskPayload{
		Schema:       schemaVersion,
		Fingerprints: s.Fingerprints(),
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
