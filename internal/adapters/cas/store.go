// Package cas persists derivations in a per-workspace store keyed by file identity.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.DerivationStore with one JSON file per sketch.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Key returns the file name stem under which fileID is stored.
func Key(fileID string) string {
	return strconv.FormatUint(xxhash.Sum64String(fileID), 16)
}

func (s *Store) pathFor(root, fileID string) string {
	return filepath.Join(domain.StorePath(root), Key(fileID)+".json")
}

// Get retrieves the stored derivation for fileID.
// Returns nil, nil if not found. An entry stored for a different identity
// (a hash collision) is treated as missing.
func (s *Store) Get(root, fileID string) (*domain.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(root, fileID)
	//nolint:gosec // path is derived from the workspace root and a hash
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(domain.Wrap(err, domain.ErrStoreReadFailed), "path", path)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(domain.Wrap(err, domain.ErrStoreUnmarshalFailed), "path", path)
	}

	if entry.FileID != fileID {
		return nil, nil
	}
	return &entry, nil
}

// Put stores the derivation, replacing any previous one for the same file.
func (s *Store) Put(root string, entry *domain.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return domain.Wrap(err, domain.ErrStoreMarshalFailed)
	}

	dir := domain.StorePath(root)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(domain.Wrap(err, domain.ErrStoreCreateFailed), "dir", dir)
	}

	path := s.pathFor(root, entry.FileID)
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(domain.Wrap(err, domain.ErrStoreWriteFailed), "path", path)
	}
	return nil
}

// Purge drops every stored derivation under root.
func (s *Store) Purge(root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := domain.StorePath(root)
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(domain.Wrap(err, domain.ErrStorePurgeFailed), "dir", dir)
	}
	return nil
}
