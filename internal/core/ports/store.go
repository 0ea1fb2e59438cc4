package ports

import "go.trai.ch/sketchsense/internal/core/domain"

// DerivationStore defines the interface for persisting derivations across processes.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DerivationStore interface {
	// Get retrieves the stored derivation for fileID.
	// Returns nil, nil if not found.
	Get(root, fileID string) (*domain.CacheEntry, error)

	// Put stores the derivation, replacing any previous one for the same file.
	Put(root string, entry *domain.CacheEntry) error

	// Purge drops every stored derivation under root.
	Purge(root string) error
}
