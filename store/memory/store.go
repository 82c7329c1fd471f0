// Package memory provides an in-process snapshot store, used in tests
// and single-node embeddings.
package memory

import (
	"context"
	"sync"

	"github.com/sarthak567/adloom/book"
	"github.com/sarthak567/adloom/store"
)

// compile-time interface check
var _ store.SnapshotStore = (*Store)(nil)

// Store holds snapshots in a map keyed by ledger name. Books are
// cloned on the way in and out so callers never share state with the
// store.
type Store struct {
	mu     sync.RWMutex
	books  map[string]*book.Book
	closed bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		books: make(map[string]*book.Book),
	}
}

// LoadBook returns a copy of the saved book for the named ledger.
func (s *Store) LoadBook(_ context.Context, name string) (*book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrStoreClosed
	}
	b, ok := s.books[name]
	if !ok {
		return nil, store.ErrSnapshotNotFound
	}
	return b.Clone(), nil
}

// SaveBook replaces the saved book for the named ledger with a copy.
func (s *Store) SaveBook(_ context.Context, name string, b *book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrStoreClosed
	}
	s.books[name] = b.Clone()
	return nil
}

// Migrate is a no-op for the in-memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping reports whether the store is open.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.ErrStoreClosed
	}
	return nil
}

// Close marks the store closed. Further calls fail with ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.books = nil
	return nil
}
