// Package store defines the persistence boundary for the ledger
// engine. The engine treats the whole book as one value, so stores
// load and save snapshots wholesale rather than per-entity rows.
package store

import (
	"context"
	"errors"

	"github.com/sarthak567/adloom/book"
)

// Sentinel errors shared by all backends.
var (
	// ErrSnapshotNotFound means no snapshot exists under the ledger
	// name; the engine bootstraps an empty book in response.
	ErrSnapshotNotFound = errors.New("adloom/store: snapshot not found")

	// ErrStoreClosed means the store was closed while in use.
	ErrStoreClosed = errors.New("adloom/store: store is closed")

	// ErrMigrationFailed wraps backend migration errors.
	ErrMigrationFailed = errors.New("adloom/store: migration failed")
)

// IsSnapshotNotFound reports whether err is the missing-snapshot
// sentinel.
func IsSnapshotNotFound(err error) bool {
	return errors.Is(err, ErrSnapshotNotFound)
}

// SnapshotStore persists ledger snapshots keyed by ledger name, so one
// backend can host several independent ledgers.
type SnapshotStore interface {
	// LoadBook returns the persisted book for the named ledger, or
	// ErrSnapshotNotFound if none has been saved yet.
	LoadBook(ctx context.Context, name string) (*book.Book, error)

	// SaveBook replaces the persisted book for the named ledger.
	SaveBook(ctx context.Context, name string, b *book.Book) error

	// Migrate prepares backend schema. Safe to call repeatedly.
	Migrate(ctx context.Context) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
