// Package mongo provides a snapshot store backed by MongoDB via the
// Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/sarthak567/adloom/book"
	"github.com/sarthak567/adloom/store"
)

// colSnapshots holds one document per ledger name.
const colSnapshots = "adloom_snapshots"

// compile-time interface check
var _ store.SnapshotStore = (*Store)(nil)

// Store implements store.SnapshotStore using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for the snapshot collection.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "revision", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	if _, err := s.mdb.Collection(colSnapshots).Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("%w: %v", store.ErrMigrationFailed, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadBook returns the snapshot saved under the ledger name.
func (s *Store) LoadBook(ctx context.Context, name string) (*book.Book, error) {
	var m snapshotModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": name}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("adloom/mongo: load snapshot: %w", err)
	}
	return fromSnapshotModel(&m)
}

// SaveBook upserts the snapshot document for the ledger name.
func (s *Store) SaveBook(ctx context.Context, name string, b *book.Book) error {
	m, err := toSnapshotModel(name, b)
	if err != nil {
		return err
	}
	_, err = s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.Name}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":        m.Name,
			"snapshot":   m.Snapshot,
			"revision":   m.Revision,
			"updated_at": m.UpdatedAt,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("adloom/mongo: save snapshot: %w", err)
	}
	return nil
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
