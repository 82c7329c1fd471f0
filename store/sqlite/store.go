// Package sqlite provides a snapshot store backed by SQLite via the
// Grove ORM.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/sarthak567/adloom/book"
	"github.com/sarthak567/adloom/id"
	"github.com/sarthak567/adloom/store"
)

// compile-time interface check
var _ store.SnapshotStore = (*Store)(nil)

// Store implements store.SnapshotStore using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the snapshot table using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("adloom/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
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
	m := new(snapshotModel)
	err := s.sdb.NewSelect(m).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, err
	}
	return fromSnapshotModel(m)
}

// SaveBook upserts the snapshot under the ledger name, stamping a
// fresh revision id.
func (s *Store) SaveBook(ctx context.Context, name string, b *book.Book) error {
	m, err := toSnapshotModel(name, b)
	if err != nil {
		return err
	}
	_, err = s.sdb.NewInsert(m).
		OnConflict("(name) DO UPDATE").
		Set("snapshot = EXCLUDED.snapshot").
		Set("revision = EXCLUDED.revision").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// ==================== Models ====================

type snapshotModel struct {
	grove.BaseModel `grove:"table:adloom_snapshots"`

	Name      string          `grove:"name,pk"`
	Snapshot  json.RawMessage `grove:"snapshot"`
	Revision  string          `grove:"revision"`
	UpdatedAt time.Time       `grove:"updated_at"`
}

func toSnapshotModel(name string, b *book.Book) (*snapshotModel, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("adloom/sqlite: marshal snapshot: %w", err)
	}
	return &snapshotModel{
		Name:      name,
		Snapshot:  data,
		Revision:  id.NewRevisionID().String(),
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func fromSnapshotModel(m *snapshotModel) (*book.Book, error) {
	b := book.New()
	if err := json.Unmarshal(m.Snapshot, b); err != nil {
		return nil, fmt.Errorf("adloom/sqlite: unmarshal snapshot: %w", err)
	}
	b.Normalize()
	return b, nil
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
