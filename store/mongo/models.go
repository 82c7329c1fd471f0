package mongo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/sarthak567/adloom/book"
	"github.com/sarthak567/adloom/id"
)

// snapshotModel stores the book as a raw JSON blob rather than a bson
// document tree, so the snapshot encoding stays identical across
// backends.
type snapshotModel struct {
	grove.BaseModel `grove:"table:adloom_snapshots"`

	Name      string    `grove:"name,pk"    bson:"_id"`
	Snapshot  []byte    `grove:"snapshot"   bson:"snapshot"`
	Revision  string    `grove:"revision"   bson:"revision"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toSnapshotModel(name string, b *book.Book) (*snapshotModel, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("adloom/mongo: marshal snapshot: %w", err)
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
		return nil, fmt.Errorf("adloom/mongo: unmarshal snapshot: %w", err)
	}
	b.Normalize()
	return b, nil
}
