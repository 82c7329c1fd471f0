package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/sarthak567/adloom/book"
	"github.com/sarthak567/adloom/id"
)

type snapshotModel struct {
	grove.BaseModel `grove:"table:adloom_snapshots"`

	Name      string          `grove:"name,pk"`
	Snapshot  json.RawMessage `grove:"snapshot,type:jsonb"`
	Revision  string          `grove:"revision"`
	UpdatedAt time.Time       `grove:"updated_at"`
}

func toSnapshotModel(name string, b *book.Book) (*snapshotModel, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("adloom/postgres: marshal snapshot: %w", err)
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
		return nil, fmt.Errorf("adloom/postgres: unmarshal snapshot: %w", err)
	}
	b.Normalize()
	return b, nil
}
