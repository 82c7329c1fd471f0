package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the adloom store (SQLite).
var Migrations = migrate.NewGroup("adloom")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_adloom_snapshots",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS adloom_snapshots (
    name       TEXT PRIMARY KEY,
    snapshot   TEXT NOT NULL DEFAULT '{}',
    revision   TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_adloom_snapshots_revision ON adloom_snapshots (revision);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS adloom_snapshots`)
				return err
			},
		},
	)
}
