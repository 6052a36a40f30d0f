package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// The persisted state is two JSON array blobs under fixed keys ("books" and
// "loans"), so the schema is a single key-value table. Records carry no
// version tag; readers tolerate missing fields.
const latestSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type DB struct {
	*sql.DB
}

func NewDB(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	return &DB{d}, nil
}

// Migrate applies the latest schema to the database
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.ExecContext(ctx, latestSchema); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}
	return nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}
