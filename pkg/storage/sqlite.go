package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
)

//go:embed init.sql
var initSQL string

// SQLite is a KV backed by a single table in an SQLite database file.
type SQLite struct {
	db   *sql.DB
	path string
}

var _ KV = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the database at path and applies the schema.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.NewConfigError("storage", "sqlite backend requires a path", errors.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.WrapResource("open", "database", path, err)
	}
	// One writer keeps SQLITE_BUSY out of concurrent saves.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("configure", "database", path, err)
	}
	if _, err := db.ExecContext(ctx, initSQL); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("migrate", "database", path, err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Get implements KV.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(key)
		}
		return nil, errors.WrapResource("read", "key", key, err)
	}
	return value, nil
}

// Set implements KV.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return errors.WrapResource("write", "key", key, err)
	}
	return nil
}

// Delete implements KV.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.WrapResource("delete", "key", key, err)
	}
	return nil
}

// Size implements KV.
func (s *SQLite) Size(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(LENGTH(value)), 0) FROM kv`).Scan(&n); err != nil {
		return 0, errors.WrapResource("measure", "database", s.path, err)
	}
	return n, nil
}

// Close implements KV.
func (s *SQLite) Close() error {
	return s.db.Close()
}
