// Package sqlite implements the record store contract on a local SQLite
// database. It suits single-node deployments where running Postgres is
// not worth the operational cost.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT    NOT NULL,
	key        TEXT    NOT NULL,
	version    INTEGER NOT NULL,
	data       BLOB    NOT NULL,
	PRIMARY KEY (collection, key)
);
CREATE TABLE IF NOT EXISTS index_entries (
	idx TEXT NOT NULL,
	key TEXT NOT NULL,
	PRIMARY KEY (idx, key)
);
`

// Store is a SQLite-backed implementation of store.Store.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database file at path and applies the schema.
// Parent directories are created as needed. WAL mode is enabled for better
// read concurrency.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) Exists(ctx context.Context, collection, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM records WHERE collection = ? AND key = ?`, collection, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s/%s: %w", collection, key, err)
	}
	return true, nil
}

func (s *Store) Get(ctx context.Context, collection, key string) (store.Record, error) {
	var rec store.Record
	err := s.db.QueryRowContext(ctx,
		`SELECT data, version FROM records WHERE collection = ? AND key = ?`,
		collection, key).Scan(&rec.Data, &rec.Version)
	if err == sql.ErrNoRows {
		return store.Record{}, fmt.Errorf("get %s/%s: %w", collection, key, domain.ErrNotFound)
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	return rec, nil
}

func (s *Store) Insert(ctx context.Context, collection, key string, data []byte) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO records (collection, key, version, data) VALUES (?, ?, 1, ?)`,
		collection, key, data)
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", collection, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", collection, key, err)
	}
	if n == 0 {
		return fmt.Errorf("insert %s/%s: %w", collection, key, domain.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, key string, data []byte, expectVersion int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE records SET data = ?, version = version + 1
		 WHERE collection = ? AND key = ? AND version = ?`,
		data, collection, key, expectVersion)
	if err != nil {
		return 0, fmt.Errorf("update %s/%s: %w", collection, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update %s/%s: %w", collection, key, err)
	}
	if n == 1 {
		return expectVersion + 1, nil
	}

	// Distinguish a missing record from a version race.
	exists, err := s.Exists(ctx, collection, key)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("update %s/%s: %w", collection, key, domain.ErrNotFound)
	}
	return 0, fmt.Errorf("update %s/%s: %w", collection, key, domain.ErrConflict)
}

func (s *Store) Put(ctx context.Context, collection, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (collection, key, version, data) VALUES (?, ?, 1, ?)
		 ON CONFLICT (collection, key)
		 DO UPDATE SET data = excluded.data, version = records.version + 1`,
		collection, key, data)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND key = ?`, collection, key); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *Store) AddToIndex(ctx context.Context, index, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO index_entries (idx, key) VALUES (?, ?)`, index, key); err != nil {
		return fmt.Errorf("index add %s/%s: %w", index, key, err)
	}
	return nil
}

func (s *Store) RemoveFromIndex(ctx context.Context, index, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM index_entries WHERE idx = ? AND key = ?`, index, key); err != nil {
		return fmt.Errorf("index remove %s/%s: %w", index, key, err)
	}
	return nil
}

func (s *Store) ListIndex(ctx context.Context, index, cursor string, limit int) ([]string, string, error) {
	limit = store.ClampLimit(limit)

	// Fetch one extra row to detect whether another page exists.
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM index_entries WHERE idx = ? AND key > ? ORDER BY key LIMIT ?`,
		index, cursor, limit+1)
	if err != nil {
		return nil, "", fmt.Errorf("index list %s: %w", index, err)
	}
	defer rows.Close()

	keys := make([]string, 0, limit)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, "", fmt.Errorf("index list %s: %w", index, err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("index list %s: %w", index, err)
	}

	if len(keys) <= limit {
		return keys, "", nil
	}
	keys = keys[:limit]
	return keys, keys[len(keys)-1], nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
