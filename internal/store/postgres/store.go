// Package postgres implements the record store contract on PostgreSQL.
// It is the production driver: multiple instances can share one database,
// and version checks ride on row-level atomicity of single-statement updates.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql (migrations)
	"github.com/pressly/goose/v3"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// psql builds queries with PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store is a PostgreSQL-backed implementation of store.Store.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL, applies migrations, and returns the ready
// store. The pool is pinged for fail-fast validation.
func New(ctx context.Context, dsn string, maxConns, minConns int32) (*Store, error) {
	if err := Migrate(dsn); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}
	if minConns > 0 {
		poolCfg.MinConns = minConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool. Migrations are assumed applied.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate applies the embedded goose migrations to the database at dsn.
func Migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, collection, key string) (bool, error) {
	query, args, err := psql.Select("1").
		From("records").
		Where(sq.Eq{"collection": collection, "key": key}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = s.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s/%s: %w", collection, key, err)
	}
	return true, nil
}

func (s *Store) Get(ctx context.Context, collection, key string) (store.Record, error) {
	query, args, err := psql.Select("data", "version").
		From("records").
		Where(sq.Eq{"collection": collection, "key": key}).
		ToSql()
	if err != nil {
		return store.Record{}, fmt.Errorf("build get query: %w", err)
	}

	var rec store.Record
	err = s.pool.QueryRow(ctx, query, args...).Scan(&rec.Data, &rec.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Record{}, fmt.Errorf("get %s/%s: %w", collection, key, domain.ErrNotFound)
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	return rec, nil
}

func (s *Store) Insert(ctx context.Context, collection, key string, data []byte) error {
	query, args, err := psql.Insert("records").
		Columns("collection", "key", "version", "data").
		Values(collection, key, 1, data).
		Suffix("ON CONFLICT (collection, key) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", collection, key, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert %s/%s: %w", collection, key, domain.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, key string, data []byte, expectVersion int64) (int64, error) {
	query, args, err := psql.Update("records").
		Set("data", data).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"collection": collection, "key": key, "version": expectVersion}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update %s/%s: %w", collection, key, err)
	}
	if tag.RowsAffected() == 1 {
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
	query, args, err := psql.Insert("records").
		Columns("collection", "key", "version", "data").
		Values(collection, key, 1, data).
		Suffix("ON CONFLICT (collection, key) DO UPDATE SET data = EXCLUDED.data, version = records.version + 1").
		ToSql()
	if err != nil {
		return fmt.Errorf("build put query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, key string) error {
	query, args, err := psql.Delete("records").
		Where(sq.Eq{"collection": collection, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *Store) AddToIndex(ctx context.Context, index, key string) error {
	query, args, err := psql.Insert("index_entries").
		Columns("idx", "key").
		Values(index, key).
		Suffix("ON CONFLICT (idx, key) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build index add query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("index add %s/%s: %w", index, key, err)
	}
	return nil
}

func (s *Store) RemoveFromIndex(ctx context.Context, index, key string) error {
	query, args, err := psql.Delete("index_entries").
		Where(sq.Eq{"idx": index, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build index remove query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("index remove %s/%s: %w", index, key, err)
	}
	return nil
}

func (s *Store) ListIndex(ctx context.Context, index, cursor string, limit int) ([]string, string, error) {
	limit = store.ClampLimit(limit)

	// Fetch one extra row to detect whether another page exists.
	query, args, err := psql.Select("key").
		From("index_entries").
		Where(sq.And{sq.Eq{"idx": index}, sq.Gt{"key": cursor}}).
		OrderBy("key").
		Limit(uint64(limit + 1)).
		ToSql()
	if err != nil {
		return nil, "", fmt.Errorf("build index list query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
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
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
