package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultKVTimeout = 5 * time.Second

// SQLite is the durable KV backend: a single records table with JSON values.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the store at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &OpError{Op: "open", Record: path, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &OpError{Op: "open", Record: path, Err: err}
	}
	s := &SQLite{db: db}
	if err := s.createSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) createSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`)
	if err != nil {
		return &OpError{Op: "create schema", Record: "records", Err: err}
	}
	return nil
}

func (s *SQLite) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func (s *SQLite) Get(ctx context.Context, key string, out any) (bool, error) {
	ctx, cancel := s.withTimeout(ctx, defaultKVTimeout)
	defer cancel()
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM records WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &OpError{Op: "get", Record: key, Err: err}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, &OpError{Op: "decode", Record: key, Err: err}
	}
	return true, nil
}

func (s *SQLite) Put(ctx context.Context, key string, value any) error {
	ctx, cancel := s.withTimeout(ctx, defaultKVTimeout)
	defer cancel()
	raw, err := json.Marshal(value)
	if err != nil {
		return &OpError{Op: "encode", Record: key, Err: err}
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO records (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(raw))
	if err != nil {
		return &OpError{Op: "put", Record: key, Err: err}
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx, defaultKVTimeout)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key); err != nil {
		return &OpError{Op: "delete", Record: key, Err: err}
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }
