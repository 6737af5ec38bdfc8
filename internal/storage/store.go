package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	_ "modernc.org/sqlite"
)

// Store wraps the sqlite handle for the single database file. All access
// goes through the proxy methods so Restore can swap the file underneath
// without anyone holding a stale handle.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

func Open(path string) (*Store, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

func open(path string) (*sql.DB, error) {
	dsn := "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *Store) Path() string { return s.path }

// DB exposes the raw handle for migrations. Not safe to retain across Restore.
func (s *Store) DB() *sql.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.ExecContext(ctx, query, args...)
}

func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.QueryContext(ctx, query, args...)
}

func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.QueryRowContext(ctx, query, args...)
}

func (s *Store) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.BeginTx(ctx, opts)
}

// BackupTo writes a consistent snapshot of the live database into dst.
// VACUUM INTO is safe while the database is open, unlike a plain file copy.
func (s *Store) BackupTo(ctx context.Context, dst string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.db.ExecContext(ctx, "VACUUM INTO ?", dst)
	return err
}

// Restore replaces the live database file with src and reopens the handle.
// Callers are expected to have taken a safety backup first.
func (s *Store) Restore(src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close before restore: %w", err)
	}
	// stale WAL/SHM would shadow the restored file
	os.Remove(s.path + "-wal")
	os.Remove(s.path + "-shm")

	if err := copyFile(src, s.path); err != nil {
		// try to get back to a usable handle either way
		if db, openErr := open(s.path); openErr == nil {
			s.db = db
		}
		return fmt.Errorf("copy backup: %w", err)
	}

	db, err := open(s.path)
	if err != nil {
		return fmt.Errorf("reopen after restore: %w", err)
	}
	s.db = db
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
