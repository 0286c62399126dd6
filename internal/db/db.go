// Package db is the SQLite storage backend: one row per entry plus a
// key-value table for preferences and navigation hints.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ramanasai/diary/internal/store"
)

// FileName is the database file inside the data directory.
const FileName = "diary.db"

// OpenAt opens (creating if needed) the database at path and migrates it.
func OpenAt(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := NewMigrationRunner(db).Run(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Backend implements store.Backend on SQLite.
type Backend struct {
	db   *sql.DB
	repo *EntryRepository
	kv   *KV
}

// Open opens <dir>/diary.db. A non-nil sealer encrypts titles and contents.
func Open(dir string, sealer Sealer) (*Backend, error) {
	db, err := OpenAt(filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Backend{db: db, repo: NewEntryRepository(db, sealer), kv: NewKV(db)}, nil
}

func (b *Backend) Repository() store.Repository { return b.repo }
func (b *Backend) KV() store.KV                 { return b.kv }
func (b *Backend) Close() error                 { return b.db.Close() }

// DB exposes the handle for maintenance commands.
func (b *Backend) DB() *sql.DB { return b.db }
