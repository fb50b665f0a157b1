// Package sqlitestore keeps memory snapshots in a single SQLite file.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zeusync/colony/internal/persistence/snapshot"
)

var (
	ErrNoSnapshot = errors.New("sqlitestore: no snapshot stored")
	ErrEmptyPath  = errors.New("sqlitestore: empty db path")
)

type Store struct {
	db *sql.DB
}

// Record is one stored snapshot row.
type Record struct {
	ID        int64
	Tick      int64
	Digest    uint64
	Size      int
	CreatedAt time.Time
	Data      []byte
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tick INTEGER NOT NULL,
			digest TEXT NOT NULL,
			size INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			data BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS snapshots_tick ON snapshots(tick);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Save stores an encoded snapshot and returns its row id.
func (s *Store) Save(ctx context.Context, h snapshot.Header, data []byte) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (tick, digest, size, created_at, data) VALUES (?, ?, ?, ?, ?)`,
		h.Tick, fmt.Sprintf("%016x", h.Digest), h.Size, time.Now().UTC().UnixMilli(), data,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Latest returns the most recently saved snapshot.
func (s *Store) Latest(ctx context.Context) (Record, error) {
	var (
		rec    Record
		digest string
		ms     int64
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, tick, digest, size, created_at, data FROM snapshots ORDER BY id DESC LIMIT 1`)
	if err := row.Scan(&rec.ID, &rec.Tick, &digest, &rec.Size, &ms, &rec.Data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, ErrNoSnapshot
		}
		return rec, err
	}
	if _, err := fmt.Sscanf(digest, "%x", &rec.Digest); err != nil {
		return rec, fmt.Errorf("sqlitestore: digest %q: %w", digest, err)
	}
	rec.CreatedAt = time.UnixMilli(ms).UTC()
	return rec, nil
}

// Prune keeps the newest keep snapshots and returns how many were deleted.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}

func (s *Store) Close() error { return s.db.Close() }
