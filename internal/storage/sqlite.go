package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLite keeps values in a single kv table of a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the database at path. ":memory:" is accepted.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "create sqlite directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// One connection: keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.WithError(err).Debug("Failed to set sqlite busy_timeout")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create kv table")
	}

	log.WithField("path", path).Info("SQLite storage ready")
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.WithField("key", key).WithError(err).Warn("SQLite read failed")
		}
		return nil, false
	}
	return value, true
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	return errors.Wrapf(err, "write %s", key)
}

func (s *SQLite) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	return errors.Wrapf(err, "remove %s", key)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
