package store

import (
	"database/sql"
	"path/filepath"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/arlobryn/palaver/internal/file"
)

// Store implements a SQLite store for chats. Records are whole-chat blobs:
// every mutation rewrites the full record.
type Store struct {
	db *sql.DB
}

// New store backed by the database at dbPath.
func New(dbPath string) (*Store, error) {
	if err := file.CreateDirectoryIfNotExist(filepath.Dir(dbPath)); err != nil {
		return nil, errors.Wrap(err, "creating store directory")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// A single connection serializes writers; the append path relies on it.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS chats (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at TEXT NOT NULL,
			messages TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating chats table")
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS chats_by_creation ON chats (created_at)`)
	if err != nil {
		return nil, errors.Wrap(err, "creating creation-time index")
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
