package routecache

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kollektivlab/access/model"
)

// SQLite implementation of Store. Pass ":memory:" for an ephemeral
// cache or a file path for one that survives restarts.

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS route_cache (
    origin INTEGER NOT NULL,
    options TEXT NOT NULL,
    result BLOB NOT NULL,
    PRIMARY KEY (origin, options)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating route_cache table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(origin model.StopID, optionsKey string) ([]byte, bool, error) {
	var blob []byte
	err := s.db.QueryRow(
		"SELECT result FROM route_cache WHERE origin = ? AND options = ?",
		int64(origin), optionsKey,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying route_cache: %w", err)
	}
	return blob, true, nil
}

func (s *SQLiteStore) Put(origin model.StopID, optionsKey string, blob []byte) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO route_cache (origin, options, result) VALUES (?, ?, ?)",
		int64(origin), optionsKey, blob,
	)
	if err != nil {
		return fmt.Errorf("writing route_cache: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
