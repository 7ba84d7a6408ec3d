package routecache

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/kollektivlab/access/model"
)

// Postgres implementation of Store, for deployments where several
// server processes share one cache.

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening postgres db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres db: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS route_cache (
    origin BIGINT NOT NULL,
    options TEXT NOT NULL,
    result BYTEA NOT NULL,
    PRIMARY KEY (origin, options)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating route_cache table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(origin model.StopID, optionsKey string) ([]byte, bool, error) {
	var blob []byte
	err := s.db.QueryRow(
		"SELECT result FROM route_cache WHERE origin = $1 AND options = $2",
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

func (s *PostgresStore) Put(origin model.StopID, optionsKey string, blob []byte) error {
	_, err := s.db.Exec(`
INSERT INTO route_cache (origin, options, result) VALUES ($1, $2, $3)
ON CONFLICT (origin, options) DO UPDATE SET result = EXCLUDED.result`,
		int64(origin), optionsKey, blob,
	)
	if err != nil {
		return fmt.Errorf("writing route_cache: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
