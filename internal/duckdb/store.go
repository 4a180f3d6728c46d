// Package duckdb exports normalized annotations to a DuckDB database so they
// can be queried after a run.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding exported features.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path, empty for in-memory databases.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS features (
		seq_id VARCHAR,
		ordinal BIGINT,
		source VARCHAR,
		feature_type VARCHAR,
		start_pos UBIGINT,
		end_pos UBIGINT,
		strand VARCHAR,
		label VARCHAR,
		PRIMARY KEY (seq_id, ordinal)
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS inputs (
		path VARCHAR,
		size BIGINT,
		mod_time TIMESTAMP,
		features BIGINT,
		exported_at TIMESTAMP DEFAULT current_timestamp
	)`)
	return err
}
