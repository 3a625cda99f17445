package prefs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps preferences in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating preferences directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening preferences database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating preferences schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading preference %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing preference %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting preference %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM preferences ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing preferences: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
