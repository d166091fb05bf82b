package knowledge

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Cache stores catalog lookup results locally so repeated adjustments
// don't re-fetch the remote catalog.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the SQLite lookup cache at dir/catalog.db.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening catalog cache: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS exercise_lookups (
		name      TEXT PRIMARY KEY,
		doc       TEXT NOT NULL,
		cached_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get returns the cached exercise for a name, if present.
func (c *Cache) Get(name string) (*CatalogExercise, bool, error) {
	var doc string
	err := c.db.QueryRow(
		`SELECT doc FROM exercise_lookups WHERE name = ?`,
		strings.ToLower(name),
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var ex CatalogExercise
	if err := json.Unmarshal([]byte(doc), &ex); err != nil {
		return nil, false, fmt.Errorf("decoding cached exercise %q: %w", name, err)
	}
	return &ex, true, nil
}

// Put stores a lookup result, replacing any existing entry.
func (c *Cache) Put(name string, ex *CatalogExercise) error {
	doc, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("encoding exercise %q: %w", name, err)
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO exercise_lookups (name, doc) VALUES (?, ?)`,
		strings.ToLower(name), string(doc),
	)
	return err
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}
