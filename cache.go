package pixellab

import (
	"crypto/sha1"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache is a local store of generation results keyed by request, so
// that repeating an identical paid request is served without calling
// the service again.
type Cache struct {
	db *sql.DB
}

// NewCache opens or creates the cache database at file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS result (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, png BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key derives the cache key for a request sent to the given endpoint.
func Key(endpoint string, req interface{}) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	h := sha1.New()
	h.Write([]byte(endpoint))
	h.Write(b)

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

// Get returns the stored PNG bytes for key, or nil if absent.
func (c *Cache) Get(key string) ([]byte, error) {
	var png []byte
	switch err := c.db.QueryRow("SELECT png FROM result WHERE sha1 = ?", key).Scan(&png); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return png, nil
	default:
		return nil, err
	}
}

// Put stores the PNG bytes for key, keeping any existing entry.
func (c *Cache) Put(key string, png []byte) error {
	if _, err := c.db.Exec("INSERT OR IGNORE INTO result (sha1, png) VALUES (?, ?)", key, png); err != nil {
		return err
	}
	return nil
}
