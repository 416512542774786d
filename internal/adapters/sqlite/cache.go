package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"onepage/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Cache implements ports.MediaCache using SQLite. Entries are permanent
// until Clear is called; the engine itself never evicts.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// Ensure Cache implements MediaCache
var _ ports.MediaCache = (*Cache)(nil)

// Open initializes the cache for the given document path. Each document
// gets its own database under the XDG data directory.
func Open(docPath string) (*Cache, error) {
	return OpenAt(databasePath(docPath))
}

// OpenAt initializes the cache at an explicit database path.
func OpenAt(dbPath string) (*Cache, error) {
	c := &Cache{dbPath: dbPath}

	if err := os.MkdirAll(filepath.Dir(c.dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", c.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	c.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS media (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			created INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return c, nil
}

// Close closes the database connection
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the backing database path.
func (c *Cache) Path() string { return c.dbPath }

// Get returns the cached value for key, reporting whether it exists.
func (c *Cache) Get(key string) (string, bool, error) {
	var value string
	err := c.db.QueryRow(`SELECT value FROM media WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Put persists value under key. Re-writing an existing key keeps the
// first creation time; concurrent writers of the same URL are
// idempotent.
func (c *Cache) Put(key, value string) error {
	_, err := c.db.Exec(`
		INSERT INTO media (key, value, created) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value, time.Now().Unix())
	return err
}

// Count returns the number of persisted entries.
func (c *Cache) Count() (int64, error) {
	var n int64
	err := c.db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&n)
	return n, err
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	_, err := c.db.Exec(`DELETE FROM media`)
	return err
}

// databasePath returns the path for the SQLite database
func databasePath(docPath string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	// Hash document path for unique DB name
	hash := hashDocPath(docPath)

	return filepath.Join(dataHome, "onepage", hash+".db")
}

// hashDocPath returns a short hash of the document path
func hashDocPath(docPath string) string {
	h := sha256.Sum256([]byte(docPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}
