package translate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CacheStore persists translations in SQLite, keyed by source text and
// target language, so repeated headlines survive across runs.
type CacheStore struct {
	db *sql.DB
}

// NewCacheStore creates a new cache store with the given database path.
func NewCacheStore(dbPath string) (*CacheStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &CacheStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the translations table if it doesn't exist.
func (c *CacheStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translations (
		source_text TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (source_text, target_lang)
	);
	`

	_, err := c.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (c *CacheStore) Close() error {
	return c.db.Close()
}

// Get looks up a cached translation. The second return value is false on a
// cache miss.
func (c *CacheStore) Get(text, target string) (string, bool, error) {
	query := "SELECT translated_text FROM translations WHERE source_text = ? AND target_lang = ?"

	var translated string
	err := c.db.QueryRow(query, text, target).Scan(&translated)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query translation cache: %w", err)
	}

	return translated, true, nil
}

// Put stores a translation, replacing any previous entry for the same text
// and target language.
func (c *CacheStore) Put(text, target, translated string) error {
	query := "INSERT OR REPLACE INTO translations (source_text, target_lang, translated_text, created_at) VALUES (?, ?, ?, ?)"
	_, err := c.db.Exec(query, text, target, translated, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store translation: %w", err)
	}
	return nil
}

// CachedTranslator wraps a Translator with the cache store: hits skip the
// underlying service, misses are stored after translation.
type CachedTranslator struct {
	Store *CacheStore
	Next  Translator
}

// Translate returns the cached translation when present, otherwise
// delegates to the wrapped translator and caches the result. A failure to
// cache is reported but does not fail the translation.
func (c *CachedTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	if cached, ok, err := c.Store.Get(text, target); err == nil && ok {
		return cached, nil
	}

	translated, err := c.Next.Translate(ctx, text, target)
	if err != nil {
		return "", err
	}

	if err := c.Store.Put(text, target, translated); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to cache translation: %v\n", err)
	}

	return translated, nil
}
