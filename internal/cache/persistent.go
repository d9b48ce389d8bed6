package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tilepaint/exprlang/internal/runtime"
	_ "modernc.org/sqlite"
)

// Store is a (key, value) evaluation-result table backed by
// modernc.org/sqlite, a pure-Go SQLite driver. It backs a
// restart-surviving cache for long-running tile-serving processes: the
// function NewPersistent returns consults Store before recomputing, and
// writes back on a miss, but is otherwise inert unless a caller opts in.
type Store struct {
	db *sql.DB
}

// Open creates (or reopens) a Store at path. An empty path opens an
// in-memory database, useful for tests that want Store's SQL shape
// without a file on disk.
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS eval_cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Get returns the cached value for key, json-decoded, or found=false.
func (s *Store) Get(key string) (value interface{}, found bool, err error) {
	var raw string
	err = s.db.QueryRow(`SELECT value FROM eval_cache WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return v, true, nil
}

// Put stores value for key, replacing any prior entry.
func (s *Store) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	_, err = s.db.Exec(`INSERT INTO eval_cache (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, string(raw))
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", key, err)
	}
	return nil
}

// NewPersistent wraps call with a Store-backed cache at path, using the
// same feature-constant/zoom-constant keying rule Memoize does. Unlike
// Memoize's in-memory LRU this survives process restarts, at the cost
// of a disk round trip per miss.
func NewPersistent(path string, call func(zoom float64, feature runtime.Feature) (interface{}, error), isFeatureConstant, isZoomConstant bool) (func(zoom float64, feature runtime.Feature) (interface{}, error), *Store, error) {
	store, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	if isFeatureConstant && isZoomConstant {
		return func(zoom float64, feature runtime.Feature) (interface{}, error) {
			const onceKey = "const"
			if v, found, err := store.Get(onceKey); err == nil && found {
				return v, nil
			}
			v, err := call(zoom, feature)
			if err == nil {
				store.Put(onceKey, v)
			}
			return v, err
		}, store, nil
	}

	keyFor := func(zoom float64, feature runtime.Feature) (string, bool) {
		if isFeatureConstant {
			return fmt.Sprintf("z:%g", zoom), true
		}
		if !feature.HasID {
			return "", false
		}
		return fmt.Sprintf("z:%g|id:%v", zoom, feature.ID), true
	}

	wrapped := func(zoom float64, feature runtime.Feature) (interface{}, error) {
		key, ok := keyFor(zoom, feature)
		if !ok {
			return call(zoom, feature)
		}
		if v, found, err := store.Get(key); err == nil && found {
			return v, nil
		}
		v, err := call(zoom, feature)
		if err == nil {
			store.Put(key, v)
		}
		return v, err
	}
	return wrapped, store, nil
}
