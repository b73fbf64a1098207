package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	applog "health42/internal/log"
)

// Keys under which the local store persists its JSON arrays. The names
// match the keys used by previously exported datasets.
const (
	KeyPendingSupplements = "pendingSupplements"
	KeyPendingPosts       = "pendingPosts"
	KeyAnalytics          = "analytics"
)

// LocalStore is keyed persistence of JSON-serializable values, backed by
// a single sqlite kv table. It mirrors localStorage semantics: reads and
// writes never surface errors to callers.
//
// Single-process use is assumed; concurrent writers to the same key from
// separate processes can lose updates.
type LocalStore struct {
	db *sqlx.DB
}

func NewLocalStore(db *sqlx.DB) *LocalStore { return &LocalStore{db: db} }

// Get returns the value under key, or def when the key is missing or its
// content does not unmarshal. Corruption is logged, never propagated.
func Get[T any](s *LocalStore, key string, def T) T {
	var raw string
	if err := s.db.Get(&raw, `SELECT value FROM kv WHERE key = ?`, key); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			applog.Error(nil, "store.get.fail", err, map[string]any{"key": key})
		}
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		applog.Error(nil, "store.get.corrupt", err, map[string]any{"key": key})
		return def
	}
	return v
}

// Set persists v under key. Failures are logged and swallowed; callers
// must not assume the write succeeded.
func Set[T any](s *LocalStore, key string, v T) {
	b, err := json.Marshal(v)
	if err != nil {
		applog.Error(nil, "store.set.marshal.fail", err, map[string]any{"key": key})
		return
	}
	_, err = s.db.Exec(`
		INSERT INTO kv(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(b))
	if err != nil {
		applog.Error(nil, "store.set.fail", err, map[string]any{"key": key})
	}
}
