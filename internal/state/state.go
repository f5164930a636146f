// Package state persists per-file content hashes between runs so incremental
// generation can skip files whose documentation comments cannot have changed.
package state

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	apperrors "git.home.luguber.info/inful/thedoc/internal/errors"
)

// Store tracks the last-seen content hash per source file.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens a state database. Use ":memory:" for tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, apperrors.StateError("create state directory", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.StateError("open state database", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, apperrors.StateError("initialize schema", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS file_hashes (
		path TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		updated INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// HashContent returns the hex sha256 of a file's content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Changed reports whether the file's content differs from the recorded hash.
// Unknown paths always count as changed.
func (s *Store) Changed(ctx context.Context, path, hash string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stored string
	err := s.db.QueryRowContext(ctx,
		"SELECT hash FROM file_hashes WHERE path = ?", path,
	).Scan(&stored)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, apperrors.StateError("query hash", fmt.Errorf("path %s: %w", path, err))
	}
	return stored != hash, nil
}

// Record upserts the hash for a path.
func (s *Store) Record(ctx context.Context, path, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO file_hashes (path, hash, updated) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, updated = excluded.updated`,
		path, hash, time.Now().Unix(),
	)
	if err != nil {
		return apperrors.StateError("record hash", fmt.Errorf("path %s: %w", path, err))
	}
	return nil
}

// Prune drops entries for paths not in the keep set, so renamed or deleted
// sources do not accumulate.
func (s *Store) Prune(ctx context.Context, keep []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keepSet := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		keepSet[p] = struct{}{}
	}

	rows, err := s.db.QueryContext(ctx, "SELECT path FROM file_hashes")
	if err != nil {
		return 0, apperrors.StateError("list hashes", err)
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return 0, apperrors.StateError("scan hash row", err)
		}
		if _, ok := keepSet[path]; !ok {
			stale = append(stale, path)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, apperrors.StateError("list hashes", err)
	}

	for _, path := range stale {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM file_hashes WHERE path = ?", path); err != nil {
			return 0, apperrors.StateError("delete hash", fmt.Errorf("path %s: %w", path, err))
		}
	}
	return len(stale), nil
}
