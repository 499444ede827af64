// Package storage provides the durable key-value slot used for local state
// such as favorites. Two backends exist: a single JSON document on disk and
// an SQLite table.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KV is a small durable key-value store. Values are opaque bytes.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var ErrEmptyKey = errors.New("storage: empty key")

// Open opens the backend by name at path.
func Open(backend, path string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileKV(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}

// DefaultPath returns the per-user location for the given backend.
func DefaultPath(backend string) (string, error) {
	name := "state.json"
	if strings.EqualFold(strings.TrimSpace(backend), BackendSQLite) {
		name = "state.db"
	}

	if configDir, err := os.UserConfigDir(); err == nil && strings.TrimSpace(configDir) != "" {
		return filepath.Join(configDir, "lego", name), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return "", fmt.Errorf("resolve storage path: %w", err)
	}
	return filepath.Join(homeDir, ".config", "lego", name), nil
}
