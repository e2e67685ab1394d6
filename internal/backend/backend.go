// Package backend selects and builds the persistence layer from
// configuration.
package backend

import (
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/memory"
	"fintrack/internal/ports"
	"fintrack/internal/storage"
)

// Type names a supported persistence backend.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is supported.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result carries the built store and its optional cleanup.
type Result struct {
	Store   ports.Store
	Cleanup CleanupFunc
}

// Build creates the store named by the application config. The SQLite path
// runs migrations before returning.
func Build(cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app config is nil")
	}

	t := Type(cfg.DataBackend)
	switch t {
	case SQLite:
		if cfg.SQLiteDBPath == "" {
			return nil, fmt.Errorf("SQLite database path is required for sqlite backend")
		}
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case Memory:
		return &Result{Store: memory.New()}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
