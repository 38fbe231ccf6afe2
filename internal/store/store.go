// Package store provides a small key/value blob store with pluggable
// backends. The leaderboard persists its whole snapshot under one key, so
// the interface only needs whole-value reads and writes.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by Get when the key has never been written or has
// been deleted.
var ErrNotFound = errors.New("store: key not found")

// Store is a key/value blob store. Implementations are safe for concurrent
// use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Backends lists every backend Open understands.
var Backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendPostgres, BackendRedis}

// Config selects and configures a backend.
type Config struct {
	Backend string
	Path    string // file directory or sqlite database file
	DSN     string // postgres connection string
	Addr    string // redis address
	Prefix  string // redis key prefix
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("store")

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	var (
		s   Store
		err error
	)
	switch backend {
	case "", BackendMemory:
		backend = BackendMemory
		s = NewMemory()
	case BackendFile:
		s, err = NewFile(cfg.Path)
	case BackendSQLite:
		s, err = NewSQLite(ctx, cfg.Path)
	case BackendPostgres:
		s, err = NewPostgres(ctx, cfg.DSN)
	case BackendRedis:
		s, err = NewRedis(ctx, cfg.Addr, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want one of %s)", cfg.Backend, strings.Join(Backends, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}

	logger.Debug("Opened store", "backend", backend, "path", cfg.Path, "addr", cfg.Addr)
	return s, nil
}
