// Package storage persists the signlib catalog and favorites to a key-value
// substrate.
//
// A substrate (KV) is a dumb byte store with an optional byte quota. Four
// backends are provided: an in-process map, a directory of files, an SQLite
// database, and a Redis instance. Store sits on top of any of them and owns
// the encoding, the decode-failure recovery, and the demo seed.
package storage

import (
	"context"
	"strings"

	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/logging"
)

// KV is a key-value storage substrate.
type KV interface {
	// Get returns the value stored under key, or a NotFoundError.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Size returns the total number of value bytes held.
	Size(ctx context.Context) (int64, error)
	// Close releases the substrate.
	Close() error
}

// Backend names a KV implementation.
type Backend string

// Backends.
const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
)

// Backends lists the supported backends.
var Backends = []Backend{BackendMemory, BackendFile, BackendSQLite, BackendRedis}

// String returns the backend name.
func (b Backend) String() string { return string(b) }

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Backends {
		if b == known {
			return b, nil
		}
	}
	return "", errors.NewConfigError("storage", "unknown backend "+`"`+s+`"`, errors.ErrInvalidInput)
}

// Config selects and configures a backend.
type Config struct {
	Backend Backend
	// Path is the directory of the file backend or the database file of the
	// sqlite backend. Unused by memory and redis.
	Path string
	// QuotaBytes caps the total stored bytes; zero means unlimited.
	QuotaBytes int64

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// RedisPrefix namespaces keys inside a shared Redis database.
	RedisPrefix string
}

// Open creates the configured backend, wrapped in a quota when QuotaBytes > 0.
func Open(ctx context.Context, cfg Config) (KV, error) {
	var (
		kv  KV
		err error
	)
	switch cfg.Backend {
	case BackendMemory, "":
		kv = NewMemory()
	case BackendFile:
		kv, err = NewFile(cfg.Path)
	case BackendSQLite:
		kv, err = NewSQLite(ctx, cfg.Path)
	case BackendRedis:
		kv, err = NewRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return nil, errors.NewConfigError("storage", "unknown backend "+`"`+string(cfg.Backend)+`"`, errors.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	if cfg.QuotaBytes > 0 {
		kv = WithQuota(kv, cfg.QuotaBytes)
	}
	logging.FromContext(logging.WithBackend(ctx, cfg.Backend.String())).Debug().
		Int64("quota_bytes", cfg.QuotaBytes).
		Msg("Storage opened")
	return kv, nil
}

func notFound(key string) error {
	return errors.NewNotFoundError("key", key)
}
