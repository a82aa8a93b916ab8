package backend

import (
	"context"

	"tally/internal/kv"
	"tally/internal/services"
)

// CleanupFunc releases resources held by a backend
type CleanupFunc func() error

// BackendResult is a fully wired storage stack.
type BackendResult struct {
	Pinger  kv.Pinger
	Service *services.ExpenseService
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type       BackendType
	StorageKey string

	// SQLite specific
	SQLiteDBPath string

	// Memory backend seed directory; <DataDirectory>/<StorageKey>.json is
	// loaded when present
	DataDirectory string

	// Optional change events
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
