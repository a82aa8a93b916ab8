package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Ports for persistence backends.
type (
	// Store reads and writes opaque blobs by key.
	Store interface {
		Get(ctx context.Context, key string) ([]byte, error)
		Set(ctx context.Context, key string, value []byte) error
		Delete(ctx context.Context, key string) error
	}

	// Pinger is implemented by stores that can report readiness.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Versioner is implemented by stores other processes may write to.
	// Version changes whenever the value under key changes, whoever wrote it.
	Versioner interface {
		Version(ctx context.Context, key string) (int64, error)
	}
)
