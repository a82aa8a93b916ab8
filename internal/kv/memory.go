package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Memory is a process-local Store. Values are copied on the way in and out.
type Memory struct {
	mu    sync.Mutex
	items map[string][]byte
}

var (
	_ Store  = (*Memory)(nil)
	_ Pinger = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// NewMemoryFromFiles seeds each key from <base>/<key>.json when that file
// exists. Missing or unreadable files leave the key empty.
func NewMemoryFromFiles(base string, keys ...string) *Memory {
	m := NewMemory()
	for _, key := range keys {
		data, err := os.ReadFile(filepath.Join(base, key+".json"))
		if err != nil || len(data) == 0 {
			continue
		}
		m.items[key] = data
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}
