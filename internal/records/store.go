// Package records owns the persisted sequence of expenses.
//
// The whole sequence lives as one JSON array under a single key of a
// kv.Store. Reads always return a fresh slice; writes replace the blob.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"tally/internal/core"
	"tally/internal/kv"
)

// DefaultKey is the storage key holding the expense blob.
const DefaultKey = "expenses"

var (
	ErrDuplicateID = errors.New("duplicate expense id")
	ErrCorruptBlob = errors.New("stored expenses are unreadable")
)

// Store is the single owner of the persisted expense sequence. Its
// read-modify-write cycles are serialized, so concurrent Append and Delete
// calls never lose each other's records.
type Store struct {
	kv       kv.Store
	key      string
	logger   *slog.Logger
	mu       sync.Mutex
	revision atomic.Uint64
}

func NewStore(store kv.Store, key string, logger *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: store, key: key, logger: logger}
}

// Key returns the storage key the blob is kept under.
func (s *Store) Key() string {
	return s.key
}

// Revision increases by one after every successful write.
func (s *Store) Revision() uint64 {
	return s.revision.Load()
}

// Version identifies the persisted state of the sequence. Stores shared with
// other processes report their own write version; otherwise it falls back to
// the in-process revision.
func (s *Store) Version(ctx context.Context) (string, error) {
	v, ok := s.kv.(kv.Versioner)
	if !ok {
		return "r" + strconv.FormatUint(s.Revision(), 10), nil
	}
	n, err := v.Version(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("read version of %q: %w", s.key, err)
	}
	return "v" + strconv.FormatInt(n, 10), nil
}

// LoadAll returns every stored expense in insertion order. It never fails:
// a missing or unreadable blob yields an empty slice.
func (s *Store) LoadAll(ctx context.Context) []core.Expense {
	items, err := s.read(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Falling back to empty expense list",
			"key", s.key,
			"error", err)
		return []core.Expense{}
	}
	return items
}

// Append adds e at the end of the sequence and persists the whole sequence.
func (s *Store) Append(ctx context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(ctx)
	if err != nil {
		return fmt.Errorf("load before append: %w", err)
	}
	for _, existing := range items {
		if existing.ID == e.ID {
			return fmt.Errorf("append %q: %w", e.ID, ErrDuplicateID)
		}
	}
	return s.write(ctx, append(items, e))
}

// ReplaceAll overwrites the persisted sequence wholesale.
func (s *Store) ReplaceAll(ctx context.Context, items []core.Expense) error {
	seen := make(map[string]struct{}, len(items))
	for _, e := range items {
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("replace: %q: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, items)
}

// Delete removes the expense with id. It reports false, and writes nothing,
// when no such expense exists.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(ctx)
	if err != nil {
		return false, fmt.Errorf("load before delete: %w", err)
	}
	kept := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := s.write(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Clear drops the stored blob. It does not read it first, so it also
// recovers from a blob that can no longer be parsed.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear %q: %w", s.key, err)
	}
	rev := s.revision.Add(1)
	s.logger.InfoContext(ctx, "Expenses cleared", "key", s.key, "revision", rev)
	return nil
}

// read loads the blob strictly. An absent key is an empty sequence; a read
// or decode failure is an error so writers never clobber data they could
// not parse.
func (s *Store) read(ctx context.Context) ([]core.Expense, error) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", s.key, err)
	}

	var items []core.Expense
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	if items == nil {
		items = []core.Expense{}
	}
	return items, nil
}

func (s *Store) write(ctx context.Context, items []core.Expense) error {
	if items == nil {
		items = []core.Expense{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write %q: %w", s.key, err)
	}
	rev := s.revision.Add(1)

	s.logger.DebugContext(ctx, "Expenses persisted",
		"key", s.key,
		"count", len(items),
		"revision", rev)
	return nil
}
