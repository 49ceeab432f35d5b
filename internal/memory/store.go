package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrConflict is returned by LogStore.Save when the stored log changed
// since it was loaded.
var ErrConflict = errors.New("conversation log changed concurrently")

// Key addresses one conversation.
type Key struct {
	UserID     string
	MaterialID string
}

func (k Key) String() string {
	return k.UserID + "/" + k.MaterialID
}

// Version is an opaque revision counter. Zero means no record exists.
type Version int64

// LogStore persists conversation logs with optimistic concurrency.
type LogStore interface {
	// Load returns the stored log and its version. A missing record is an
	// empty log at version zero.
	Load(ctx context.Context, key Key) (Log, Version, error)

	// Save writes the log if the stored version still equals expected.
	// Otherwise it returns ErrConflict and leaves the record untouched.
	Save(ctx context.Context, key Key, log Log, expected Version) error

	// Clear empties the conversation and bumps its version, so a writer
	// holding a version loaded before the clear can never save over it.
	Clear(ctx context.Context, key Key) error
}

// maxUpdateAttempts bounds the load-modify-save loop in Update.
const maxUpdateAttempts = 3

// Update loads the log, applies fn and saves the result, retrying from a
// fresh load when another writer got there first. fn may run more than once.
func Update(ctx context.Context, s LogStore, key Key, fn func(Log) (Log, error)) (Log, error) {
	var lastErr error
	for range maxUpdateAttempts {
		current, version, err := s.Load(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		err = s.Save(ctx, key, next, version)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("save %s: %w", key, err)
		}
		lastErr = err
	}
	return nil, lastErr
}

// Append adds turns to the end of the stored log. Used to persist what one
// engine invocation added without re-running the invocation on conflict.
func Append(ctx context.Context, s LogStore, key Key, turns ...Turn) (Log, error) {
	return Update(ctx, s, key, func(l Log) (Log, error) {
		out := make(Log, len(l), len(l)+len(turns))
		copy(out, l)
		return append(out, turns...), nil
	})
}

// MapStore is an in-process LogStore.
type MapStore struct {
	mu      sync.Mutex
	entries map[Key]mapEntry
}

type mapEntry struct {
	log     Log
	version Version
}

// NewMapStore returns an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{entries: make(map[Key]mapEntry)}
}

func (m *MapStore) Load(_ context.Context, key Key) (Log, Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entries[key]
	out := make(Log, len(e.log))
	copy(out, e.log)
	return out, e.version, nil
}

func (m *MapStore) Save(_ context.Context, key Key, log Log, expected Version) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[key].version != expected {
		return ErrConflict
	}
	stored := make(Log, len(log))
	copy(stored, log)
	m.entries[key] = mapEntry{log: stored, version: expected + 1}
	return nil
}

func (m *MapStore) Clear(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok {
		m.entries[key] = mapEntry{version: e.version + 1}
	}
	return nil
}
