package store

import (
	"context"
	"sync"
)

// Memory is an in-process KV for tests. Writes made through Set are not
// reported by Watch; use Inject to simulate another writer.
type Memory struct {
	mu       sync.Mutex
	values   map[string]string
	watchers []chan Event
	// FailWrites makes every Set return this error when non-nil.
	FailWrites error
}

// NewMemory returns an empty Memory store seeded with values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get implements KV.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = value
	return nil
}

// Inject stores value as if another process wrote it and notifies watchers.
func (m *Memory) Inject(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	for _, w := range m.watchers {
		select {
		case w <- Event{Key: key}:
		default:
		}
	}
}

// Watch implements KV.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 8)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

// Close implements KV.
func (m *Memory) Close() error {
	return nil
}
