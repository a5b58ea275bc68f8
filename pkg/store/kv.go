package store

import (
	"context"
	"fmt"
)

// Keys under which the three user records are stored.
const (
	KeyShorts  = "jos_shortcuts"
	KeyNotes   = "jos_notes"
	KeyCounter = "jos_counter"
)

// KV is the string key/value capability the records are persisted through.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Watch streams changes made by other writers until ctx is cancelled.
	// Backends that cannot observe changes return a nil channel.
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Event is emitted by KV.Watch when a key changes underneath the caller.
type Event struct {
	Key string
}

// Open creates the KV backend selected by cfg.
func Open(ctx context.Context, cfg Config) (KV, error) {
	if cfg == nil {
		settings, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = settings
	}
	switch cfg.Backend() {
	case BackendDiskv:
		return NewDiskv(cfg.BasePath())
	case BackendSQLite:
		return OpenSQLite(ctx, cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}
