package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/jos/pkg/record"
	"tableflip.dev/jos/pkg/store"
)

// Service owns the user records and writes them back through the store.
// UIs and CLIs share it so both mint ids and order notes the same way.
type Service struct {
	Store  store.KV
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time

	shorts  record.Shorts
	notes   record.Notes
	counter int64
	loaded  bool
}

var (
	ErrNoStore = errors.New("app: no store configured")
	ErrEmpty   = errors.New("app: empty input")
)

// Load reads all three records from the store. Absent keys and values that
// do not parse fall back to an empty list or the default counter.
func (s *Service) Load() error {
	if s.Store == nil {
		return ErrNoStore
	}

	shorts := record.Shorts{}
	if raw, ok, err := s.Store.Get(store.KeyShorts); err != nil {
		return err
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &shorts); err != nil {
			s.logger().Warn("discarding unreadable short links", slog.String("error", err.Error()))
			shorts = record.Shorts{}
		}
	}

	notes := record.Notes{}
	if raw, ok, err := s.Store.Get(store.KeyNotes); err != nil {
		return err
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &notes); err != nil {
			s.logger().Warn("discarding unreadable notes", slog.String("error", err.Error()))
			notes = record.Notes{}
		}
	}

	counter := int64(record.DefaultCounter)
	if raw, ok, err := s.Store.Get(store.KeyCounter); err != nil {
		return err
	} else if ok {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			s.logger().Warn("discarding unreadable counter", slog.String("value", raw))
		} else {
			counter = n
		}
	}

	s.shorts, s.notes, s.counter = shorts, notes, counter
	s.loaded = true
	s.logger().Debug("records loaded",
		slog.Int("shorts", len(shorts)),
		slog.Int("notes", len(notes)),
		slog.Int64("counter", counter))
	return nil
}

// Reload re-reads the records after another writer changed them.
func (s *Service) Reload() error {
	s.loaded = false
	return s.Load()
}

// Watch subscribes to changes made to the store by other writers.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	return s.Store.Watch(ctx)
}

// NormalizeURL prefixes https:// when raw has no http(s) scheme.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// Shorten mints the next short id for rawURL and persists it.
func (s *Service) Shorten(rawURL string) (record.ShortURL, error) {
	if err := s.ensureLoaded(); err != nil {
		return record.ShortURL{}, err
	}
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return record.ShortURL{}, ErrEmpty
	}

	s.counter++
	if err := s.Store.Set(store.KeyCounter, strconv.FormatInt(s.counter, 10)); err != nil {
		s.counter--
		return record.ShortURL{}, fmt.Errorf("app: save counter: %w", err)
	}

	su := record.ShortURL{
		ID:      record.ShortID(s.counter),
		URL:     NormalizeURL(rawURL),
		Created: s.now().UTC(),
	}
	next := append(record.Shorts(nil), s.shorts...).Put(su)
	if err := s.save(store.KeyShorts, next); err != nil {
		return record.ShortURL{}, fmt.Errorf("app: save short links: %w", err)
	}
	s.shorts = next
	s.logger().Info("short link created", slog.String("id", su.ID), slog.String("url", su.URL))
	return su, nil
}

// Shorts returns the short links in insertion order.
func (s *Service) Shorts() (record.Shorts, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return append(record.Shorts(nil), s.shorts...), nil
}

// AddNote saves text as the newest note.
func (s *Service) AddNote(text string) (record.Note, error) {
	if err := s.ensureLoaded(); err != nil {
		return record.Note{}, err
	}
	if strings.TrimSpace(text) == "" {
		return record.Note{}, ErrEmpty
	}
	n := record.NewNote(text, s.now())
	next := s.notes.Prepend(n)
	if err := s.save(store.KeyNotes, next); err != nil {
		return record.Note{}, fmt.Errorf("app: save notes: %w", err)
	}
	s.notes = next
	s.logger().Info("note saved", slog.Int64("id", n.ID))
	return n, nil
}

// Notes returns the notes, newest first.
func (s *Service) Notes() (record.Notes, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return append(record.Notes(nil), s.notes...), nil
}

// Counter reports the last minted counter value.
func (s *Service) Counter() int64 {
	return s.counter
}

func (s *Service) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	return s.Load()
}

func (s *Service) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Store.Set(key, string(data))
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return discard
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
