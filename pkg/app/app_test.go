package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/jos/pkg/record"
	"tableflip.dev/jos/pkg/store"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 19, 18, 4, 5, 0, time.Local)
}

func newService(values map[string]string) (*Service, *store.Memory) {
	mem := store.NewMemory(values)
	return &Service{Store: mem, Now: fixedNow}, mem
}

func TestLoadDefaults(t *testing.T) {
	svc, _ := newService(nil)
	if err := svc.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if svc.Counter() != record.DefaultCounter {
		t.Fatalf("expected default counter, got %d", svc.Counter())
	}
	shorts, _ := svc.Shorts()
	notes, _ := svc.Notes()
	if len(shorts) != 0 || len(notes) != 0 {
		t.Fatalf("expected empty records")
	}
}

func TestLoadCorruptValuesFallBack(t *testing.T) {
	svc, _ := newService(map[string]string{
		store.KeyShorts:  "{not json",
		store.KeyNotes:   "nope",
		store.KeyCounter: "abc",
	})
	if err := svc.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if svc.Counter() != record.DefaultCounter {
		t.Fatalf("expected default counter, got %d", svc.Counter())
	}
}

func TestShortenMintsDistinctIDs(t *testing.T) {
	svc, mem := newService(nil)
	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		su, err := svc.Shorten("example.com/page")
		if err != nil {
			t.Fatalf("shorten: %v", err)
		}
		if !strings.HasPrefix(su.Link(), record.ShortPrefix) {
			t.Fatalf("expected prefix, got %q", su.Link())
		}
		if seen[su.ID] {
			t.Fatalf("duplicate id %q", su.ID)
		}
		seen[su.ID] = true
	}
	if v, _, _ := mem.Get(store.KeyCounter); v != "1025" {
		t.Fatalf("expected persisted counter 1025, got %q", v)
	}

	// A fresh service over the same store continues the sequence.
	next := &Service{Store: mem, Now: fixedNow}
	su, err := next.Shorten("https://go.dev")
	if err != nil {
		t.Fatalf("shorten: %v", err)
	}
	if seen[su.ID] {
		t.Fatalf("id %q reused after reload", su.ID)
	}
	shorts, _ := next.Shorts()
	if len(shorts) != 26 {
		t.Fatalf("expected 26 shorts, got %d", len(shorts))
	}
	if shorts[len(shorts)-1].ID != su.ID {
		t.Fatalf("expected newest short last in insertion order")
	}
}

func TestShortenNormalizesScheme(t *testing.T) {
	cases := map[string]string{
		"example.com":         "https://example.com",
		"http://example.com":  "http://example.com",
		"https://example.com": "https://example.com",
		"ftp://example.com":   "https://ftp://example.com",
	}
	for in, want := range cases {
		if got := NormalizeURL(in); got != want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShortenFirstID(t *testing.T) {
	svc, _ := newService(nil)
	su, err := svc.Shorten("golang.org")
	if err != nil {
		t.Fatalf("shorten: %v", err)
	}
	if su.ID != "rt" {
		t.Fatalf("expected first id rt, got %q", su.ID)
	}
	if su.Clicks != 0 {
		t.Fatalf("expected zero clicks")
	}
}

func TestShortenEmpty(t *testing.T) {
	svc, _ := newService(nil)
	if _, err := svc.Shorten("  "); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if svc.Counter() != record.DefaultCounter {
		t.Fatalf("counter must not move on empty input")
	}
}

func TestShortenWriteFailureKeepsState(t *testing.T) {
	svc, mem := newService(nil)
	if err := svc.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	mem.FailWrites = errors.New("quota exceeded")
	if _, err := svc.Shorten("example.com"); err == nil {
		t.Fatalf("expected write error")
	}
	if svc.Counter() != record.DefaultCounter {
		t.Fatalf("counter advanced despite failed write")
	}
	if shorts, _ := svc.Shorts(); len(shorts) != 0 {
		t.Fatalf("short recorded despite failed write")
	}
}

func TestAddNoteNewestFirst(t *testing.T) {
	svc, mem := newService(nil)
	for _, text := range []string{"first", "second", "x"} {
		if _, err := svc.AddNote(text); err != nil {
			t.Fatalf("add note: %v", err)
		}
	}
	notes, _ := svc.Notes()
	if notes[0].Text != "x" || notes[2].Text != "first" {
		t.Fatalf("expected newest first, got %+v", notes)
	}
	if notes[0].Created != "19/10/2026, 18:04:05" {
		t.Fatalf("unexpected created %q", notes[0].Created)
	}
	raw, _, _ := mem.Get(store.KeyNotes)
	if !strings.HasPrefix(raw, `[{"id":`) || !strings.Contains(raw, `"text":"x"`) {
		t.Fatalf("unexpected persisted notes %s", raw)
	}
}

func TestNoStore(t *testing.T) {
	svc := &Service{}
	if _, err := svc.AddNote("x"); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	svc, mem := newService(nil)
	if _, err := svc.AddNote("local"); err != nil {
		t.Fatalf("add note: %v", err)
	}
	mem.Inject(store.KeyNotes, `[{"id":1,"text":"remote","created":"1/1/2026, 00:00:00"}]`)
	if err := svc.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	notes, _ := svc.Notes()
	if len(notes) != 1 || notes[0].Text != "remote" {
		t.Fatalf("expected reloaded notes, got %+v", notes)
	}
}

func TestReloadSeesOtherDiskvWriter(t *testing.T) {
	base := t.TempDir()
	kvA, err := store.NewDiskv(base)
	if err != nil {
		t.Fatalf("new diskv: %v", err)
	}
	kvB, err := store.NewDiskv(base)
	if err != nil {
		t.Fatalf("second diskv: %v", err)
	}
	a := &Service{Store: kvA, Now: fixedNow}
	b := &Service{Store: kvB, Now: fixedNow}

	first, err := a.Shorten("a.example.com")
	if err != nil {
		t.Fatalf("shorten a: %v", err)
	}
	if err := a.Reload(); err != nil {
		t.Fatalf("reload a: %v", err)
	}
	if err := b.Load(); err != nil {
		t.Fatalf("load b: %v", err)
	}
	second, err := b.Shorten("b.example.com")
	if err != nil {
		t.Fatalf("shorten b: %v", err)
	}
	if err := a.Reload(); err != nil {
		t.Fatalf("reload a: %v", err)
	}
	third, err := a.Shorten("c.example.com")
	if err != nil {
		t.Fatalf("shorten a again: %v", err)
	}

	seen := map[string]bool{}
	for _, su := range []string{first.Link(), second.Link(), third.Link()} {
		if seen[su] {
			t.Fatalf("duplicate short link %s", su)
		}
		seen[su] = true
	}
	shorts, _ := a.Shorts()
	if len(shorts) != 3 {
		t.Fatalf("expected all three shorts kept, got %d", len(shorts))
	}
}
