package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	path    string
	backend string
}

func (t testConfig) BasePath() string { return t.path }
func (t testConfig) Backend() string  { return t.backend }

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	if _, ok, err := kv.Get(KeyCounter); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(KeyCounter, "1001"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(KeyCounter, "1002"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(KeyCounter)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != "1002" {
		t.Fatalf("expected 1002, got %q", v)
	}
}

func TestBackends(t *testing.T) {
	for _, backend := range []string{BackendDiskv, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			kv, err := Open(context.Background(), testConfig{path: t.TempDir(), backend: backend})
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer kv.Close()
			exerciseKV(t, kv)
		})
	}
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory(nil))
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), testConfig{path: t.TempDir(), backend: "etcd"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	first, err := OpenSQLite(ctx, base)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(KeyNotes, `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, SQLiteFile)); err != nil {
		t.Fatalf("expected database file: %v", err)
	}

	second, err := OpenSQLite(ctx, base)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if v, ok, _ := second.Get(KeyNotes); !ok || v != `[]` {
		t.Fatalf("expected persisted notes, got %q ok=%v", v, ok)
	}
}

func TestDiskvWatchReportsExternalWrites(t *testing.T) {
	base := t.TempDir()
	kv, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("new diskv: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := kv.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	other, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("second diskv: %v", err)
	}
	if err := other.Set(KeyNotes, `[{"id":1,"text":"x","created":""}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed early")
			}
			if ev.Key == KeyNotes {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change event")
		}
	}
}

func TestDiskvGetSeesOtherWriters(t *testing.T) {
	base := t.TempDir()
	a, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("new diskv: %v", err)
	}
	b, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("second diskv: %v", err)
	}
	if err := a.Set(KeyCounter, "1001"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _, _ := a.Get(KeyCounter); v != "1001" {
		t.Fatalf("expected 1001, got %q", v)
	}
	if err := b.Set(KeyCounter, "1002"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, err := a.Get(KeyCounter); err != nil || !ok || v != "1002" {
		t.Fatalf("expected 1002 from disk, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestMemoryInjectNotifiesWatchers(t *testing.T) {
	m := NewMemory(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, _ := m.Watch(ctx)
	m.Inject(KeyCounter, "2000")
	select {
	case ev := <-ch:
		if ev.Key != KeyCounter {
			t.Fatalf("unexpected key %q", ev.Key)
		}
	case <-time.After(time.Second):
		t.Fatal("expected event")
	}
}

func TestKeyForPath(t *testing.T) {
	s := &Diskv{basePath: "/data"}
	cases := map[string]string{
		"/data/jos_notes":      "jos_notes",
		"/data/.jos_notes.tmp": "",
		"/data/sub/file":       "",
		"/data":                "",
	}
	for in, want := range cases {
		if got := s.keyForPath(in); got != want {
			t.Errorf("keyForPath(%q) = %q, want %q", in, got, want)
		}
	}
}
