package record

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestShortsRoundTripKeepsInsertionOrder(t *testing.T) {
	created := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)
	var s Shorts
	for _, id := range []string{"rz", "rt", "s0"} {
		s = s.Put(ShortURL{ID: id, URL: "https://" + id + ".example", Created: created})
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"rz":`) {
		t.Fatalf("expected first inserted id first, got %s", data)
	}

	var back Shorts
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 3 {
		t.Fatalf("expected 3 shorts, got %d", len(back))
	}
	for i, id := range []string{"rz", "rt", "s0"} {
		if back[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, back[i].ID)
		}
		if !back[i].Created.Equal(created) {
			t.Fatalf("created not preserved for %s", id)
		}
	}
}

func TestShortsUnmarshalBrowserRecord(t *testing.T) {
	data := `{"rt":{"url":"https://golang.org","created":"2025-03-01T10:20:30.123Z","clicks":0}}`
	var s Shorts
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	su, ok := s.Get("rt")
	if !ok {
		t.Fatalf("expected rt to be present")
	}
	if su.URL != "https://golang.org" || su.Clicks != 0 {
		t.Fatalf("unexpected record %+v", su)
	}
	if su.Link() != "j.os/rt" {
		t.Fatalf("unexpected link %q", su.Link())
	}
}

func TestShortsPutReplacesInPlace(t *testing.T) {
	s := Shorts{{ID: "a", URL: "one"}, {ID: "b", URL: "two"}}
	s = s.Put(ShortURL{ID: "a", URL: "three"})
	if len(s) != 2 || s[0].URL != "three" {
		t.Fatalf("expected in-place replace, got %+v", s)
	}
}

func TestShortID(t *testing.T) {
	cases := map[int64]string{
		1001: "rt",
		1035: "sr",
		1296: "100",
	}
	for in, want := range cases {
		if got := ShortID(in); got != want {
			t.Errorf("ShortID(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestNewNoteAndPrepend(t *testing.T) {
	now := time.Date(2026, time.January, 5, 7, 8, 9, 0, time.Local)
	n := NewNote("buy milk", now)
	if n.ID != now.UnixMilli() {
		t.Fatalf("expected id from creation time")
	}
	if n.Created != "5/1/2026, 07:08:09" {
		t.Fatalf("unexpected created string %q", n.Created)
	}

	ns := Notes{{Text: "older"}}
	ns = ns.Prepend(n)
	if ns[0].Text != "buy milk" || ns[1].Text != "older" {
		t.Fatalf("expected newest first, got %+v", ns)
	}
}
