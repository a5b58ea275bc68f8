package clock

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), "03:04:05"},
		{time.Date(2026, 1, 2, 23, 59, 59, 999, time.UTC), "23:59:59"},
		{time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "00:00:00"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Fatalf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNowFiresImmediately(t *testing.T) {
	before := time.Now()
	msg, ok := Now()().(TickMsg)
	if !ok {
		t.Fatalf("expected TickMsg")
	}
	if time.Time(msg).Before(before) {
		t.Fatalf("tick predates command")
	}
}
