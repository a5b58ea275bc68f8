// Package clock drives the once-a-second time display.
package clock

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// Interval is the refresh period.
const Interval = time.Second

// Layout is 24-hour, zero padded.
const Layout = "15:04:05"

// TickMsg carries the time a tick fired.
type TickMsg time.Time

// Format renders t for display.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Tick fires a TickMsg after Interval.
func Tick() tea.Cmd {
	return tea.Tick(Interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Now fires a TickMsg immediately so the clock shows before the first
// interval elapses.
func Now() tea.Cmd {
	return func() tea.Msg {
		return TickMsg(time.Now())
	}
}
