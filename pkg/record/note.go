package record

import "time"

// NoteTimeLayout renders note creation times, day first.
const NoteTimeLayout = "2/1/2006, 15:04:05"

// Note is a saved free-text note.
type Note struct {
	// ID is the creation time in unix milliseconds.
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Created string `json:"created"`
}

// NewNote builds a note stamped with now.
func NewNote(text string, now time.Time) Note {
	return Note{
		ID:      now.UnixMilli(),
		Text:    text,
		Created: now.Format(NoteTimeLayout),
	}
}

// Notes is the note list, newest first.
type Notes []Note

// Prepend returns the list with n placed first.
func (ns Notes) Prepend(n Note) Notes {
	out := make(Notes, 0, len(ns)+1)
	out = append(out, n)
	return append(out, ns...)
}
