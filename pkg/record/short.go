// Package record defines the persisted user records: short links and notes.
package record

import (
	"encoding/json"
	"strconv"
	"time"

	"tableflip.dev/jos/pkg/jsonobj"
)

// ShortPrefix is prepended to every short id when shown to the user.
const ShortPrefix = "j.os/"

// DefaultCounter is the counter value used when none has been stored.
const DefaultCounter = 1000

// ShortURL is a single shortened link.
type ShortURL struct {
	ID      string    `json:"-"`
	URL     string    `json:"url"`
	Created time.Time `json:"created"`
	// Clicks is carried for compatibility; nothing increments it.
	Clicks int `json:"clicks"`
}

// Link returns the display form of the short link, e.g. "j.os/rt".
func (s ShortURL) Link() string {
	return ShortPrefix + s.ID
}

// ShortID formats a counter value as a short id.
func ShortID(counter int64) string {
	return strconv.FormatInt(counter, 36)
}

// Shorts is the insertion-ordered collection of short links. It is stored
// as a JSON object keyed by id.
type Shorts []ShortURL

// Get returns the link stored under id.
func (s Shorts) Get(id string) (ShortURL, bool) {
	for _, su := range s {
		if su.ID == id {
			return su, true
		}
	}
	return ShortURL{}, false
}

// Put appends su, or replaces an existing link with the same id in place.
func (s Shorts) Put(su ShortURL) Shorts {
	for i := range s {
		if s[i].ID == su.ID {
			s[i] = su
			return s
		}
	}
	return append(s, su)
}

// MarshalJSON implements json.Marshaler.
func (s Shorts) MarshalJSON() ([]byte, error) {
	members := make([]jsonobj.Member, 0, len(s))
	for _, su := range s {
		members = append(members, jsonobj.Member{Key: su.ID, Value: su})
	}
	return jsonobj.Marshal(members)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Shorts) UnmarshalJSON(data []byte) error {
	var out Shorts
	err := jsonobj.Each(data, func(id string, dec *json.Decoder) error {
		var su ShortURL
		if err := dec.Decode(&su); err != nil {
			return err
		}
		su.ID = id
		out = out.Put(su)
		return nil
	})
	if err != nil {
		return err
	}
	*s = out
	return nil
}
