// Package jsonobj walks JSON objects in document order.
//
// encoding/json decodes objects into maps, which forgets key order. Link
// directories and the short link record both depend on that order, so
// they are decoded through Each instead.
package jsonobj

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject is returned when the document is not a JSON object.
var ErrNotObject = errors.New("jsonobj: expected object")

// Each calls fn once per member of the top-level object in data, in the
// order the members appear. fn must consume exactly one value from dec.
func Each(data []byte, fn func(key string, dec *json.Decoder) error) error {
	return EachReader(bytes.NewReader(data), fn)
}

// EachReader is Each over a stream.
func EachReader(r io.Reader, fn func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("jsonobj: unexpected key token %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return fmt.Errorf("jsonobj: %q: %w", key, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Member is one key/value pair of an ordered object.
type Member struct {
	Key   string
	Value any
}

// Marshal writes members as a JSON object in the given order.
func Marshal(members []Member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
