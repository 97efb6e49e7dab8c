package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Flag is one named boolean indicator inside a Flags mapping
type Flag struct {
	Key   string
	Value bool
}

// Flags is an ordered mapping of named indicators (e.g. per-installation OK checks).
// Insertion order is display order and survives a JSON round trip.
type Flags struct {
	entries []Flag
}

// NewFlags builds a mapping with every key set to false
func NewFlags(keys ...string) Flags {
	entries := make([]Flag, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Flag{Key: k})
	}
	return Flags{entries: entries}
}

// FlagsOf builds a mapping from explicit entries, keeping their order
func FlagsOf(entries ...Flag) Flags {
	out := make([]Flag, len(entries))
	copy(out, entries)
	return Flags{entries: out}
}

func (f Flags) Len() int { return len(f.entries) }

// Entries returns a copy of the entries in display order
func (f Flags) Entries() []Flag {
	out := make([]Flag, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f Flags) Keys() []string {
	keys := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func (f Flags) Has(key string) bool {
	return f.index(key) >= 0
}

// Get returns the value for key; unknown keys read as false
func (f Flags) Get(key string) bool {
	if i := f.index(key); i >= 0 {
		return f.entries[i].Value
	}
	return false
}

// Checked returns the keys whose value is true, in display order
func (f Flags) Checked() []string {
	var keys []string
	for _, e := range f.entries {
		if e.Value {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// AnyChecked reports whether at least one entry is true
func (f Flags) AnyChecked() bool {
	for _, e := range f.entries {
		if e.Value {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no backing array with f
func (f Flags) Clone() Flags {
	return FlagsOf(f.entries...)
}

// Toggle flips key in place. It returns false when key is not part of the mapping.
// Callers must own f (see Document.Clone).
func (f *Flags) Toggle(key string) bool {
	i := f.index(key)
	if i < 0 {
		return false
	}
	f.entries[i].Value = !f.entries[i].Value
	return true
}

// Equal compares keys, order and values
func (f Flags) Equal(other Flags) bool {
	if len(f.entries) != len(other.entries) {
		return false
	}
	for i := range f.entries {
		if f.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

func (f Flags) String() string {
	parts := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		parts = append(parts, fmt.Sprintf("%s:%t", e.Key, e.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (f Flags) index(key string) int {
	for i, e := range f.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// MarshalJSON writes a JSON object with keys in display order
func (f Flags) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range f.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if e.Value {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of booleans, keeping the object's key order.
// A duplicate key keeps its first position and takes the last value.
func (f *Flags) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		f.entries = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("flags must be a JSON object")
	}

	var entries []Flag
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("flags: unexpected key token %v", tok)
		}
		var v bool
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("flags: value for %q: %w", key, err)
		}

		replaced := false
		for i := range entries {
			if entries[i].Key == key {
				entries[i].Value = v
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, Flag{Key: key, Value: v})
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	f.entries = entries
	return nil
}
