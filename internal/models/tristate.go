package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TriState is a yes/no answer that can also be unanswered
type TriState int8

const (
	Unset TriState = iota // operator has not answered yet
	Yes
	No
)

// TriOf converts a plain bool into an answered TriState
func TriOf(v bool) TriState {
	if v {
		return Yes
	}
	return No
}

// IsSet reports whether the question has been answered (yes or no)
func (t TriState) IsSet() bool {
	return t == Yes || t == No
}

// Label returns the report text: "-", "Ja" or "Nee"
func (t TriState) Label() string {
	switch t {
	case Yes:
		return "Ja"
	case No:
		return "Nee"
	default:
		return "-"
	}
}

func (t TriState) String() string {
	switch t {
	case Yes:
		return "true"
	case No:
		return "false"
	default:
		return "null"
	}
}

// MarshalJSON encodes Unset as null and answers as booleans
func (t TriState) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalJSON accepts null, true or false
func (t *TriState) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null":
		*t = Unset
	case "true":
		*t = Yes
	case "false":
		*t = No
	default:
		return fmt.Errorf("tri-state must be null, true or false, got %s", data)
	}
	return nil
}

var _ json.Marshaler = TriState(0)
