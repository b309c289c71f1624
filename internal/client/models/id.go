// Package models defines the client-side data types exchanged with the
// patient-case backend.
package models

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/goccy/go-json"
)

var ErrInvalidID = errors.New("id must be a JSON number or string")

// ID is an opaque server identifier. The backend uses numbers for some
// resources and strings for others; ID keeps the original JSON form so it
// round-trips unchanged. The zero value means "no identifier" and encodes
// as null.
type ID struct {
	raw    string
	number bool
}

// NumericID builds a numeric identifier.
func NumericID(n int64) ID {
	return ID{raw: strconv.FormatInt(n, 10), number: true}
}

// StringID builds a string identifier. An empty string yields the zero ID.
func StringID(s string) ID {
	if s == "" {
		return ID{}
	}
	return ID{raw: s}
}

// ParseID interprets user input: integers become numeric IDs, anything else
// is a string ID.
func ParseID(s string) ID {
	if s == "" {
		return ID{}
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID{raw: s, number: true}
	}
	return ID{raw: s}
}

// IsZero reports whether the identifier is absent.
func (id ID) IsZero() bool { return id.raw == "" }

// String returns the identifier text without JSON quoting.
func (id ID) String() string { return id.raw }

// Equal compares identifiers by text, so 12 and "12" match.
func (id ID) Equal(other ID) bool { return id.raw == other.raw }

func (id ID) MarshalJSON() ([]byte, error) {
	if id.raw == "" {
		return []byte("null"), nil
	}
	if id.number {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ID{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return ErrInvalidID
		}
		*id = ID{raw: string(b), number: true}
		return nil
	}
	return ErrInvalidID
}

// IDs returns the text form of each identifier.
func IDs(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
