package jsonrpcmsg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// ErrIDNotANumber is returned by [ID.Int64] when the ID does not hold an integer.
var ErrIDNotANumber = errors.New("ID is not a number")

var errIDType = fmt.Errorf("%w: id must be a string, number or null", ErrDecoding)

// ID is the "id" member of a request or response: a string, a number or null.
//
// IDs are opaque to this package. Decoded numbers are kept as [json.Number] so
// they are echoed back exactly as received.
//
// The zero ID is absent, which on a [Request] means notification. [NewNullID]
// is a present null and is distinct from the zero ID.
type ID struct {
	value   any // string, int64, json.Number or nil
	present bool
}

// NewID returns an ID holding v.
//
//	jsonrpcmsg.NewID(int64(3))
//	jsonrpcmsg.NewID("req-1")
//	jsonrpcmsg.NewID(json.Number("3"))
func NewID[V int64 | string | json.Number](v V) ID {
	return ID{present: true, value: v}
}

// NewNullID returns a present null ID.
func NewNullID() ID {
	return ID{present: true}
}

// IsZero reports whether the ID is absent.
func (id ID) IsZero() bool {
	return !id.present
}

// IsNull reports whether the ID is present and null.
func (id ID) IsNull() bool {
	return id.present && id.value == nil
}

// Value returns the underlying string, int64, json.Number, or nil.
func (id ID) Value() any {
	return id.value
}

// AsString returns the ID as a string if it holds one.
func (id ID) AsString() (string, bool) {
	s, ok := id.value.(string)

	return s, ok
}

// Number returns the ID as a [json.Number] if it was decoded from a JSON number.
func (id ID) Number() (json.Number, bool) {
	n, ok := id.value.(json.Number)

	return n, ok
}

// Int64 returns the ID as an int64 if it holds an int64 or an integral
// [json.Number]. String IDs are never converted.
func (id ID) Int64() (int64, error) {
	switch v := id.value.(type) {
	case int64:
		return v, nil
	case json.Number:
		return v.Int64()
	}

	return 0, ErrIDNotANumber
}

// Equal reports whether two IDs identify the same request.
//
// Absent IDs equal nothing. Null equals null. Strings compare by value.
// Numbers compare by literal text, except that an int64 matches a [json.Number]
// holding the same integer. Strings never equal numbers.
func (id ID) Equal(t ID) bool {
	if id.IsZero() || t.IsZero() {
		return false
	}

	if id.IsNull() || t.IsNull() {
		return id.IsNull() && t.IsNull()
	}

	switch v := id.value.(type) {
	case string:
		s, ok := t.AsString()

		return ok && v == s
	case json.Number:
		if n, ok := t.Number(); ok {
			return v == n
		}
	}

	a, err := id.Int64()
	if err != nil {
		return false
	}

	b, err := t.Int64()

	return err == nil && a == b
}

// String formats the ID for display: quoted strings, bare numbers, "null",
// or "<absent>".
func (id ID) String() string {
	switch v := id.value.(type) {
	case string:
		return strconv.Quote(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	}

	if id.present {
		return "null"
	}

	return "<absent>"
}

// LogValue implements [slog.LogValuer].
func (id ID) LogValue() slog.Value {
	switch v := id.value.(type) {
	case string:
		return slog.StringValue(v)
	case int64:
		return slog.Int64Value(v)
	}

	return slog.StringValue(id.String())
}

// UnmarshalJSON implements [json.Unmarshaler]. Strings, numbers and null are
// accepted; any other JSON type is an error wrapping [ErrDecoding].
func (id *ID) UnmarshalJSON(data []byte) error {
	switch HintType(data) {
	case TypeNull:
		if string(bytes.TrimSpace(data)) != "null" {
			return errIDType
		}

		*id = NewNullID()
	case TypeString:
		var s string
		if err := Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %w", ErrDecoding, err)
		}

		*id = NewID(s)
	case TypeNumber:
		var n json.Number
		if err := Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %w", ErrDecoding, err)
		}

		*id = NewID(n)
	default:
		return errIDType
	}

	return nil
}

// MarshalJSON implements [json.Marshaler]. Absent and null IDs encode as null.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.value == nil {
		return nullValue, nil
	}

	buf, err := Marshal(id.value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	return buf, nil
}
