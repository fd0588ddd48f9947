package jsonrpcmsg

import (
	"encoding/json"
)

// TypeHint is the likely top-level JSON type of a raw value, judged from its
// first non-whitespace byte only. It is a hint: the value is not validated.
type TypeHint int

const (
	TypeUnknown TypeHint = iota // First byte does not start any JSON value.
	TypeArray                   // '['
	TypeObject                  // '{'
	TypeBool                    // 't' or 'f'
	TypeNumber                  // '-' or a digit
	TypeString                  // '"'
	TypeNull                    // 'n'
	TypeEmpty                   // Nothing but whitespace.

	// TypeNotJSON is reported by [Data] when it holds a Go value rather than
	// raw JSON.
	TypeNotJSON
)

var typeHintNames = [...]string{
	TypeUnknown: "unknown",
	TypeArray:   "array",
	TypeObject:  "object",
	TypeBool:    "boolean",
	TypeNumber:  "number",
	TypeString:  "string",
	TypeNull:    "null",
	TypeEmpty:   "empty",
	TypeNotJSON: "not-json",
}

func (t TypeHint) String() string {
	if t < 0 || int(t) >= len(typeHintNames) {
		return typeHintNames[TypeUnknown]
	}

	return typeHintNames[t]
}

// leadHints maps the first byte of a JSON value to its type. Bytes that start
// no JSON value map to TypeUnknown, the zero TypeHint.
var leadHints = [256]TypeHint{
	'[': TypeArray,
	'{': TypeObject,
	't': TypeBool,
	'f': TypeBool,
	'"': TypeString,
	'n': TypeNull,
	'-': TypeNumber,
	'0': TypeNumber,
	'1': TypeNumber,
	'2': TypeNumber,
	'3': TypeNumber,
	'4': TypeNumber,
	'5': TypeNumber,
	'6': TypeNumber,
	'7': TypeNumber,
	'8': TypeNumber,
	'9': TypeNumber,
}

// HintType returns the [TypeHint] for m. Only the four JSON whitespace bytes
// are skipped before the first byte is looked at.
func HintType(m json.RawMessage) TypeHint {
	for _, c := range m {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}

		return leadHints[c]
	}

	return TypeEmpty
}
