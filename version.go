package jsonrpcmsg

import (
	"errors"
	"fmt"
)

// ProtocolVersion is the only accepted value of the "jsonrpc" member.
const ProtocolVersion = "2.0"

var (
	ErrWrongProtocolVersion = errors.New("wrong protocol version")
	ErrVersionNotString     = errors.New("protocol version is not a string")
)

// Version is the "jsonrpc" member. It always encodes as "2.0" and records
// whether the member was present when decoded.
type Version struct {
	present bool
}

// IsValid reports whether a valid "jsonrpc" member was decoded.
func (v Version) IsValid() bool {
	return v.present
}

// UnmarshalJSON implements [json.Unmarshaler]. It fails with
// [ErrVersionNotString] or [ErrWrongProtocolVersion], both wrapping [ErrDecoding].
func (v *Version) UnmarshalJSON(data []byte) error {
	if HintType(data) != TypeString {
		return fmt.Errorf("%w (%w)", ErrDecoding, ErrVersionNotString)
	}

	var str string
	if err := Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w (%w)", ErrDecoding, err)
	}

	if str != ProtocolVersion {
		return fmt.Errorf("%w (%w: %q)", ErrDecoding, ErrWrongProtocolVersion, str)
	}

	v.present = true

	return nil
}

// MarshalJSON implements [json.Marshaler].
func (Version) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ProtocolVersion + `"`), nil
}
