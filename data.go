package jsonrpcmsg

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
)

// ErrEmptyData is returned by [Data.Unmarshal] when no value is present.
var ErrEmptyData = errors.New("data is empty")

// Data holds an arbitrary JSON value together with whether it was supplied at
// all. It backs the "params", "result" and error "data" members.
//
// Values built with [NewData] (or the aliases' constructors) keep the Go value
// as given and marshal it on demand. Values produced by decoding always hold a
// [json.RawMessage] copied verbatim from the input.
//
// The zero Data is absent. NewData(nil) is present and encodes as JSON null.
type Data struct {
	value   any
	present bool
}

// Result is the "result" member of a successful [Response].
type Result = Data

// ErrorData is the optional "data" member of an [Error].
type ErrorData = Data

// NewData returns a present [Data] holding v.
func NewData(v any) Data {
	return Data{present: true, value: v}
}

// NewResult returns a present [Result] holding v.
func NewResult(v any) Result {
	return NewData(v)
}

// NewErrorData returns a present [ErrorData] holding v.
func NewErrorData(v any) ErrorData {
	return NewData(v)
}

// IsZero reports whether the value is absent.
func (d Data) IsZero() bool {
	return !d.present
}

// IsNull reports whether the value is present and JSON null.
func (d Data) IsNull() bool {
	return d.present && d.TypeHint() == TypeNull
}

// Value returns the stored value: the Go value given to the constructor, a
// [json.RawMessage] after decoding, or nil.
func (d Data) Value() any {
	return d.value
}

// RawMessage returns the stored [json.RawMessage], or nil when the value is a
// Go value.
func (d Data) RawMessage() json.RawMessage {
	if raw, ok := d.value.(json.RawMessage); ok {
		return raw
	}

	return nil
}

// TypeHint returns the [TypeHint] of a decoded value. A present nil is
// [TypeNull]; any other Go value is [TypeNotJSON].
func (d Data) TypeHint() TypeHint {
	switch v := d.value.(type) {
	case json.RawMessage:
		return HintType(v)
	case nil:
		if d.present {
			return TypeNull
		}

		return TypeEmpty
	}

	return TypeNotJSON
}

// Unmarshal decodes the value into v. Go values are round-tripped through
// [Marshal] first, so Unmarshal works the same on built and decoded values.
func (d Data) Unmarshal(v any) error {
	if !d.present {
		return ErrEmptyData
	}

	raw, err := d.MarshalJSON()
	if err != nil {
		return err
	}

	return Unmarshal(raw, v)
}

// Equal reports whether d and o are both absent, or both present and encode to
// the same JSON value. Object member order is not significant; numbers are
// compared by their literal text.
func (d Data) Equal(o Data) bool {
	if d.present != o.present {
		return false
	}

	if !d.present {
		return true
	}

	return sameJSON(d, o)
}

// sameJSON compares the encoded values of d and o, treating absence as null.
func sameJSON(d, o Data) bool {
	dv, err := d.canonical()
	if err != nil {
		return false
	}

	ov, err := o.canonical()
	if err != nil {
		return false
	}

	return reflect.DeepEqual(dv, ov)
}

func (d Data) canonical() (any, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var v any

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// logValue returns a form of the value that reads well in a log line.
func (d Data) logValue() any {
	if raw, ok := d.value.(json.RawMessage); ok {
		return string(raw)
	}

	return d.value
}

// UnmarshalJSON implements [json.Unmarshaler]. The input is copied and kept
// as a [json.RawMessage].
func (d *Data) UnmarshalJSON(data []byte) error {
	if HintType(data) == TypeEmpty {
		return ErrDecoding
	}

	d.value = json.RawMessage(bytes.Clone(data))
	d.present = true

	return nil
}

// MarshalJSON implements [json.Marshaler]. Absent and nil values encode as null.
func (d Data) MarshalJSON() ([]byte, error) {
	switch v := d.value.(type) {
	case nil:
		return nullValue, nil
	case json.RawMessage:
		if len(v) == 0 {
			return nullValue, nil
		}

		return v, nil
	}

	return Marshal(d.value)
}
