package jsonrpcmsg

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrParse          = NewError(CodeParseError)
	ErrInvalidRequest = NewError(CodeInvalidRequest)
	ErrMethodNotFound = NewError(CodeMethodNotFound)
	ErrInvalidParams  = NewError(CodeInvalidParams)
	ErrInternal       = NewError(CodeInternalError)
)

var errNoneCode = fmt.Errorf("%w: error code %d means no error", ErrEncoding, CodeNone)

// Error is a JSON-RPC error object. It is also a Go error, and [errors.Is]
// matches two Errors when their codes are equal:
//
//	if errors.Is(err, jsonrpcmsg.ErrParse) { ... }
//
// Every parse failure in this package is an Error with [CodeParseError] whose
// data is the reason string.
//
// The zero Error has [CodeNone] and means "no error".
type Error struct {
	_       [0]func() // Data may hold uncomparable values.
	data    ErrorData
	cause   error
	message string
	code    int64
}

type errorWire struct {
	Code    int64     `json:"code"`
	Message string    `json:"message"`
	Data    ErrorData `json:"data,omitzero"`
}

// NewError returns an Error for code with the catalog message from [ErrorMessage].
func NewError(code int64) Error {
	return Error{code: code, message: ErrorMessage(code)}
}

// NewErrorWithMessage returns an Error for code with msg in place of the
// catalog message.
func NewErrorWithMessage(code int64, msg string) Error {
	return Error{code: code, message: msg}
}

// NewErrorWithData is [NewErrorWithMessage] with the data member set.
func NewErrorWithData(code int64, msg string, data any) Error {
	return Error{code: code, message: msg, data: NewErrorData(data)}
}

func newParseError(reason string, cause error) Error {
	e := ErrParse.WithData(reason)
	e.cause = cause

	return e
}

// asError converts e for use in a response. Errors that are not an [Error]
// become [ErrInternal] with their text as data.
func asError(e error) Error {
	if e == nil {
		return ErrInternal
	}

	var je Error
	if errors.As(e, &je) {
		return je
	}

	var jp *Error
	if errors.As(e, &jp) && jp != nil {
		return *jp
	}

	return ErrInternal.WithData(e.Error())
}

// Code returns the error code.
func (e Error) Code() int64 {
	return e.code
}

// Message returns the error message.
func (e Error) Message() string {
	return e.message
}

// Data returns the data member.
func (e Error) Data() ErrorData {
	return e.data
}

// Kind returns the [ErrorKind] of the code.
func (e Error) Kind() ErrorKind {
	return KindOf(e.code)
}

// IsZero reports whether e is the "no error" value.
func (e Error) IsZero() bool {
	return e.code == CodeNone
}

// WithData returns a copy of e with the data member set to data.
func (e Error) WithData(data any) Error {
	e.data = NewErrorData(data)

	return e
}

// WithMessage returns a copy of e with the message replaced.
func (e Error) WithMessage(msg string) Error {
	e.message = msg

	return e
}

// Equal reports whether e and t have the same code, message and data.
func (e Error) Equal(t Error) bool {
	return e.code == t.code && e.message == t.message && e.data.Equal(t.data)
}

// Is reports whether t is an [Error] or *[Error] with the same code.
func (e Error) Is(t error) bool {
	switch target := t.(type) {
	case Error:
		return e.code == target.code
	case *Error:
		return target != nil && e.code == target.code
	}

	return false
}

// Unwrap returns the decoding failure behind a parse error, if any.
func (e Error) Unwrap() error {
	return e.cause
}

// Error implements the error interface. A string data member is appended to
// the message, whether it was built from a Go string or decoded from JSON.
func (e Error) Error() string {
	if reason := e.reason(); reason != "" {
		return e.message + ": " + reason
	}

	return e.message
}

// reason returns the data member when it is a string, or "".
func (e Error) reason() string {
	switch v := e.data.value.(type) {
	case string:
		return v
	case json.RawMessage:
		if HintType(v) != TypeString {
			return ""
		}

		var s string
		if err := Unmarshal(v, &s); err != nil {
			return ""
		}

		return s
	}

	return ""
}

// Text renders the error object with [ToString].
func (e Error) Text(styled bool) (string, error) {
	return ToString(e, styled)
}

// LogValue implements [slog.LogValuer].
func (e Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("code", e.code),
		slog.String("message", e.message),
	}

	if !e.data.IsZero() {
		attrs = append(attrs, slog.Any("data", e.data.logValue()))
	}

	return slog.GroupValue(attrs...)
}

// ParseErrorObject decodes a JSON-RPC error object.
//
// It fails when data is not an object, when "code" is missing or not an
// integer, or when "message" is present but not a string. A missing message
// is filled in from [ErrorMessage]. "data" is kept verbatim.
func ParseErrorObject(data []byte) (Error, error) {
	obj, err := decodeObject(data, "error")
	if err != nil {
		return Error{}, err
	}

	return errorFromObject(obj)
}

func errorFromObject(obj object) (Error, error) {
	rawCode, ok := obj[memberCode]
	if !ok {
		return Error{}, newParseError("error object has no code", nil)
	}

	code, err := decodeInteger(rawCode)
	if err != nil {
		return Error{}, newParseError("error code is not an integer", err)
	}

	e := NewError(code)

	if rawMsg, ok := obj[memberMessage]; ok {
		if e.message, err = decodeString(rawMsg); err != nil {
			return Error{}, newParseError("error message is not a string", err)
		}
	}

	if rawData, ok := obj[memberData]; ok {
		e.data = NewErrorData(rawData)
	}

	return e, nil
}

// UnmarshalJSON implements [json.Unmarshaler] using [ParseErrorObject].
func (e *Error) UnmarshalJSON(data []byte) error {
	parsed, err := ParseErrorObject(data)
	if err != nil {
		return err
	}

	*e = parsed

	return nil
}

// MarshalJSON implements [json.Marshaler]. An Error with [CodeNone] cannot be
// encoded and fails with an error wrapping [ErrEncoding].
func (e Error) MarshalJSON() ([]byte, error) {
	if e.code == CodeNone {
		return nil, errNoneCode
	}

	return Marshal(errorWire{Code: e.code, Message: e.message, Data: e.data})
}
