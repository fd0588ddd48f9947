package jsonrpcmsg

import (
	"encoding/json"
	"errors"
)

const (
	memberVersion = "jsonrpc"
	memberID      = "id"
	memberMethod  = "method"
	memberParams  = "params"
	memberResult  = "result"
	memberError   = "error"
	memberCode    = "code"
	memberMessage = "message"
	memberData    = "data"
)

// Message is a decoded or constructed [*Request] or [*Response].
type Message interface {
	json.Marshaler

	// Text renders the message with [ToString].
	Text(styled bool) (string, error)

	// MessageID returns the "id" member; the zero ID for notifications.
	MessageID() ID

	isMessage()
}

// ParseMessage decodes a request, notification or response.
//
// Objects with a "method" member are requests. Objects with a "result" or
// "error" member are responses. Anything else is a parse error.
//
//	msg, err := jsonrpcmsg.ParseMessage(frame)
//	switch m := msg.(type) {
//	case *jsonrpcmsg.Request:
//	case *jsonrpcmsg.Response:
//	}
func ParseMessage(data []byte) (Message, error) {
	obj, err := decodeObject(data, "message")
	if err != nil {
		return nil, err
	}

	var msg Message

	switch {
	case obj.has(memberMethod):
		msg, err = requestFromObject(obj)
	case obj.has(memberResult), obj.has(memberError):
		msg, err = responseFromObject(obj)
	default:
		err = newParseError("message is neither a request nor a response", nil)
	}

	if err != nil {
		return nil, err
	}

	return msg, nil
}

// object is a decoded JSON object whose member values are left undecoded, so
// member presence can be tested separately from member value.
type object map[string]json.RawMessage

func (o object) has(key string) bool {
	_, ok := o[key]

	return ok
}

func decodeObject(data []byte, what string) (object, error) {
	if hint := HintType(data); hint != TypeObject {
		if !json.Valid(data) {
			return nil, newParseError("malformed JSON", errMalformed(data))
		}

		return nil, newParseError(what+" must be a JSON object, got "+hint.String(), nil)
	}

	var obj object
	if err := Unmarshal(data, &obj); err != nil {
		return nil, newParseError("malformed JSON", err)
	}

	return obj, nil
}

// errMalformed recovers the syntax error behind a failed [json.Valid].
func errMalformed(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	return ErrDecoding
}

// decodeVersion reads the "jsonrpc" member. A missing member is an error only
// when required is set.
func decodeVersion(obj object, required bool) (Version, error) {
	var v Version

	raw, ok := obj[memberVersion]
	if !ok {
		if required {
			return v, newParseError("missing jsonrpc member", nil)
		}

		return v, nil
	}

	if err := v.UnmarshalJSON(raw); err != nil {
		if errors.Is(err, ErrVersionNotString) {
			return v, newParseError("jsonrpc member is not a string", err)
		}

		return v, newParseError(`jsonrpc member must be "`+ProtocolVersion+`"`, err)
	}

	return v, nil
}

// decodeID reads the "id" member, leaving the ID absent when the member is.
func decodeID(obj object) (ID, error) {
	var id ID

	raw, ok := obj[memberID]
	if !ok {
		return id, nil
	}

	if err := id.UnmarshalJSON(raw); err != nil {
		return id, newParseError("id must be a string, number or null", err)
	}

	return id, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	if HintType(raw) != TypeString {
		return "", ErrDecoding
	}

	var s string
	if err := Unmarshal(raw, &s); err != nil {
		return "", err
	}

	return s, nil
}

func decodeInteger(raw json.RawMessage) (int64, error) {
	if HintType(raw) != TypeNumber {
		return 0, ErrDecoding
	}

	var n json.Number
	if err := Unmarshal(raw, &n); err != nil {
		return 0, err
	}

	return n.Int64()
}
