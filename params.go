package jsonrpcmsg

import (
	"encoding/json"
)

// Params is the "params" member of a [Request].
//
// JSON-RPC expects an object or an array, but decoded params are carried
// through as whatever JSON value the peer sent. Use [Data.TypeHint] to check
// the shape before unmarshaling.
type Params = Data

// NewParamsArray returns [Params] holding the slice v (by-position params).
//
//	params := jsonrpcmsg.NewParamsArray([]any{42, 23})
func NewParamsArray[V any, P ~[]V](v P) Params {
	return NewData(v)
}

// NewParamsObject returns [Params] holding the map v (by-name params).
//
//	params := jsonrpcmsg.NewParamsObject(map[string]int{"subtrahend": 23, "minuend": 42})
func NewParamsObject[K comparable, V any, P ~map[K]V](v P) Params {
	return NewData(v)
}

// NewParamsRaw returns [Params] holding already encoded JSON. The bytes are
// emitted as given, which also preserves member order.
func NewParamsRaw(v json.RawMessage) Params {
	return NewData(v)
}

// NewParamsStruct returns [Params] holding a struct or any other value that
// marshals to a JSON object.
func NewParamsStruct(v any) Params {
	return NewData(v)
}
