// Package jsonrpcmsg implements the JSON-RPC 2.0 message model: requests,
// notifications, responses and error objects, and the reserved error code
// catalog.
//
// # Overview
//
// The package converts between JSON text and typed messages and nothing else.
// It performs no I/O and keeps no state, so every function is safe to call from
// any number of goroutines. Transports, method routing and batching belong to
// the caller.
//
// Inbound frames are parsed with [ParseRequest], [ParseResponse] or
// [ParseMessage]. Every parse failure is returned as an [Error] carrying
// [CodeParseError] and a reason string, which can be sent straight back to the
// peer:
//
//	req, err := jsonrpcmsg.ParseRequest(frame)
//	if err != nil {
//		out, _ := jsonrpcmsg.NewResponseError(err).Text(false)
//		conn.Write([]byte(out))
//		return
//	}
//
//	if req.IsNotification() {
//		return
//	}
//
//	resp := req.ResponseWithResult("pong")
//	out, _ := resp.Text(false)
//
// # Presence
//
// JSON-RPC gives meaning to whether a member exists at all, not just to its value.
// A request with no "id" is a notification; a request with "id": null expects a
// response. [ID], [Version] and [Data] record presence explicitly, and their
// IsZero methods report absence (which also drives the `omitzero` struct tag).
//
// [JSON-RPC 2.0]: https://www.jsonrpc.org/specification
package jsonrpcmsg

import (
	"bytes"
	"encoding/json"
)

var nullValue = json.RawMessage("null")

// Marshal is used for every JSON encoding done by this package. The default
// behaves like [encoding/json.Marshal] except that '<', '>' and '&' are not
// escaped, so decoded strings such as ids are written back as they arrived.
// It may be replaced at startup by a compatible implementation:
//
//	func init() {
//	    jsonrpcmsg.Marshal = sonic.ConfigDefault.Marshal
//	}
//
// The replacement must honour [json.Marshaler], [json.RawMessage] and the
// `omitzero` struct tag.
var Marshal = marshal

// Unmarshal is used for every JSON decoding done by this package. It defaults to
// [encoding/json.Unmarshal]. The replacement must honour [json.Unmarshaler],
// [json.RawMessage] and [json.Number].
var Unmarshal = json.Unmarshal

// marshal encodes v with HTML escaping disabled. Marshaler output of nested
// values is compacted under the same setting.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
