package jsonrpcmsg

import (
	"fmt"
	"log/slog"
)

var errEmptyMethod = fmt.Errorf("%w: request method is empty", ErrEncoding)

// Request is a JSON-RPC request, or a notification when ID is absent.
//
//	{"jsonrpc":"2.0","method":"subtract","params":{"subtrahend":23,"minuend":42},"id":3}
//
// Jsonrpc reports whether the version member was present on a decoded
// request; it is always emitted on encode.
//
//nolint:govet // Field order follows the wire order.
type Request struct {
	Jsonrpc Version // Present on decode only if the member was sent
	Method  string  // Never empty
	Params  Params  // Omitted when absent
	ID      ID      // Absent for notifications
}

// requestWire fixes the member order of the encoded form.
type requestWire struct {
	Jsonrpc Version `json:"jsonrpc"`
	Method  string  `json:"method"`
	Params  Params  `json:"params,omitzero"`
	ID      ID      `json:"id,omitzero"`
}

// NewNotification returns a notification for method without params.
func NewNotification(method string) *Request {
	return &Request{Method: method}
}

// NewNotificationWithParams returns a notification for method with params p.
func NewNotificationWithParams(method string, p Params) *Request {
	return &Request{Method: method, Params: p}
}

// NewRequest returns a request for method with the given id and no params.
// Pass [NewNullID] for a request that expects a response with a null id.
func NewRequest(id ID, method string) *Request {
	return &Request{Method: method, ID: id}
}

// NewRequestWithParams returns a request for method with the given id and params p.
func NewRequestWithParams(id ID, method string, p Params) *Request {
	return &Request{Method: method, ID: id, Params: p}
}

// IsNotification reports whether the request has no "id" member. A request
// with "id": null is not a notification.
func (r *Request) IsNotification() bool {
	return r.ID.IsZero()
}

// MessageID implements [Message].
func (r *Request) MessageID() ID {
	return r.ID
}

func (r *Request) isMessage() {}

// ResponseWithResult returns a successful response to r carrying result.
func (r *Request) ResponseWithResult(result any) *Response {
	return NewResponseWithResult(r.ID, result)
}

// ResponseWithError returns an error response to r. See [NewResponseWithError]
// for how e is converted.
func (r *Request) ResponseWithError(e error) *Response {
	return NewResponseWithError(r.ID, e)
}

// Text renders the request with [ToString].
func (r *Request) Text(styled bool) (string, error) {
	return ToString(r, styled)
}

// LogValue implements [slog.LogValuer].
func (r *Request) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("method", r.Method)}

	if r.IsNotification() {
		attrs = append(attrs, slog.Bool("notification", true))
	} else {
		attrs = append(attrs, slog.Any("id", r.ID))
	}

	if !r.Params.IsZero() {
		attrs = append(attrs, slog.String("params", r.Params.TypeHint().String()))
	}

	return slog.GroupValue(attrs...)
}

// ParseRequest decodes a request or notification.
//
// It fails when data is not a JSON object, when "method" is missing, not a
// string or empty, when "jsonrpc" is present but not "2.0", or when "id" is
// not a string, number or null. A missing "jsonrpc" member is accepted.
// "params" is kept verbatim whatever its JSON type.
func ParseRequest(data []byte) (*Request, error) {
	obj, err := decodeObject(data, "request")
	if err != nil {
		return nil, err
	}

	return requestFromObject(obj)
}

func requestFromObject(obj object) (*Request, error) {
	var (
		req Request
		err error
	)

	// The version is optional here, but must be "2.0" when sent.
	if req.Jsonrpc, err = decodeVersion(obj, false); err != nil {
		return nil, err
	}

	rawMethod, ok := obj[memberMethod]
	if !ok {
		return nil, newParseError("request has no method", nil)
	}

	if req.Method, err = decodeString(rawMethod); err != nil {
		return nil, newParseError("method is not a string", err)
	}

	if req.Method == "" {
		return nil, newParseError("method is empty", nil)
	}

	// Params of any JSON type are kept verbatim.
	if rawParams, ok := obj[memberParams]; ok {
		req.Params = NewParamsRaw(rawParams)
	}

	// A missing id leaves req.ID absent, making this a notification.
	if req.ID, err = decodeID(obj); err != nil {
		return nil, err
	}

	return &req, nil
}

// UnmarshalJSON implements [json.Unmarshaler] using [ParseRequest].
func (r *Request) UnmarshalJSON(data []byte) error {
	req, err := ParseRequest(data)
	if err != nil {
		return err
	}

	*r = *req

	return nil
}

// MarshalJSON implements [json.Marshaler]. "params" is omitted when absent and
// "id" is omitted for notifications. An empty method is an encoding error.
func (r Request) MarshalJSON() ([]byte, error) {
	if r.Method == "" {
		return nil, errEmptyMethod
	}

	return Marshal(requestWire{Method: r.Method, Params: r.Params, ID: r.ID})
}
