package jsonrpcmsg

import (
	"context"
	"log/slog"
)

// Response is a JSON-RPC response. It carries a result or an error, never both:
// it is an error response exactly when Error is not the zero [Error]
// (code [CodeNone]).
//
// Responses may carry a [context.Context] to correlate them with the
// connection or request they answer. The context is never encoded.
//
// See: https://www.jsonrpc.org/specification#response_object
//
//nolint:govet // Field order follows the wire order.
type Response struct {
	ctx     context.Context // Optional, never encoded
	Jsonrpc Version         // Always written as "2.0"
	ID      ID              // Id of the request answered, null when unknown
	Result  Result          // Used when Error is zero
	Error   Error           // Non-zero makes this an error response
	pending bool            // Set by NewPendingResponse
}

// responseWire is the encoded form. The pointers let MarshalJSON drop
// whichever of result and error does not apply.
type responseWire struct {
	Jsonrpc Version `json:"jsonrpc"`
	ID      ID      `json:"id"`
	Result  *Result `json:"result,omitempty"`
	Error   *Error  `json:"error,omitempty"`
}

// NewResponseWithResult returns a successful response for id.
//
//	resp := jsonrpcmsg.NewResponseWithResult(jsonrpcmsg.NewID(int64(1)), 19)
//	// {"jsonrpc":"2.0","id":1,"result":19}
func NewResponseWithResult(id ID, result any) *Response {
	return &Response{ID: id, Result: NewResult(result)}
}

// NewResponseWithError returns an error response for id.
//
// If e is (or wraps) an [Error] it is used as is. Any other error becomes
// [ErrInternal] with e.Error() as data:
//
//	resp := jsonrpcmsg.NewResponseWithError(id, errors.New("db down"))
//	// {"jsonrpc":"2.0","id":1,"error":{"code":-32603,"message":"Internal error","data":"db down"}}
func NewResponseWithError(id ID, e error) *Response {
	return &Response{ID: id, Error: asError(e)}
}

// NewResponseError returns an error response with a null id, for input whose
// id could not be determined. Parse errors from this package can be passed
// straight through.
func NewResponseError(e error) *Response {
	return NewResponseWithError(NewNullID(), e)
}

// NewPendingResponse returns a placeholder for a response that has not been
// resolved yet. It has a null id and [ErrInternal], so sending it unchanged
// still gives the peer a well-formed answer.
func NewPendingResponse() *Response {
	return &Response{ID: NewNullID(), Error: ErrInternal, pending: true}
}

// IsPending reports whether r came from [NewPendingResponse].
func (r *Response) IsPending() bool {
	return r.pending
}

// IsError reports whether r is an error response.
func (r *Response) IsError() bool {
	return !r.Error.IsZero()
}

// MessageID implements [Message].
func (r *Response) MessageID() ID {
	return r.ID
}

func (r *Response) isMessage() {}

// Context returns the response's context, or [context.Background] if none was set.
func (r *Response) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}

	return context.Background()
}

// WithContext returns a shallow copy of r carrying ctx. It panics on a nil ctx.
func (r *Response) WithContext(ctx context.Context) *Response {
	if ctx == nil {
		panic("nil context")
	}

	r2 := *r
	r2.ctx = ctx

	return &r2
}

// Equal reports whether r and o encode the same response. IDs are compared
// with [ID.Equal]; absent and null IDs, which both encode as null, match.
func (r *Response) Equal(o *Response) bool {
	if r == nil || o == nil {
		return r == o
	}

	// ID.Equal never matches absent IDs, so null/absent is checked separately.
	if !r.ID.Equal(o.ID) && !(r.ID.Value() == nil && o.ID.Value() == nil) {
		return false
	}

	if r.IsError() != o.IsError() {
		return false
	}

	if r.IsError() {
		return r.Error.Equal(o.Error)
	}

	// Unset and null results both encode as null.
	return sameJSON(r.Result, o.Result)
}

// Text renders the response with [ToString].
func (r *Response) Text(styled bool) (string, error) {
	return ToString(r, styled)
}

// LogValue implements [slog.LogValuer].
func (r *Response) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Any("id", r.ID)}

	if r.IsError() {
		attrs = append(attrs, slog.Any("error", r.Error))
	} else {
		attrs = append(attrs, slog.String("result", r.Result.TypeHint().String()))
	}

	return slog.GroupValue(attrs...)
}

// ParseResponse decodes a response.
//
// It fails when data is not a JSON object, when "jsonrpc" is missing or not
// "2.0", when "id" is missing or of the wrong type, when neither "result" nor
// "error" is present, or when "error" is not a valid error object. An error
// object with code 0 is rejected, since that code means "no error".
//
// When both "result" and "error" are present the result wins and the error
// member is ignored.
func ParseResponse(data []byte) (*Response, error) {
	obj, err := decodeObject(data, "response")
	if err != nil {
		return nil, err
	}

	return responseFromObject(obj)
}

func responseFromObject(obj object) (*Response, error) {
	var (
		resp Response
		err  error
	)

	// Responses must carry the version.
	if resp.Jsonrpc, err = decodeVersion(obj, true); err != nil {
		return nil, err
	}

	// A null id is allowed, a missing one is not.
	if !obj.has(memberID) {
		return nil, newParseError("response has no id", nil)
	}

	if resp.ID, err = decodeID(obj); err != nil {
		return nil, err
	}

	// Result is checked first; any error member alongside it is ignored.
	if rawResult, ok := obj[memberResult]; ok {
		resp.Result = NewResult(rawResult)

		return &resp, nil
	}

	rawError, ok := obj[memberError]
	if !ok {
		return nil, newParseError("response has neither result nor error", nil)
	}

	errObj, err := decodeObject(rawError, "error")
	if err != nil {
		return nil, err
	}

	if resp.Error, err = errorFromObject(errObj); err != nil {
		return nil, err
	}

	// Code 0 would turn this back into a result response.
	if resp.Error.IsZero() {
		return nil, newParseError("error code 0 is reserved for no error", nil)
	}

	return &resp, nil
}

// UnmarshalJSON implements [json.Unmarshaler] using [ParseResponse].
func (r *Response) UnmarshalJSON(data []byte) error {
	resp, err := ParseResponse(data)
	if err != nil {
		return err
	}

	*r = *resp

	return nil
}

// MarshalJSON implements [json.Marshaler]. Exactly one of "result" and "error"
// is written, chosen by [Response.IsError]. An unset result is written as null.
func (r Response) MarshalJSON() ([]byte, error) {
	w := responseWire{ID: r.ID}

	// The zero Version encodes as "2.0"; exactly one of the pointers is set.
	if r.IsError() {
		w.Error = &r.Error
	} else {
		w.Result = &r.Result
	}

	return Marshal(w)
}
