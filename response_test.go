package jsonrpcmsg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_MarshalJSON(t *testing.T) {
	t.Parallel()

	//nolint:govet //Do not reorder struct
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{
			name: "Result",
			resp: NewResponseWithResult(NewID(int64(1)), 19),
			want: `{"jsonrpc":"2.0","id":1,"result":19}`,
		},
		{
			name: "Null result",
			resp: NewResponseWithResult(NewID("a"), nil),
			want: `{"jsonrpc":"2.0","id":"a","result":null}`,
		},
		{
			name: "Unset result",
			resp: &Response{ID: NewID(int64(2))},
			want: `{"jsonrpc":"2.0","id":2,"result":null}`,
		},
		{
			name: "Error",
			resp: NewResponseWithError(NewID(int64(1)), ErrMethodNotFound),
			want: `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`,
		},
		{
			name: "Go error",
			resp: NewResponseWithError(NewID(int64(1)), errors.New("db down")),
			want: `{"jsonrpc":"2.0","id":1,"error":{"code":-32603,"message":"Internal error","data":"db down"}}`,
		},
		{
			name: "Null id error",
			resp: NewResponseError(ErrParse),
			want: `{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error"}}`,
		},
		{
			name: "Absent id written as null",
			resp: &Response{Result: NewResult("x")},
			want: `{"jsonrpc":"2.0","id":null,"result":"x"}`,
		},
		{
			name: "No-error code gives a result",
			resp: NewResponseWithError(NewID(int64(4)), Error{}),
			want: `{"jsonrpc":"2.0","id":4,"result":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))

			// Value form must encode the same.
			b, err = json.Marshal(*tt.resp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	//nolint:govet //Do not reorder struct
	tests := []struct {
		name    string
		input   string
		id      ID
		isError bool
		code    int64
		message string
		result  string
		errData string
		nullID  bool
	}{
		{
			name:   "Result",
			input:  `{"jsonrpc":"2.0","result":19,"id":1}`,
			id:     NewID(int64(1)),
			result: `19`,
		},
		{
			name:   "Null result",
			input:  `{"jsonrpc":"2.0","result":null,"id":"x"}`,
			id:     NewID("x"),
			result: `null`,
		},
		{
			name:    "Error",
			input:   `{"jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found"},"id":"1"}`,
			id:      NewID("1"),
			isError: true,
			code:    CodeMethodNotFound,
			message: "Method not found",
		},
		{
			name:    "Error with null id",
			input:   `{"jsonrpc":"2.0","error":{"code":-32700,"message":"Parse error"},"id":null}`,
			nullID:  true,
			isError: true,
			code:    CodeParseError,
			message: "Parse error",
		},
		{
			name:    "Error with data",
			input:   `{"jsonrpc":"2.0","error":{"code":-32000,"message":"busy","data":{"retry":5}},"id":9}`,
			id:      NewID(int64(9)),
			isError: true,
			code:    -32000,
			message: "busy",
			errData: `{"retry":5}`,
		},
		{
			name:    "Error message filled from catalog",
			input:   `{"jsonrpc":"2.0","error":{"code":-32602},"id":9}`,
			id:      NewID(int64(9)),
			isError: true,
			code:    CodeInvalidParams,
			message: "Invalid params",
		},
		{
			name:   "Result wins over error",
			input:  `{"jsonrpc":"2.0","result":"ok","error":{"code":-32603,"message":"Internal error"},"id":3}`,
			id:     NewID(int64(3)),
			result: `"ok"`,
		},
		{
			name:   "Result wins over malformed error",
			input:  `{"jsonrpc":"2.0","result":"ok","error":42,"id":3}`,
			id:     NewID(int64(3)),
			result: `"ok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := ParseResponse([]byte(tt.input))
			require.NoError(t, err)

			assert.True(t, resp.Jsonrpc.IsValid())
			assert.Equal(t, tt.isError, resp.IsError())
			assert.Equal(t, tt.nullID, resp.ID.IsNull())

			if !tt.nullID {
				assert.True(t, tt.id.Equal(resp.ID), "id %s != %s", tt.id, resp.ID)
			}

			if tt.isError {
				assert.Equal(t, tt.code, resp.Error.Code())
				assert.Equal(t, tt.message, resp.Error.Message())
				assert.True(t, resp.Result.IsZero())

				if tt.errData != "" {
					assert.JSONEq(t, tt.errData, string(resp.Error.Data().RawMessage()))
				}

				return
			}

			assert.True(t, resp.Error.IsZero())
			assert.JSONEq(t, tt.result, string(resp.Result.RawMessage()))
		})
	}
}

func TestParseResponse_Errors(t *testing.T) {
	t.Parallel()

	//nolint:govet //Do not reorder struct
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"Malformed JSON", `{"jsonrpc":"2.0","result":`, "malformed JSON"},
		{"String", `"hello"`, "response must be a JSON object, got string"},
		{"Missing version", `{"result":1,"id":1}`, "missing jsonrpc member"},
		{"Old version", `{"jsonrpc":"1.0","result":1,"id":1}`, `jsonrpc member must be "2.0"`},
		{"Null version", `{"jsonrpc":null,"result":1,"id":1}`, "jsonrpc member is not a string"},
		{"Missing id", `{"jsonrpc":"2.0","result":1}`, "response has no id"},
		{"Array id", `{"jsonrpc":"2.0","result":1,"id":[1]}`, "id must be a string, number or null"},
		{"Neither result nor error", `{"jsonrpc":"2.0","id":1}`, "response has neither result nor error"},
		{"Error not an object", `{"jsonrpc":"2.0","error":"boom","id":1}`, "error must be a JSON object, got string"},
		{"Error without code", `{"jsonrpc":"2.0","error":{"message":"x"},"id":1}`, "error object has no code"},
		{"Error with string code", `{"jsonrpc":"2.0","error":{"code":"1"},"id":1}`, "error code is not an integer"},
		{"Error with numeric message", `{"jsonrpc":"2.0","error":{"code":1,"message":1},"id":1}`, "error message is not a string"},
		{"Error with code 0", `{"jsonrpc":"2.0","error":{"code":0,"message":"ok"},"id":1}`, "error code 0 is reserved for no error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := ParseResponse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrParse)

			var perr Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.reason, perr.Data().Value())
		})
	}
}

func TestResponse_RoundTrip(t *testing.T) {
	t.Parallel()

	//nolint:govet //Do not reorder struct
	tests := []struct {
		name string
		resp *Response
	}{
		{"Result", NewResponseWithResult(NewID(int64(1)), map[string]any{"a": []int{1, 2}})},
		{"Null result", NewResponseWithResult(NewID("q"), nil)},
		{"Error", NewResponseWithError(NewID(int64(2)), ErrInvalidParams.WithData("x missing"))},
		{"Null id error", NewResponseError(ErrParse)},
		{"Custom error", NewResponseWithError(NewID("z"), NewErrorWithData(-32050, "custom", []string{"a"}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := json.Marshal(tt.resp)
			require.NoError(t, err)

			var got Response
			require.NoError(t, json.Unmarshal(b, &got))

			assert.True(t, tt.resp.Equal(&got), "round trip of %s", b)
		})
	}
}

func TestResponse_Equal(t *testing.T) {
	t.Parallel()

	a := NewResponseWithResult(NewID(int64(1)), 1)

	assert.True(t, a.Equal(NewResponseWithResult(NewID(json.Number("1")), json.RawMessage(`1`))))
	assert.False(t, a.Equal(NewResponseWithResult(NewID(int64(2)), 1)))
	assert.False(t, a.Equal(NewResponseWithResult(NewID(int64(1)), 2)))
	assert.False(t, a.Equal(NewResponseWithError(NewID(int64(1)), ErrInternal)))
	assert.False(t, a.Equal(nil))

	var nilResp *Response
	assert.True(t, nilResp.Equal(nil))

	assert.True(t, (&Response{}).Equal(NewResponseWithResult(NewNullID(), nil)))
}

func TestNewResponseWithError_Wrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("handler: %w", ErrMethodNotFound.WithData("nope"))
	resp := NewResponseWithError(NewID(int64(1)), wrapped)

	assert.Equal(t, CodeMethodNotFound, resp.Error.Code())
	assert.Equal(t, "nope", resp.Error.Data().Value())

	ptr := &Error{code: -32001, message: "ptr"}
	resp = NewResponseWithError(NewID(int64(1)), ptr)
	assert.Equal(t, int64(-32001), resp.Error.Code())
}

func TestNewResponseError_FromParseFailure(t *testing.T) {
	t.Parallel()

	_, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":1}`))
	require.Error(t, err)

	out, err := NewResponseError(err).Text(false)
	require.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error","data":"request has no method"}}`, out)
}

func TestPendingResponse(t *testing.T) {
	t.Parallel()

	resp := NewPendingResponse()
	assert.True(t, resp.IsPending())
	assert.True(t, resp.IsError())
	assert.True(t, resp.ID.IsNull())
	assert.ErrorIs(t, resp.Error, ErrInternal)

	assert.False(t, NewResponseWithResult(NewID(int64(1)), 1).IsPending())

	var decoded Response
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603}}`), &decoded))
	assert.False(t, decoded.IsPending())
}

func TestResponse_Context(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	resp := NewResponseWithResult(NewID(int64(1)), "ok")
	assert.Equal(t, context.Background(), resp.Context())

	ctx := context.WithValue(context.Background(), ctxKey{}, "conn-1")
	withCtx := resp.WithContext(ctx)

	assert.Equal(t, "conn-1", withCtx.Context().Value(ctxKey{}))
	assert.Equal(t, context.Background(), resp.Context(), "original must be unchanged")
	assert.True(t, resp.Equal(withCtx))

	b, err := json.Marshal(withCtx)
	require.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":1,"result":"ok"}`, string(b))

	assert.Panics(t, func() {
		//nolint:staticcheck // Testing the nil guard.
		resp.WithContext(nil)
	})
}

func TestResponse_LogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("send", "resp", NewResponseWithError(NewID("r1"), ErrInvalidParams.WithData("x")))
	logger.Info("send", "resp", NewResponseWithResult(NewID(int64(2)), json.RawMessage(`[1]`)))

	out := buf.String()
	assert.Contains(t, out, "resp.id=r1")
	assert.Contains(t, out, "resp.error.code=-32602")
	assert.Contains(t, out, `resp.error.message="Invalid params"`)
	assert.Contains(t, out, "resp.error.data=x")
	assert.Contains(t, out, "resp.result=array")
}
