package jsonrpcmsg

// Error codes reserved by the JSON-RPC 2.0 specification.
//
// CodeNone is not a JSON-RPC code. It marks the absence of an error and is
// never written into an error object.
const (
	CodeNone           int64 = 0
	CodeParseError     int64 = -32700
	CodeInvalidRequest int64 = -32600
	CodeMethodNotFound int64 = -32601
	CodeInvalidParams  int64 = -32602
	CodeInternalError  int64 = -32603

	// Implementation defined server errors.
	CodeServerErrorMin int64 = -32099
	CodeServerErrorMax int64 = -32000
)

const (
	msgServerError  = "Server error"
	msgUnknownError = "Unknown error"
)

var canonicalMessages = map[int64]string{
	CodeParseError:     "Parse error",
	CodeInvalidRequest: "Invalid Request",
	CodeMethodNotFound: "Method not found",
	CodeInvalidParams:  "Invalid params",
	CodeInternalError:  "Internal error",
}

// ErrorMessage returns the canonical message for code.
//
// Reserved codes map to the text given by the specification. Other codes in
// [CodeServerErrorMin, CodeServerErrorMax] map to "Server error", and every
// remaining code, including [CodeNone], maps to "Unknown error".
func ErrorMessage(code int64) string {
	if msg, ok := canonicalMessages[code]; ok {
		return msg
	}

	if isServerError(code) {
		return msgServerError
	}

	return msgUnknownError
}

func isServerError(code int64) bool {
	return code >= CodeServerErrorMin && code <= CodeServerErrorMax
}

// ErrorKind classifies an error code.
type ErrorKind int

const (
	KindNone           ErrorKind = iota // CodeNone, no error.
	KindParse                           // -32700
	KindInvalidRequest                  // -32600
	KindMethodNotFound                  // -32601
	KindInvalidParams                   // -32602
	KindInternal                        // -32603
	KindServer                          // -32099 to -32000
	KindUnknown                         // Application defined or otherwise unknown.
)

var kindNames = [...]string{
	KindNone:           "none",
	KindParse:          "parse",
	KindInvalidRequest: "invalid_request",
	KindMethodNotFound: "method_not_found",
	KindInvalidParams:  "invalid_params",
	KindInternal:       "internal",
	KindServer:         "server",
	KindUnknown:        "unknown",
}

// KindOf returns the [ErrorKind] of code.
func KindOf(code int64) ErrorKind {
	switch code {
	case CodeNone:
		return KindNone
	case CodeParseError:
		return KindParse
	case CodeInvalidRequest:
		return KindInvalidRequest
	case CodeMethodNotFound:
		return KindMethodNotFound
	case CodeInvalidParams:
		return KindInvalidParams
	case CodeInternalError:
		return KindInternal
	}

	if isServerError(code) {
		return KindServer
	}

	return KindUnknown
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}

	return kindNames[k]
}
