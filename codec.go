package jsonrpcmsg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrDecoding = errors.New("jsonrpcmsg: decoding error")
	ErrEncoding = errors.New("jsonrpcmsg: encoding error")
)

const styledIndent = "  "

// ToString renders v as JSON text. With styled set the output is indented
// over multiple lines, otherwise it is a single compact line. There is no
// trailing newline in either form.
//
// Encoding failures wrap [ErrEncoding].
func ToString(v any, styled bool) (string, error) {
	buf, err := Marshal(v)
	if err != nil {
		if errors.Is(err, ErrEncoding) {
			return "", err
		}

		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	var out bytes.Buffer

	if styled {
		err = json.Indent(&out, buf, "", styledIndent)
	} else {
		err = json.Compact(&out, buf)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	return out.String(), nil
}
