package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/rrb3942/jsonrpcmsg"
	"github.com/rrb3942/jsonrpcmsg/internal/stream"
)

const stdinName = "-"

// visitor is called for every value read. err is set, and raw is nil, when
// the value could not be read; err is then a [jsonrpcmsg.Error] with
// [jsonrpcmsg.CodeParseError].
type visitor func(source string, index int, raw json.RawMessage, err error) error

// readAll feeds every value of every input to visit. Reading an input stops
// at its first unreadable value.
func (a *app) readAll(ctx context.Context, inputs []string, visit visitor) error {
	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}

	for _, name := range inputs {
		if err := a.readInput(ctx, name, visit); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) readInput(ctx context.Context, name string, visit visitor) error {
	r := a.in

	if name != stdinName {
		f, err := os.Open(name)
		if err != nil {
			return err
		}

		defer f.Close()

		r = f
	}

	dec := stream.NewDecoder(r)
	dec.SetLimit(a.cfg.MaxMessageSize)

	for index := 0; ; index++ {
		raw, err := dec.Next(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if errors.Is(err, io.EOF) {
				return nil
			}

			return visit(name, index, nil, readError(err))
		}

		if err := visit(name, index, raw, nil); err != nil {
			return err
		}
	}
}

// readError turns a stream failure into the error a server would reply with.
func readError(err error) error {
	if errors.Is(err, stream.ErrJSONTooLarge) {
		return jsonrpcmsg.ErrParse.WithData("message exceeds size limit")
	}

	return jsonrpcmsg.ErrParse.WithData("malformed JSON")
}
