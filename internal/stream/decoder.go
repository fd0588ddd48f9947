// Package stream reads and writes sequences of JSON-RPC messages on byte
// streams for the command line tools.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
)

// ErrJSONTooLarge is returned by [Decoder.Next] when a single value is longer
// than the limit set with [Decoder.SetLimit].
var ErrJSONTooLarge = errors.New("stream: JSON payload larger than configured read limit")

// Decoder reads successive JSON values from an [io.Reader] without
// interpreting them. Values may be separated by any JSON whitespace.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	r  io.Reader         // Underlying reader
	lr *io.LimitedReader // Wraps r while a limit is set
	d  *json.Decoder     // Reads from lr when limited, r otherwise
	n  int64             // Per-value limit in bytes, 0 for none
}

// NewDecoder returns a [*Decoder] reading from r with no size limit.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, d: json.NewDecoder(r)}
}

// SetLimit bounds the number of bytes read for a single value. Exceeding it
// makes [Decoder.Next] fail with [ErrJSONTooLarge]. A limit of 0 or less
// removes the bound.
//
// SetLimit must be called before the first call to [Decoder.Next].
func (i *Decoder) SetLimit(n int64) {
	i.n = n

	if n > 0 {
		// The budget is refilled by Next before each value.
		i.lr = &io.LimitedReader{R: i.r, N: n}
		i.d = json.NewDecoder(i.lr)

		return
	}

	// No limit, read straight from the source.
	i.lr = nil
	i.d = json.NewDecoder(i.r)
}

// ioErr maps the EOF produced by an exhausted limit to [ErrJSONTooLarge].
func (i *Decoder) ioErr(e error) error {
	// An exhausted budget looks like a truncated value to json.Decoder.
	if i.lr != nil && i.lr.N <= 0 {
		if errors.Is(e, io.EOF) || errors.Is(e, io.ErrUnexpectedEOF) {
			return ErrJSONTooLarge
		}
	}

	return e
}

// closeDecode closes the reader if ctx ends while a read is blocked.
func (i *Decoder) closeDecode(ctx context.Context, c io.Closer, v *json.RawMessage) error {
	var wg sync.WaitGroup

	wg.Add(1)

	// Unblock the read if ctx ends first.
	after := context.AfterFunc(ctx, func() {
		defer wg.Done()

		_ = c.Close()
	})

	err := i.ioErr(i.d.Decode(v))

	// after reports false once the close has started; wait for it so the
	// caller never sees a half-closed reader.
	if !after() {
		wg.Wait()

		return errors.Join(err, ctx.Err())
	}

	return err
}

// Next returns the next JSON value in the stream, copied so it stays valid
// after further reads. It returns [io.EOF] once the input is exhausted, and the
// decoder's syntax error when the input is not valid JSON; the stream cannot
// be resumed after a syntax error.
//
// When the underlying reader is an [io.Closer] it is closed if ctx is
// cancelled during the read.
func (i *Decoder) Next(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Each value gets the full budget.
	if i.lr != nil {
		i.lr.N = i.n
	}

	var raw json.RawMessage

	var err error

	if c, ok := i.r.(io.Closer); ok {
		err = i.closeDecode(ctx, c, &raw)
	} else {
		err = i.ioErr(i.d.Decode(&raw))
	}

	if err != nil {
		return nil, err
	}

	return raw, nil
}

// Close closes the underlying reader if it is an [io.Closer].
func (i *Decoder) Close() error {
	if c, ok := i.r.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
