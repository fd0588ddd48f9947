package stream

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rrb3942/jsonrpcmsg"
)

// Format selects how an [Encoder] renders messages.
type Format int

const (
	// FormatCompact writes one message per line.
	FormatCompact Format = iota
	// FormatStyled writes indented messages separated by a blank line.
	FormatStyled
	// FormatYAML writes each message as a YAML document, keeping member order.
	FormatYAML
)

var formatNames = map[Format]string{
	FormatCompact: "compact",
	FormatStyled:  "styled",
	FormatYAML:    "yaml",
}

// ParseFormat returns the [Format] named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}

	return FormatCompact, fmt.Errorf("unknown format %q (want compact, styled or yaml)", s)
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// Encoder writes messages to an [io.Writer] in a fixed [Format].
//
// A YAML Encoder buffers its final document; call [Encoder.Close] when done.
type Encoder struct {
	w    io.Writer
	y    *yaml.Encoder
	f    Format
	seen bool
}

// NewEncoder returns an [*Encoder] writing to w in format f.
func NewEncoder(w io.Writer, f Format) *Encoder {
	e := &Encoder{w: w, f: f}

	if f == FormatYAML {
		e.y = yaml.NewEncoder(w)
		e.y.SetIndent(2)
	}

	return e
}

// Format returns the encoder's output format.
func (e *Encoder) Format() Format {
	return e.f
}

// Encode writes v, typically a [jsonrpcmsg.Message] or [jsonrpcmsg.Error].
func (e *Encoder) Encode(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch e.f {
	case FormatYAML:
		return e.encodeYAML(v)
	case FormatStyled:
		return e.encodeText(v, true)
	default:
		return e.encodeText(v, false)
	}
}

func (e *Encoder) encodeText(v any, styled bool) error {
	text, err := jsonrpcmsg.ToString(v, styled)
	if err != nil {
		return err
	}

	if styled && e.seen {
		text = "\n" + text
	}

	e.seen = true

	_, err = io.WriteString(e.w, text+"\n")

	return err
}

func (e *Encoder) encodeYAML(v any) error {
	text, err := jsonrpcmsg.ToString(v, false)
	if err != nil {
		return err
	}

	// JSON text is valid YAML; decoding into a node keeps member order.
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return fmt.Errorf("%w: %w", jsonrpcmsg.ErrEncoding, err)
	}

	blockStyle(&doc)

	return e.y.Encode(&doc)
}

// blockStyle drops the flow and quoting styles inherited from JSON syntax.
func blockStyle(n *yaml.Node) {
	n.Style = 0

	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Close flushes any buffered output. It does not close the underlying writer.
func (e *Encoder) Close() error {
	if e.y != nil {
		return e.y.Close()
	}

	return nil
}
