package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rrb3942/jsonrpcmsg"
)

func newFmtCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Reformat JSON-RPC messages",
		Long:  longFmt,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := a.encoder()

			var invalid int

			err := a.readAll(cmd.Context(), args, func(source string, index int, raw json.RawMessage, err error) error {
				var msg jsonrpcmsg.Message

				if err == nil {
					msg, err = jsonrpcmsg.ParseMessage(raw)
				}

				if err != nil {
					invalid++

					a.log.Error("invalid message", "source", source, "index", index, "error", err)

					return nil
				}

				return enc.Encode(cmd.Context(), msg)
			})

			if cerr := enc.Close(); err == nil {
				err = cerr
			}

			if err != nil {
				return err
			}

			if invalid > 0 {
				return fmt.Errorf("%w: %d message(s) could not be parsed", ErrInvalidInput, invalid)
			}

			return nil
		},
	}
}

var longFmt = `
Parse every message and write it back out in the configured format.

Invalid messages are logged and skipped; the command fails once all input has
been read if any were found.

Examples:
  # Pretty print a captured exchange.
  jsonrpcfmt fmt --format styled session.json

  # Convert stdin to YAML.
  cat frames.json | jsonrpcfmt fmt -f yaml
`
