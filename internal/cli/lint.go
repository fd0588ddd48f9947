package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rrb3942/jsonrpcmsg"
)

const (
	kindRequest       = "request"
	kindNotification  = "notification"
	kindResult        = "response"
	kindErrorResponse = "error response"
)

// classify names the kind of a parsed message.
func classify(msg jsonrpcmsg.Message) string {
	switch m := msg.(type) {
	case *jsonrpcmsg.Request:
		if m.IsNotification() {
			return kindNotification
		}

		return kindRequest
	case *jsonrpcmsg.Response:
		if m.IsError() {
			return kindErrorResponse
		}
	}

	return kindResult
}

func newLintCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [file...]",
		Short: "Check JSON-RPC messages and show the replies to invalid ones",
		Long:  longLint,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := a.encoder()

			var valid, invalid int

			err := a.readAll(cmd.Context(), args, func(source string, index int, raw json.RawMessage, err error) error {
				var msg jsonrpcmsg.Message

				if err == nil {
					msg, err = jsonrpcmsg.ParseMessage(raw)
				}

				if err != nil {
					invalid++

					a.log.Warn("invalid message", "source", source, "index", index, "error", err)

					return enc.Encode(cmd.Context(), jsonrpcmsg.NewResponseError(err))
				}

				valid++

				a.log.Info("valid message", "source", source, "index", index, "kind", classify(msg), "message", msg)

				return nil
			})

			if cerr := enc.Close(); err == nil {
				err = cerr
			}

			if err != nil {
				return err
			}

			a.log.Debug("lint finished", "valid", valid, "invalid", invalid)

			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d message(s) invalid", ErrInvalidInput, invalid, valid+invalid)
			}

			return nil
		},
	}
}

var longLint = `
Check every message and log its kind: request, notification, response or
error response.

For each invalid message the error response a conforming server would send
back is written to stdout. The command fails if any message was invalid.

Examples:
  jsonrpcfmt lint capture.json
`
