package cli

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rrb3942/jsonrpcmsg"
)

var errParamsNotJSON = errors.New("--params is not valid JSON")

type newOptions struct {
	method string
	params string
	id     string
	nullID bool
	notify bool
}

// parseID reads an --id value: integers become numeric ids, anything else a
// string id.
func parseID(s string) jsonrpcmsg.ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return jsonrpcmsg.NewID(n)
	}

	return jsonrpcmsg.NewID(s)
}

// build returns the request described by o.
func (o *newOptions) build() (*jsonrpcmsg.Request, error) {
	var params jsonrpcmsg.Params

	if o.params != "" {
		if !json.Valid([]byte(o.params)) {
			return nil, errParamsNotJSON
		}

		params = jsonrpcmsg.NewParamsRaw(json.RawMessage(o.params))
	}

	if o.notify {
		if params.IsZero() {
			return jsonrpcmsg.NewNotification(o.method), nil
		}

		return jsonrpcmsg.NewNotificationWithParams(o.method, params), nil
	}

	var id jsonrpcmsg.ID

	switch {
	case o.nullID:
		id = jsonrpcmsg.NewNullID()
	case o.id != "":
		id = parseID(o.id)
	default:
		id = jsonrpcmsg.NewID(uuid.NewString())
	}

	if params.IsZero() {
		return jsonrpcmsg.NewRequest(id, o.method), nil
	}

	return jsonrpcmsg.NewRequestWithParams(id, o.method, params), nil
}

func newNewCommand(a *app) *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a JSON-RPC request or notification",
		Long:  longNew,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.build()
			if err != nil {
				return err
			}

			a.log.Debug("built request", "request", req)

			enc := a.encoder()

			if err := enc.Encode(cmd.Context(), req); err != nil {
				return err
			}

			return enc.Close()
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.method, "method", "m", "", "method name")
	flags.StringVarP(&opts.params, "params", "p", "", "params as JSON text")
	flags.StringVar(&opts.id, "id", "", "request id; integers are sent as numbers (default random UUID)")
	flags.BoolVar(&opts.nullID, "null-id", false, "send a null id")
	flags.BoolVar(&opts.notify, "notify", false, "build a notification with no id")

	_ = cmd.MarkFlagRequired("method")

	cmd.MarkFlagsMutuallyExclusive("id", "null-id", "notify")

	return cmd
}

var longNew = `
Build a single request and write it in the configured format.

Examples:
  # {"jsonrpc":"2.0","method":"subtract","params":[42,23],"id":1}
  jsonrpcfmt new -m subtract -p '[42,23]' --id 1

  # A notification.
  jsonrpcfmt new -m update --notify -p '[1,2,3]'
`
