package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rrb3942/jsonrpcmsg"
)

var reservedCodes = []int64{
	jsonrpcmsg.CodeParseError,
	jsonrpcmsg.CodeInvalidRequest,
	jsonrpcmsg.CodeMethodNotFound,
	jsonrpcmsg.CodeInvalidParams,
	jsonrpcmsg.CodeInternalError,
	jsonrpcmsg.CodeServerErrorMax,
	jsonrpcmsg.CodeServerErrorMin,
}

func newCodesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes [-- code...]",
		Short: "Describe JSON-RPC error codes",
		Long:  longCodes,
		RunE: func(_ *cobra.Command, args []string) error {
			codes := reservedCodes

			if len(args) > 0 {
				codes = make([]int64, 0, len(args))

				for _, arg := range args {
					code, err := strconv.ParseInt(arg, 10, 64)
					if err != nil {
						return fmt.Errorf("%w: %q is not an integer code", ErrInvalidInput, arg)
					}

					codes = append(codes, code)
				}
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

			fmt.Fprintln(tw, "CODE\tMESSAGE\tKIND")

			for _, code := range codes {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", code, jsonrpcmsg.ErrorMessage(code), jsonrpcmsg.KindOf(code))
			}

			return tw.Flush()
		},
	}

	// "-32601" parses as a run of shorthand flags unless it follows "--".
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w (pass negative codes after --)", ErrInvalidInput, err)
	})

	return cmd
}

var longCodes = `
Print the standard message and kind of each code, or of the reserved codes
when none are given. Codes -32000 to -32099 are reserved for server errors.
Negative codes must follow "--" so they are not read as flags.

Examples:
  jsonrpcfmt codes
  jsonrpcfmt codes -- -32601 -32050 404
`
