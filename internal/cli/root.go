// Package cli implements the jsonrpcfmt command tree.
package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rrb3942/jsonrpcmsg/internal/config"
	"github.com/rrb3942/jsonrpcmsg/internal/logging"
	"github.com/rrb3942/jsonrpcmsg/internal/stream"
)

const appName = "jsonrpcfmt"

// ErrInvalidInput is returned by commands that found at least one invalid message.
var ErrInvalidInput = errors.New("invalid input")

// app carries the state shared by every command of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg *config.Config
	log *slog.Logger

	cfgFile  string
	envFile  string
	logLevel string
	format   string
	maxSize  int64
}

// NewRootCommand returns the jsonrpcfmt root command reading from in and
// writing messages to out and logs to errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Validate, reformat and build JSON-RPC 2.0 messages",
		Long:          longRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&a.format, "format", "f", "", "output format (compact, styled, yaml)")
	flags.Int64Var(&a.maxSize, "max-size", 0, "maximum size in bytes of one input message, 0 for no limit")

	root.AddCommand(
		newFmtCommand(a),
		newLintCommand(a),
		newNewCommand(a),
		newCodesCommand(a),
	)

	return root
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, a.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	if flags.Changed("format") {
		cfg.Format = a.format
	}

	if flags.Changed("max-size") {
		cfg.MaxMessageSize = a.maxSize
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg

	a.log, err = logging.New(a.errOut, logging.Options{Prefix: appName, Level: cfg.LogLevel})

	return err
}

func (a *app) encoder() *stream.Encoder {
	return stream.NewEncoder(a.out, a.cfg.OutputFormat())
}

var longRoot = `
jsonrpcfmt reads JSON-RPC 2.0 messages and checks them against the protocol.

Messages are read from the named files, or stdin when none are given, as a
sequence of JSON values separated by whitespace.

Settings come from --config, then JSONRPCMSG_* environment variables (including
those in --env-file), then flags.
`
