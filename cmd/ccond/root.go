package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/interledger/cryptoconditions/log"
)

const envPrefix = "CCOND"

// Flag names, shared with the viper keys they bind to.
const (
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagEncoding    = "encoding"
	flagConcurrency = "concurrency"
)

// app is the state shared between the root command and its subcommands.
type app struct {
	cfg    Config
	logger *log.Logger
}

// newRootCmd creates the ccond command tree. Log output goes to logOut;
// command output goes to the command's configured writer.
func newRootCmd(cfg Config, logOut io.Writer) *cobra.Command {
	v := viper.New()
	a := &app{cfg: cfg, logger: log.Default()}

	cmd := &cobra.Command{
		Use:     "ccond",
		Short:   "Inspect, build and verify crypto-conditions",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			v.SetEnvPrefix(envPrefix)
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()

			a.cfg.load(v)
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			l, err := a.cfg.logger(logOut)
			if err != nil {
				return err
			}
			log.SetDefault(l)
			a.logger = l.Module("cli").With("cmd", cmd.Name())
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String(flagLogLevel, cfg.LogLevel, "log level: debug, info, warn, error")
	pf.String(flagLogFormat, cfg.LogFormat, "log format: json, text")
	pf.String(flagEncoding, cfg.Encoding, "binary argument and output encoding: hex, base64")
	pf.Int(flagConcurrency, cfg.Concurrency, "fixture files checked concurrently")

	cmd.AddCommand(
		newDecodeConditionCmd(a),
		newDecodeFulfillmentCmd(a),
		newURICmd(a),
		newVerifyCmd(a),
		newFulfillPreimageCmd(a),
		newLegacyCmd(a),
		newVectorsCmd(a),
	)
	return cmd
}
