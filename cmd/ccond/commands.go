package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	cc "github.com/interledger/cryptoconditions"
	"github.com/interledger/cryptoconditions/legacy"
	"github.com/interledger/cryptoconditions/vectors"
)

var (
	ErrVerifyFailed  = errors.New("fulfillment does not verify")
	ErrVectorsFailed = errors.New("conformance fixtures failed")
)

const (
	flagMessage = "message"
	flagStats   = "stats"
)

// field prints one aligned "name: value" line.
func field(w io.Writer, name string, value any) {
	fmt.Fprintf(w, "%-20s %v\n", name+":", value)
}

// parseCondition accepts either a ni: URI or a binary condition in the
// configured encoding.
func (a *app) parseCondition(s string) (*cc.Condition, error) {
	if strings.HasPrefix(s, "ni:") {
		return cc.ParseURI(s)
	}
	b, err := a.cfg.decode("condition", s)
	if err != nil {
		return nil, err
	}
	return cc.DecodeCondition(b)
}

func (a *app) parseFulfillment(s string) (cc.Fulfillment, error) {
	b, err := a.cfg.decode("fulfillment", s)
	if err != nil {
		return nil, err
	}
	return cc.DecodeFulfillment(b)
}

func (a *app) message(cmd *cobra.Command) ([]byte, error) {
	s, err := cmd.Flags().GetString(flagMessage)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return a.cfg.decode(flagMessage, s)
}

func (a *app) printCondition(w io.Writer, c *cc.Condition) {
	field(w, "type", c.Type())
	field(w, "cost", c.Cost())
	fp := c.Fingerprint()
	field(w, "fingerprint", a.cfg.encode(fp[:]))
	if c.Type().IsCompound() {
		field(w, "subtypes", c.Subtypes())
	}
	field(w, "binary", a.cfg.encode(c.Encode()))
	field(w, "uri", c.URI())
}

func newDecodeConditionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode-condition <condition>",
		Short: "Print the fields of a binary or URI condition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.parseCondition(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("decoded condition", "type", c.Type(), "cost", c.Cost())
			a.printCondition(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func newDecodeFulfillmentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode-fulfillment <fulfillment>",
		Short: "Print a fulfillment and the condition it derives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.parseFulfillment(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			field(w, "length", f.EncodedLen())
			switch f := f.(type) {
			case *cc.PreimageFulfillment:
				field(w, "preimage", a.cfg.encode(f.Preimage()))
			case *cc.PrefixFulfillment:
				field(w, "prefix", a.cfg.encode(f.Prefix()))
				field(w, "max message length", f.MaxMessageLength())
				field(w, "subfulfillment", f.Subfulfillment().Type())
			case *cc.ThresholdFulfillment:
				field(w, "threshold", f.Threshold())
				field(w, "subfulfillments", len(f.Subfulfillments()))
				field(w, "subconditions", len(f.Subconditions()))
			case *cc.RsaFulfillment:
				field(w, "modulus bits", f.PublicKey().N.BitLen())
			case *cc.Ed25519Fulfillment:
				field(w, "public key", a.cfg.encode(f.PublicKey()))
			}
			a.printCondition(w, f.Condition())
			return nil
		},
	}
}

func newURICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "uri <ni-uri>",
		Short: "Convert a condition URI to its binary encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cc.ParseURI(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.cfg.encode(c.Encode()))
			return nil
		},
	}
}

func newVerifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <fulfillment> <condition>",
		Short: "Check a fulfillment against a condition and message",
		Long: `Verify decodes the fulfillment, checks that it derives the condition
(binary or ni: URI) and runs the fulfillment's check over --message.
The command fails when the fulfillment does not verify.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.parseFulfillment(args[0])
			if err != nil {
				return err
			}
			c, err := a.parseCondition(args[1])
			if err != nil {
				return err
			}
			msg, err := a.message(cmd)
			if err != nil {
				return err
			}
			ok, err := f.Verify(c, msg)
			if err != nil {
				return err
			}
			a.logger.Info("verified", "type", f.Type(), "cost", c.Cost(), "valid", ok)
			if !ok {
				return ErrVerifyFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().String(flagMessage, "", "message to verify, in the configured encoding")
	return cmd
}

func newFulfillPreimageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fulfill-preimage <preimage>",
		Short: "Build a PREIMAGE-SHA-256 fulfillment and its condition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.cfg.decode("preimage", args[0])
			if err != nil {
				return err
			}
			f := cc.NewPreimageFulfillment(p)
			w := cmd.OutOrStdout()
			field(w, "fulfillment", a.cfg.encode(f.Encode()))
			a.printCondition(w, f.Condition())
			return nil
		},
	}
}

func newLegacyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legacy <cf:...> <cc:...>",
		Short: "Validate a legacy fulfillment string against a legacy condition string",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.message(cmd)
			if err != nil {
				return err
			}
			ok, err := legacy.Validate(args[0], args[1], msg)
			if err != nil {
				return err
			}
			if !ok {
				return ErrVerifyFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().String(flagMessage, "", "message to validate, in the configured encoding")
	return cmd
}

func newVectorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectors <dir>",
		Short: "Run the conformance fixtures in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := vectors.Files(args[0])
			if err != nil {
				return err
			}
			r := vectors.NewRunner()
			r.Concurrency = a.cfg.Concurrency
			r.Logger = a.logger
			results, err := r.Run(cmd.Context(), files)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if stats, _ := cmd.Flags().GetBool(flagStats); stats {
				if _, err := r.Metrics.WriteTo(w); err != nil {
					return err
				}
			}
			failed := vectors.Failed(results)
			for _, res := range failed {
				fmt.Fprintf(w, "FAIL %s: %v\n", res.File, res.Err)
			}
			fmt.Fprintf(w, "%d passed, %d failed\n", len(results)-len(failed), len(failed))
			if len(failed) > 0 {
				return fmt.Errorf("%w: %d of %d", ErrVectorsFailed, len(failed), len(results))
			}
			return nil
		},
	}
	cmd.Flags().Bool(flagStats, false, "print pass/fail counters and check timings")
	return cmd
}
