package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/resource-proof/proving"
	"github.com/spacemeshos/resource-proof/shared"
	"github.com/spacemeshos/resource-proof/verifying"
)

const (
	msgKeyViolation  = "FAILED TO CONFIRM PROOF - POSSIBLE VIOLATION"
	msgDataViolation = "FAILED TO CONFIRM PROOF DATA - POSSIBLE VIOLATION"
	msgAllViolation  = "FAILED TO CONFIRM PROOF & DATA - POSSIBLE VIOLATION"
)

var errViolation = errors.New("proof rejected")

var (
	verifyNonce nonceFlags
	verifyKey   uint64
	verifyProof string
)

// verifyCmd represents the verify command.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate a resource proof",
	Long: `verify checks a proof created by prove against the same nonce, size and difficulty.
With --proof the data, the key and both together are checked. With only --key the data is
regenerated from the nonce and just the key is checked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := proving.NewSpecFromConfig(cfg)
		if err != nil {
			return err
		}
		nonce, err := verifyNonce.resolve(logger, false)
		if err != nil {
			return err
		}

		var failures []string
		switch {
		case verifyProof != "":
			b, err := hex.DecodeString(verifyProof)
			if err != nil {
				return fmt.Errorf("invalid proof: %w", err)
			}
			var proof shared.Proof
			if err := proof.UnmarshalBinary(b); err != nil {
				return fmt.Errorf("invalid proof: %w", err)
			}
			failures = validateProof(spec, nonce, &proof, logger)
		case cmd.Flags().Changed("key"):
			if err := verifying.VerifyKey(spec, nonce, verifyKey, verifying.WithLogger(logger)); err != nil {
				logger.Info("cli: key rejected", zap.Error(err))
				failures = append(failures, msgKeyViolation)
			}
		default:
			return errors.New("one of --proof or --key is required")
		}

		out := cmd.OutOrStdout()
		for _, msg := range failures {
			fmt.Fprintln(out, msg)
		}
		if len(failures) > 0 {
			return errViolation
		}
		fmt.Fprintln(out, "proof is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyNonce.bind(verifyCmd.Flags())
	verifyCmd.Flags().Uint64Var(&verifyKey, "key", 0, "key to check against the data generated from the nonce")
	verifyCmd.Flags().StringVar(&verifyProof, "proof", "", "proof as printed by prove, in hex")
}

// validateProof runs the key, data and combined checks on proof and returns a message for
// every failed one.
func validateProof(spec *proving.Spec, nonce []byte, proof *shared.Proof, logger *zap.Logger) []string {
	var failures []string
	opt := verifying.WithLogger(logger)

	if err := verifying.VerifyKey(spec, nonce, proof.Key, opt); err != nil {
		logger.Info("cli: key rejected", zap.Uint64("key", proof.Key), zap.Error(err))
		failures = append(failures, msgKeyViolation)
	}
	if err := verifying.VerifyData(spec, nonce, proof.Data, opt); err != nil {
		logger.Info("cli: data rejected", zap.Error(err))
		failures = append(failures, msgDataViolation)
	}
	if err := verifying.Verify(spec, nonce, proof, opt); err != nil {
		failures = append(failures, msgAllViolation)
	}
	return failures
}
