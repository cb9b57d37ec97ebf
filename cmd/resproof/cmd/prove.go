package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/resource-proof/proving"
)

var proveNonce nonceFlags

// proveCmd represents the prove command.
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Create a resource proof",
	Long: `prove generates the proof data for a nonce and searches for a key: the number of zero
bytes that have to be prepended to the data for its SHA3-256 hash to have the configured
number of leading zero bits. The XDR encoded proof is printed in hex.

Without --nonce or --seed a new ed25519 identity is generated and used as the nonce.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := proving.NewSpecFromConfig(cfg)
		if err != nil {
			return err
		}
		nonce, err := proveNonce.resolve(logger, true)
		if err != nil {
			return err
		}

		start := time.Now()
		proof, err := proving.Generate(cmd.Context(), spec, nonce,
			proving.WithLogger(logger),
			proving.WithConfig(cfg),
		)
		switch {
		case errors.Is(err, context.Canceled):
			logger.Info("cli: proving interrupted")
			return err
		case err != nil:
			return fmt.Errorf("proof generation error: %w", err)
		}
		elapsed := time.Since(start)
		logger.Debug("cli: proof created", zap.Duration("elapsed", elapsed))

		encoded, err := proof.MarshalBinary()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "nonce: %x\n", nonce)
		fmt.Fprintf(out, "difficulty: %d\n", spec.Difficulty())
		fmt.Fprintf(out, "size: %d\n", spec.MinSize())
		fmt.Fprintf(out, "key: %d\n", proof.Key)
		fmt.Fprintf(out, "expected steps: %d\n", spec.ExpectedSteps())
		fmt.Fprintf(out, "create time: %s\n", elapsed.Round(time.Millisecond))
		fmt.Fprintf(out, "proof: %x\n", encoded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveNonce.bind(proveCmd.Flags())
}
