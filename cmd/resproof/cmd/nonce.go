package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spacemeshos/ed25519"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spacemeshos/resource-proof/shared"
)

var errNonceRequired = errors.New("one of --nonce or --seed is required")

// nonceFlags selects the nonce a command works on.
type nonceFlags struct {
	hex  string
	seed string
}

func (n *nonceFlags) bind(flags *pflag.FlagSet) {
	flags.StringVar(&n.hex, "nonce", "", "nonce, in hex")
	flags.StringVar(&n.seed, "seed", "", "derive the nonce from the SHA256 hash of this string")
}

// resolve returns the nonce given by the flags. If neither flag is set and generate is true,
// a fresh ed25519 public key is used as the nonce, like an identity joining a network would.
func (n *nonceFlags) resolve(logger *zap.Logger, generate bool) ([]byte, error) {
	switch {
	case n.hex != "" && n.seed != "":
		return nil, errors.New("--nonce and --seed are mutually exclusive")
	case n.hex != "":
		nonce, err := hex.DecodeString(n.hex)
		if err != nil {
			return nil, fmt.Errorf("invalid nonce: %w", err)
		}
		return nonce, nil
	case n.seed != "":
		return shared.NonceFromSeed(n.seed), nil
	case !generate:
		return nil, errNonceRequired
	}

	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate identity: %w", err)
	}
	logger.Info("cli: generated id", zap.Stringer("id", shared.HexEncoded(pub)))
	return pub, nil
}
