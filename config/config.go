package config

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/spacemeshos/smutil"

	"github.com/spacemeshos/resource-proof/shared"
)

const (
	// MaxMinSize caps the generated data at 16 GiB.
	MaxMinSize = 1 << 34
)

const (
	DefaultConfigFileName = "config.toml"

	DefaultMinSize          = 1 << 10
	DefaultDifficulty       = 8
	DefaultMaxSteps         = 0 // unlimited
	DefaultProgressInterval = 1 << 16
)

var DefaultHomeDir = filepath.Join(smutil.GetUserHomeDirectory(), ".resproof")

type Config struct {
	// MinSize is the size of the generated proof data, in bytes.
	MinSize uint64 `mapstructure:"size"`
	// Difficulty is the number of leading zero bits required in the hash of the proof data.
	Difficulty uint8 `mapstructure:"difficulty"`

	// MaxSteps is the largest key a prover searches before giving up. 0 disables the limit.
	MaxSteps uint64 `mapstructure:"max-steps"`
	// ProgressInterval is the number of steps between progress log lines. 0 disables them.
	ProgressInterval uint64 `mapstructure:"progress-interval"`
}

func DefaultConfig() Config {
	return Config{
		MinSize:          DefaultMinSize,
		Difficulty:       DefaultDifficulty,
		MaxSteps:         DefaultMaxSteps,
		ProgressInterval: DefaultProgressInterval,
	}
}

// DefaultConfigFile returns the path of the config file used when none is given.
func DefaultConfigFile() string {
	return filepath.Join(DefaultHomeDir, DefaultConfigFileName)
}

func (cfg Config) Validate() error {
	if cfg.MinSize > MaxMinSize {
		return fmt.Errorf("%w: invalid `MinSize`; expected: <= %d, given: %d", shared.ErrInvalidInput, MaxMinSize, cfg.MinSize)
	}

	if cfg.MaxSteps > uint64(math.MaxInt)-cfg.MinSize {
		return fmt.Errorf("%w: invalid `MaxSteps`; expected: <= %d, given: %d",
			shared.ErrInvalidInput, uint64(math.MaxInt)-cfg.MinSize, cfg.MaxSteps)
	}

	return nil
}
