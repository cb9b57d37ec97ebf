package proving

import (
	"errors"

	"go.uber.org/zap"

	"github.com/spacemeshos/resource-proof/config"
)

type option struct {
	logger *zap.Logger
	// Largest key to search for. 0 - unlimited.
	maxSteps uint64
	// Number of steps between progress logs. 0 - disabled.
	progressInterval uint64
}

type OptionFunc func(*option) error

// WithLogger sets the logger used to report progress.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithMaxSteps stops the search with ErrMaxStepsExceeded once no key <= n was found.
func WithMaxSteps(n uint64) OptionFunc {
	return func(o *option) error {
		o.maxSteps = n
		return nil
	}
}

// WithProgressInterval logs the search progress every n steps.
func WithProgressInterval(n uint64) OptionFunc {
	return func(o *option) error {
		o.progressInterval = n
		return nil
	}
}

// WithConfig applies the search limits of cfg.
func WithConfig(cfg config.Config) OptionFunc {
	return func(o *option) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.maxSteps = cfg.MaxSteps
		o.progressInterval = cfg.ProgressInterval
		return nil
	}
}
