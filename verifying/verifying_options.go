package verifying

import (
	"errors"

	"go.uber.org/zap"
)

type option struct {
	logger *zap.Logger
	// Largest accepted key. nil - the difficulty's default limit.
	maxKey *uint64
}

type OptionFunc func(*option) error

// WithLogger sets the logger used to report rejected proofs.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithMaxKey rejects keys larger than n before any hashing is done for them.
// Without it the limit is derived from the difficulty (see shared.Difficulty.KeyLimit).
func WithMaxKey(n uint64) OptionFunc {
	return func(o *option) error {
		o.maxKey = new(uint64)
		*o.maxKey = n
		return nil
	}
}
