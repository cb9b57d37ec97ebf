package proving

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"go.uber.org/zap"

	"github.com/spacemeshos/resource-proof/config"
	"github.com/spacemeshos/resource-proof/shared"
)

// ErrMaxStepsExceeded is returned by Generate when no key was found within the configured
// number of steps.
var ErrMaxStepsExceeded = errors.New("max steps exceeded")

// Generate creates a proof for nonce. It generates the data, searches for a key and returns
// both. The search stops early when ctx is done or the step limit is reached.
func Generate(ctx context.Context, spec *Spec, nonce []byte, opts ...OptionFunc) (*Proof, error) {
	options := &option{
		logger:           zap.NewNop(),
		progressInterval: config.DefaultProgressInterval,
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	logger := options.logger

	data, err := spec.GenerateData(nonce)
	if err != nil {
		return nil, fmt.Errorf("proof data generation failed: %w", err)
	}

	prover := spec.NewProver(data.Clone())
	logger.Info("proving: starting search",
		zap.Stringer("nonce", shared.HexEncoded(nonce)),
		zap.String("size", bytefmt.ByteSize(spec.MinSize())),
		zap.Uint8("difficulty", uint8(spec.Difficulty())),
		zap.Uint64("expectedSteps", prover.ExpectedSteps()),
	)

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Info("proving: search interrupted", zap.Uint64("steps", prover.Steps()))
			return nil, ctx.Err()
		default:
			// continue searching
		}

		key, ok, err := prover.TryStep()
		if err != nil {
			return nil, fmt.Errorf("proof generation failed: %w", err)
		}
		if ok {
			logger.Info("proving: found key",
				zap.Uint64("key", key),
				zap.Duration("elapsed", time.Since(start)),
			)
			return &Proof{Data: data.Bytes(), Key: key}, nil
		}

		steps := prover.Steps()
		if options.maxSteps > 0 && steps > options.maxSteps {
			return nil, fmt.Errorf("%w: no key <= %d", ErrMaxStepsExceeded, options.maxSteps)
		}
		if options.progressInterval > 0 && steps%options.progressInterval == 0 {
			logger.Debug("proving: searching",
				zap.Uint64("steps", steps),
				zap.Duration("elapsed", time.Since(start)),
			)
		}
	}
}
