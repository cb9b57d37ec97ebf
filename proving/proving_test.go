package proving_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/resource-proof/config"
	"github.com/spacemeshos/resource-proof/proving"
	"github.com/spacemeshos/resource-proof/shared"
	"github.com/spacemeshos/resource-proof/verifying"
)

func TestGenerate(t *testing.T) {
	r := require.New(t)

	spec := proving.NewSpec(1<<10, 6)
	nonce := shared.NonceFromSeed("generate")
	logger := zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))

	proof, err := proving.Generate(context.Background(), spec, nonce,
		proving.WithLogger(logger),
		proving.WithProgressInterval(16),
	)
	r.NoError(err)
	r.NotNil(proof)

	data, err := spec.GenerateData(nonce)
	r.NoError(err)
	r.Equal(data.Bytes(), proof.Data)

	r.NoError(verifying.Verify(spec, nonce, proof, verifying.WithLogger(logger)))
	r.True(verifying.ValidateAll(spec, nonce, proof.Data, proof.Key))
}

func TestGenerate_WithConfig(t *testing.T) {
	r := require.New(t)

	cfg := config.DefaultConfig()
	cfg.MinSize = 256
	cfg.Difficulty = 4
	spec, err := proving.NewSpecFromConfig(cfg)
	r.NoError(err)

	nonce := []byte("config")
	proof, err := proving.Generate(context.Background(), spec, nonce, proving.WithConfig(cfg))
	r.NoError(err)
	r.True(verifying.ValidateKey(spec, nonce, proof.Key))

	cfg.MaxSteps = ^uint64(0)
	_, err = proving.Generate(context.Background(), spec, nonce, proving.WithConfig(cfg))
	r.ErrorIs(err, shared.ErrInvalidInput)
}

func TestGenerate_Canceled(t *testing.T) {
	r := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proof, err := proving.Generate(ctx, proving.NewSpec(64, 255), []byte{1},
		proving.WithLogger(zaptest.NewLogger(t)),
	)
	r.ErrorIs(err, context.Canceled)
	r.Nil(proof)
}

func TestGenerate_MaxStepsExceeded(t *testing.T) {
	r := require.New(t)

	proof, err := proving.Generate(context.Background(), proving.NewSpec(64, 255), []byte{1},
		proving.WithMaxSteps(100),
	)
	r.ErrorIs(err, proving.ErrMaxStepsExceeded)
	r.Nil(proof)
}

func TestGenerate_InvalidInput(t *testing.T) {
	r := require.New(t)

	_, err := proving.Generate(context.Background(), proving.NewSpec(64, 1), nil)
	r.ErrorIs(err, shared.ErrInvalidInput)

	_, err = proving.Generate(context.Background(), proving.NewSpec(64, 1), []byte{1}, proving.WithLogger(nil))
	r.Error(err)
}

func TestGenerate_ZeroSize(t *testing.T) {
	r := require.New(t)

	proof, err := proving.Generate(context.Background(), proving.NewSpec(0, 0), nil)
	r.NoError(err)
	r.Empty(proof.Data)
	r.Zero(proof.Key)
}
