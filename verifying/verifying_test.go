package verifying

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/resource-proof/proving"
	"github.com/spacemeshos/resource-proof/shared"
)

// solve returns the proof data and the key for nonce.
func solve(t *testing.T, spec *proving.Spec, nonce []byte) ([]byte, uint64) {
	data, err := spec.GenerateData(nonce)
	require.NoError(t, err)
	key, err := spec.NewProver(data.Clone()).Solve()
	require.NoError(t, err)
	return data.Bytes(), key
}

func TestVerify(t *testing.T) {
	for d := uint8(0); d <= 8; d += 2 {
		d := d
		t.Run(fmt.Sprintf("difficulty=%d", d), func(t *testing.T) {
			r := require.New(t)

			spec := proving.NewSpec(1<<10, d)
			nonce := shared.NonceFromSeed(fmt.Sprintf("verify-%d", d))
			data, key := solve(t, spec, nonce)

			r.True(ValidateData(spec, nonce, data))
			r.True(ValidateKey(spec, nonce, key))
			r.True(ValidateAll(spec, nonce, data, key))

			logger := zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))
			r.NoError(Verify(spec, nonce, &shared.Proof{Data: data, Key: key}, WithLogger(logger)))
		})
	}
}

func TestVerify_ZeroDifficulty(t *testing.T) {
	r := require.New(t)

	spec := proving.NewSpec(100, 0)
	nonce := []byte{1, 5, 3}
	data, key := solve(t, spec, nonce)
	r.Zero(key)
	r.True(ValidateAll(spec, nonce, data, 0))
	// Any key within the limit meets a zero difficulty.
	r.True(ValidateKey(spec, nonce, 7))
}

func TestVerify_DataMismatch(t *testing.T) {
	r := require.New(t)

	spec := proving.NewSpec(1<<10, 4)
	nonce := []byte("mismatch")
	data, key := solve(t, spec, nonce)

	flipped := append([]byte(nil), data...)
	flipped[len(flipped)/2] ^= 0xff
	r.False(ValidateData(spec, nonce, flipped))
	r.False(ValidateAll(spec, nonce, flipped, key))
	r.ErrorIs(VerifyData(spec, nonce, flipped), shared.ErrDataMismatch)
	r.ErrorIs(Verify(spec, nonce, &shared.Proof{Data: flipped, Key: key}), shared.ErrDataMismatch)

	extended := append(append([]byte(nil), data...), 0)
	r.False(ValidateData(spec, nonce, extended))
	r.False(ValidateAll(spec, nonce, extended, key))

	r.False(ValidateAll(spec, nonce, data[1:], key))
	r.False(ValidateAll(spec, []byte("other"), data, key))
}

func TestVerify_InsufficientWork(t *testing.T) {
	r := require.New(t)

	spec := proving.NewSpec(1<<10, 200)
	nonce := []byte{1, 5, 3}
	data, err := spec.GenerateData(nonce)
	r.NoError(err)

	err = VerifyKey(spec, nonce, 0)
	r.ErrorIs(err, shared.ErrInsufficientWork)
	var workErr shared.InsufficientWorkError
	r.True(errors.As(err, &workErr))
	r.Zero(workErr.Key)
	r.Equal(shared.Difficulty(200), workErr.Difficulty)
	r.Less(workErr.Score, uint(200))

	r.True(ValidateData(spec, nonce, data.Bytes()))
	r.False(ValidateKey(spec, nonce, 0))
	r.False(ValidateAll(spec, nonce, data.Bytes(), 0))
}

func TestVerify_KeyOutOfRange(t *testing.T) {
	r := require.New(t)

	spec := proving.NewSpec(64, 0)
	nonce := []byte{9}

	r.NoError(VerifyKey(spec, nonce, 10, WithMaxKey(10)))
	r.ErrorIs(VerifyKey(spec, nonce, 11, WithMaxKey(10)), shared.ErrKeyOutOfRange)

	// Default limit for difficulty 0 is 64.
	r.NoError(VerifyKey(spec, nonce, 64))
	r.ErrorIs(VerifyKey(spec, nonce, 65), shared.ErrKeyOutOfRange)
	r.False(ValidateKey(spec, nonce, 65))

	// A custom limit accepts keys above the default one.
	r.NoError(VerifyKey(spec, nonce, 10_000, WithMaxKey(1<<20)))
}

func TestVerify_HugeKey(t *testing.T) {
	r := require.New(t)

	spec := proving.NewSpec(1, 60)
	nonce := []byte{1}
	data, err := spec.GenerateData(nonce)
	r.NoError(err)

	for _, key := range []uint64{1 << 50, shared.MaxKey + 1, math.MaxInt64, math.MaxUint64} {
		r.NotPanics(func() {
			r.False(ValidateKey(spec, nonce, key))
			r.False(ValidateAll(spec, nonce, data.Bytes(), key))
		}, "key: %d", key)

		err := VerifyKey(spec, nonce, key)
		r.ErrorIs(err, shared.ErrKeyOutOfRange)
		err = Verify(spec, nonce, &shared.Proof{Data: data.Bytes(), Key: key})
		r.ErrorIs(err, shared.ErrKeyOutOfRange)
	}
}

func TestVerify_LargeKeyIsStreamed(t *testing.T) {
	r := require.New(t)

	// 64 MiB of replayed zeros, hashed without allocating them.
	spec := proving.NewSpec(1, 60)
	err := VerifyKey(spec, []byte{1}, 1<<26)
	var workErr shared.InsufficientWorkError
	r.True(errors.As(err, &workErr))
	r.Equal(uint64(1<<26), workErr.Key)
}

func TestValidateAll_IsDataAndKey(t *testing.T) {
	r := require.New(t)

	spec := proving.NewSpec(256, 3)
	nonce := []byte("equivalence")
	data, key := solve(t, spec, nonce)

	bad := append([]byte(nil), data...)
	bad[0]++

	for _, d := range [][]byte{data, bad, data[:10], nil} {
		for _, k := range []uint64{0, 1, key, key + 1, 1 << 20} {
			expected := ValidateData(spec, nonce, d) && ValidateKey(spec, nonce, k)
			r.Equal(expected, ValidateAll(spec, nonce, d, k), "key: %d, len: %d", k, len(d))
		}
	}
}

func TestVerify_InvalidNonce(t *testing.T) {
	r := require.New(t)

	spec := proving.NewSpec(32, 1)
	r.ErrorIs(VerifyData(spec, nil, make([]byte, 32)), shared.ErrInvalidInput)
	r.ErrorIs(VerifyKey(spec, nil, 0), shared.ErrInvalidInput)
	r.False(ValidateAll(spec, nil, make([]byte, 32), 0))

	r.Error(Verify(spec, []byte{1}, &shared.Proof{}, WithLogger(nil)))
}

func TestVerify_CyclicNonce(t *testing.T) {
	r := require.New(t)

	spec := proving.NewSpec(1024, 3)
	nonce := []byte{1, 5, 3}
	data, err := spec.GenerateData(nonce)
	r.NoError(err)
	r.Equal(1024, data.Len())
	for i, b := range data.Bytes() {
		r.Equal(nonce[i%3], b)
	}

	key, err := spec.NewProver(data.Clone()).Solve()
	r.NoError(err)
	r.True(ValidateKey(spec, nonce, key))
	r.True(ValidateAll(spec, nonce, data.Bytes(), key))
}
