package verifying

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spacemeshos/resource-proof/proving"
	"github.com/spacemeshos/resource-proof/shared"
)

// ValidateData reports whether data is exactly the data generated for nonce.
func ValidateData(spec *proving.Spec, nonce, data []byte) bool {
	return VerifyData(spec, nonce, data) == nil
}

// ValidateKey reports whether prepending key zero bytes to the data generated for nonce
// meets the difficulty. The data itself doesn't have to be transferred.
//
// Keys above the difficulty's KeyLimit are rejected without hashing, even if they would meet
// the difficulty. An honest prover exceeds the limit with negligible probability, and the
// limit caps the work an untrusted key can cause. Use VerifyKey with WithMaxKey for another
// limit.
func ValidateKey(spec *proving.Spec, nonce []byte, key uint64) bool {
	return VerifyKey(spec, nonce, key) == nil
}

// ValidateAll reports whether data was generated from nonce and key proves the work on it.
// The data is compared before anything is hashed. Keys are limited as in ValidateKey.
func ValidateAll(spec *proving.Spec, nonce, data []byte, key uint64) bool {
	return Verify(spec, nonce, &shared.Proof{Data: data, Key: key}) == nil
}

// VerifyData returns shared.ErrDataMismatch if data isn't the data generated for nonce.
func VerifyData(spec *proving.Spec, nonce, data []byte, opts ...OptionFunc) error {
	options, err := applyOptions(opts)
	if err != nil {
		return err
	}
	_, err = verifyData(spec, nonce, data, options)
	return err
}

// VerifyKey regenerates the data for nonce and checks key against it.
// It returns a shared.InsufficientWorkError if the difficulty isn't met.
func VerifyKey(spec *proving.Spec, nonce []byte, key uint64, opts ...OptionFunc) error {
	options, err := applyOptions(opts)
	if err != nil {
		return err
	}
	data, err := spec.GenerateData(nonce)
	if err != nil {
		return err
	}
	return verifyWork(spec, data, key, options)
}

// Verify checks both the data and the key of proof. Failures wrap shared.ErrDataMismatch or
// shared.ErrInsufficientWork so callers can tell which part of the proof was rejected.
func Verify(spec *proving.Spec, nonce []byte, proof *shared.Proof, opts ...OptionFunc) error {
	options, err := applyOptions(opts)
	if err != nil {
		return err
	}
	data, err := verifyData(spec, nonce, proof.Data, options)
	if err != nil {
		return err
	}
	return verifyWork(spec, data, proof.Key, options)
}

func applyOptions(opts []OptionFunc) (*option, error) {
	options := &option{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// verifyData returns the regenerated data if it equals data.
func verifyData(spec *proving.Spec, nonce, data []byte, options *option) (*shared.Data, error) {
	expected, err := spec.GenerateData(nonce)
	if err != nil {
		return nil, err
	}
	if !expected.Equal(data) {
		options.logger.Debug("verifying: data mismatch",
			zap.Stringer("nonce", shared.HexEncoded(nonce)),
			zap.Int("expectedLen", expected.Len()),
			zap.Int("givenLen", len(data)),
		)
		return nil, fmt.Errorf("%w; expected: %d bytes generated from nonce %x, given: %d bytes",
			shared.ErrDataMismatch, expected.Len(), nonce, len(data))
	}
	return expected, nil
}

// verifyWork hashes data behind key zero bytes and checks the difficulty. The zero bytes are
// streamed into the hash, so an untrusted key costs CPU time but no memory.
func verifyWork(spec *proving.Spec, data *shared.Data, key uint64, options *option) error {
	difficulty := spec.Difficulty()
	maxKey := difficulty.KeyLimit()
	if options.maxKey != nil {
		maxKey = *options.maxKey
	}
	if key > maxKey {
		return fmt.Errorf("%w; expected: <= %d, given: %d", shared.ErrKeyOutOfRange, maxKey, key)
	}

	score := shared.NewScorer().ScoreZeroPrefixed(key, data.Bytes())
	if !difficulty.IsMetBy(score) {
		options.logger.Debug("verifying: insufficient work",
			zap.Uint64("key", key),
			zap.Uint("score", score),
			zap.Uint8("difficulty", uint8(difficulty)),
		)
		return shared.InsufficientWorkError{Key: key, Score: score, Difficulty: difficulty}
	}
	return nil
}
