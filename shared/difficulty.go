package shared

import "math"

// MaxKey is the largest key a verifier ever replays: 16 GiB of zero bytes, the same bound as
// the largest proof data. A prover holds its whole data in memory, so larger keys can't be
// honest in practice.
const MaxKey = 1 << 34

// keyLimitFactor bounds accepted keys to a multiple of the expected number of steps.
// The number of steps is geometrically distributed, so an honest prover exceeds
// 64 * 2^d steps with probability of about e^-64.
const keyLimitFactor = 64

// Difficulty is the number of leading zero bits required in the hash of the proof data.
// Each extra bit doubles the expected work.
type Difficulty uint8

// ExpectedSteps returns 2^d, the mean number of steps needed to find a key.
// It saturates at math.MaxUint64 for d >= 64.
func (d Difficulty) ExpectedSteps() uint64 {
	if d >= 64 {
		return math.MaxUint64
	}
	return uint64(1) << d
}

// KeyLimit returns the largest key a verifier accepts by default: 64 * 2^d, capped at MaxKey.
// It bounds the hashing work an untrusted key can cause.
func (d Difficulty) KeyLimit() uint64 {
	expected := d.ExpectedSteps()
	if Uint64MulOverflow(expected, keyLimitFactor) {
		return MaxKey
	}
	return min(expected*keyLimitFactor, MaxKey)
}

// IsMetBy reports whether a score of leading zero bits satisfies the difficulty.
func (d Difficulty) IsMetBy(score uint) bool {
	return score >= uint(d)
}
