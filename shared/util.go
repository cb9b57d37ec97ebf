package shared

import (
	"encoding/hex"
	"math/bits"

	"github.com/spacemeshos/sha256-simd"
)

// HexEncoded prints a byte slice as hex when used with zap.Stringer.
type HexEncoded []byte

func (h HexEncoded) String() string {
	return hex.EncodeToString(h)
}

// NonceFromSeed derives a 32 byte nonce from a human readable seed.
func NonceFromSeed(seed string) []byte {
	sum := sha256.Sum256([]byte(seed))
	return sum[:]
}

func Uint64MulOverflow(a, b uint64) bool {
	hi, _ := bits.Mul64(a, b)
	return hi != 0
}

func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}
