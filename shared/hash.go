package shared

import (
	"hash"
	"math/bits"

	"golang.org/x/crypto/sha3"
)

// DigestSize is the size of the SHA3-256 digest used for scoring.
const DigestSize = 32

// zeroChunk stands in for a prefix of zero bytes that is hashed but never allocated.
var zeroChunk [1 << 12]byte

// Hash returns the SHA3-256 digest of the concatenation of chunks.
func Hash(chunks ...[]byte) [DigestSize]byte {
	h := sha3.New256()
	for _, c := range chunks {
		h.Write(c)
	}
	var out [DigestSize]byte
	h.Sum(out[:0])
	return out
}

// LeadingZeroBits counts the zero bits at the start of digest, scanning bytes from index 0.
// An all-zero 32 byte digest yields 256.
func LeadingZeroBits(digest []byte) uint {
	var zeros uint
	for _, b := range digest {
		if b != 0 {
			return zeros + uint(bits.LeadingZeros8(b))
		}
		zeros += 8
	}
	return zeros
}

// Score returns the number of leading zero bits in the hash of the data.
func Score(data *Data) uint {
	return NewScorer().Score(data.Bytes())
}

// MeetsDifficulty reports whether the hash of the data has at least d leading zero bits.
func MeetsDifficulty(data *Data, d Difficulty) bool {
	return d.IsMetBy(Score(data))
}

// Scorer computes scores reusing its hash state. It is not safe for concurrent use.
type Scorer struct {
	h   hash.Hash
	sum []byte
}

func NewScorer() *Scorer {
	return &Scorer{
		h:   sha3.New256(),
		sum: make([]byte, 0, DigestSize),
	}
}

// Score hashes the concatenation of chunks and returns its leading zero bits.
func (s *Scorer) Score(chunks ...[]byte) uint {
	s.h.Reset()
	for _, c := range chunks {
		s.h.Write(c)
	}
	s.sum = s.h.Sum(s.sum[:0])
	return LeadingZeroBits(s.sum)
}

// ScoreZeroPrefixed returns the score of data preceded by n zero bytes. The prefix is fed to
// the hash in fixed size chunks, so memory use doesn't depend on n.
func (s *Scorer) ScoreZeroPrefixed(n uint64, data []byte) uint {
	s.h.Reset()
	for n > 0 {
		c := min(n, uint64(len(zeroChunk)))
		s.h.Write(zeroChunk[:c])
		n -= c
	}
	s.h.Write(data)
	s.sum = s.h.Sum(s.sum[:0])
	return LeadingZeroBits(s.sum)
}
