package proving

import (
	"fmt"
	"math"

	"github.com/spacemeshos/resource-proof/config"
	"github.com/spacemeshos/resource-proof/shared"
)

type (
	Config     = config.Config
	Data       = shared.Data
	Difficulty = shared.Difficulty
	Proof      = shared.Proof
)

// Spec holds the parameters of a resource proof: the size of the data a prover has to
// produce and the number of leading zero bits its hash must have.
type Spec struct {
	minSize    uint64
	difficulty Difficulty
}

// NewSpec returns a Spec. A difficulty of 0 is met by any data.
func NewSpec(minSize uint64, difficulty uint8) *Spec {
	return &Spec{
		minSize:    minSize,
		difficulty: Difficulty(difficulty),
	}
}

// NewSpecFromConfig validates cfg and returns the Spec it describes.
func NewSpecFromConfig(cfg Config) (*Spec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewSpec(cfg.MinSize, cfg.Difficulty), nil
}

func (s *Spec) MinSize() uint64 {
	return s.minSize
}

func (s *Spec) Difficulty() Difficulty {
	return s.difficulty
}

// ExpectedSteps returns the mean number of steps a prover needs for this spec.
func (s *Spec) ExpectedSteps() uint64 {
	return s.difficulty.ExpectedSteps()
}

// GenerateData returns MinSize bytes made of the nonce repeated cyclically.
// The same nonce always yields the same data. An empty nonce is only accepted when MinSize is 0.
func (s *Spec) GenerateData(nonce []byte) (*Data, error) {
	if s.minSize == 0 {
		return shared.NewData([]byte{}), nil
	}
	if len(nonce) == 0 {
		return nil, fmt.Errorf("%w: empty nonce; expected: at least 1 byte for data of size %d", shared.ErrInvalidInput, s.minSize)
	}
	if s.minSize > uint64(math.MaxInt) {
		return nil, fmt.Errorf("%w: data size %d exceeds addressable memory", shared.ErrInvalidInput, s.minSize)
	}

	buf := make([]byte, s.minSize)
	n := copy(buf, nonce)
	// n is a multiple of len(nonce) until the buffer is full, so doubling the filled
	// prefix keeps the cycle aligned.
	for n < len(buf) {
		n += copy(buf[n:], buf[:n])
	}
	return shared.NewData(buf), nil
}

// NewProver returns a Prover searching over data, which it takes ownership of.
// Pass a clone if the data is needed afterwards.
func (s *Spec) NewProver(data *Data) *Prover {
	return &Prover{
		data:       data,
		difficulty: s.difficulty,
		scorer:     shared.NewScorer(),
	}
}
