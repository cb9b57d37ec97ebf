package proving

import (
	"math"

	"github.com/spacemeshos/resource-proof/shared"
)

// Prover searches for a key: the number of zero bytes that, prepended to its data, make the
// hash of the data meet the difficulty.
//
// A Prover is not safe for concurrent use.
type Prover struct {
	data       *Data
	difficulty Difficulty
	steps      uint64

	scorer *shared.Scorer
}

// TryStep checks the current data against the difficulty. On success it returns the number
// of steps taken so far as the key and leaves the prover untouched. Otherwise it prepends a
// zero byte and counts one more step.
//
// ErrOverflow is returned, without mutating the prover, if the step counter is exhausted.
func (p *Prover) TryStep() (key uint64, ok bool, err error) {
	if p.difficulty.IsMetBy(p.scorer.Score(p.data.Bytes())) {
		return p.steps, true, nil
	}
	if p.steps == math.MaxUint64 {
		return 0, false, shared.ErrOverflow
	}

	p.data.PrependZero()
	p.steps++
	return 0, false, nil
}

// Solve runs TryStep until a key is found. It blocks for as long as the search takes;
// callers needing cancellation should drive TryStep themselves or use Generate.
func (p *Prover) Solve() (uint64, error) {
	for {
		key, ok, err := p.TryStep()
		if err != nil {
			return 0, err
		}
		if ok {
			return key, nil
		}
	}
}

// Steps returns the number of zero bytes prepended so far.
func (p *Prover) Steps() uint64 {
	return p.steps
}

// ExpectedSteps returns 2^difficulty. It is an estimate, not a bound.
func (p *Prover) ExpectedSteps() uint64 {
	return p.difficulty.ExpectedSteps()
}

func (p *Prover) Difficulty() Difficulty {
	return p.difficulty
}

// Data returns the prover's current data.
func (p *Prover) Data() *Data {
	return p.data
}
