package shared

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrOverflow         = errors.New("step counter overflow")
	ErrDataMismatch     = errors.New("proof data mismatch")
	ErrInsufficientWork = errors.New("insufficient work")
	ErrKeyOutOfRange    = errors.New("key out of range")
)

// InsufficientWorkError is returned when the data, after replaying the key, doesn't hash to
// enough leading zero bits.
type InsufficientWorkError struct {
	Key        uint64
	Score      uint
	Difficulty Difficulty
}

func (err InsufficientWorkError) Error() string {
	return fmt.Sprintf("insufficient work for key %d; expected: >= %d leading zero bits, found: %d",
		err.Key, err.Difficulty, err.Score)
}

func (err InsufficientWorkError) Is(target error) bool {
	return target == ErrInsufficientWork
}
