package ports

import (
	"math/rand/v2"
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Random picks indexes for randomized presentation choices.
type Random interface {
	IntN(n int) int
}

type SystemRandom struct{}

func (SystemRandom) IntN(n int) int {
	return rand.IntN(n)
}
