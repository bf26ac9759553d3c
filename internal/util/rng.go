package util

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// NewUnseeded returns a generator seeded from the clock, for callers that did not inject one.
func NewUnseeded() *rand.Rand {
	return New(time.Now().UnixNano())
}

// Derive gives worker i of a batch its own stream.
func Derive(seed int64, i int) *rand.Rand {
	return New(seed + int64(i)*7919)
}

func NewBattleID() string {
	return uuid.NewString()
}
