// Package generator produces the random choices made while typing.
package generator

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// MistakeAlphabet is the set of characters used for mistake bursts.
const MistakeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.,:;!?@#$%^&*"

// Generator is a goroutine-safe random source for mistakes and jitter.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Float64()
}

// Chance reports whether an event with probability p happens.
func (g *Generator) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return g.Float64() < p
}

// MistakeLen picks a burst length uniformly from [minLen, maxLen].
func (g *Generator) MistakeLen(minLen, maxLen int) int {
	if maxLen <= minLen {
		return minLen
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return minLen + g.rnd.Intn(maxLen-minLen+1)
}

// Mistake returns n characters drawn uniformly from MistakeAlphabet.
func (g *Generator) Mistake(n int) string {
	if n <= 0 {
		return ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(MistakeAlphabet[g.rnd.Intn(len(MistakeAlphabet))])
	}
	return b.String()
}
