// Package shortid generates short random identifiers that survive
// being read aloud or copied by hand: uppercase letters and digits with
// the visually confusable characters 0, O, 1, I and l removed.
package shortid

import (
	"math/rand"
	"sync"
	"time"
)

// Alphabet is the unambiguous symbol set identifiers are drawn from.
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// DefaultLength matches the scanner's test_id field width.
const DefaultLength = 8

// Generator draws identifiers from an explicit randomness source, so
// tests can supply a deterministic one.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator backed by src. The Generator is not
// safe for concurrent use; callers that share one must serialize.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// ID returns an identifier of the given length. Each character is drawn
// independently and uniformly from Alphabet, so repeats are allowed.
func (g *Generator) ID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = Alphabet[g.rnd.Intn(len(Alphabet))]
	}
	return string(b)
}

var (
	defaultMu  sync.Mutex
	defaultGen = NewGenerator(rand.NewSource(time.Now().UnixNano()))
)

// New returns a DefaultLength identifier from the process-wide
// generator. Safe for concurrent use.
func New() string {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultGen.ID(DefaultLength)
}
