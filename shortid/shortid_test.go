package shortid

import (
	"math/rand"
	"strings"
	"testing"
)

func TestIDLength(t *testing.T) {
	g := NewGenerator(rand.NewSource(1))
	for _, n := range []int{1, 8, 16} {
		if got := len(g.ID(n)); got != n {
			t.Errorf("len(ID(%d)) = %d", n, got)
		}
	}
}

func TestIDAvoidsConfusableCharacters(t *testing.T) {
	g := NewGenerator(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		id := g.ID(DefaultLength)
		if strings.ContainsAny(id, "0O1Il") {
			t.Fatalf("id %q contains a confusable character", id)
		}
		for _, c := range id {
			if !strings.ContainsRune(Alphabet, c) {
				t.Fatalf("id %q contains %q, not in the alphabet", id, c)
			}
		}
	}
}

func TestIDDeterministicWithSeededSource(t *testing.T) {
	a := NewGenerator(rand.NewSource(7))
	b := NewGenerator(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		if x, y := a.ID(DefaultLength), b.ID(DefaultLength); x != y {
			t.Fatalf("same seed diverged at draw %d: %q != %q", i, x, y)
		}
	}
}

func TestNew(t *testing.T) {
	id := New()
	if len(id) != DefaultLength {
		t.Errorf("len(New()) = %d, want %d", len(id), DefaultLength)
	}
	if strings.ContainsAny(id, "0O1Il") {
		t.Errorf("New() = %q contains a confusable character", id)
	}
}
