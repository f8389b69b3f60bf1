package catalog

import (
	"math/rand"
	"strings"
	"sync"
)

var builtinFacts = []string{
	"The TRAPPIST-1 system has 7 Earth-sized planets, 3 of which could have liquid water.",
	"Kepler-62e is a 'Super-Earth', potentially a water world completely covered by ocean.",
	"Proxima Centauri b is our closest exoplanet neighbor, 'only' 4.2 light-years away.",
	"Some exoplanets are 'rogue planets' that drift through space without a star to orbit.",
}

// Facts is the pool of fun facts shown beside the selection control.
// It is safe for concurrent use.
type Facts struct {
	mu    sync.RWMutex
	facts []string
	rng   *rand.Rand
}

// DefaultFacts returns a pool seeded with the built-in facts
func DefaultFacts() *Facts {
	return NewFacts(builtinFacts, rand.New(rand.NewSource(rand.Int63())))
}

// NewFacts creates a pool from facts using rng for selection
func NewFacts(facts []string, rng *rand.Rand) *Facts {
	f := &Facts{rng: rng}
	f.Extend(facts...)
	return f
}

// Extend appends non-empty facts that are not already in the pool
func (f *Facts) Extend(facts ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	added := 0
	for _, fact := range facts {
		fact = strings.TrimSpace(fact)
		if fact == "" || f.containsLocked(fact) {
			continue
		}
		f.facts = append(f.facts, fact)
		added++
	}
	return added
}

func (f *Facts) containsLocked(fact string) bool {
	for _, existing := range f.facts {
		if existing == fact {
			return true
		}
	}
	return false
}

// Random returns a uniformly chosen fact, or "" for an empty pool
func (f *Facts) Random() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.facts) == 0 {
		return ""
	}
	return f.facts[f.rng.Intn(len(f.facts))]
}

// All returns a copy of the pool
func (f *Facts) All() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]string, len(f.facts))
	copy(out, f.facts)
	return out
}
