package narrative

import (
	"context"
	"time"
)

// DefaultFactInterval is how long each fun fact stays on screen
const DefaultFactInterval = 10 * time.Second

// FactSource hands out one fact at a time
type FactSource interface {
	Random() string
}

// Rotator shows a new fun fact every interval for as long as its context lives
type Rotator struct {
	facts     FactSource
	interval  time.Duration
	newTicker TickerFunc
}

// NewRotator creates a rotator. A non-positive interval uses DefaultFactInterval.
func NewRotator(facts FactSource, interval time.Duration, opts ...Option) *Rotator {
	if interval <= 0 {
		interval = DefaultFactInterval
	}
	o := buildOptions(opts)
	return &Rotator{
		facts:     facts,
		interval:  interval,
		newTicker: o.newTicker,
	}
}

// Run emits a fact immediately and then once per tick until ctx is done.
// Empty facts are skipped.
func (r *Rotator) Run(ctx context.Context, emit func(string)) {
	if ctx.Err() != nil {
		return
	}
	if fact := r.facts.Random(); fact != "" {
		emit(fact)
	}

	ticker := r.newTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if ctx.Err() != nil {
				return
			}
			if fact := r.facts.Random(); fact != "" {
				emit(fact)
			}
		}
	}
}
