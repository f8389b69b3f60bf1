package narrative

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

// fakeClock hands out manually driven tickers and records their intervals
type fakeClock struct {
	created   chan *fakeTicker
	intervals chan time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		created:   make(chan *fakeTicker, 4),
		intervals: make(chan time.Duration, 4),
	}
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	t := &fakeTicker{ch: make(chan time.Time)}
	c.intervals <- d
	c.created <- t
	return t
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
		return ""
	}
}

func TestSequencerEmitsFourMessagesAtInterval(t *testing.T) {
	clock := newFakeClock()
	seq := NewSequencer(0, WithTicker(clock.NewTicker))
	assert.Equal(t, 1500*time.Millisecond, seq.Interval())

	msgs := make(chan string, 8)
	done := make(chan int, 1)
	go func() {
		done <- seq.Run(context.Background(), func(m string) { msgs <- m })
	}()

	assert.Equal(t, "Connecting to Deep Space Network...", receive(t, msgs))

	ticker := <-clock.created
	assert.Equal(t, 1500*time.Millisecond, <-clock.intervals)

	for _, want := range DefaultMessages[1:] {
		ticker.ch <- time.Now()
		assert.Equal(t, want, receive(t, msgs))
	}

	require.Equal(t, 4, <-done)
	assert.True(t, ticker.isStopped())
	assert.Empty(t, msgs)
}

func TestSequencerStopsWhenContextCancelled(t *testing.T) {
	clock := newFakeClock()
	seq := NewSequencer(DefaultInterval, WithTicker(clock.NewTicker))

	ctx, cancel := context.WithCancel(context.Background())
	msgs := make(chan string, 8)
	done := make(chan int, 1)
	go func() {
		done <- seq.Run(ctx, func(m string) { msgs <- m })
	}()

	receive(t, msgs)
	ticker := <-clock.created
	ticker.ch <- time.Now()
	assert.Equal(t, "Receiving light curve data stream...", receive(t, msgs))

	cancel()
	require.Equal(t, 2, <-done)
	assert.True(t, ticker.isStopped())
	assert.Empty(t, msgs)
}

func TestSequencerWithCancelledContextEmitsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	n := NewSequencer(time.Millisecond).Run(ctx, func(string) { called = true })
	assert.Equal(t, 0, n)
	assert.False(t, called)
}

func TestSequencerRealTicker(t *testing.T) {
	const interval = 20 * time.Millisecond
	seq := NewSequencer(interval)

	var stamps []time.Time
	n := seq.Run(context.Background(), func(string) { stamps = append(stamps, time.Now()) })

	require.Equal(t, 4, n)
	require.Len(t, stamps, 4)
	for i := 1; i < len(stamps); i++ {
		// tickers may fire a little early relative to our timestamps, never a full tick
		assert.GreaterOrEqual(t, stamps[i].Sub(stamps[i-1]), interval/2)
	}
}

func TestSequencerCustomMessages(t *testing.T) {
	seq := NewSequencer(time.Millisecond, WithMessages([]string{"only"}))

	var got []string
	n := seq.Run(context.Background(), func(m string) { got = append(got, m) })
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"only"}, got)
}

type cycleFacts struct {
	mu    sync.Mutex
	facts []string
	next  int
}

func (c *cycleFacts) Random() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.facts[c.next%len(c.facts)]
	c.next++
	return f
}

func TestRotatorEmitsUntilCancelled(t *testing.T) {
	clock := newFakeClock()
	facts := &cycleFacts{facts: []string{"a", "b", ""}}
	rot := NewRotator(facts, 0, WithTicker(clock.NewTicker))

	ctx, cancel := context.WithCancel(context.Background())
	msgs := make(chan string, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		rot.Run(ctx, func(m string) { msgs <- m })
	}()

	assert.Equal(t, "a", receive(t, msgs))
	ticker := <-clock.created
	assert.Equal(t, 10*time.Second, <-clock.intervals)

	ticker.ch <- time.Now()
	assert.Equal(t, "b", receive(t, msgs))

	// the empty fact is skipped
	ticker.ch <- time.Now()
	ticker.ch <- time.Now()
	assert.Equal(t, "a", receive(t, msgs))

	cancel()
	<-done
	assert.True(t, ticker.isStopped())
}
