// Package narrative drives the staged loading messages and the fun-fact rotation.
package narrative

import (
	"context"
	"time"
)

// DefaultInterval is the spacing between loading messages
const DefaultInterval = 1500 * time.Millisecond

// DefaultMessages are shown in order while a hunt is in flight
var DefaultMessages = []string{
	"Connecting to Deep Space Network...",
	"Receiving light curve data stream...",
	"ΦGrid AI Core analyzing signatures...",
	"Searching for transit echoes...",
}

// Ticker is the part of time.Ticker the sequencer needs
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d
type TickerFunc func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker wraps time.NewTicker
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Sequencer emits a fixed list of messages at a constant interval
type Sequencer struct {
	messages  []string
	interval  time.Duration
	newTicker TickerFunc
}

// Option configures a Sequencer or a Rotator
type Option func(*options)

type options struct {
	newTicker TickerFunc
	messages  []string
}

// WithTicker replaces the ticker factory
func WithTicker(fn TickerFunc) Option {
	return func(o *options) { o.newTicker = fn }
}

// WithMessages replaces the message list
func WithMessages(messages []string) Option {
	return func(o *options) { o.messages = messages }
}

func buildOptions(opts []Option) options {
	o := options{newTicker: NewTicker, messages: DefaultMessages}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewSequencer creates a sequencer. A non-positive interval uses DefaultInterval.
func NewSequencer(interval time.Duration, opts ...Option) *Sequencer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	o := buildOptions(opts)
	messages := make([]string, len(o.messages))
	copy(messages, o.messages)
	return &Sequencer{
		messages:  messages,
		interval:  interval,
		newTicker: o.newTicker,
	}
}

// Interval returns the spacing between messages
func (s *Sequencer) Interval() time.Duration {
	return s.interval
}

// Run emits the first message immediately and one more per tick. It returns
// after the last message or once ctx is done, reporting how many messages were
// emitted. emit is never called after Run returns.
func (s *Sequencer) Run(ctx context.Context, emit func(string)) int {
	if len(s.messages) == 0 || ctx.Err() != nil {
		return 0
	}

	emit(s.messages[0])
	if len(s.messages) == 1 {
		return 1
	}

	ticker := s.newTicker(s.interval)
	defer ticker.Stop()

	emitted := 1
	for emitted < len(s.messages) {
		select {
		case <-ctx.Done():
			return emitted
		case <-ticker.C():
			// a tick and a cancellation can be ready together
			if ctx.Err() != nil {
				return emitted
			}
			emit(s.messages[emitted])
			emitted++
		}
	}
	return emitted
}
