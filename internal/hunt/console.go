// Package hunt runs star-system hunts against the classifier and keeps the
// console state that the page renders.
package hunt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"echolens/internal/charts"
	"echolens/internal/logger"
	"echolens/internal/models"
	"echolens/internal/narrative"
	"echolens/internal/view"
)

var (
	// ErrHuntInProgress is returned when a hunt is requested while another is loading
	ErrHuntInProgress = errors.New("a hunt is already in progress")
	// ErrClosed is returned by a console after Close
	ErrClosed = errors.New("console is closed")
)

// DefaultRevealDelay is the pause between the detection message and the chart reveal
const DefaultRevealDelay = time.Second

const subscriberBuffer = 8

// Classifier classifies one star system
type Classifier interface {
	FetchPrediction(ctx context.Context, rec models.StarSystemRecord) (*models.PredictionResult, error)
}

// Catalog resolves a star system identifier
type Catalog interface {
	Lookup(id string) (models.StarSystemRecord, error)
}

// Recorder receives every successful hunt. Record must not block.
type Recorder interface {
	Record(rec models.HuntRecord)
}

// Config wires a Console
type Config struct {
	Catalog    Catalog
	Classifier Classifier
	Recorder   Recorder
	// Sequencer drives the loading messages; nil uses the default messages and interval
	Sequencer *narrative.Sequencer
	// RevealDelay of zero reveals the chart and profile as soon as the hunt settles
	RevealDelay time.Duration
	Logger      *logger.Logger
}

type afterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Console is the state machine behind one console page.
// At most one hunt is in flight at a time.
type Console struct {
	catalog     Catalog
	classifier  Classifier
	recorder    Recorder
	sequencer   *narrative.Sequencer
	revealDelay time.Duration
	after       afterFunc
	now         func() time.Time
	log         *logger.Logger

	mu          sync.Mutex
	state       UIState
	stopReveal  func() bool
	subscribers map[int]chan UIState
	nextSub     int
	closed      bool
}

// NewConsole creates an idle console
func NewConsole(cfg Config) *Console {
	seq := cfg.Sequencer
	if seq == nil {
		seq = narrative.NewSequencer(narrative.DefaultInterval)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	delay := cfg.RevealDelay
	if delay < 0 {
		delay = 0
	}

	return &Console{
		catalog:     cfg.Catalog,
		classifier:  cfg.Classifier,
		recorder:    cfg.Recorder,
		sequencer:   seq,
		revealDelay: delay,
		after:       timeAfterFunc,
		now:         time.Now,
		log:         log.WithComponent("hunt"),
		state:       initialState(),
		subscribers: make(map[int]chan UIState),
	}
}

// State returns the current snapshot
func (c *Console) State() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Hunt classifies the star system id and blocks until the request settles.
// The returned state is the settled one; on success the chart and profile
// follow after the reveal delay unless a newer hunt has started by then.
// An unknown id leaves the console untouched.
func (c *Console) Hunt(ctx context.Context, id string) (UIState, error) {
	rec, err := c.catalog.Lookup(id)
	if err != nil {
		return c.State(), err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return UIState{}, ErrClosed
	}
	if c.state.Phase == PhaseLoading {
		state := c.state
		c.mu.Unlock()
		return state, ErrHuntInProgress
	}
	c.cancelRevealLocked()
	c.state.Seq++
	seq := c.state.Seq
	c.state.Phase = PhaseLoading
	c.state.TriggerEnabled = false
	c.state.MissionStatus = StatusTransmitting
	c.state.SystemID = id
	c.publishLocked()
	c.mu.Unlock()

	c.log.Info("Hunt started", map[string]interface{}{"system": id, "seq": seq})
	started := c.now()

	narrativeCtx, stopNarrative := context.WithCancel(ctx)
	narrativeDone := make(chan struct{})
	go func() {
		defer close(narrativeDone)
		c.sequencer.Run(narrativeCtx, func(msg string) {
			c.setPlaceholder(seq, msg)
		})
	}()

	result, err := c.classifier.FetchPrediction(ctx, rec)

	// the settled placeholder must not be overwritten by a late narrative message
	stopNarrative()
	<-narrativeDone

	c.mu.Lock()
	c.state.TriggerEnabled = true
	if err != nil {
		c.state.Phase = PhaseError
		c.state.MissionStatus = StatusFailed
		c.state.Placeholder = PlaceholderFailure
		c.publishLocked()
		state := c.state
		c.mu.Unlock()

		c.log.Error("Hunt failed", err, map[string]interface{}{"system": id, "seq": seq})
		return state, fmt.Errorf("hunt for %q: %w", id, err)
	}

	c.state.Phase = PhaseSuccess
	c.state.MissionStatus = StatusComplete
	c.state.Placeholder = PlaceholderDetected
	c.publishLocked()
	c.scheduleRevealLocked(seq, *result)
	state := c.state
	c.mu.Unlock()

	c.log.Info("Hunt complete", map[string]interface{}{
		"system":     id,
		"seq":        seq,
		"prediction": result.Prediction,
		"elapsed_ms": c.now().Sub(started).Milliseconds(),
	})

	if c.recorder != nil {
		c.recorder.Record(models.HuntRecord{
			SystemID:  id,
			Request:   rec,
			Result:    *result,
			Timestamp: c.now(),
		})
	}
	return state, nil
}

func (c *Console) setPlaceholder(seq uint64, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Seq != seq || c.state.Phase != PhaseLoading {
		return
	}
	c.state.Placeholder = msg
	c.publishLocked()
}

func (c *Console) scheduleRevealLocked(seq uint64, result models.PredictionResult) {
	if c.revealDelay == 0 {
		c.revealLocked(seq, result)
		return
	}
	c.stopReveal = c.after(c.revealDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.revealLocked(seq, result)
	})
}

func (c *Console) revealLocked(seq uint64, result models.PredictionResult) {
	if c.closed || c.state.Seq != seq {
		c.log.Debug("Dropping stale reveal", map[string]interface{}{"seq": seq, "current": c.state.Seq})
		return
	}
	if chart, err := charts.NewLightCurve(result.LightCurve); err != nil {
		c.log.Warn("Light curve not plotted", map[string]interface{}{"seq": seq, "error": err.Error()})
	} else {
		c.state.Chart = &chart
		c.state.ChartVisible = true
	}
	card := view.NewProfileCard(result)
	c.state.Profile = &card
	c.state.CardVisible = true
	c.stopReveal = nil
	c.publishLocked()
}

func (c *Console) cancelRevealLocked() {
	if c.stopReveal != nil {
		c.stopReveal()
		c.stopReveal = nil
	}
}

// Subscribe returns a channel of state snapshots, starting with the current one,
// and a function that ends the subscription. A slow reader loses intermediate
// snapshots but always gets the latest.
func (c *Console) Subscribe() (<-chan UIState, func()) {
	ch := make(chan UIState, subscriberBuffer)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = ch
	ch <- c.state

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subscribers[id]; ok {
				delete(c.subscribers, id)
				close(sub)
			}
		})
	}
}

func (c *Console) publishLocked() {
	for _, ch := range c.subscribers {
		select {
		case ch <- c.state:
			continue
		default:
		}
		// full: drop the oldest snapshot to make room for this one
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- c.state:
		default:
		}
	}
}

// Close cancels any pending reveal and ends all subscriptions
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelRevealLocked()
	for id, ch := range c.subscribers {
		delete(c.subscribers, id)
		close(ch)
	}
}
