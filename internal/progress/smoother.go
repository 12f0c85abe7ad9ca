package progress

import (
	"sync"
	"time"
)

const (
	// DefaultFactor is the per-step blending weight pulling displayed
	// values toward raw values.
	DefaultFactor = 0.08

	// DefaultInterval is the display refresh interval.
	DefaultInterval = 50 * time.Millisecond

	// displayCap keeps the displayed percentage just shy of done until the
	// raw value is effectively final.
	displayCap = 99.9

	// snapThreshold is the raw percentage at which displayed snaps to raw
	// instead of converging.
	snapThreshold = 99.5

	// convergeTolerance ends the step loop once displayed is this close to
	// a final raw value; further steps are visually indistinguishable.
	convergeTolerance = 0.05
)

// Ticker delivers display refresh ticks. It exists so tests can step the
// smoother deterministically without real time passing.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc constructs a Ticker for the given interval.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Smoother is a recurring visual-update step that pulls a tracker's
// displayed values toward its raw values with an exponential convergence
// filter, independent of network timing. It is the sole writer of the
// tracker's displayed fields.
type Smoother struct {
	tracker *Tracker
	sink    Sink

	factor    float64
	interval  time.Duration
	newTicker TickerFunc
}

// SmootherOption configures a Smoother.
type SmootherOption func(*Smoother)

// WithFactor overrides the convergence factor.
func WithFactor(f float64) SmootherOption {
	return func(s *Smoother) { s.factor = f }
}

// WithInterval overrides the display refresh interval.
func WithInterval(d time.Duration) SmootherOption {
	return func(s *Smoother) { s.interval = d }
}

// WithTickerFunc overrides the ticker source. Tests inject a manual ticker.
func WithTickerFunc(fn TickerFunc) SmootherOption {
	return func(s *Smoother) { s.newTicker = fn }
}

// NewSmoother creates a smoother for one tracker writing to one sink.
func NewSmoother(t *Tracker, sink Sink, opts ...SmootherOption) *Smoother {
	s := &Smoother{
		tracker:   t,
		sink:      sink,
		factor:    DefaultFactor,
		interval:  DefaultInterval,
		newTicker: newTimeTicker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs the step loop in a goroutine and returns a stop function.
// The loop also ends on its own once further steps would be
// indistinguishable. Stop waits for any in-flight step to finish and is
// safe to call more than once.
func (s *Smoother) Start() (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	var once sync.Once

	go func() {
		defer close(exited)
		tk := s.newTicker(s.interval)
		defer tk.Stop()
		for {
			select {
			case <-done:
				return
			case <-tk.C():
				if !s.Step() {
					return
				}
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
		<-exited
	}
}

// Step applies one convergence pass and publishes the result to the sink.
// It reports whether further steps are still needed.
func (s *Smoother) Step() bool {
	t := s.tracker
	t.mu.Lock()

	if !t.active {
		// A completed transfer still gets its final snap so the bar
		// visibly reaches 100% exactly when the transfer finished.
		if t.rawPercent >= snapThreshold {
			t.displayedPercent = t.rawPercent
			t.displayedBytes = float64(t.rawBytes)
			snap := t.snapshotLocked()
			t.mu.Unlock()
			s.publish(snap)
			return false
		}
		t.mu.Unlock()
		return false
	}

	if t.indeterminate {
		t.mu.Unlock()
		s.sink.SetIndeterminate()
		return true
	}

	t.displayedBytes += (float64(t.rawBytes) - t.displayedBytes) * s.factor
	t.displayedPercent += (t.rawPercent - t.displayedPercent) * s.factor

	if t.rawPercent >= snapThreshold {
		t.displayedPercent = t.rawPercent
		t.displayedBytes = float64(t.rawBytes)
	} else if t.displayedPercent > displayCap {
		t.displayedPercent = displayCap
	}

	snap := t.snapshotLocked()
	converged := t.rawPercent >= snapThreshold && t.rawPercent-t.displayedPercent <= convergeTolerance
	t.mu.Unlock()

	s.publish(snap)
	return !converged
}

// Finish forces the displayed state onto the raw state and publishes it.
// The orchestrator calls this after MarkComplete so the 100% state is shown
// even if the step loop already ended.
func (s *Smoother) Finish() {
	t := s.tracker
	t.mu.Lock()
	t.displayedPercent = t.rawPercent
	t.displayedBytes = float64(t.rawBytes)
	snap := t.snapshotLocked()
	t.mu.Unlock()
	s.publish(snap)
}

func (s *Smoother) publish(snap Snapshot) {
	s.sink.SetPercent(snap.DisplayedPercent)
	s.sink.SetDetail(Detail(snap))
}

// Detail renders the secondary presentation line for a snapshot, e.g.
// "1.2 MB / 3.4 MB @ 512 KB/s".
func Detail(snap Snapshot) string {
	if snap.TotalBytes <= 0 {
		return ""
	}
	d := FormatBytes(int64(snap.DisplayedBytes)) + " / " + FormatBytes(snap.TotalBytes)
	if snap.Speed > 0 {
		d += " @ " + FormatBytes(int64(snap.Speed)) + "/s"
	}
	return d
}
