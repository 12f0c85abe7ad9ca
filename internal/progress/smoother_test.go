package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSink struct {
	mu            sync.Mutex
	percents      []float64
	details       []string
	indeterminate int
}

func (s *recordSink) SetVisible(bool) {}

func (s *recordSink) SetPercent(p float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.percents = append(s.percents, p)
}

func (s *recordSink) SetIndeterminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indeterminate++
}

func (s *recordSink) ClearPercent() {}

func (s *recordSink) SetLabel(string) {}

func (s *recordSink) SetDetail(d string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = append(s.details, d)
}

func (s *recordSink) percentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.percents)
}

func (s *recordSink) lastPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.percents) == 0 {
		return -1
	}
	return s.percents[len(s.percents)-1]
}

func TestSmoother_ConvergesMonotonically(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Begin(1000, "f")
	tr.Observe(500, 1000, time.Now())

	sink := &recordSink{}
	sm := NewSmoother(tr, sink)

	for i := 0; i < 200; i++ {
		assert.True(t, sm.Step())
	}

	prev := -1.0
	for _, p := range sink.percents {
		assert.GreaterOrEqual(t, p, prev)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 100.0)
		// Displayed lags raw, never overtakes it.
		assert.LessOrEqual(t, p, 50.0)
		prev = p
	}
	assert.InDelta(t, 50.0, sink.lastPercent(), 0.01)
}

func TestSmoother_FirstStepBlendsByFactor(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Begin(1000, "f")
	tr.Observe(500, 1000, time.Now())

	sink := &recordSink{}
	sm := NewSmoother(tr, sink)
	sm.Step()

	require.Len(t, sink.percents, 1)
	assert.InDelta(t, 50.0*DefaultFactor, sink.percents[0], 0.001)
}

func TestSmoother_SnapsToRawOnCompletion(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Begin(1000, "f")
	tr.Observe(1000, 1000, time.Now())

	sink := &recordSink{}
	sm := NewSmoother(tr, sink)
	sm.Step()
	assert.Less(t, sink.lastPercent(), 99.5)

	tr.MarkComplete(1000)
	assert.False(t, sm.Step())
	assert.InDelta(t, 100.0, sink.lastPercent(), 0.001)
}

func TestSmoother_StopsWhenFailed(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Begin(1000, "f")
	tr.Observe(400, 1000, time.Now())
	tr.MarkFailed()

	sink := &recordSink{}
	sm := NewSmoother(tr, sink)

	// Inactive without a final raw value: no further steps, no publish.
	assert.False(t, sm.Step())
	assert.Zero(t, sink.percentCount())
}

func TestSmoother_IndeterminateSkipsNumericConvergence(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Begin(-1, "f")
	tr.Observe(100, -1, time.Now())

	sink := &recordSink{}
	sm := NewSmoother(tr, sink)

	assert.True(t, sm.Step())
	assert.True(t, sm.Step())
	assert.Equal(t, 2, sink.indeterminate)
	assert.Zero(t, sink.percentCount())
}

func TestSmoother_FinishPublishesFinalState(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Begin(1000, "f")
	tr.Observe(1000, 1000, time.Now())
	tr.MarkComplete(1000)

	sink := &recordSink{}
	sm := NewSmoother(tr, sink)
	sm.Finish()

	assert.InDelta(t, 100.0, sink.lastPercent(), 0.001)
}

func TestSmoother_DetailShowsBytesAndRate(t *testing.T) {
	t.Parallel()

	snap := Snapshot{
		DisplayedBytes: 1536,
		TotalBytes:     3 * 1024 * 1024,
		Speed:          512 * 1024,
	}
	assert.Equal(t, "1.5 KB / 3 MB @ 512 KB/s", Detail(snap))

	assert.Empty(t, Detail(Snapshot{TotalBytes: -1, RawBytes: 100}))
}

type manualTicker struct{ ch chan time.Time }

func (m manualTicker) C() <-chan time.Time { return m.ch }
func (m manualTicker) Stop()               {}

func TestSmoother_StartStepsOnTicks(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Begin(1000, "f")
	tr.Observe(500, 1000, time.Now())

	sink := &recordSink{}
	tick := manualTicker{ch: make(chan time.Time)}
	sm := NewSmoother(tr, sink, WithTickerFunc(func(time.Duration) Ticker { return tick }))

	stop := sm.Start()
	defer stop()

	for i := 0; i < 3; i++ {
		tick.ch <- time.Now()
	}
	require.Eventually(t, func() bool { return sink.percentCount() >= 3 },
		time.Second, time.Millisecond)

	// Stop twice must be safe.
	stop()
	stop()
}
