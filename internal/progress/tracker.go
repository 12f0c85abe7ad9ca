package progress

import (
	"math"
	"sync"
	"time"
)

// minSampleInterval is the shortest gap between transport events that
// produces a new speed estimate. Events arriving faster than this retain
// the previous estimate to suppress noise from bursty deliveries.
const minSampleInterval = 50 * time.Millisecond

// maxRawPercent caps the raw percentage until the server acknowledges the
// transfer. The bar must never visually finish ahead of MarkComplete.
const maxRawPercent = 99

// Tracker holds the raw and display-facing metrics of one active transfer.
//
// Transport events are the only writers of raw fields (via Observe), the
// smoother step is the only writer of displayed fields. The tracker is
// created when a transfer begins and discarded when it resolves; a new
// upload job always starts from a fresh tracker.
type Tracker struct {
	mu sync.Mutex

	rawBytes   int64
	totalBytes int64 // -1 when unknown
	rawPercent float64
	speed      float64 // bytes/sec, 0 until a usable sample arrives

	displayedBytes   float64
	displayedPercent float64

	label         string
	active        bool
	indeterminate bool

	lastSample time.Time
	lastBytes  int64
}

// Snapshot is a point-in-time copy of a tracker's state.
type Snapshot struct {
	RawBytes   int64
	TotalBytes int64
	RawPercent float64
	Speed      float64

	DisplayedBytes   float64
	DisplayedPercent float64

	Label         string
	Active        bool
	Indeterminate bool
}

// NewTracker returns an inactive tracker. Call Begin to start a transfer.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin initializes a fresh state for a new transfer and marks it active.
// Pass total -1 (or 0) when the expected size is unknown; the tracker then
// runs in indeterminate mode until a total is learned or the transfer ends.
func (t *Tracker) Begin(total int64, label string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rawBytes = 0
	t.rawPercent = 0
	t.speed = 0
	t.displayedBytes = 0
	t.displayedPercent = 0
	t.lastSample = time.Time{}
	t.lastBytes = 0
	t.label = label
	t.active = true

	if total > 0 {
		t.totalBytes = total
		t.indeterminate = false
	} else {
		t.totalBytes = -1
		t.indeterminate = true
	}
}

// Observe updates raw fields from a transport progress event.
// Events for an inactive tracker are dropped.
func (t *Tracker) Observe(loaded, total int64, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}

	if total > 0 && t.totalBytes <= 0 {
		t.totalBytes = total
		t.indeterminate = false
	}

	if t.lastSample.IsZero() {
		t.lastSample = at
		t.lastBytes = loaded
	} else if elapsed := at.Sub(t.lastSample).Seconds(); elapsed >= minSampleInterval.Seconds() {
		if loaded > t.lastBytes {
			t.speed = float64(loaded-t.lastBytes) / elapsed
		}
		t.lastSample = at
		t.lastBytes = loaded
	}

	t.rawBytes = loaded
	if t.totalBytes > 0 {
		pct := math.Round(float64(loaded)/float64(t.totalBytes)*1000) / 10
		if pct > maxRawPercent {
			pct = maxRawPercent
		}
		t.rawPercent = pct
	}
}

// MarkComplete forces the raw state to the acknowledged final values and
// deactivates the tracker. Pass sent -1 to keep the last observed byte count.
func (t *Tracker) MarkComplete(sent int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sent >= 0 {
		t.rawBytes = sent
	}
	if t.totalBytes <= 0 && t.rawBytes > 0 {
		t.totalBytes = t.rawBytes
	}
	t.rawPercent = 100
	t.indeterminate = false
	t.active = false
}

// MarkFailed deactivates the tracker without touching the percentage.
// The failure reason travels with the caller's error, not the tracker.
func (t *Tracker) MarkFailed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	return Snapshot{
		RawBytes:         t.rawBytes,
		TotalBytes:       t.totalBytes,
		RawPercent:       t.rawPercent,
		Speed:            t.speed,
		DisplayedBytes:   t.displayedBytes,
		DisplayedPercent: t.displayedPercent,
		Label:            t.label,
		Active:           t.active,
		Indeterminate:    t.indeterminate,
	}
}
