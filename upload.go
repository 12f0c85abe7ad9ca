package adminctl

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/tgstore/adminctl/internal/api"
	"github.com/tgstore/adminctl/internal/progress"
)

// Media describes one candidate file transfer.
type Media struct {
	// Name is the file name shown in progress labels and sent to the server.
	Name string
	// Size is the expected byte count, or -1 when unknown (the transfer
	// then runs in indeterminate mode).
	Size int64
	// Body is the file content. It is read exactly once.
	Body io.Reader
}

// Job is the ordered pair of candidate transfers belonging to one product
// save: a primary image and a secondary video, either of which may be nil.
type Job struct {
	Image *Media
	Video *Media
}

type transferTask struct {
	kind  api.MediaKind
	media *Media
}

func (j Job) tasks() []transferTask {
	var ts []transferTask
	if j.Image != nil {
		ts = append(ts, transferTask{api.MediaImage, j.Image})
	}
	if j.Video != nil {
		ts = append(ts, transferTask{api.MediaVideo, j.Video})
	}
	return ts
}

// UploadMedia runs one upload job against a product: the image first, then
// the video, strictly sequentially. With no files present it returns nil
// immediately without touching the transport. The first failing transfer
// aborts the remaining chain; a nil return means every present transfer
// succeeded. The job resolves exactly once either way.
//
// Starting a new job supersedes any job still in flight: the old transfer
// is not canceled, but its late callbacks are discarded and the old call
// returns ErrSuperseded.
func (c *Client) UploadMedia(ctx context.Context, productID int64, job Job) error {
	gen := c.jobGen.Add(1)
	jobID := uuid.NewString()

	tasks := job.tasks()
	if len(tasks) == 0 {
		c.logger.Debug("no media attached, nothing to upload",
			"job", jobID, "product", productID)
		return nil
	}

	// All presentation writes go through a generation-checked sink so a
	// superseded job can no longer touch the display.
	sink := &genSink{c: c, gen: gen, next: c.sink}
	sink.SetVisible(true)
	defer func() {
		sink.ClearPercent()
		sink.SetVisible(false)
	}()

	for _, task := range tasks {
		if err := c.runTransfer(ctx, gen, jobID, productID, sink, task); err != nil {
			// First failure is terminal for the job; the secondary
			// transfer, if any, is never attempted.
			return err
		}
	}

	c.logger.Info("media upload complete",
		"job", jobID, "product", productID, "files", len(tasks))
	return nil
}

func (c *Client) runTransfer(ctx context.Context, gen uint64, jobID string, productID int64, sink Sink, task transferTask) error {
	name := task.media.Name
	if !api.MatchesKind(name, task.kind) {
		return fmt.Errorf("%s %q: %w", task.kind, name, ErrUnsupportedMedia)
	}

	label := fmt.Sprintf("%s: %s", task.kind, progress.TruncateLabel(name, 0))
	tracker := progress.NewTracker()
	tracker.Begin(task.media.Size, label)
	sink.SetLabel(label)

	smOpts := []progress.SmootherOption{progress.WithInterval(c.refreshInterval)}
	if c.newTicker != nil {
		smOpts = append(smOpts, progress.WithTickerFunc(c.newTicker))
	}
	sm := progress.NewSmoother(tracker, sink, smOpts...)
	stop := sm.Start()

	onProgress := func(transferred, total int64, at time.Time) {
		if c.jobGen.Load() != gen {
			return // stale job, result discarded
		}
		tracker.Observe(transferred, total, at)
	}

	c.logger.Debug("dispatching transfer",
		"job", jobID, "kind", task.kind, "file", name, "size", task.media.Size)

	err := c.transport.UploadMedia(ctx, api.UploadRequest{
		ProductID: productID,
		Kind:      task.kind,
		Filename:  name,
		Size:      task.media.Size,
		Body:      task.media.Body,
	}, onProgress)

	if c.jobGen.Load() != gen {
		stop()
		c.logger.Debug("transfer resolved after job was superseded",
			"job", jobID, "kind", task.kind)
		return ErrSuperseded
	}

	if err != nil {
		tracker.MarkFailed()
		stop()
		c.logger.Warn("transfer failed",
			"job", jobID, "kind", task.kind, "file", name, "error", err)
		return fmt.Errorf("upload %s %q: %w", task.kind, name, err)
	}

	tracker.MarkComplete(task.media.Size)
	stop()
	sm.Finish()
	if c.holdDelay > 0 {
		// Let the finished bar register before it is cleared or reused.
		c.sleep(c.holdDelay)
	}
	return nil
}

// genSink forwards presentation updates only while its job is the current
// generation, so stale smoother ticks and late completions cannot clobber a
// newer job's display.
type genSink struct {
	c    *Client
	gen  uint64
	next Sink
}

func (s *genSink) live() bool { return s.c.jobGen.Load() == s.gen }

func (s *genSink) SetVisible(v bool) {
	if s.live() {
		s.next.SetVisible(v)
	}
}

func (s *genSink) SetPercent(p float64) {
	if s.live() {
		s.next.SetPercent(p)
	}
}

func (s *genSink) SetIndeterminate() {
	if s.live() {
		s.next.SetIndeterminate()
	}
}

func (s *genSink) ClearPercent() {
	if s.live() {
		s.next.ClearPercent()
	}
}

func (s *genSink) SetLabel(label string) {
	if s.live() {
		s.next.SetLabel(label)
	}
}

func (s *genSink) SetDetail(detail string) {
	if s.live() {
		s.next.SetDetail(detail)
	}
}
