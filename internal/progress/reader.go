// Package progress tracks upload transfer state and smooths it for display.
package progress

import (
	"io"
	"time"
)

// Func is called to report progress during I/O operations.
// The total is -1 when the expected size is unknown.
type Func func(transferred, total int64, at time.Time)

// Reader wraps an io.Reader to track bytes read and report progress.
type Reader struct {
	reader io.Reader
	fn     Func
	total  int64
	read   int64
	now    func() time.Time
}

// NewReader creates a progress-tracking reader.
// The total parameter should be the expected size (-1 if unknown).
// The callback is called after each Read with cumulative bytes, the total,
// and the time the read completed.
func NewReader(r io.Reader, total int64, fn Func) *Reader {
	return &Reader{
		reader: r,
		fn:     fn,
		total:  total,
		now:    time.Now,
	}
}

// Read implements io.Reader and reports progress after each read.
func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.reader.Read(p)
	if n > 0 {
		r.read += int64(n)
		if r.fn != nil {
			r.fn(r.read, r.total, r.now())
		}
	}
	return n, err
}

// Close closes the underlying reader if it implements io.Closer.
func (r *Reader) Close() error {
	if closer, ok := r.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
