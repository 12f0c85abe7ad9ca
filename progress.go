package adminctl

import "github.com/tgstore/adminctl/internal/progress"

// Sink receives presentation updates from upload jobs: visibility, smoothed
// percentages, labels, and detail lines. Implementations own the rendering.
// Re-exported from the progress package.
type Sink = progress.Sink

// NopSink discards all presentation updates.
type NopSink = progress.NopSink

// FormatBytes renders a byte count with the largest fitting 1024-based unit,
// e.g. 1536 -> "1.5 KB". Useful for custom Sink implementations.
func FormatBytes(n int64) string {
	return progress.FormatBytes(n)
}

// TruncateLabel shortens a file name for display, keeping a short trailing
// extension visible. Pass max <= 0 for the default length.
func TruncateLabel(name string, max int) string {
	return progress.TruncateLabel(name, max)
}
