package progress

import (
	"math"
	"strconv"
	"strings"
)

// DefaultLabelLength is the longest file name shown in a transfer label.
const DefaultLabelLength = 42

const ellipsis = "…"

// minTruncatedStem is the shortest prefix worth keeping when preserving an
// extension; anything shorter falls back to straight truncation.
const minTruncatedStem = 8

// FormatBytes renders a byte count with the largest fitting 1024-based unit.
// The bytes tier has no decimals; larger tiers get one decimal with a
// trailing ".0" trimmed.
func FormatBytes(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}
	v := float64(n)
	for _, unit := range []string{"KB", "MB", "GB"} {
		v /= 1024
		if v < 1024 || unit == "GB" {
			s := strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
			return strings.TrimSuffix(s, ".0") + " " + unit
		}
	}
	return "" // unreachable
}

// TruncateLabel shortens a file name to at most max runes, keeping a short
// trailing extension visible when one exists. Pass max <= 0 for the default.
func TruncateLabel(name string, max int) string {
	if max <= 0 {
		max = DefaultLabelLength
	}
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}

	var ext string
	if i := strings.LastIndex(name, "."); i != -1 && len(name)-i <= 5 {
		ext = name[i:]
	}

	stem := max - len([]rune(ext)) - 1
	if ext == "" || stem < minTruncatedStem {
		return string(runes[:max-1]) + ellipsis
	}
	return string(runes[:stem]) + ellipsis + ext
}
