package progress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"zero", 0, "0 B"},
		{"bytes tier has no decimals", 512, "512 B"},
		{"kb tier keeps one decimal", 1536, "1.5 KB"},
		{"trailing zero trimmed", 1024 * 1024, "1 MB"},
		{"just below next tier", 1023, "1023 B"},
		{"mb tier", 5*1024*1024 + 300*1024, "5.3 MB"},
		{"gb tier", 1127428915, "1.1 GB"},
		{"huge values stay in gb", 5 * 1024 * 1024 * 1024 * 1024, "5120 GB"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatBytes(tt.n))
		})
	}
}

func TestTruncateLabel_ShortNameUnchanged(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "photo.jpg", TruncateLabel("photo.jpg", 42))
}

func TestTruncateLabel_PreservesExtension(t *testing.T) {
	t.Parallel()

	name := strings.Repeat("a", 60) + ".png"
	got := TruncateLabel(name, 42)

	assert.LessOrEqual(t, len([]rune(got)), 42)
	assert.True(t, strings.HasSuffix(got, ".png"))
	assert.Equal(t, 1, strings.Count(got, ellipsis))
}

func TestTruncateLabel_NoExtension(t *testing.T) {
	t.Parallel()

	name := strings.Repeat("x", 80)
	got := TruncateLabel(name, 42)

	assert.Equal(t, 42, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, ellipsis))
}

func TestTruncateLabel_LongExtensionNotPreserved(t *testing.T) {
	t.Parallel()

	// Dot is not within the last 5 characters, so no extension handling.
	name := strings.Repeat("b", 50) + ".backup"
	got := TruncateLabel(name, 42)

	assert.Equal(t, 42, len([]rune(got)))
	assert.False(t, strings.HasSuffix(got, ".backup"))
}

func TestTruncateLabel_TinyBudgetFallsBackToStraightTruncation(t *testing.T) {
	t.Parallel()

	got := TruncateLabel("abcdefghijk.png", 12)

	assert.Equal(t, "abcdefghijk"+ellipsis, got)
	assert.Equal(t, 12, len([]rune(got)))
}

func TestTruncateLabel_DefaultLength(t *testing.T) {
	t.Parallel()

	name := strings.Repeat("c", 100) + ".mp4"
	got := TruncateLabel(name, 0)

	assert.Equal(t, DefaultLabelLength, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, ".mp4"))
}
