package cli

import (
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tgstore/adminctl"
)

// barScale maps a 0-100 percentage onto the bar's integer range with 0.1%
// resolution.
const barScale = 10

// progressMode returns the configured progress mode: "auto", "tty", or "plain".
func progressMode() string {
	mode := viper.GetString("progress")
	switch mode {
	case "auto", "tty", "plain":
		return mode
	default:
		return "auto"
	}
}

// shouldShowProgress returns true if progress bars should be displayed.
func shouldShowProgress() bool {
	mode := progressMode()

	// Plain mode disables progress
	if mode == "plain" {
		return false
	}

	// TTY mode forces progress regardless of terminal detection
	if mode == "tty" {
		return true
	}

	// Auto mode: show progress only if connected to a TTY
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// newUploadSink returns the sink upload commands should render through.
func newUploadSink() adminctl.Sink {
	if !shouldShowProgress() {
		return adminctl.NopSink{}
	}
	return &barSink{}
}

// barSink renders upload progress with a terminal progress bar. The bar is
// created lazily on the first update and swapped between the percentage and
// spinner forms as the transfer's determinate state changes.
type barSink struct {
	mu      sync.Mutex
	bar     *progressbar.ProgressBar
	spinner bool
	label   string
	detail  string
}

func (s *barSink) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if visible || s.bar == nil {
		return
	}
	//nolint:errcheck // progress bar errors are not critical
	s.bar.Exit()
	s.bar = nil
}

func (s *barSink) SetPercent(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar == nil || s.spinner {
		s.bar = s.newPercentBar()
		s.spinner = false
	}
	//nolint:errcheck // progress bar errors are not critical
	s.bar.Set(int(percent * barScale))
}

func (s *barSink) SetIndeterminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar != nil && s.spinner {
		return
	}
	s.bar = s.newSpinner()
	s.spinner = true
}

func (s *barSink) ClearPercent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar == nil {
		return
	}
	//nolint:errcheck // progress bar errors are not critical
	s.bar.Clear()
}

func (s *barSink) SetLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
	s.describe()
}

func (s *barSink) SetDetail(detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = detail
	s.describe()
}

func (s *barSink) describe() {
	if s.bar == nil {
		return
	}
	desc := s.label
	if s.detail != "" {
		desc += "  " + s.detail
	}
	s.bar.Describe(desc)
}

func (s *barSink) newPercentBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(100*barScale,
		progressbar.OptionSetDescription(s.label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionUseANSICodes(true),
	)
}

func (s *barSink) newSpinner() *progressbar.ProgressBar {
	return progressbar.NewOptions64(-1,
		progressbar.OptionSetDescription(s.label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionUseANSICodes(true),
	)
}
