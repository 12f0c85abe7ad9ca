package progress

// Sink receives presentation updates from the smoother and the upload
// orchestrator. Implementations own the actual rendering; the upload
// machinery never touches a terminal or widget directly.
type Sink interface {
	// SetVisible shows or hides the progress surface.
	SetVisible(visible bool)
	// SetPercent sets the displayed completion percentage (0-100).
	SetPercent(percent float64)
	// SetIndeterminate switches to a non-quantified in-progress state.
	SetIndeterminate()
	// ClearPercent removes any percentage or indeterminate state.
	ClearPercent()
	// SetLabel sets the human description of the current transfer.
	SetLabel(label string)
	// SetDetail sets the secondary line (bytes, rate).
	SetDetail(detail string)
}

// NopSink discards all presentation updates.
type NopSink struct{}

func (NopSink) SetVisible(bool)    {}
func (NopSink) SetPercent(float64) {}
func (NopSink) SetIndeterminate()  {}
func (NopSink) ClearPercent()      {}
func (NopSink) SetLabel(string)    {}
func (NopSink) SetDetail(string)   {}
