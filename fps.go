package arbor

import (
	"fmt"
	"math"
)

// fpsRefresh is how often an FPSText re-reads its source, in seconds.
const fpsRefresh = 0.5

// FPSText is a Text component showing a frames-per-second figure. The text is
// refreshed every ~0.5 seconds.
type FPSText struct {
	Text

	source  func() float64
	elapsed float64
}

// NewFPSText creates an FPSText reading from source, typically App.FPS.
// Zero-valued props fall back to DefaultTextProps.
func NewFPSText(source func() float64, props TextProps) *FPSText {
	if props.Text == "" {
		props.Text = "FPS: 0"
	}
	return &FPSText{Text: *NewText(props), source: source}
}

// Update refreshes the displayed figure once per refresh interval.
func (f *FPSText) Update(dt float64) {
	f.elapsed += dt
	if f.elapsed < fpsRefresh {
		return
	}
	f.elapsed = 0
	f.SetText(fmt.Sprintf("FPS: %d", int(math.Round(f.source()))))
}
