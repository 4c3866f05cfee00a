package arbor

// Anchor binds a component's position and size to its canvas. Reads of
// X, Y, Width and Height on an anchored component are recomputed from the
// canvas geometry each time; the stored values only serve as inputs.
type Anchor struct {
	Horizontal Alignment
	Vertical   Alignment
	OffsetX    float64
	OffsetY    float64
	// Stretch makes the component cover the whole canvas, ignoring its own
	// size, alignment and padding.
	Stretch bool
}

// IsZero reports whether the anchor has no effect.
func (a Anchor) IsZero() bool {
	return a == Anchor{}
}

// Center returns an anchor centering a component on both axes.
func Center() *Anchor {
	return &Anchor{Horizontal: AlignCenter, Vertical: AlignCenter}
}

// Fill returns an anchor stretching a component over the whole canvas.
func Fill() *Anchor {
	return &Anchor{Stretch: true}
}

// resolveAxis computes the position of a component along one axis.
// length is the component's own stored length and padding the total padding
// on that axis.
func resolveAxis(stored float64, align Alignment, offset, canvasPos, canvasLen, length, padding float64, stretch bool) float64 {
	if stretch {
		return canvasPos
	}
	switch align {
	case AlignStart:
		return canvasPos + offset
	case AlignCenter:
		// Screen space: the canvas origin is added, matching start and end.
		return canvasPos + (canvasLen-(length+padding))/2 + offset
	case AlignEnd:
		return canvasPos + canvasLen - (length + padding) - offset
	default:
		return stored
	}
}
