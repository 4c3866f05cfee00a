package arbor

// Padding is the space between a component's content box and its edges.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns the same padding on all four sides.
func Uniform(p float64) Padding {
	return Padding{p, p, p, p}
}

// Symmetric returns vertical padding for top and bottom and horizontal
// padding for left and right.
func Symmetric(vertical, horizontal float64) Padding {
	return Padding{vertical, horizontal, vertical, horizontal}
}

// Edges returns padding with each side given explicitly, clockwise from top.
func Edges(top, right, bottom, left float64) Padding {
	return Padding{top, right, bottom, left}
}

// Horizontal returns the total padding on the x axis.
func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

// Vertical returns the total padding on the y axis.
func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// IsZero reports whether every side is zero.
func (p Padding) IsZero() bool {
	return p == Padding{}
}
