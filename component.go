package arbor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Props holds the layout and box styling shared by every component. Zero
// values mean "unset" when merged over defaults, so a zero X, Y, size or
// color in an override keeps the default.
type Props struct {
	X, Y            float64
	Width, Height   float64
	Padding         Padding
	BorderColor     Color
	BackgroundColor Color
}

// DefaultProps returns the props a plain component starts with: an empty box
// at the origin with no border or background.
func DefaultProps() Props {
	return Props{}
}

// mergeProps overlays the non-zero fields of override onto defaults.
func mergeProps(defaults, override Props) Props {
	out := defaults
	if override.X != 0 {
		out.X = override.X
	}
	if override.Y != 0 {
		out.Y = override.Y
	}
	if override.Width != 0 {
		out.Width = override.Width
	}
	if override.Height != 0 {
		out.Height = override.Height
	}
	if !override.Padding.IsZero() {
		out.Padding = override.Padding
	}
	if override.BorderColor != (Color{}) {
		out.BorderColor = override.BorderColor
	}
	if override.BackgroundColor != (Color{}) {
		out.BackgroundColor = override.BackgroundColor
	}
	return out
}

// EventState is a bitmask of a component's pointer interaction state.
type EventState uint8

const (
	StateMouseOver EventState = 1 << iota
	StateMousePressed
)

// Element is anything a Canvas can hold. Implementations embed Component,
// which supplies the layout model and default behavior for all three hooks.
type Element interface {
	HandleEvent(ev Event)
	Update(dt float64)
	Render(screen *ebiten.Image)
	component() *Component
}

// Component is a rectangular UI element with a position, a size, padding,
// an optional border and background, and hover tracking. Embed it to build
// new widgets.
type Component struct {
	props  Props
	states EventState
	canvas *Canvas
	anchor *Anchor

	// fade is one minus the render alpha, so the zero value draws opaque.
	fade float64
	// dim is one minus an extra draw-time opacity factor applied on top of
	// the alpha, e.g. for disabled widgets. It never changes Alpha.
	dim float64

	// Hover callbacks. The event passed carries the pointer position and a
	// Kind of EventMouseEnter, EventMouseMove or EventMouseLeave.
	OnMouseEnter func(ev MouseMoveEvent)
	OnMouseOver  func(ev MouseMoveEvent)
	OnMouseLeave func(ev MouseMoveEvent)
}

// NewComponent creates a plain component from props merged over
// DefaultProps.
func NewComponent(props Props) *Component {
	c := &Component{}
	c.init(DefaultProps(), props)
	return c
}

func (c *Component) init(defaults, override Props) {
	c.props = mergeProps(defaults, override)
}

func (c *Component) component() *Component { return c }

// --- Layout ---

func (c *Component) anchored() bool {
	return c.anchor != nil && c.canvas != nil
}

func (c *Component) stretched() bool {
	return c.anchored() && c.anchor.Stretch
}

// X returns the resolved left edge in canvas space.
func (c *Component) X() float64 {
	if !c.anchored() {
		return c.props.X
	}
	a := c.anchor
	return resolveAxis(c.props.X, a.Horizontal, a.OffsetX,
		c.canvas.X, c.canvas.Width, c.props.Width, c.props.Padding.Horizontal(), a.Stretch)
}

// Y returns the resolved top edge in canvas space.
func (c *Component) Y() float64 {
	if !c.anchored() {
		return c.props.Y
	}
	a := c.anchor
	return resolveAxis(c.props.Y, a.Vertical, a.OffsetY,
		c.canvas.Y, c.canvas.Height, c.props.Height, c.props.Padding.Vertical(), a.Stretch)
}

// Width returns the resolved content width, excluding padding.
func (c *Component) Width() float64 {
	if c.stretched() {
		return c.canvas.Width
	}
	return c.props.Width
}

// Height returns the resolved content height, excluding padding.
func (c *Component) Height() float64 {
	if c.stretched() {
		return c.canvas.Height
	}
	return c.props.Height
}

// Padding returns the resolved padding. A stretched component has none.
func (c *Component) Padding() Padding {
	if c.stretched() {
		return Padding{}
	}
	return c.props.Padding
}

// ActualWidth returns the width including horizontal padding.
func (c *Component) ActualWidth() float64 {
	return c.Width() + c.Padding().Horizontal()
}

// ActualHeight returns the height including vertical padding.
func (c *Component) ActualHeight() float64 {
	return c.Height() + c.Padding().Vertical()
}

// Bounds returns the padded box used for hit testing and rendering.
func (c *Component) Bounds() Rect {
	return Rect{X: c.X(), Y: c.Y(), Width: c.ActualWidth(), Height: c.ActualHeight()}
}

// SetPosition stores a new position. While anchored the stored position is
// only used for axes whose alignment is AlignNone.
func (c *Component) SetPosition(x, y float64) {
	c.props.X, c.props.Y = x, y
}

// SetSize stores a new content size.
func (c *Component) SetSize(w, h float64) {
	c.props.Width, c.props.Height = w, h
}

// SetWidth stores a new content width.
func (c *Component) SetWidth(w float64) { c.props.Width = w }

// SetHeight stores a new content height.
func (c *Component) SetHeight(h float64) { c.props.Height = h }

// SetPadding replaces the padding. Unlike props merging, a zero Padding here
// clears it.
func (c *Component) SetPadding(p Padding) { c.props.Padding = p }

func (c *Component) BackgroundColor() Color { return c.props.BackgroundColor }
func (c *Component) SetBackgroundColor(v Color) { c.props.BackgroundColor = v }
func (c *Component) BorderColor() Color { return c.props.BorderColor }
func (c *Component) SetBorderColor(v Color) { c.props.BorderColor = v }

// Anchor returns the bound anchor, or nil when the component is positioned
// by its stored coordinates.
func (c *Component) Anchor() *Anchor {
	return c.anchor
}

func (c *Component) bindAnchor(a *Anchor, canvas *Canvas) {
	c.anchor = a
	c.canvas = canvas
}

func (c *Component) removeAnchor() {
	c.anchor = nil
	c.canvas = nil
}

// --- Interaction state ---

// HasState reports whether every bit of s is set.
func (c *Component) HasState(s EventState) bool {
	return c.states&s == s
}

func (c *Component) setState(s EventState, on bool) {
	if on {
		c.states |= s
	} else {
		c.states &^= s
	}
}

// IsIdle reports whether the pointer is neither over nor pressing the
// component.
func (c *Component) IsIdle() bool {
	return c.states == 0
}

// ShutDownEvents clears all interaction state.
func (c *Component) ShutDownEvents() {
	c.states = 0
}

// HandleEvent tracks hover state from pointer events and fires the hover
// callbacks. Components override it to add behavior and call it first.
func (c *Component) HandleEvent(ev Event) {
	pe, ok := ev.(PointerEvent)
	if !ok {
		return
	}
	x, y := pe.Position()
	over := ev.Type() != EventMouseLeave && c.Bounds().Contains(float64(x), float64(y))
	mods := ev.Modifiers()
	was := c.HasState(StateMouseOver)

	switch {
	case over && !was:
		c.setState(StateMouseOver, true)
		if c.OnMouseEnter != nil {
			c.OnMouseEnter(MouseMoveEvent{Kind: EventMouseEnter, X: x, Y: y, Mods: mods})
		}
		fallthrough
	case over:
		if c.OnMouseOver != nil {
			c.OnMouseOver(MouseMoveEvent{Kind: EventMouseMove, X: x, Y: y, Mods: mods})
		}
	case !over && was:
		c.setState(StateMouseOver, false)
		if c.OnMouseLeave != nil {
			c.OnMouseLeave(MouseMoveEvent{Kind: EventMouseLeave, X: x, Y: y, Mods: mods})
		}
	}
}

// Update does nothing for a plain component.
func (c *Component) Update(dt float64) {}

// Render draws the background and border. Transparent colors are skipped.
func (c *Component) Render(screen *ebiten.Image) {
	c.drawBox(screen)
}

func (c *Component) drawBox(screen *ebiten.Image) {
	b := c.Bounds()
	x, y := float32(b.X), float32(b.Y)
	w, h := float32(b.Width), float32(b.Height)
	if bg := c.scaled(c.props.BackgroundColor); !bg.Transparent() {
		vector.DrawFilledRect(screen, x, y, w, h, bg.RGBA(), true)
	}
	if border := c.scaled(c.props.BorderColor); !border.Transparent() {
		vector.StrokeRect(screen, x, y, w, h, 1, border.RGBA(), true)
	}
}

// Alpha returns the opacity applied to everything the component draws.
func (c *Component) Alpha() float64 {
	return 1 - c.fade
}

// SetAlpha sets the opacity, clamped to [0, 1].
func (c *Component) SetAlpha(a float64) {
	c.fade = 1 - clamp01(a)
}

// drawAlpha returns the opacity actually used when drawing: the alpha
// scaled by the dim factor.
func (c *Component) drawAlpha() float64 {
	return (1 - c.fade) * (1 - c.dim)
}

// scaled applies the draw alpha to col.
func (c *Component) scaled(col Color) Color {
	if c.fade == 0 && c.dim == 0 {
		return col
	}
	return col.WithAlpha(c.drawAlpha())
}
