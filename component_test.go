package arbor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeProps(t *testing.T) {
	defaults := Props{
		Width:           10,
		Padding:         Uniform(2),
		BackgroundColor: ColorWhite,
	}
	got := mergeProps(defaults, Props{X: 5, Height: 20, BorderColor: ColorBlack})
	want := Props{
		X:               5,
		Width:           10,
		Height:          20,
		Padding:         Uniform(2),
		BorderColor:     ColorBlack,
		BackgroundColor: ColorWhite,
	}
	if got != want {
		t.Errorf("mergeProps = %+v, want %+v", got, want)
	}
}

func TestPaddingConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Padding
		want Padding
	}{
		{"uniform", Uniform(3), Padding{3, 3, 3, 3}},
		{"symmetric", Symmetric(5, 20), Padding{Top: 5, Right: 20, Bottom: 5, Left: 20}},
		{"edges", Edges(1, 2, 3, 4), Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
	if h := Symmetric(5, 20).Horizontal(); h != 40 {
		t.Errorf("Horizontal = %v, want 40", h)
	}
}

func TestComponentUnanchored(t *testing.T) {
	c := NewComponent(Props{X: 10, Y: 20, Width: 30, Height: 40, Padding: Edges(1, 2, 3, 4)})
	want := Rect{X: 10, Y: 20, Width: 36, Height: 44}
	if b := c.Bounds(); b != want {
		t.Errorf("Bounds = %+v, want %+v", b, want)
	}
}

func TestAnchorLayout(t *testing.T) {
	canvas := NewCanvas(0, 0, 800, 600)
	tests := []struct {
		name   string
		props  Props
		anchor Anchor
		want   Rect
	}{
		{
			name:   "center",
			props:  Props{Width: 100, Height: 40},
			anchor: Anchor{Horizontal: AlignCenter, Vertical: AlignCenter},
			want:   Rect{X: 350, Y: 280, Width: 100, Height: 40},
		},
		{
			name:   "center with padding and offset",
			props:  Props{Width: 100, Height: 40, Padding: Symmetric(5, 20)},
			anchor: Anchor{Horizontal: AlignCenter, Vertical: AlignCenter, OffsetX: 10, OffsetY: -10},
			want:   Rect{X: 340, Y: 265, Width: 140, Height: 50},
		},
		{
			name:   "start",
			props:  Props{X: 99, Y: 99, Width: 10, Height: 10},
			anchor: Anchor{Horizontal: AlignStart, Vertical: AlignStart, OffsetX: 4, OffsetY: 6},
			want:   Rect{X: 4, Y: 6, Width: 10, Height: 10},
		},
		{
			name:   "end",
			props:  Props{Width: 10, Height: 10, Padding: Uniform(5)},
			anchor: Anchor{Horizontal: AlignEnd, Vertical: AlignEnd, OffsetX: 1, OffsetY: 2},
			want:   Rect{X: 779, Y: 578, Width: 20, Height: 20},
		},
		{
			name:   "horizontal only keeps stored y",
			props:  Props{X: 7, Y: 33, Width: 200, Height: 10},
			anchor: Anchor{Horizontal: AlignCenter},
			want:   Rect{X: 300, Y: 33, Width: 200, Height: 10},
		},
		{
			name:   "stretch",
			props:  Props{X: 5, Y: 5, Width: 10, Height: 10, Padding: Uniform(8)},
			anchor: Anchor{Stretch: true, Horizontal: AlignEnd},
			want:   Rect{X: 0, Y: 0, Width: 800, Height: 600},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComponent(tt.props)
			a := tt.anchor
			c.bindAnchor(&a, canvas)
			if b := c.Bounds(); b != tt.want {
				t.Errorf("Bounds = %+v, want %+v", b, tt.want)
			}
		})
	}
}

func TestStretchZeroesPadding(t *testing.T) {
	canvas := NewCanvas(0, 0, 800, 600)
	c := NewComponent(Props{Padding: Uniform(8)})
	if err := canvas.AddElement("bg", c, Fill()); err != nil {
		t.Fatal(err)
	}
	if c.Width() != 800 || c.Height() != 600 {
		t.Errorf("size = %vx%v, want 800x600", c.Width(), c.Height())
	}
	if !c.Padding().IsZero() {
		t.Errorf("Padding = %+v, want zero", c.Padding())
	}
	if c.ActualWidth() != 800 {
		t.Errorf("ActualWidth = %v, want 800", c.ActualWidth())
	}
}

func TestAnchorFollowsCanvasResize(t *testing.T) {
	canvas := NewCanvas(0, 0, 800, 600)
	c := NewComponent(Props{Width: 100, Height: 40})
	canvas.MustAddElement("box", c, Center())
	canvas.Width, canvas.Height = 400, 300
	if c.X() != 150 || c.Y() != 130 {
		t.Errorf("position = (%v, %v), want (150, 130)", c.X(), c.Y())
	}
}

func TestAnchorWithOffsetCanvas(t *testing.T) {
	canvas := NewCanvas(100, 50, 200, 100)
	c := NewComponent(Props{Width: 20, Height: 10})
	canvas.MustAddElement("box", c, Center())
	if c.X() != 190 || c.Y() != 95 {
		t.Errorf("position = (%v, %v), want (190, 95)", c.X(), c.Y())
	}
}

func TestRemoveElementRestoresStoredLayout(t *testing.T) {
	canvas := NewCanvas(0, 0, 800, 600)
	c := NewComponent(Props{X: 1, Y: 2, Width: 100, Height: 40})
	canvas.MustAddElement("box", c, Center())
	if err := canvas.RemoveElement("box"); err != nil {
		t.Fatal(err)
	}
	if c.X() != 1 || c.Y() != 2 || c.Anchor() != nil {
		t.Errorf("after remove: (%v, %v) anchor %v", c.X(), c.Y(), c.Anchor())
	}
}

func TestHoverSequence(t *testing.T) {
	c := NewComponent(Props{X: 10, Y: 10, Width: 20, Height: 20})
	var got []string
	c.OnMouseEnter = func(ev MouseMoveEvent) { got = append(got, "enter:"+ev.Type().String()) }
	c.OnMouseOver = func(ev MouseMoveEvent) { got = append(got, "over") }
	c.OnMouseLeave = func(ev MouseMoveEvent) { got = append(got, "leave:"+ev.Type().String()) }

	moves := [][2]int{{0, 0}, {15, 15}, {16, 16}, {50, 50}, {60, 60}}
	for _, m := range moves {
		c.HandleEvent(MouseMoveEvent{Kind: EventMouseMove, X: m[0], Y: m[1]})
	}
	want := []string{
		"enter:" + EventMouseEnter.String(), "over",
		"over",
		"leave:" + EventMouseLeave.String(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hover callbacks mismatch (-want +got):\n%s", diff)
	}
	if !c.IsIdle() {
		t.Error("component should be idle after leaving")
	}
}

func TestHoverIgnoresKeyEvents(t *testing.T) {
	c := NewComponent(Props{Width: 10, Height: 10})
	c.HandleEvent(KeyEvent{Kind: EventKeyDown})
	if !c.IsIdle() {
		t.Error("key events must not change hover state")
	}
}

func TestCanvasLeaveClearsHover(t *testing.T) {
	c := NewComponent(Props{Width: 10, Height: 10})
	c.HandleEvent(MouseMoveEvent{Kind: EventMouseMove, X: 5, Y: 5})
	if !c.HasState(StateMouseOver) {
		t.Fatal("expected hover")
	}
	c.HandleEvent(MouseMoveEvent{Kind: EventMouseLeave, X: 5, Y: 5})
	if c.HasState(StateMouseOver) {
		t.Error("canvas leave should clear hover")
	}
}

func TestShutDownEvents(t *testing.T) {
	c := NewComponent(Props{Width: 10, Height: 10})
	c.setState(StateMouseOver|StateMousePressed, true)
	if c.IsIdle() {
		t.Fatal("expected non-idle")
	}
	c.ShutDownEvents()
	if !c.IsIdle() {
		t.Error("ShutDownEvents should clear all states")
	}
}

func TestComponentAlpha(t *testing.T) {
	c := NewComponent(Props{})
	if c.Alpha() != 1 {
		t.Errorf("default Alpha = %v, want 1", c.Alpha())
	}
	c.SetAlpha(0.5)
	if got := c.scaled(ColorWhite).A; got != 0.5 {
		t.Errorf("scaled alpha = %v, want 0.5", got)
	}
	c.SetAlpha(2)
	if c.Alpha() != 1 {
		t.Errorf("Alpha should clamp to 1, got %v", c.Alpha())
	}
}
