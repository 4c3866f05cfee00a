package arbor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// ButtonState is the visual state of a TextButton.
type ButtonState uint8

const (
	ButtonIdle ButtonState = iota
	ButtonHighlight
	ButtonPressed
)

func (s ButtonState) String() string {
	switch s {
	case ButtonHighlight:
		return "highlight"
	case ButtonPressed:
		return "pressed"
	default:
		return "idle"
	}
}

// ButtonStyle is the set of colors a button shows in one state.
type ButtonStyle struct {
	TextColor       Color
	BorderColor     Color
	BackgroundColor Color
}

func mergeStyle(defaults, override ButtonStyle) ButtonStyle {
	out := defaults
	if override.TextColor != (Color{}) {
		out.TextColor = override.TextColor
	}
	if override.BorderColor != (Color{}) {
		out.BorderColor = override.BorderColor
	}
	if override.BackgroundColor != (Color{}) {
		out.BackgroundColor = override.BackgroundColor
	}
	return out
}

// ButtonProps configures a TextButton. Props.BorderColor and
// Props.BackgroundColor together with TextColor form the idle style.
type ButtonProps struct {
	Props
	Label     string
	Font      Font
	TextColor Color
	Highlight ButtonStyle
	Pressed   ButtonStyle
	// Transition is the color fade duration in seconds between states.
	// Zero switches colors instantly.
	Transition float32
}

// DefaultButtonProps returns a grey button with dark text and 5x20 padding.
func DefaultButtonProps() ButtonProps {
	return ButtonProps{
		Props: Props{
			Padding:         Symmetric(5, 20),
			BorderColor:     Hex(0x666666),
			BackgroundColor: Hex(0xd8d8d8),
		},
		Label:     "Button",
		TextColor: Hex(0x333333),
		Highlight: ButtonStyle{
			TextColor:       ColorBlack,
			BorderColor:     Hex(0x666666),
			BackgroundColor: Hex(0xcccccc),
		},
		Pressed: ButtonStyle{
			TextColor:       ColorWhite,
			BorderColor:     Hex(0x666666),
			BackgroundColor: Hex(0x666666),
		},
	}
}

func mergeButtonProps(defaults, override ButtonProps) ButtonProps {
	out := defaults
	out.Props = mergeProps(defaults.Props, override.Props)
	if override.Label != "" {
		out.Label = override.Label
	}
	if override.Font != nil {
		out.Font = override.Font
	}
	if override.TextColor != (Color{}) {
		out.TextColor = override.TextColor
	}
	out.Highlight = mergeStyle(defaults.Highlight, override.Highlight)
	out.Pressed = mergeStyle(defaults.Pressed, override.Pressed)
	if override.Transition != 0 {
		out.Transition = override.Transition
	}
	if out.Font == nil {
		out.Font = DefaultFont(14)
	}
	return out
}

// TextButton is a clickable box with a centered label. It highlights while
// hovered, shows a pressed style while the left button is held over it, and
// fires OnClick when the left button is released over it after a press
// there. A disabled button is drawn at half opacity and ignores input.
type TextButton struct {
	Component

	Label    *Text
	Disabled bool
	OnClick  func(ev MouseButtonEvent)

	styles     [3]ButtonStyle
	state      ButtonState
	transition float32
	fades      []*TweenGroup
	textColor  Color
}

// NewTextButton creates a button from props merged over DefaultButtonProps.
func NewTextButton(props ButtonProps) *TextButton {
	p := mergeButtonProps(DefaultButtonProps(), props)
	b := &TextButton{
		Label: NewText(TextProps{
			Text:          p.Label,
			Font:          p.Font,
			TextColor:     p.TextColor,
			TextAlign:     AlignCenter,
			VerticalAlign: AlignCenter,
		}),
		transition: p.Transition,
		textColor:  p.TextColor,
	}
	b.styles[ButtonIdle] = ButtonStyle{
		TextColor:       p.TextColor,
		BorderColor:     p.BorderColor,
		BackgroundColor: p.BackgroundColor,
	}
	b.styles[ButtonHighlight] = p.Highlight
	b.styles[ButtonPressed] = p.Pressed
	b.init(DefaultProps(), p.Props)
	b.layoutLabel()
	return b
}

// State returns the current visual state.
func (b *TextButton) State() ButtonState {
	return b.state
}

// SetLabel replaces the label text and grows the button to fit.
func (b *TextButton) SetLabel(s string) {
	b.Label.SetText(s)
	b.layoutLabel()
}

// HandleEvent updates hover and press state and fires OnClick.
func (b *TextButton) HandleEvent(ev Event) {
	if b.Disabled {
		b.ShutDownEvents()
		return
	}
	b.Component.HandleEvent(ev)

	be, ok := ev.(MouseButtonEvent)
	if !ok || be.Button != MouseButtonLeft {
		if ev.Type() == EventMouseLeave {
			b.setState(StateMousePressed, false)
		}
		return
	}
	inside := b.Bounds().Contains(float64(be.X), float64(be.Y))
	switch be.Kind {
	case EventMouseDown:
		if inside {
			b.setState(StateMousePressed, true)
		}
	case EventMouseUp:
		wasPressed := b.HasState(StateMousePressed)
		b.setState(StateMousePressed, false)
		if inside && wasPressed && b.OnClick != nil {
			b.OnClick(be)
		}
	}
}

// Update lays out the label and advances the color transition.
func (b *TextButton) Update(dt float64) {
	if b.Disabled {
		b.ShutDownEvents()
	}
	b.layoutLabel()

	next := ButtonIdle
	if b.HasState(StateMouseOver) {
		next = ButtonHighlight
	}
	if b.HasState(StateMousePressed) {
		next = ButtonPressed
	}
	if next != b.state {
		b.state = next
		b.applyStyle(b.styles[next])
	}

	for _, g := range b.fades {
		g.Update(float32(dt))
	}
	if len(b.fades) > 0 && b.fades[0].Done {
		b.fades = b.fades[:0]
	}
	b.Label.SetTextColor(b.textColor)
}

func (b *TextButton) applyStyle(s ButtonStyle) {
	if b.transition <= 0 {
		b.props.BackgroundColor = s.BackgroundColor
		b.props.BorderColor = s.BorderColor
		b.textColor = s.TextColor
		b.fades = b.fades[:0]
		return
	}
	b.fades = append(b.fades[:0],
		TweenColor(&b.props.BackgroundColor, s.BackgroundColor, b.transition, ease.OutQuad),
		TweenColor(&b.props.BorderColor, s.BorderColor, b.transition, ease.OutQuad),
		TweenColor(&b.textColor, s.TextColor, b.transition, ease.OutQuad),
	)
}

// layoutLabel grows the button to hold the label and places the label over
// the content box so its centered alignment centers it in the button.
func (b *TextButton) layoutLabel() {
	lw, lh := b.Label.Measured()
	if lw > b.props.Width {
		b.props.Width = lw
	}
	if lh > b.props.Height {
		b.props.Height = lh
	}
	pad := b.Padding()
	b.Label.SetPosition(b.X()+pad.Left, b.Y()+pad.Top)
	b.Label.SetSize(b.Width(), b.Height())
}

// disabledDim is the opacity taken away from a disabled button at draw time.
const disabledDim = 0.5

// Render draws the button. The label follows the button's alpha, and a
// disabled button draws at half of it.
func (b *TextButton) Render(screen *ebiten.Image) {
	b.dim = 0
	if b.Disabled {
		b.dim = disabledDim
	}
	b.Label.fade = b.fade
	b.Label.dim = b.dim
	b.drawBox(screen)
	b.Label.Render(screen)
}
