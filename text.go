package arbor

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and drawing.
type Font interface {
	MeasureString(s string) (width, height float64)
	LineHeight() float64
	// Face returns the face used to draw. It may be nil for fonts that only
	// measure.
	Face() text.Face
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("arbor: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// WithSize returns a font sharing this font's source at a different size.
func (f *TTFFont) WithSize(size float64) *TTFFont {
	return newTTFFont(f.source, size)
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying face for direct text/v2 rendering.
func (f *TTFFont) Face() text.Face {
	return f.face
}

var defaultFontSource = sync.OnceValue(func() *text.GoTextFaceSource {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(fmt.Sprintf("arbor: embedded Go Regular font: %v", err))
	}
	return source
})

// DefaultFont returns the embedded Go Regular face at the given pixel size.
func DefaultFont(size float64) *TTFFont {
	return newTTFFont(defaultFontSource(), size)
}

// --- Text ---

// TextProps configures a Text component. Zero-valued fields keep the
// defaults from DefaultTextProps.
type TextProps struct {
	Props
	Text          string
	Font          Font
	TextColor     Color
	TextAlign     Alignment
	VerticalAlign Alignment
}

// DefaultTextProps returns black 16px left and top aligned text.
func DefaultTextProps() TextProps {
	return TextProps{
		Props:         DefaultProps(),
		TextColor:     ColorBlack,
		TextAlign:     AlignStart,
		VerticalAlign: AlignStart,
	}
}

func mergeTextProps(defaults, override TextProps) TextProps {
	out := defaults
	out.Props = mergeProps(defaults.Props, override.Props)
	if override.Text != "" {
		out.Text = override.Text
	}
	if override.Font != nil {
		out.Font = override.Font
	}
	if override.TextColor != (Color{}) {
		out.TextColor = override.TextColor
	}
	if override.TextAlign != AlignNone {
		out.TextAlign = override.TextAlign
	}
	if override.VerticalAlign != AlignNone {
		out.VerticalAlign = override.VerticalAlign
	}
	if out.Font == nil {
		out.Font = DefaultFont(16)
	}
	return out
}

// Text is a component that draws a single string inside its box. The box
// grows to fit the measured text and never shrinks.
type Text struct {
	Component

	content   string
	font      Font
	color     Color
	align     Alignment
	valign    Alignment
	measuredW float64
	measuredH float64
}

// NewText creates a Text component from props merged over DefaultTextProps.
func NewText(props TextProps) *Text {
	p := mergeTextProps(DefaultTextProps(), props)
	t := &Text{
		content: p.Text,
		font:    p.Font,
		color:   p.TextColor,
		align:   p.TextAlign,
		valign:  p.VerticalAlign,
	}
	t.init(DefaultProps(), p.Props)
	t.fit()
	return t
}

// Text returns the displayed string.
func (t *Text) Text() string { return t.content }

// SetText replaces the displayed string and grows the box if needed.
func (t *Text) SetText(s string) {
	if s == t.content {
		return
	}
	t.content = s
	t.fit()
}

// Font returns the font used to measure and draw.
func (t *Text) Font() Font { return t.font }

// SetFont replaces the font and grows the box if needed.
func (t *Text) SetFont(f Font) {
	t.font = f
	t.fit()
}

// TextColor returns the glyph color.
func (t *Text) TextColor() Color { return t.color }

// SetTextColor replaces the glyph color.
func (t *Text) SetTextColor(c Color) { t.color = c }

// Measured returns the size of the text as last measured.
func (t *Text) Measured() (width, height float64) {
	return t.measuredW, t.measuredH
}

// fit measures the text and grows the stored size to hold it.
func (t *Text) fit() {
	t.measuredW, t.measuredH = t.font.MeasureString(t.content)
	if t.measuredW > t.props.Width {
		t.props.Width = t.measuredW
	}
	if t.measuredH > t.props.Height {
		t.props.Height = t.measuredH
	}
}

// textOrigin returns where the text's top-left corner is drawn.
func (t *Text) textOrigin() (x, y float64) {
	pad := t.Padding()
	x = t.X() + pad.Left + alignOffset(t.align, t.Width(), t.measuredW)
	y = t.Y() + pad.Top + alignOffset(t.valign, t.Height(), t.measuredH)
	return x, y
}

func alignOffset(a Alignment, box, content float64) float64 {
	switch a {
	case AlignCenter:
		return (box - content) / 2
	case AlignEnd:
		return box - content
	default:
		return 0
	}
}

// Render draws the box, then the text.
func (t *Text) Render(screen *ebiten.Image) {
	t.drawBox(screen)
	t.drawText(screen)
}

func (t *Text) drawText(screen *ebiten.Image) {
	col := t.scaled(t.color)
	if t.content == "" || col.Transparent() {
		return
	}
	face := t.font.Face()
	if face == nil {
		return
	}
	x, y := t.textOrigin()
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col.RGBA())
	op.LineSpacing = t.font.LineHeight()
	text.Draw(screen, t.content, face, op)
}
