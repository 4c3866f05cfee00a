package arbor

import "github.com/hajimehoshi/ebiten/v2"

// ImageProps configures an Image component.
type ImageProps struct {
	Props
	Source *ebiten.Image
}

// Image draws a bitmap scaled to its content box. A zero width or height in
// the props is taken from the source, including a source set later with
// SetSource.
type Image struct {
	Component

	source     *ebiten.Image
	autoWidth  bool
	autoHeight bool
}

// NewImage creates an Image component. Source may be nil when the bitmap is
// not loaded yet.
func NewImage(props ImageProps) *Image {
	img := &Image{
		autoWidth:  props.Width == 0,
		autoHeight: props.Height == 0,
	}
	img.init(DefaultProps(), props.Props)
	img.SetSource(props.Source)
	return img
}

// Source returns the bitmap, or nil.
func (i *Image) Source() *ebiten.Image {
	return i.source
}

// SetSource replaces the bitmap and fills any auto-sized dimension from it.
func (i *Image) SetSource(src *ebiten.Image) {
	i.source = src
	if src == nil {
		return
	}
	b := src.Bounds()
	if i.autoWidth {
		i.props.Width = float64(b.Dx())
	}
	if i.autoHeight {
		i.props.Height = float64(b.Dy())
	}
}

// Render draws the box, then the bitmap stretched over the content area.
func (i *Image) Render(screen *ebiten.Image) {
	i.drawBox(screen)
	if i.source == nil {
		return
	}
	b := i.source.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	pad := i.Padding()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(i.Width()/float64(b.Dx()), i.Height()/float64(b.Dy()))
	op.GeoM.Translate(i.X()+pad.Left, i.Y()+pad.Top)
	if i.fade != 0 || i.dim != 0 {
		op.ColorScale.ScaleAlpha(float32(i.drawAlpha()))
	}
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(i.source, op)
}
