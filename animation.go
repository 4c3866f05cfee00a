package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenPosition, TweenColor) and call
// Update(dt) each frame; values are written straight into the target fields.
//
// There is no global animation manager. Owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition animates the stored position of c. For anchored axes the
// stored value only matters when the alignment is AlignNone.
func TweenPosition(c *Component, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(c.props.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(c.props.Y), float32(toY), duration, fn)
	g.fields[0] = &c.props.X
	g.fields[1] = &c.props.Y
	return g
}

// TweenColor animates all four channels of *target to the color to.
func TweenColor(target *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(target.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(target.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(target.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(target.A), float32(to.A), duration, fn)
	g.fields[0] = &target.R
	g.fields[1] = &target.G
	g.fields[2] = &target.B
	g.fields[3] = &target.A
	return g
}

// TweenAlpha animates the render alpha of c to the target value.
func TweenAlpha(c *Component, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(c.fade), float32(1-clamp01(to)), duration, fn)
	g.fields[0] = &c.fade
	return g
}
