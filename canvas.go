package arbor

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	// ErrDuplicateElement is returned when adding an element under an id
	// already in use.
	ErrDuplicateElement = errors.New("arbor: duplicate element id")
	// ErrElementNotFound is returned when removing an id that is not present.
	ErrElementNotFound = errors.New("arbor: element not found")
)

// Canvas is a rectangular surface holding uniquely named elements. Events,
// updates and renders fan out to every element in insertion order. The
// geometry fields are read by anchored elements on every layout query, so
// changing them relayouts those elements. The zero value is an empty canvas
// at the origin, ready to use.
type Canvas struct {
	X, Y          float64
	Width, Height float64

	BackgroundColor Color

	ids      []string
	elements map[string]Element
	snapshot []Element
}

// NewCanvas creates an empty canvas.
func NewCanvas(x, y, width, height float64) *Canvas {
	return &Canvas{
		X: x, Y: y, Width: width, Height: height,
		elements: make(map[string]Element),
	}
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() Rect {
	return Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// AddElement stores el under id. When anchor is non-nil and not zero the
// element's layout is bound to this canvas.
func (c *Canvas) AddElement(id string, el Element, anchor *Anchor) error {
	if _, ok := c.elements[id]; ok {
		return fmt.Errorf("add element %q: %w", id, ErrDuplicateElement)
	}
	if anchor != nil && !anchor.IsZero() {
		el.component().bindAnchor(anchor, c)
	}
	if c.elements == nil {
		c.elements = make(map[string]Element)
	}
	c.elements[id] = el
	c.ids = append(c.ids, id)
	return nil
}

// MustAddElement is like AddElement but panics on error.
func (c *Canvas) MustAddElement(id string, el Element, anchor *Anchor) {
	if err := c.AddElement(id, el, anchor); err != nil {
		panic(err)
	}
}

// RemoveElement unbinds and removes the element stored under id.
func (c *Canvas) RemoveElement(id string) error {
	el, ok := c.elements[id]
	if !ok {
		return fmt.Errorf("remove element %q: %w", id, ErrElementNotFound)
	}
	el.component().removeAnchor()
	delete(c.elements, id)
	for i, v := range c.ids {
		if v == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return nil
}

// FindElement returns the element stored under id.
func (c *Canvas) FindElement(id string) (Element, bool) {
	el, ok := c.elements[id]
	return el, ok
}

// IDs returns element ids in insertion order.
func (c *Canvas) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Len returns the number of elements.
func (c *Canvas) Len() int {
	return len(c.ids)
}

// Clear removes every element.
func (c *Canvas) Clear() {
	for _, el := range c.elements {
		el.component().removeAnchor()
	}
	clear(c.elements)
	c.ids = c.ids[:0]
}

// HandleEvent forwards ev to every element.
func (c *Canvas) HandleEvent(ev Event) {
	for _, el := range c.elementsSnapshot() {
		el.HandleEvent(ev)
	}
}

// Update advances every element by dt seconds.
func (c *Canvas) Update(dt float64) {
	for _, el := range c.elementsSnapshot() {
		el.Update(dt)
	}
}

// Render fills the background, unless transparent, then renders every
// element in insertion order.
func (c *Canvas) Render(screen *ebiten.Image) {
	if !c.BackgroundColor.Transparent() {
		vector.DrawFilledRect(screen, float32(c.X), float32(c.Y), float32(c.Width), float32(c.Height),
			c.BackgroundColor.RGBA(), false)
	}
	for _, el := range c.elementsSnapshot() {
		el.Render(screen)
	}
}

// elementsSnapshot copies the element list so callbacks may add or remove
// elements mid-iteration. Changes take effect on the next pass.
func (c *Canvas) elementsSnapshot() []Element {
	c.snapshot = c.snapshot[:0]
	for _, id := range c.ids {
		c.snapshot = append(c.snapshot, c.elements[id])
	}
	return c.snapshot
}
