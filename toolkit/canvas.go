package toolkit

import (
	"fmt"

	"github.com/kardolus/conscience/widget"
)

var itemOptions = map[string][]string{
	"text":      {"text", "fill", "font", "anchor", "tags"},
	"image":     {"image", "anchor", "tags"},
	"rectangle": {"fill", "outline", "width", "tags"},
}

type item struct {
	id      widget.ItemID
	kind    string
	coords  []float64
	options Options
}

// bbox is the item's bounding box. Text and images are treated as points.
func (i *item) bbox() (x1, y1, x2, y2 float64) {
	if len(i.coords) >= 4 {
		return minF(i.coords[0], i.coords[2]), minF(i.coords[1], i.coords[3]),
			maxF(i.coords[0], i.coords[2]), maxF(i.coords[1], i.coords[3])
	}
	return i.coords[0], i.coords[1], i.coords[0], i.coords[1]
}

// Canvas is a drawing surface holding text, image and rectangle items.
type Canvas struct {
	*Widget

	items []*item
	next  widget.ItemID
}

var _ widget.Canvas = &Canvas{}

func NewCanvas(parent Container, opts Options) (*Canvas, error) {
	w, err := NewWidget(parent, "Canvas", opts)
	if err != nil {
		return nil, err
	}
	c := &Canvas{Widget: w}
	w.self = c
	return c, nil
}

func (c *Canvas) CreateText(x, y float64, opts Options) (widget.ItemID, error) {
	return c.create("text", []float64{x, y}, opts)
}

func (c *Canvas) CreateImage(x, y float64, image string, opts Options) (widget.ItemID, error) {
	merged := Options{"image": image}
	for k, v := range opts {
		merged[k] = v
	}
	return c.create("image", []float64{x, y}, merged)
}

func (c *Canvas) CreateRectangle(x1, y1, x2, y2 float64, opts Options) (widget.ItemID, error) {
	return c.create("rectangle", []float64{x1, y1, x2, y2}, opts)
}

// Items returns every item id in drawing order.
func (c *Canvas) Items() []widget.ItemID {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]widget.ItemID, len(c.items))
	for i, it := range c.items {
		ids[i] = it.id
	}
	return ids
}

func (c *Canvas) Type(id widget.ItemID) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if it := c.find(id); it != nil {
		return it.kind, true
	}
	return "", false
}

func (c *Canvas) ItemText(id widget.ItemID) (string, bool) {
	return c.itemString(id, "text")
}

func (c *Canvas) ItemImage(id widget.ItemID) (string, bool) {
	return c.itemString(id, "image")
}

func (c *Canvas) ItemCget(id widget.ItemID, option string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.find(id)
	if it == nil {
		return nil, fmt.Errorf("no canvas item %d", id)
	}
	if !supportsItem(it.kind, option) {
		return nil, UnknownOptionError{Class: it.kind, Option: option}
	}
	return it.options[option], nil
}

func (c *Canvas) ItemConfigure(id widget.ItemID, opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.find(id)
	if it == nil {
		return fmt.Errorf("no canvas item %d", id)
	}
	for option := range opts {
		if !supportsItem(it.kind, option) {
			return UnknownOptionError{Class: it.kind, Option: option}
		}
	}
	for option, value := range opts {
		it.options[option] = value
	}
	return nil
}

func (c *Canvas) Coords(id widget.ItemID) ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.find(id)
	if it == nil {
		return nil, false
	}
	return append([]float64(nil), it.coords...), true
}

func (c *Canvas) Move(id widget.ItemID, dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if it := c.find(id); it != nil {
		for i := range it.coords {
			if i%2 == 0 {
				it.coords[i] += dx
			} else {
				it.coords[i] += dy
			}
		}
	}
}

func (c *Canvas) Delete(id widget.ItemID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, it := range c.items {
		if it.id == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// DeleteAll clears the canvas. Item ids are never reused.
func (c *Canvas) DeleteAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Enclosed returns the items whose bounding box lies inside the rectangle,
// edges included.
func (c *Canvas) Enclosed(x1, y1, x2, y2 float64) []widget.ItemID {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ids []widget.ItemID
	for _, it := range c.items {
		bx1, by1, bx2, by2 := it.bbox()
		if bx1 >= x1 && by1 >= y1 && bx2 <= x2 && by2 <= y2 {
			ids = append(ids, it.id)
		}
	}
	return ids
}

// Size reports the width and height options.
func (c *Canvas) Size() (width, height int) {
	w, _ := c.Cget("width")
	h, _ := c.Cget("height")
	return int(toFloat(w)), int(toFloat(h))
}

func (c *Canvas) create(kind string, coords []float64, opts Options) (widget.ItemID, error) {
	options := make(Options, len(opts))
	for option, value := range opts {
		if !supportsItem(kind, option) {
			return 0, UnknownOptionError{Class: kind, Option: option}
		}
		options[option] = value
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	c.items = append(c.items, &item{id: c.next, kind: kind, coords: coords, options: options})
	return c.next, nil
}

func (c *Canvas) find(id widget.ItemID) *item {
	for _, it := range c.items {
		if it.id == id {
			return it
		}
	}
	return nil
}

func (c *Canvas) itemString(id widget.ItemID, option string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.find(id)
	if it == nil || !supportsItem(it.kind, option) {
		return "", false
	}
	value, ok := it.options[option]
	if !ok || value == nil {
		return "", true
	}
	return fmt.Sprint(value), true
}

func supportsItem(kind, option string) bool {
	for _, o := range itemOptions[kind] {
		if o == option {
			return true
		}
	}
	return false
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
