package widget

// ItemID identifies an item drawn on a canvas.
type ItemID int

// Canvas is the read-only view of a drawing surface. ItemText and ItemImage
// report false for items without that option.
type Canvas interface {
	Items() []ItemID
	ItemText(id ItemID) (string, bool)
	ItemImage(id ItemID) (string, bool)
}

// ImageRegistry maps image identities to what they depict.
type ImageRegistry interface {
	Lookup(image string) (string, bool)
}

// Images is a map backed ImageRegistry.
type Images map[string]string

func (i Images) Lookup(image string) (string, bool) {
	kind, ok := i[image]
	return kind, ok
}

// CanvasText returns the items whose text equals expected, in drawing order.
func CanvasText(c Canvas, expected string) []ItemID {
	var found []ItemID
	for _, id := range c.Items() {
		if text, ok := c.ItemText(id); ok && text == expected {
			found = append(found, id)
		}
	}
	return found
}

// CanvasImage returns the items showing an image the registry knows as
// expected.
func CanvasImage(registry ImageRegistry, c Canvas, expected string) []ItemID {
	var found []ItemID
	for _, id := range c.Items() {
		image, ok := c.ItemImage(id)
		if !ok {
			continue
		}
		if kind, ok := registry.Lookup(image); ok && kind == expected {
			found = append(found, id)
		}
	}
	return found
}
