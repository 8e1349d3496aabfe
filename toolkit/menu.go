package toolkit

import "fmt"

// Menu holds command and cascade entries. Every entry is a labeled child
// widget, so selectors reach the entries of nested menus too.
type Menu struct {
	*Widget
}

func NewMenu(parent Container, opts Options) (*Menu, error) {
	w, err := NewWidget(parent, "Menu", opts)
	if err != nil {
		return nil, err
	}
	m := &Menu{Widget: w}
	w.self = m
	return m, nil
}

// AddCommand appends an entry running command when invoked.
func (m *Menu) AddCommand(label string, command func()) (*Widget, error) {
	return NewWidget(m, "MenuEntry", Options{"label": label, "command": command})
}

// AddCascade appends an entry opening sub. Create sub with m as its parent.
func (m *Menu) AddCascade(label string, sub *Menu) (*Widget, error) {
	if sub == nil {
		return nil, fmt.Errorf("cascade %q of %s has no menu", label, m.path)
	}
	return NewWidget(m, "MenuEntry", Options{"label": label, "menu": sub})
}

// Entries returns the menu's own entries in order.
func (m *Menu) Entries() []*Widget {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*Widget
	for _, child := range m.children {
		if child.class == "MenuEntry" {
			result = append(result, child)
		}
	}
	return result
}

// Submenu reports the menu a cascade entry opens.
func (w *Widget) Submenu() (*Menu, bool) {
	value, err := w.Cget("menu")
	if err != nil {
		return nil, false
	}
	sub, ok := value.(*Menu)
	return sub, ok && sub != nil
}
