package widget

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindEverything Kind = iota
	KindAll
	KindText
	KindRoughText
	KindRole
	KindHasText
	KindLeaf
	KindLabel
)

// Selector is a pure predicate over a Node. Build selectors with the
// constructors below and combine them with All.
type Selector struct {
	kind  Kind
	value string
	parts []Selector
}

// Everything matches every node.
func Everything() Selector {
	return Selector{kind: KindEverything}
}

// All matches nodes accepted by every one of sels. All() matches everything.
func All(sels ...Selector) Selector {
	return Selector{kind: KindAll, parts: append([]Selector(nil), sels...)}
}

// ByText matches nodes whose text equals expected exactly.
func ByText(expected string) Selector {
	return Selector{kind: KindText, value: expected}
}

// ByRoughText matches nodes whose text equals expected once both are
// lower-cased and trimmed.
func ByRoughText(expected string) Selector {
	return Selector{kind: KindRoughText, value: normalize(expected)}
}

// ByRole matches nodes of the given structural kind, e.g. "Label".
func ByRole(role string) Selector {
	return Selector{kind: KindRole, value: role}
}

// ByClass is ByRole under the toolkit's naming.
func ByClass(class string) Selector {
	return ByRole(class)
}

// HasText matches nodes that have a text option, whatever its value.
func HasText() Selector {
	return Selector{kind: KindHasText}
}

// IsLeaf matches nodes without children.
func IsLeaf() Selector {
	return Selector{kind: KindLeaf}
}

// ByLabel matches labeled nodes whose label contains expected, ignoring case.
func ByLabel(expected string) Selector {
	return Selector{kind: KindLabel, value: strings.ToLower(expected)}
}

func (s Selector) Kind() Kind {
	return s.kind
}

func (s Selector) Match(n Node) bool {
	switch s.kind {
	case KindEverything:
		return true
	case KindAll:
		for _, part := range s.parts {
			if !part.Match(n) {
				return false
			}
		}
		return true
	case KindText:
		text, ok := n.Text()
		return ok && text == s.value
	case KindRoughText:
		text, ok := n.Text()
		return ok && normalize(text) == s.value
	case KindRole:
		return n.Role() == s.value
	case KindHasText:
		_, ok := n.Text()
		return ok
	case KindLeaf:
		return len(n.Children()) == 0
	case KindLabel:
		labeled, ok := n.(Labeled)
		if !ok {
			return false
		}
		label, ok := labeled.Label()
		return ok && strings.Contains(strings.ToLower(label), s.value)
	default:
		return false
	}
}

func (s Selector) String() string {
	switch s.kind {
	case KindEverything:
		return "anything"
	case KindAll:
		if len(s.parts) == 0 {
			return "anything"
		}
		parts := make([]string, len(s.parts))
		for i, part := range s.parts {
			parts[i] = part.String()
		}
		return strings.Join(parts, " and ")
	case KindText:
		return fmt.Sprintf("text %q", s.value)
	case KindRoughText:
		return fmt.Sprintf("text roughly %q", s.value)
	case KindRole:
		return fmt.Sprintf("type %s", s.value)
	case KindHasText:
		return "any text"
	case KindLeaf:
		return "no children"
	case KindLabel:
		return fmt.Sprintf("label containing %q", s.value)
	default:
		return fmt.Sprintf("selector(%d)", int(s.kind))
	}
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
