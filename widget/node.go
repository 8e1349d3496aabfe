// Package widget finds elements of a widget tree by what they show rather
// than by how the program under test named them.
package widget

import (
	"fmt"
	"strings"
)

//go:generate mockgen -destination=nodemocks_test.go -package=widget_test github.com/kardolus/conscience/widget Node

// Node is the read-only view of a widget the query engine needs. Text
// reports false for widgets that have no text option at all.
type Node interface {
	Children() []Node
	Text() (string, bool)
	Role() string
}

// Labeled is implemented by nodes carrying a label, such as menu entries.
type Labeled interface {
	Label() (string, bool)
}

// Describe renders a node for failure messages.
func Describe(n Node) string {
	if s, ok := n.(fmt.Stringer); ok {
		return s.String()
	}
	if text, ok := n.Text(); ok {
		return fmt.Sprintf("%s(%q)", n.Role(), text)
	}
	return n.Role()
}

// DescribeAll renders a match set as "[a, b]".
func DescribeAll(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = Describe(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Select returns root and its descendants matching sel, in pre-order with
// children visited in their declared order.
func Select(root Node, sel Selector) []Node {
	var result []Node
	walk(root, func(n Node) {
		if sel.Match(n) {
			result = append(result, n)
		}
	})
	return result
}

// ExpectCount selects and fails with a CountError unless exactly n nodes
// match.
func ExpectCount(root Node, sel Selector, n int) ([]Node, error) {
	found := Select(root, sel)
	if len(found) != n {
		return found, CountError{Selector: sel.String(), Want: n, Found: found}
	}
	return found, nil
}

// ExpectOne is ExpectCount for a single node.
func ExpectOne(root Node, sel Selector) (Node, error) {
	found, err := ExpectCount(root, sel, 1)
	if err != nil {
		return nil, err
	}
	return found[0], nil
}

func walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children() {
		walk(child, visit)
	}
}

// CountError reports a selection whose size was not the expected one.
type CountError struct {
	Selector string
	Want     int
	Found    []Node
}

func (e CountError) Error() string {
	return fmt.Sprintf("cannot find exactly %d widget(s) matching %s, found %s", e.Want, e.Selector, DescribeAll(e.Found))
}
