// Package keyboard simulates key presses against the input handlers a program
// registered, whichever spelling it used to register them.
package keyboard

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Event is the synthetic payload handed to key callbacks.
type Event struct {
	Char    string
	Keysym  string
	Keycode int
}

func (e Event) String() string {
	return fmt.Sprintf("Event(%s)", e.Keysym)
}

var (
	Left   = Event{Char: "\uf702", Keysym: "Left", Keycode: 2063660802}
	Up     = Event{Char: "\uf700", Keysym: "Up", Keycode: 2113992448}
	Right  = Event{Char: "\uf704", Keysym: "Right", Keycode: 2080438019}
	Down   = Event{Char: "\uf701", Keysym: "Down", Keycode: 2097215233}
	W      = Event{Char: "w", Keysym: "w", Keycode: 222298199}
	A      = Event{Char: "a", Keysym: "a", Keycode: 4194369}
	S      = Event{Char: "s", Keysym: "s", Keycode: 20971603}
	D      = Event{Char: "d", Keysym: "d", Keycode: 37748804}
	Space  = Event{Char: " ", Keysym: "space", Keycode: 0}
	Return = Event{Char: "\r", Keysym: "Return", Keycode: 0}
)

var known = map[string]Event{
	"left":   Left,
	"up":     Up,
	"right":  Right,
	"down":   Down,
	"w":      W,
	"a":      A,
	"s":      S,
	"d":      D,
	"space":  Space,
	"return": Return,
}

var sequencePrefixes = []string{"Any-", "KeyPress-", "KeyRelease-", "Key-"}

// Base strips the brackets and event-type prefixes from a binding
// sequence: "<KeyPress-a>" and "a" both give "a", "<KeyPress>" gives "".
func Base(sequence string) string {
	s := strings.TrimSuffix(strings.TrimPrefix(sequence, "<"), ">")
	for _, prefix := range sequencePrefixes {
		s = strings.TrimPrefix(s, prefix)
	}
	if s == "KeyPress" || s == "KeyRelease" || s == "Key" {
		return ""
	}
	return s
}

// Lookup returns the event for a key in any of its spellings. Keys outside
// the fixed table get a capitalized keysym and a code derived from their
// name, so every spelling of a key gives the same event.
func Lookup(key string) Event {
	base := Base(key)
	lower := strings.ToLower(base)
	if e, ok := known[lower]; ok {
		return e
	}

	if utf8.RuneCountInString(base) == 1 {
		return Event{Char: lower, Keysym: lower, Keycode: code(lower)}
	}
	return Event{Keysym: capitalize(lower), Keycode: code(lower)}
}

// Spellings lists every binding sequence that routes to key.
func Spellings(key string) []string {
	base := Base(key)
	if base == "" {
		return nil
	}
	lower := strings.ToLower(base)

	var result []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	variants := []string{lower, strings.ToUpper(lower), capitalize(lower), base}
	for _, form := range []string{"%s", "<%s>", "<Key-%s>", "<KeyRelease-%s>", "<KeyPress-%s>"} {
		for _, v := range variants {
			add(fmt.Sprintf(form, v))
		}
	}
	return result
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func code(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() & 0x7fffffff)
}
