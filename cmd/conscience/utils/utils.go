package utils

import (
	"fmt"
	"strings"

	"github.com/kardolus/conscience/keyboard"
)

func ColorToAnsi(color string) (string, string) {
	if color == "" {
		return "", ""
	}

	color = strings.ToLower(strings.TrimSpace(color))

	reset := "\033[0m"

	switch color {
	case "red":
		return "\033[31m", reset
	case "green":
		return "\033[32m", reset
	case "yellow":
		return "\033[33m", reset
	case "blue":
		return "\033[34m", reset
	case "magenta":
		return "\033[35m", reset
	case "cyan":
		return "\033[36m", reset
	default:
		return "", ""
	}
}

// FormatKey renders the synthetic event for key and every sequence that
// routes to it. The key's name is highlighted in color when one is given.
func FormatKey(key, color string) string {
	start, reset := ColorToAnsi(color)
	event := keyboard.Lookup(key)

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s%s: %s char=%q keycode=%d\n", start, key, reset, event, event.Char, event.Keycode)

	spellings := keyboard.Spellings(key)
	if len(spellings) == 0 {
		b.WriteString("  no sequence routes to this key\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  sequences: %s\n", strings.Join(spellings, " "))
	return b.String()
}
