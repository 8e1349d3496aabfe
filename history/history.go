// Package history keeps the failure reports of past scenarios so they can be
// reviewed after a run.
package history

import (
	"fmt"
	"strings"
	"time"
)

// Entry is the report of one failed step.
type Entry struct {
	Scenario  string    `yaml:"scenario"`
	Name      string    `yaml:"name,omitempty"`
	Step      string    `yaml:"step"`
	Seed      int64     `yaml:"seed"`
	Hint      string    `yaml:"hint,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

func formatEntry(entry Entry) string {
	var timestamp string
	if !entry.Timestamp.IsZero() {
		timestamp = fmt.Sprintf(" [%s]", entry.Timestamp.Format("2006-01-02 15:04:05"))
	}

	name := entry.Name
	if name == "" {
		name = entry.Scenario
	}

	result := fmt.Sprintf("---\n**%s**%s seed=%d\nstep: %s\n", name, timestamp, entry.Seed, entry.Step)
	if entry.Hint != "" {
		result += strings.TrimRight(entry.Hint, "\n") + "\n"
	}
	return result
}
