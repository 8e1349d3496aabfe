package suite

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
)

const truncationBanner = "\n…(truncated)\n"

// Transcript is a line oriented log capped at a byte budget. When the cap
// is exceeded the oldest bytes go first and a banner marks the cut.
type Transcript struct {
	mu  sync.Mutex
	max int
	b   []byte
}

func NewTranscript(maxBytes int) *Transcript {
	if maxBytes < 0 {
		maxBytes = 0
	}
	return &Transcript{
		max: maxBytes,
		b:   make([]byte, 0, min(maxBytes, 4096)),
	}
}

func (t *Transcript) AppendString(s string) {
	if t == nil || s == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.max <= 0 {
		return
	}

	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	t.b = append(t.b, s...)
	t.enforceCapLocked()
}

func (t *Transcript) Appendf(format string, args ...any) {
	t.AppendString(fmt.Sprintf(format, args...))
}

func (t *Transcript) String() string {
	if t == nil {
		return ""
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.b)
}

func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.b)
}

func (t *Transcript) Reset() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.b = t.b[:0]
}

func (t *Transcript) enforceCapLocked() {
	if len(t.b) <= t.max {
		return
	}

	banner := []byte(truncationBanner)
	if len(banner) >= t.max {
		t.b = append(t.b[:0], t.b[len(t.b)-t.max:]...)
		return
	}

	body := t.b
	if bytes.HasPrefix(body, banner) {
		body = body[len(banner):]
	}
	keep := t.max - len(banner)
	if len(body) > keep {
		body = body[len(body)-keep:]
	}

	next := make([]byte, 0, t.max)
	next = append(next, banner...)
	next = append(next, body...)
	t.b = next
}
