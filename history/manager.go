package history

import (
	"errors"
	"os"
	"time"
)

// DefaultLimit is how many entries a Manager keeps unless told otherwise.
const DefaultLimit = 100

type Manager struct {
	store Store
	limit int
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, limit: DefaultLimit, now: time.Now}
}

// WithLimit caps the number of stored entries; the oldest are dropped first.
func (m *Manager) WithLimit(limit int) *Manager {
	m.limit = limit
	return m
}

func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Entries returns the stored entries, oldest first. A missing file is an
// empty history.
func (m *Manager) Entries() ([]Entry, error) {
	entries, err := m.store.Read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

// Record appends entry, stamping it when it carries no timestamp.
func (m *Manager) Record(entry Entry) error {
	entries, err := m.Entries()
	if err != nil {
		return err
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.now()
	}
	entries = append(entries, entry)

	if m.limit > 0 && len(entries) > m.limit {
		entries = entries[len(entries)-m.limit:]
	}
	return m.store.Write(entries)
}

func (m *Manager) Print() (string, error) {
	entries, err := m.Entries()
	if err != nil {
		return "", err
	}

	var result string
	for _, entry := range entries {
		result += formatEntry(entry)
	}
	return result, nil
}

func (m *Manager) Clear() error {
	return m.store.Delete()
}
