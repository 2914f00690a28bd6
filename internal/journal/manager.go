package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ext = ".jsonl"

// Manager maps session ids to journal files inside one directory.
type Manager struct {
	Dir string
}

// NewManager returns a manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{Dir: dir}
}

// Path returns the journal file for a session.
func (m *Manager) Path(session string) string {
	return filepath.Join(m.Dir, session+ext)
}

// Create makes the directory if needed and opens a fresh journal.
func (m *Manager) Create(session string) (*Store, error) {
	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", m.Dir, err)
	}
	return NewStore(m.Path(session))
}

// Open opens an existing journal.
func (m *Manager) Open(session string) (*Store, error) {
	path := m.Path(session)
	if st, err := os.Stat(path); err != nil || st.IsDir() {
		return nil, fmt.Errorf("journal not found: %s", path)
	}
	return NewStore(path)
}

// List returns the session ids in the directory, oldest first.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	type item struct {
		id  string
		mod int64
	}
	var items []item
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, item{id: strings.TrimSuffix(e.Name(), ext), mod: info.ModTime().UnixNano()})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].mod == items[j].mod {
			return items[i].id < items[j].id
		}
		return items[i].mod < items[j].mod
	})
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.id
	}
	return ids, nil
}

// Latest returns the most recently written session id.
func (m *Manager) Latest() (string, error) {
	ids, err := m.List()
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no journals in %s", m.Dir)
	}
	return ids[len(ids)-1], nil
}
