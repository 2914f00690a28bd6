// Package memory keeps the bounded history of basic actions that recall
// combos are built from.
package memory

import (
	"errors"
	"fmt"
)

// ErrCapacity is returned for a non-positive log capacity.
var ErrCapacity = errors.New("memory log capacity must be positive")

// DefaultCapacity is the log size used when none is configured.
const DefaultCapacity = 5

// Tag identifies the kind of action recorded. Tags are single decimal
// digits so a window of them folds into a pattern key.
type Tag int

const (
	TagNone Tag = iota
	TagAttack
	TagBlock
	TagCharge
)

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "-"
	case TagAttack:
		return "A"
	case TagBlock:
		return "B"
	case TagCharge:
		return "C"
	default:
		return fmt.Sprintf("T%d", int(t))
	}
}

// Entry is one recorded action.
type Entry struct {
	Tag  Tag `json:"tag"`
	Turn int `json:"turn"`
}

// Log is a fixed-capacity ring buffer; the oldest entry is evicted first.
type Log struct {
	buf   []Entry
	start int
	n     int
}

// NewLog creates an empty log holding at most capacity entries.
func NewLog(capacity int) (*Log, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}
	return &Log{buf: make([]Entry, capacity)}, nil
}

// Push records an action, evicting the oldest entry when full.
func (l *Log) Push(tag Tag, turn int) {
	if l.n < len(l.buf) {
		l.buf[(l.start+l.n)%len(l.buf)] = Entry{Tag: tag, Turn: turn}
		l.n++
		return
	}
	l.buf[l.start] = Entry{Tag: tag, Turn: turn}
	l.start = (l.start + 1) % len(l.buf)
}

// Len returns the number of stored entries.
func (l *Log) Len() int { return l.n }

// Cap returns the fixed capacity.
func (l *Log) Cap() int { return len(l.buf) }

// At returns the i-th entry, 0 being the oldest.
func (l *Log) At(i int) (Entry, bool) {
	if i < 0 || i >= l.n {
		return Entry{}, false
	}
	return l.buf[(l.start+i)%len(l.buf)], true
}

// Entries returns a copy of the stored entries, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, l.n)
	for i := range out {
		out[i] = l.buf[(l.start+i)%len(l.buf)]
	}
	return out
}

// SnapshotOps returns the recorded tags, oldest first.
func (l *Log) SnapshotOps() []Tag {
	out := make([]Tag, l.n)
	for i := range out {
		out[i] = l.buf[(l.start+i)%len(l.buf)].Tag
	}
	return out
}

// SnapshotTurns returns the recorded turns, index-aligned with SnapshotOps.
func (l *Log) SnapshotTurns() []int {
	out := make([]int, l.n)
	for i := range out {
		out[i] = l.buf[(l.start+i)%len(l.buf)].Turn
	}
	return out
}
