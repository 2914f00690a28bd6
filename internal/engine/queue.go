package engine

import "github.com/suderio/recall/internal/intent"

// Timing says which enemy queue a declared intent goes to.
type Timing int

const (
	// TimingMark resolves after the player ends the turn.
	TimingMark Timing = iota
	// TimingImmediate resolves before the player acts.
	TimingImmediate
)

func (t Timing) String() string {
	if t == TimingImmediate {
		return "immediate"
	}
	return "mark"
}

// Queued is an intent waiting for its phase.
type Queued struct {
	ActorID int
	Intent  intent.Intent
	Timing  Timing
}

// Queue is a FIFO of pending intents.
type Queue struct {
	items []Queued
}

// Push appends to the back.
func (q *Queue) Push(item Queued) { q.items = append(q.items, item) }

// Pop removes the front item.
func (q *Queue) Pop() (Queued, bool) {
	if len(q.items) == 0 {
		return Queued{}, false
	}
	item := q.items[0]
	q.items[0] = Queued{}
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of pending items.
func (q *Queue) Len() int { return len(q.items) }

// Clear drops everything.
func (q *Queue) Clear() { q.items = nil }

// Items returns a copy of the pending items, front first.
func (q *Queue) Items() []Queued {
	out := make([]Queued, len(q.items))
	copy(out, q.items)
	return out
}
