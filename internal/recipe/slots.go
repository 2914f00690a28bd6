package recipe

import (
	"errors"
	"fmt"

	"github.com/suderio/recall/internal/failure"
)

// ErrCapacity is returned for a non-positive slot capacity.
var ErrCapacity = errors.New("slot capacity must be positive")

// DefaultSlotCapacity is the slot store size used when none is configured.
const DefaultSlotCapacity = 5

// Slots is the fixed-capacity store of granted acts. Slot ids are assigned
// on add and never reused within a store.
type Slots struct {
	capacity int
	acts     []*Act
	nextID   int
}

// NewSlots creates an empty store.
func NewSlots(capacity int) (*Slots, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}
	return &Slots{capacity: capacity, nextID: 1}, nil
}

// Len returns the number of stored acts.
func (s *Slots) Len() int { return len(s.acts) }

// Cap returns the store capacity.
func (s *Slots) Cap() int { return s.capacity }

// Full reports whether no slot is free.
func (s *Slots) Full() bool { return len(s.acts) >= s.capacity }

// Add stores act and returns its slot id. A full store rejects the add
// without evicting anything.
func (s *Slots) Add(act Act) (int, failure.Code) {
	if s.Full() {
		return 0, failure.ActSlotsFull
	}
	act.SlotID = s.nextID
	s.nextID++
	s.acts = append(s.acts, &act)
	return act.SlotID, failure.None
}

// Get returns the live act in slot id.
func (s *Slots) Get(id int) (*Act, bool) {
	for _, a := range s.acts {
		if a.SlotID == id {
			return a, true
		}
	}
	return nil, false
}

// Remove drops the act in slot id.
func (s *Slots) Remove(id int) bool {
	for i, a := range s.acts {
		if a.SlotID == id {
			s.acts = append(s.acts[:i], s.acts[i+1:]...)
			return true
		}
	}
	return false
}

// TickCooldowns advances every cooldown by one turn.
func (s *Slots) TickCooldowns() {
	for _, a := range s.acts {
		a.Tick()
	}
}

// List returns copies of the stored acts in slot order.
func (s *Slots) List() []Act {
	out := make([]Act, 0, len(s.acts))
	for _, a := range s.acts {
		out = append(out, *a)
	}
	return out
}
