package actor

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when two actors share an id.
var ErrDuplicateID = errors.New("duplicate actor id")

// Roster owns every actor of a combat, in insertion order.
type Roster struct {
	byID  map[int]*Actor
	order []*Actor
}

// NewRoster builds a roster from the given actors.
func NewRoster(actors ...*Actor) (*Roster, error) {
	r := &Roster{byID: make(map[int]*Actor, len(actors))}
	for _, a := range actors {
		if err := r.Add(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers an actor.
func (r *Roster) Add(a *Actor) error {
	if a == nil {
		return fmt.Errorf("roster: nil actor")
	}
	if _, ok := r.byID[a.ID]; ok {
		return fmt.Errorf("roster: %w: %d", ErrDuplicateID, a.ID)
	}
	r.byID[a.ID] = a
	r.order = append(r.order, a)
	return nil
}

// ResolveActorByID looks an actor up by id.
func (r *Roster) ResolveActorByID(id int) (*Actor, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// All returns the actors in insertion order.
func (r *Roster) All() []*Actor {
	out := make([]*Actor, len(r.order))
	copy(out, r.order)
	return out
}

// Side returns the actors of one side in insertion order.
func (r *Roster) Side(s Side) []*Actor {
	var out []*Actor
	for _, a := range r.order {
		if a.Side == s {
			out = append(out, a)
		}
	}
	return out
}

// Player returns the first player-side actor, or nil.
func (r *Roster) Player() *Actor {
	for _, a := range r.order {
		if a.Side == SidePlayer {
			return a
		}
	}
	return nil
}

// AnyAlive reports whether at least one actor of the side is alive.
func (r *Roster) AnyAlive(s Side) bool {
	for _, a := range r.order {
		if a.Side == s && a.Alive() {
			return true
		}
	}
	return false
}

// States snapshots every actor.
func (r *Roster) States() []State {
	out := make([]State, 0, len(r.order))
	for _, a := range r.order {
		out = append(out, a.Snapshot())
	}
	return out
}
