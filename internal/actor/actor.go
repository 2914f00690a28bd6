// Package actor holds the combat participants and their resources.
package actor

import "fmt"

// Side tells which family of phases an actor acts in.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Actor is a combat participant. Actors are owned by one combat session.
type Actor struct {
	ID     int
	Name   string
	Side   Side
	HP     Resource
	Shield Resource
	AP     Optional
	Charge Optional
	Copy   Optional
}

// Option configures optional resources at construction.
type Option func(*Actor)

// WithAP gives the actor action points refilled to perTurn each turn.
func WithAP(perTurn int) Option {
	return func(a *Actor) { a.AP = Some(NewCapped(perTurn, perTurn)) }
}

// WithCharge gives the actor a charge pool starting empty.
func WithCharge(max int) Option {
	return func(a *Actor) { a.Charge = Some(NewCapped(0, max)) }
}

// WithCopy gives the actor a copy pool starting empty.
func WithCopy(max int) Option {
	return func(a *Actor) { a.Copy = Some(NewCapped(0, max)) }
}

// WithShield sets a starting shield.
func WithShield(n int) Option {
	return func(a *Actor) { a.Shield = NewUncapped(n) }
}

// New creates an actor at full HP. Ids must be positive; 0 means "no actor".
func New(id int, name string, side Side, maxHP int, opts ...Option) (*Actor, error) {
	if id <= 0 {
		return nil, fmt.Errorf("actor %q: id must be positive, got %d", name, id)
	}
	if maxHP <= 0 {
		return nil, fmt.Errorf("actor %q: max hp must be positive, got %d", name, maxHP)
	}
	a := &Actor{
		ID:     id,
		Name:   name,
		Side:   side,
		HP:     NewCapped(maxHP, maxHP),
		Shield: NewUncapped(0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Alive reports whether the actor still has HP.
func (a *Actor) Alive() bool { return a.HP.Current() > 0 }

// RefillAP tops action points up to the per-turn amount.
func (a *Actor) RefillAP() int { return a.AP.Fill() }

// State is a value snapshot of an actor for rendering.
type State struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Side      string `json:"side"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"max_hp"`
	Shield    int    `json:"shield"`
	HasAP     bool   `json:"has_ap"`
	AP        int    `json:"ap"`
	APMax     int    `json:"ap_max"`
	Charge    int    `json:"charge"`
	ChargeMax int    `json:"charge_max"`
	Copy      int    `json:"copy"`
	CopyMax   int    `json:"copy_max"`
	Alive     bool   `json:"alive"`
}

// Snapshot copies the actor's current values.
func (a *Actor) Snapshot() State {
	return State{
		ID:        a.ID,
		Name:      a.Name,
		Side:      a.Side.String(),
		HP:        a.HP.Current(),
		MaxHP:     a.HP.Max(),
		Shield:    a.Shield.Current(),
		HasAP:     a.AP.Present(),
		AP:        a.AP.Current(),
		APMax:     a.AP.Max(),
		Charge:    a.Charge.Current(),
		ChargeMax: a.Charge.Max(),
		Copy:      a.Copy.Current(),
		CopyMax:   a.Copy.Max(),
		Alive:     a.Alive(),
	}
}
