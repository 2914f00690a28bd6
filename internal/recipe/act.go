// Package recipe holds action descriptors, the static combo registry, the
// recall validation pipeline and the act slot store.
package recipe

import (
	"fmt"

	"github.com/suderio/recall/internal/memory"
)

// TargetMode tells the translator how to resolve an act's target.
type TargetMode int

const (
	TargetNone TargetMode = iota
	TargetSelf
	TargetOther
)

func (m TargetMode) String() string {
	switch m {
	case TargetNone:
		return "none"
	case TargetSelf:
		return "self"
	case TargetOther:
		return "other"
	default:
		return fmt.Sprintf("TargetMode(%d)", int(m))
	}
}

// ParseTargetMode maps the names used in encounter files.
func ParseTargetMode(s string) (TargetMode, error) {
	switch s {
	case "", "other", "enemy", "target":
		return TargetOther, nil
	case "self":
		return TargetSelf, nil
	case "none":
		return TargetNone, nil
	}
	return TargetNone, fmt.Errorf("unknown target mode %q", s)
}

// RecallAPCost is the AP price of a recall for actors that use AP.
const RecallAPCost = 1

// ActSpec is the immutable description of an action.
type ActSpec struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Target      TargetMode `json:"target"`
	APCost      int        `json:"ap_cost"`
	Damage      int        `json:"damage,omitempty"`
	Repeat      int        `json:"repeat,omitempty"`
	Block       int        `json:"block,omitempty"`
	ChargeGain  int        `json:"charge_gain,omitempty"`
	ChargeCost  int        `json:"charge_cost,omitempty"`
	CopyGain    int        `json:"copy_gain,omitempty"`
	Tag         memory.Tag `json:"tag,omitempty"`
	Consumable  bool       `json:"consumable,omitempty"`
	Cooldown    int        `json:"cooldown,omitempty"`
}

// Hits returns how many times the damage and block effects apply.
func (s ActSpec) Hits() int {
	if s.Repeat < 1 {
		return 1
	}
	return s.Repeat
}

// Repeatable reports whether the act has effects a copy charge can double.
func (s ActSpec) Repeatable() bool { return s.Damage > 0 || s.Block > 0 }

// Summary renders the act's effects in one line.
func (s ActSpec) Summary() string {
	out := fmt.Sprintf("%s [%d AP", s.Name, s.APCost)
	if s.ChargeCost > 0 {
		out += fmt.Sprintf(", %d charge", s.ChargeCost)
	}
	out += "]"
	if s.Damage > 0 {
		if s.Hits() > 1 {
			out += fmt.Sprintf(" dmg %dx%d", s.Damage, s.Hits())
		} else {
			out += fmt.Sprintf(" dmg %d", s.Damage)
		}
	}
	if s.Block > 0 {
		out += fmt.Sprintf(" block %d", s.Block)
	}
	if s.ChargeGain > 0 {
		out += fmt.Sprintf(" +%d charge", s.ChargeGain)
	}
	if s.CopyGain > 0 {
		out += fmt.Sprintf(" +%d copy", s.CopyGain)
	}
	switch {
	case s.Consumable:
		out += " (once)"
	case s.Cooldown > 0:
		out += fmt.Sprintf(" (cd %d)", s.Cooldown)
	}
	return out
}

var basics = map[memory.Tag]ActSpec{
	memory.TagAttack: {Name: "Attack", Target: TargetOther, APCost: 1, Damage: 6, Repeat: 1, Tag: memory.TagAttack},
	memory.TagBlock:  {Name: "Block", Target: TargetSelf, APCost: 1, Block: 5, Tag: memory.TagBlock},
	memory.TagCharge: {Name: "Charge", Target: TargetSelf, APCost: 1, ChargeGain: 1, Tag: memory.TagCharge},
}

// Basic returns the basic act recorded under tag.
func Basic(tag memory.Tag) (ActSpec, bool) {
	s, ok := basics[tag]
	return s, ok
}

// Attack, Block and Charge are the basic acts every player has.
func Attack() ActSpec { return basics[memory.TagAttack] }
func Block() ActSpec  { return basics[memory.TagBlock] }
func Charge() ActSpec { return basics[memory.TagCharge] }

// Act is a granted action living in a slot.
type Act struct {
	Spec     ActSpec `json:"spec"`
	RecipeID int     `json:"recipe_id"`
	SlotID   int     `json:"slot_id"`
	Cooldown int     `json:"cooldown"`
}

// Ready reports whether the act may be used this turn.
func (a *Act) Ready() bool { return a.Cooldown <= 0 }

// StartCooldown arms the cooldown after a use.
func (a *Act) StartCooldown() { a.Cooldown = a.Spec.Cooldown }

// Tick lowers the remaining cooldown by one turn.
func (a *Act) Tick() {
	if a.Cooldown > 0 {
		a.Cooldown--
	}
}
