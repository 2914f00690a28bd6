package intent

import (
	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/command"
	"github.com/suderio/recall/internal/recipe"
)

// Kind tells which payload a plan was built from.
type Kind int

const (
	KindBasic Kind = iota + 1
	KindSlot
	KindRecall
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindSlot:
		return "slot"
	case KindRecall:
		return "recall"
	}
	return "unknown"
}

// Plan is a validated, costed intent. It is used once and discarded.
type Plan struct {
	Kind   Kind
	Owner  *actor.Actor
	Target *actor.Actor
	Intent Intent

	Spec   recipe.ActSpec
	SlotID int
	Recipe recipe.Recipe
	// Indices is the sorted memory window of a recall.
	Indices []int

	APCost     int
	ChargeCost int
	Damage     int
	Block      int
	Repeat     int
	ChargeGain int
	CopyGain   int
	UseCopy    bool
}

// Commands expands the plan into atomic commands: costs first, then the
// repeated effects, then gains.
func (p Plan) Commands() []command.AtomicCmd {
	var cmds []command.AtomicCmd
	o := p.Owner

	if p.APCost > 0 && o.AP.Present() {
		cmds = append(cmds, command.MustNew(command.OpConsumeAP, o, o, p.APCost))
	}
	if p.ChargeCost > 0 {
		cmds = append(cmds, command.MustNew(command.OpConsumeCharge, o, o, p.ChargeCost))
	}
	if p.UseCopy {
		cmds = append(cmds, command.MustNew(command.OpConsumeCopy, o, o, 1))
	}
	for i := 0; i < p.Repeat; i++ {
		if p.Damage > 0 && p.Target != nil {
			cmds = append(cmds, command.MustNew(command.OpDealDamage, o, p.Target, p.Damage))
		}
		if p.Block > 0 {
			cmds = append(cmds, command.MustNew(command.OpAddShield, o, o, p.Block))
		}
	}
	if p.ChargeGain > 0 {
		cmds = append(cmds, command.MustNew(command.OpGainCharge, o, o, p.ChargeGain))
	}
	if p.CopyGain > 0 {
		cmds = append(cmds, command.MustNew(command.OpGainCopy, o, o, p.CopyGain))
	}
	return cmds
}
