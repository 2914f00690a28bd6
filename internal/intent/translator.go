package intent

import (
	"errors"

	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/failure"
	"github.com/suderio/recall/internal/memory"
	"github.com/suderio/recall/internal/recipe"
)

// ErrMissingDependency is returned when a translator is built without one of
// its collaborators.
var ErrMissingDependency = errors.New("translator dependency is nil")

// ActorResolver looks actors up by id.
type ActorResolver interface {
	ResolveActorByID(id int) (*actor.Actor, bool)
}

// PhaseView is the read-only part of the phase context the translator needs.
type PhaseView interface {
	AcceptsSide(s actor.Side) bool
	Turn() int
	RecallUsed() bool
}

// Translator validates intents against current state.
type Translator struct {
	actors   ActorResolver
	phase    PhaseView
	memory   *memory.Log
	slots    *recipe.Slots
	registry *recipe.Registry
}

// NewTranslator wires a translator to the session state it reads.
func NewTranslator(actors ActorResolver, phase PhaseView, log *memory.Log, slots *recipe.Slots, reg *recipe.Registry) (*Translator, error) {
	if actors == nil || phase == nil || log == nil || slots == nil || reg == nil {
		return nil, ErrMissingDependency
	}
	return &Translator{actors: actors, phase: phase, memory: log, slots: slots, registry: reg}, nil
}

// Translate checks an intent for actorID and returns its plan.
func (t *Translator) Translate(actorID int, in Intent) (Plan, failure.Code) {
	owner, ok := t.actors.ResolveActorByID(actorID)
	if !ok || !owner.Alive() {
		return Plan{}, failure.SelfDead
	}
	if !t.phase.AcceptsSide(owner.Side) {
		return Plan{}, failure.PhaseLocked
	}

	switch p := in.Payload.(type) {
	case Basic:
		spec, ok := recipe.Basic(p.Tag)
		if !ok {
			return Plan{}, failure.UnknownIntent
		}
		return t.action(owner, in, spec, KindBasic, 0)
	case Move:
		if owner.Side != actor.SideEnemy {
			return Plan{}, failure.UnknownIntent
		}
		spec := p.Spec
		spec.Tag = memory.TagNone
		return t.action(owner, in, spec, KindBasic, 0)
	case Slot:
		act, ok := t.slots.Get(p.SlotID)
		if !ok || owner.Side != actor.SidePlayer {
			return Plan{}, failure.UnknownIntent
		}
		if !act.Ready() {
			return Plan{}, failure.Cooldown
		}
		return t.action(owner, in, act.Spec, KindSlot, act.SlotID)
	case Recall:
		if owner.Side != actor.SidePlayer {
			return Plan{}, failure.UnknownIntent
		}
		return t.recall(owner, in, p)
	default:
		return Plan{}, failure.UnknownIntent
	}
}

func (t *Translator) action(owner *actor.Actor, in Intent, spec recipe.ActSpec, kind Kind, slotID int) (Plan, failure.Code) {
	target, code := t.target(owner, spec.Target, in.TargetID)
	if !code.OK() {
		return Plan{}, code
	}
	if owner.AP.Present() && spec.APCost > owner.AP.Current() {
		return Plan{}, failure.NoAP
	}
	if spec.ChargeCost > owner.Charge.Current() {
		return Plan{}, failure.NoCharge
	}

	plan := Plan{
		Kind:       kind,
		Owner:      owner,
		Target:     target,
		Intent:     in,
		Spec:       spec,
		SlotID:     slotID,
		APCost:     spec.APCost,
		ChargeCost: spec.ChargeCost,
		Damage:     spec.Damage,
		Block:      spec.Block,
		Repeat:     spec.Hits(),
		ChargeGain: spec.ChargeGain,
		CopyGain:   spec.CopyGain,
	}
	if spec.Repeatable() && owner.Copy.Current() >= 1 {
		plan.Repeat *= 2
		plan.UseCopy = true
	}
	return plan, failure.None
}

func (t *Translator) target(owner *actor.Actor, mode recipe.TargetMode, id int) (*actor.Actor, failure.Code) {
	switch mode {
	case recipe.TargetSelf:
		return owner, failure.None
	case recipe.TargetOther:
		if id == NoTarget || id == owner.ID {
			return nil, failure.BadTarget
		}
		tgt, ok := t.actors.ResolveActorByID(id)
		if !ok || !tgt.Alive() {
			return nil, failure.BadTarget
		}
		return tgt, failure.None
	default:
		return nil, failure.None
	}
}

func (t *Translator) recall(owner *actor.Actor, in Intent, r Recall) (Plan, failure.Code) {
	if t.phase.RecallUsed() {
		return Plan{}, failure.RecallUsed
	}
	if t.slots.Full() {
		return Plan{}, failure.ActSlotsFull
	}
	rc, ok := t.registry.Lookup(r.RecipeID)
	if !ok {
		return Plan{}, failure.NoRecipe
	}
	sorted, code := recipe.ValidateRecall(r.Indices, t.memory.SnapshotTurns(), t.phase.Turn())
	if !code.OK() {
		return Plan{}, code
	}
	if rc.Pattern != recipe.Encode(recipe.Window(t.memory.SnapshotOps(), sorted)) {
		return Plan{}, failure.NoRecipe
	}

	plan := Plan{Kind: KindRecall, Owner: owner, Intent: in, Recipe: rc, Spec: rc.Spec, Indices: sorted}
	if owner.AP.Present() {
		if owner.AP.Current() < recipe.RecallAPCost {
			return Plan{}, failure.NoAP
		}
		plan.APCost = recipe.RecallAPCost
	}
	return plan, failure.None
}
