package engine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/suderio/recall/internal/actor"
)

// Phase events.
const (
	EventNext    = "next"
	EventSubmit  = "submit"
	EventEndTurn = "end_turn"
	EventFinish  = "finish"
)

// Phase is the phase context: current step, turn number and the
// once-per-turn recall flag. Step changes go through a guarded machine so an
// illegal transition is an error instead of a silent jump.
type Phase struct {
	machine    *fsm.FSM
	turn       int
	recallUsed bool
}

func stepName(s Step) string { return s.String() }

// NewPhase starts at CombatStart on turn 0.
func NewPhase() *Phase {
	live := make([]string, 0, len(Steps)-1)
	for _, s := range Steps {
		if s != CombatOver {
			live = append(live, stepName(s))
		}
	}

	events := fsm.Events{
		{Name: EventNext, Src: []string{stepName(CombatStart)}, Dst: stepName(TurnStart)},
		{Name: EventNext, Src: []string{stepName(TurnStart)}, Dst: stepName(EnemyPlan)},
		{Name: EventNext, Src: []string{stepName(EnemyPlan)}, Dst: stepName(EnemyImmediate)},
		{Name: EventNext, Src: []string{stepName(EnemyImmediate)}, Dst: stepName(PlayerInput)},
		{Name: EventNext, Src: []string{stepName(PlayerExecute)}, Dst: stepName(PlayerInput)},
		{Name: EventNext, Src: []string{stepName(PlayerEnd)}, Dst: stepName(EnemyExecute)},
		{Name: EventNext, Src: []string{stepName(EnemyExecute)}, Dst: stepName(TurnEnd)},
		{Name: EventNext, Src: []string{stepName(TurnEnd)}, Dst: stepName(TurnStart)},
		{Name: EventSubmit, Src: []string{stepName(PlayerInput)}, Dst: stepName(PlayerExecute)},
		{Name: EventEndTurn, Src: []string{stepName(PlayerInput)}, Dst: stepName(PlayerEnd)},
		{Name: EventFinish, Src: live, Dst: stepName(CombatOver)},
	}
	return &Phase{machine: fsm.NewFSM(stepName(CombatStart), events, fsm.Callbacks{})}
}

// Step returns the current step.
func (p *Phase) Step() Step {
	s, _ := parseStep(p.machine.Current())
	return s
}

// Fire applies a phase event.
func (p *Phase) Fire(event string) error {
	if err := p.machine.Event(context.Background(), event); err != nil {
		return fmt.Errorf("phase %s: %s: %w", p.machine.Current(), event, err)
	}
	return nil
}

// Can reports whether event is legal from the current step.
func (p *Phase) Can(event string) bool { return p.machine.Can(event) }

// Turn returns the current turn number.
func (p *Phase) Turn() int { return p.turn }

// RecallUsed reports whether this turn's recall is spent.
func (p *Phase) RecallUsed() bool { return p.recallUsed }

// StartNewTurn advances the turn counter and re-arms recall.
func (p *Phase) StartNewTurn() {
	p.turn++
	p.recallUsed = false
}

// MarkRecallUsed spends this turn's recall.
func (p *Phase) MarkRecallUsed() { p.recallUsed = true }

// AcceptsSide reports whether actors of side may resolve actions now.
func (p *Phase) AcceptsSide(s actor.Side) bool {
	switch s {
	case actor.SidePlayer:
		return p.Step().In(FamilyPlayer)
	case actor.SideEnemy:
		return p.Step().In(FamilyEnemy)
	}
	return false
}
