package session

import (
	"fmt"

	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/engine"
	"github.com/suderio/recall/internal/intent"
	"github.com/suderio/recall/internal/memory"
	"github.com/suderio/recall/internal/recipe"
)

// Decision is one autopilot move. End means the turn should be ended.
type Decision struct {
	Intent intent.Intent
	End    bool
}

// Autopilot is a scripted player used for batch simulations. It recalls the
// longest window from earlier turns when it can, then uses ready slot acts,
// then falls back to basic acts until AP runs out.
type Autopilot struct{}

// Decide picks the next move from a snapshot.
func (Autopilot) Decide(s *Session) Decision {
	snap := s.Snapshot()
	var me actor.State
	var foe *actor.State
	for i, a := range snap.Actors {
		switch {
		case a.ID == s.PlayerID():
			me = a
		case a.Side == actor.SideEnemy.String() && a.Alive:
			if foe == nil || a.HP < foe.HP {
				foe = &snap.Actors[i]
			}
		}
	}
	if foe == nil {
		return Decision{End: true}
	}
	spendable := func(cost int) bool { return !me.HasAP || me.AP >= cost }

	if !snap.RecallUsed && len(snap.Slots) < snap.SlotCap && spendable(recipe.RecallAPCost) {
		if in, ok := bestRecall(s, snap); ok {
			return Decision{Intent: in}
		}
	}

	for _, act := range snap.Slots {
		if act.Cooldown > 0 || !spendable(act.Spec.APCost) || act.Spec.ChargeCost > me.Charge {
			continue
		}
		return Decision{Intent: intent.UseSlot(act.SlotID, foe.ID)}
	}

	if !spendable(1) || (me.HasAP && me.AP == 0) {
		return Decision{End: true}
	}
	switch {
	case me.Shield == 0 && me.HP*5 < me.MaxHP*2:
		return Decision{Intent: intent.Act(memory.TagBlock, intent.NoTarget)}
	case me.ChargeMax > 0 && me.Charge == 0 && snap.Turn%3 == 0:
		return Decision{Intent: intent.Act(memory.TagCharge, intent.NoTarget)}
	}
	return Decision{Intent: intent.Act(memory.TagAttack, foe.ID)}
}

func bestRecall(s *Session, snap engine.Snapshot) (intent.Intent, bool) {
	n := len(snap.MemoryOps)
	for size := min(3, n); size >= 1; size-- {
		for start := n - size; start >= 0; start-- {
			idx := make([]int, size)
			for k := range idx {
				idx[k] = start + k
			}
			list, code := s.Candidates(idx)
			if code.OK() && len(list) > 0 {
				return intent.RecallAs(list[0].ID, idx...), true
			}
		}
	}
	return intent.Intent{}, false
}

const maxMovesPerTurn = 20

// Autoplay starts the session and lets the autopilot play until the combat
// ends or maxTurns have passed.
func (s *Session) Autoplay(maxTurns int) (engine.Outcome, error) {
	pilot := Autopilot{}
	sig := s.Start()
	turn, moves := s.combat.Turn(), 0
	for sig == engine.WaitInput {
		if s.combat.Turn() > maxTurns {
			s.Feed()
			return engine.Ongoing, nil
		}
		if t := s.combat.Turn(); t != turn {
			turn, moves = t, 0
		}
		moves++
		d := pilot.Decide(s)
		if d.End || moves > maxMovesPerTurn {
			sig = s.EndTurn(s.PlayerID())
			continue
		}
		sig = s.SubmitIntent(s.PlayerID(), d.Intent)
		if sig == engine.WaitInput && !s.LastFailure().OK() {
			s.log.Debug().Str("code", s.LastFailure().String()).Msg("autopilot move rejected, ending turn")
			sig = s.EndTurn(s.PlayerID())
		}
	}
	s.Feed()
	if sig != engine.CombatEnd {
		return s.combat.Outcome(), fmt.Errorf("combat stopped: %s", sig)
	}
	return s.combat.Outcome(), nil
}
