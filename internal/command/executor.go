// Package command implements the atomic mutation layer: single commands
// over actor resources and the batch executor that applies them.
package command

import (
	"fmt"

	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/failure"
)

// ExecuteAll applies every command in order and logs each effect. It never fails.
func ExecuteAll(cmds []AtomicCmd) []Effect {
	log := make([]Effect, 0, len(cmds))
	for _, c := range cmds {
		log = append(log, c.Execute())
	}
	return log
}

// ExecuteOrDiscard validates the whole batch before touching any state.
// The batch is rejected with SelfDead when a source actor is down, with NoAP
// when the summed ConsumeAP demand of a source exceeds its current AP, and
// with NoCharge when the summed ConsumeCharge demand exceeds current charge.
// Only when every check passes are the commands executed, in order.
func ExecuteOrDiscard(cmds []AtomicCmd) ([]Effect, failure.Code) {
	apDemand := make(map[*actor.Actor]int)
	chargeDemand := make(map[*actor.Actor]int)

	for _, c := range cmds {
		if c.Source != nil && !c.Source.Alive() {
			return nil, failure.SelfDead
		}
		if c.Amount <= 0 {
			continue
		}
		switch c.Op {
		case OpConsumeAP:
			apDemand[c.Source] += c.Amount
		case OpConsumeCharge:
			chargeDemand[c.Target] += c.Amount
		}
	}
	for a, need := range apDemand {
		if need > a.AP.Current() {
			return nil, failure.NoAP
		}
	}
	for a, need := range chargeDemand {
		if need > a.Charge.Current() {
			return nil, failure.NoCharge
		}
	}

	log := make([]Effect, 0, len(cmds))
	for _, c := range cmds {
		eff := c.Execute()
		if c.Op == OpConsumeAP && !eff.OK {
			// Aggregate validation passed, so the translator and executor disagree.
			panic(fmt.Sprintf("command: ConsumeAP(%d) failed on actor %d after validation", c.Amount, c.Target.ID))
		}
		log = append(log, eff)
	}
	return log, failure.None
}
