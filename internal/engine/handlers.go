package engine

import "github.com/suderio/recall/internal/actor"

// DefaultTable is the standard turn cycle.
func DefaultTable() Table {
	return Table{
		CombatStart:    advance,
		TurnStart:      turnStart,
		EnemyPlan:      enemyPlan,
		EnemyImmediate: drainThen(func(c *Combat) *Queue { return &c.immediate }),
		PlayerInput:    func(*Combat) Signal { return WaitInput },
		PlayerExecute:  drainThen(func(c *Combat) *Queue { return &c.player }),
		PlayerEnd:      advance,
		EnemyExecute:   drainThen(func(c *Combat) *Queue { return &c.mark }),
		TurnEnd:        advance,
		CombatOver:     func(*Combat) Signal { return CombatEnd },
	}
}

func (c *Combat) fire(event string) Signal {
	if err := c.phase.Fire(event); err != nil {
		c.log.Error().Err(err).Msg("phase transition")
		return Interrupt
	}
	return Continue
}

func advance(c *Combat) Signal { return c.fire(EventNext) }

func turnStart(c *Combat) Signal {
	c.phase.StartNewTurn()
	// Starting shields last through the first turn.
	clearShields := c.phase.Turn() > 1
	for _, a := range c.roster.All() {
		if !a.Alive() {
			continue
		}
		a.RefillAP()
		if clearShields {
			a.Shield.Clear()
		}
	}
	c.slots.TickCooldowns()
	c.log.Debug().Int("turn", c.phase.Turn()).Msg("turn started")
	return advance(c)
}

func enemyPlan(c *Combat) Signal {
	decls, err := c.policy.Decide(PolicyView{Turn: c.phase.Turn(), Roster: c.roster})
	if err != nil {
		c.log.Error().Err(err).Int("turn", c.phase.Turn()).Msg("enemy policy failed")
		return Pending
	}
	for _, d := range decls {
		a, ok := c.roster.ResolveActorByID(d.ActorID)
		if !ok || a.Side != actor.SideEnemy {
			c.log.Warn().Int("actor", d.ActorID).Msg("policy declared for a non-enemy actor")
			continue
		}
		q := Queued{ActorID: d.ActorID, Intent: d.Intent, Timing: d.Timing}
		if d.Timing == TimingImmediate {
			c.immediate.Push(q)
		} else {
			c.mark.Push(q)
		}
	}
	return advance(c)
}

func drainThen(pick func(c *Combat) *Queue) Handler {
	return func(c *Combat) Signal {
		c.drain(pick(c))
		if c.Outcome() != Ongoing {
			c.player.Clear()
			c.mark.Clear()
			c.immediate.Clear()
			return c.fire(EventFinish)
		}
		return advance(c)
	}
}
