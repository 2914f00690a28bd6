package engine

import (
	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/intent"
	"github.com/suderio/recall/internal/recipe"
)

// Declaration is an enemy intent announced during EnemyPlan.
type Declaration struct {
	ActorID int
	Intent  intent.Intent
	Timing  Timing
}

// PolicyView is what an enemy policy may look at.
type PolicyView struct {
	Turn   int
	Roster *actor.Roster
}

// EnemyPolicy decides what the enemies do this turn.
type EnemyPolicy interface {
	Decide(v PolicyView) ([]Declaration, error)
}

// PolicyFunc adapts a function to EnemyPolicy.
type PolicyFunc func(v PolicyView) ([]Declaration, error)

// Decide calls f.
func (f PolicyFunc) Decide(v PolicyView) ([]Declaration, error) { return f(v) }

// DefaultEnemyMove is the strike used by StaticPolicy.
var DefaultEnemyMove = recipe.ActSpec{Name: "Strike", Target: recipe.TargetOther, Damage: 5, Repeat: 1}

// StaticPolicy makes every living enemy telegraph move against the player.
func StaticPolicy(move recipe.ActSpec) EnemyPolicy {
	return PolicyFunc(func(v PolicyView) ([]Declaration, error) {
		player := v.Roster.Player()
		if player == nil {
			return nil, nil
		}
		var out []Declaration
		for _, e := range v.Roster.Side(actor.SideEnemy) {
			if !e.Alive() {
				continue
			}
			out = append(out, Declaration{ActorID: e.ID, Intent: intent.Declare(move, player.ID), Timing: TimingMark})
		}
		return out, nil
	})
}
