package rules

import (
	"fmt"

	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/engine"
	"github.com/suderio/recall/internal/intent"
	"github.com/suderio/recall/internal/recipe"
)

// Rule picks Move when When holds.
type Rule struct {
	When   string
	Move   string
	Timing engine.Timing
}

// Script is the behaviour of one enemy.
type Script struct {
	ActorID int
	Moves   map[string]recipe.ActSpec
	Default string
	Rules   []Rule
}

type compiledRule struct {
	cond   *Condition
	move   string
	timing engine.Timing
}

type compiledScript struct {
	actorID int
	moves   map[string]recipe.ActSpec
	def     string
	rules   []compiledRule
}

// Policy is an engine.EnemyPolicy driven by CEL rules. Rules are checked in
// order; the first match wins and the default move is used otherwise.
type Policy struct {
	scripts []compiledScript
}

// NewPolicy compiles every script up front.
func NewPolicy(env *Env, scripts ...Script) (*Policy, error) {
	p := &Policy{}
	for _, s := range scripts {
		if _, ok := s.Moves[s.Default]; !ok {
			return nil, fmt.Errorf("enemy %d: default move %q is not defined", s.ActorID, s.Default)
		}
		cs := compiledScript{actorID: s.ActorID, moves: s.Moves, def: s.Default}
		for i, r := range s.Rules {
			if _, ok := s.Moves[r.Move]; !ok {
				return nil, fmt.Errorf("enemy %d rule %d: move %q is not defined", s.ActorID, i, r.Move)
			}
			cond, err := env.Compile(r.When)
			if err != nil {
				return nil, fmt.Errorf("enemy %d rule %d: %w", s.ActorID, i, err)
			}
			cs.rules = append(cs.rules, compiledRule{cond: cond, move: r.Move, timing: r.Timing})
		}
		p.scripts = append(p.scripts, cs)
	}
	return p, nil
}

// Decide declares one move per living scripted enemy.
func (p *Policy) Decide(v engine.PolicyView) ([]engine.Declaration, error) {
	player := v.Roster.Player()
	if player == nil {
		return nil, nil
	}
	var out []engine.Declaration
	for _, s := range p.scripts {
		self, ok := v.Roster.ResolveActorByID(s.actorID)
		if !ok || !self.Alive() {
			continue
		}
		vars := map[string]any{
			"self":   actorVars(self),
			"player": actorVars(player),
			"turn":   int64(v.Turn),
		}

		move, timing := s.def, engine.TimingMark
		for _, r := range s.rules {
			hit, err := r.cond.Eval(vars)
			if err != nil {
				return nil, fmt.Errorf("enemy %d: %w", s.actorID, err)
			}
			if hit {
				move, timing = r.move, r.timing
				break
			}
		}

		spec := s.moves[move]
		target := intent.NoTarget
		if spec.Target == recipe.TargetOther {
			target = player.ID
		}
		out = append(out, engine.Declaration{ActorID: s.actorID, Intent: intent.Declare(spec, target), Timing: timing})
	}
	return out, nil
}

func actorVars(a *actor.Actor) map[string]any {
	return map[string]any{
		"id":     int64(a.ID),
		"name":   a.Name,
		"hp":     int64(a.HP.Current()),
		"max_hp": int64(a.HP.Max()),
		"shield": int64(a.Shield.Current()),
		"ap":     int64(a.AP.Current()),
		"charge": int64(a.Charge.Current()),
		"copy":   int64(a.Copy.Current()),
	}
}
