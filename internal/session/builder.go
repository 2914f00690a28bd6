package session

import (
	"fmt"

	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/data"
	"github.com/suderio/recall/internal/engine"
	"github.com/suderio/recall/internal/recipe"
	"github.com/suderio/recall/internal/rules"
)

// BuildRoster creates the actors described by an encounter.
func BuildRoster(enc *data.Encounter) (*actor.Roster, error) {
	p := enc.Player
	opts := []actor.Option{actor.WithShield(p.Shield)}
	if p.AP > 0 {
		opts = append(opts, actor.WithAP(p.AP))
	}
	if p.Charge > 0 {
		opts = append(opts, actor.WithCharge(p.Charge))
	}
	if p.Copy > 0 {
		opts = append(opts, actor.WithCopy(p.Copy))
	}
	hero, err := actor.New(p.ID, p.Name, actor.SidePlayer, p.HP, opts...)
	if err != nil {
		return nil, err
	}
	roster, err := actor.NewRoster(hero)
	if err != nil {
		return nil, err
	}

	for _, e := range enc.Enemies {
		var eopts []actor.Option
		if e.Shield > 0 {
			eopts = append(eopts, actor.WithShield(e.Shield))
		}
		a, err := actor.New(e.ID, e.Name, actor.SideEnemy, e.HP, eopts...)
		if err != nil {
			return nil, err
		}
		if err := roster.Add(a); err != nil {
			return nil, err
		}
	}
	return roster, nil
}

// BuildPolicy compiles the enemy scripts of an encounter.
func BuildPolicy(enc *data.Encounter, env *rules.Env) (*rules.Policy, error) {
	scripts := make([]rules.Script, 0, len(enc.Enemies))
	for _, e := range enc.Enemies {
		s := rules.Script{ActorID: e.ID, Default: e.Default, Moves: make(map[string]recipe.ActSpec, len(e.Moves))}
		for key, m := range e.Moves {
			spec, err := m.Spec(key)
			if err != nil {
				return nil, fmt.Errorf("enemy %q: %w", e.Name, err)
			}
			s.Moves[key] = spec
		}
		for _, r := range e.Policy {
			timing := engine.TimingMark
			if r.Timing == "immediate" {
				timing = engine.TimingImmediate
			}
			s.Rules = append(s.Rules, rules.Rule{When: r.When, Move: r.Move, Timing: timing})
		}
		scripts = append(scripts, s)
	}
	return rules.NewPolicy(env, scripts...)
}
