// Package rules evaluates scripted enemy behaviour. Decision rules are CEL
// expressions over the acting enemy, the player and the turn number.
package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"
)

// RollFunc evaluates a dice expression and returns the total. It is injected
// so runs can be made deterministic.
type RollFunc func(dice string) int

// Env is the CEL environment shared by every compiled rule.
type Env struct {
	env *cel.Env
}

// NewEnv declares the rule variables and the roll() function. A nil roll
// uses crypto-random dice.
func NewEnv(roll RollFunc) (*Env, error) {
	if roll == nil {
		roll = NewDice().Total
	}
	env, err := cel.NewEnv(
		ext.Strings(),

		cel.Variable("self", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("player", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("turn", cel.IntType),

		cel.Function("roll",
			cel.Overload("roll_string",
				[]*cel.Type{cel.StringType},
				cel.IntType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					s, ok := val.Value().(string)
					if !ok {
						return types.NewErr("roll expects a string")
					}
					return types.Int(roll(s))
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Env{env: env}, nil
}

// Condition is a compiled boolean rule.
type Condition struct {
	source string
	prg    cel.Program
}

// Compile checks that expr is a boolean expression and prepares it.
func (e *Env) Compile(expr string) (*Condition, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compile error in %q: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) && !ast.OutputType().IsExactType(cel.DynType) {
		return nil, fmt.Errorf("rule %q must be boolean, got %s", expr, ast.OutputType())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program error in %q: %w", expr, err)
	}
	return &Condition{source: expr, prg: prg}, nil
}

// Eval runs the condition against vars.
func (c *Condition) Eval(vars map[string]any) (bool, error) {
	out, _, err := c.prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("CEL eval error in %q: %w", c.source, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q returned %T, want bool", c.source, out.Value())
	}
	return b, nil
}

// String returns the rule source.
func (c *Condition) String() string { return c.source }
