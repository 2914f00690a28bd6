package engine

import "fmt"

// Step is one stage of the turn cycle. The high nibble names the family so
// membership is a mask test.
type Step uint8

// Families.
const (
	FamilyTurn   Step = 0x10
	FamilyPlayer Step = 0x20
	FamilyEnemy  Step = 0x40

	familyMask Step = 0xF0
)

const (
	CombatStart    Step = FamilyTurn | 0x1
	TurnStart      Step = FamilyTurn | 0x2
	TurnEnd        Step = FamilyTurn | 0x3
	CombatOver     Step = FamilyTurn | 0x4
	PlayerInput    Step = FamilyPlayer | 0x1
	PlayerExecute  Step = FamilyPlayer | 0x2
	PlayerEnd      Step = FamilyPlayer | 0x3
	EnemyPlan      Step = FamilyEnemy | 0x1
	EnemyImmediate Step = FamilyEnemy | 0x2
	EnemyExecute   Step = FamilyEnemy | 0x3
)

// Steps lists every step in cycle order.
var Steps = []Step{
	CombatStart, TurnStart, EnemyPlan, EnemyImmediate,
	PlayerInput, PlayerExecute, PlayerEnd, EnemyExecute, TurnEnd, CombatOver,
}

var stepNames = map[Step]string{
	CombatStart:    "combat_start",
	TurnStart:      "turn_start",
	TurnEnd:        "turn_end",
	CombatOver:     "combat_over",
	PlayerInput:    "player_input",
	PlayerExecute:  "player_execute",
	PlayerEnd:      "player_end",
	EnemyPlan:      "enemy_plan",
	EnemyImmediate: "enemy_immediate",
	EnemyExecute:   "enemy_execute",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Step(0x%02x)", uint8(s))
}

// Family returns the family bits of the step.
func (s Step) Family() Step { return s & familyMask }

// In reports whether the step belongs to family.
func (s Step) In(family Step) bool { return s&family != 0 }

func parseStep(name string) (Step, bool) {
	for s, n := range stepNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// Signal is what a handler tells the runner.
type Signal int

const (
	Continue Signal = iota
	WaitInput
	Pending
	Interrupt
	CombatEnd
	PhaseLocked
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case WaitInput:
		return "wait_input"
	case Pending:
		return "pending"
	case Interrupt:
		return "interrupt"
	case CombatEnd:
		return "combat_end"
	case PhaseLocked:
		return "phase_locked"
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}
