package engine

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/failure"
	"github.com/suderio/recall/internal/intent"
	"github.com/suderio/recall/internal/memory"
	"github.com/suderio/recall/internal/recipe"
)

const (
	heroID   = 1
	goblinID = 2
)

func newCombat(t *testing.T, goblinHP int, opts Options) (*Combat, *actor.Actor, *actor.Actor) {
	t.Helper()
	hero, err := actor.New(heroID, "Hero", actor.SidePlayer, 40,
		actor.WithAP(3), actor.WithCharge(3), actor.WithCopy(2))
	require.NoError(t, err)
	goblin, err := actor.New(goblinID, "Goblin", actor.SideEnemy, goblinHP)
	require.NoError(t, err)
	roster, err := actor.NewRoster(hero, goblin)
	require.NoError(t, err)

	c, err := New(roster, opts)
	require.NoError(t, err)
	return c, hero, goblin
}

func TestNewRequiresPlayer(t *testing.T) {
	goblin, err := actor.New(goblinID, "Goblin", actor.SideEnemy, 10)
	require.NoError(t, err)
	roster, err := actor.NewRoster(goblin)
	require.NoError(t, err)

	_, err = New(roster, Options{})
	assert.ErrorIs(t, err, ErrNoPlayer)
	_, err = New(nil, Options{})
	assert.ErrorIs(t, err, ErrNoPlayer)

	hero, err := actor.New(heroID, "Hero", actor.SidePlayer, 10)
	require.NoError(t, err)
	require.NoError(t, roster.Add(hero))
	_, err = New(roster, Options{MemoryCapacity: -1})
	assert.ErrorIs(t, err, memory.ErrCapacity)
}

func TestNewRunnerValidates(t *testing.T) {
	_, err := NewRunner(nil, 10, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNoTable)
	_, err = NewRunner(DefaultTable(), 0, zerolog.Nop())
	assert.ErrorIs(t, err, ErrMaxIterations)
}

func TestRunnerStopsOnCycle(t *testing.T) {
	calls := 0
	spin := Table{CombatStart: func(*Combat) Signal { calls++; return Continue }}
	c, _, _ := newCombat(t, 20, Options{Table: spin, MaxIterations: 7})

	assert.Equal(t, Interrupt, c.Start())
	assert.Equal(t, 7, calls)
}

func TestRunnerInterruptsOnMissingHandler(t *testing.T) {
	c, _, _ := newCombat(t, 20, Options{Table: Table{CombatStart: advance}})
	assert.Equal(t, Interrupt, c.Start())
	assert.Equal(t, TurnStart, c.Step())
}

func TestPolicyErrorIsPending(t *testing.T) {
	broken := PolicyFunc(func(PolicyView) ([]Declaration, error) { return nil, errors.New("boom") })
	c, _, _ := newCombat(t, 20, Options{Policy: broken})
	assert.Equal(t, Pending, c.Start())
	assert.Equal(t, EnemyPlan, c.Step())
}

func TestPhaseLockLeavesStateUnchanged(t *testing.T) {
	var codes []failure.Code
	c, hero, goblin := newCombat(t, 20, Options{Hooks: Hooks{
		OnFailure: func(_ int, code failure.Code) { codes = append(codes, code) },
	}})
	before := c.Snapshot()

	assert.Equal(t, PhaseLocked, c.TryExecutePlayerAction(heroID, intent.Act(memory.TagAttack, goblinID)))
	assert.Equal(t, PhaseLocked, c.TryEndPlayerTurn(heroID))
	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, 20, goblin.HP.Current())
	assert.Equal(t, 3, hero.AP.Current())
	assert.Equal(t, failure.PhaseLocked, c.LastFailure())
	assert.Equal(t, []failure.Code{failure.PhaseLocked, failure.PhaseLocked}, codes)
}

func TestTurnCycleWithRecall(t *testing.T) {
	var resolved []Resolution
	renders := 0
	c, hero, goblin := newCombat(t, 30, Options{Hooks: Hooks{
		OnResolved: func(r Resolution) { resolved = append(resolved, r) },
		OnRender:   func() { renders++ },
	}})

	require.Equal(t, WaitInput, c.Start())
	snap := c.Snapshot()
	assert.Equal(t, PlayerInput, snap.Step)
	assert.Equal(t, 1, snap.Turn)
	require.Len(t, snap.Telegraphs, 1)
	assert.Equal(t, "mark", snap.Telegraphs[0].Timing)

	require.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.Act(memory.TagAttack, goblinID)))
	require.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.Act(memory.TagBlock, intent.NoTarget)))
	assert.Equal(t, 24, goblin.HP.Current())
	assert.Equal(t, 5, hero.Shield.Current())
	assert.Equal(t, 1, hero.AP.Current())
	assert.Equal(t, []memory.Tag{memory.TagAttack, memory.TagBlock}, c.Snapshot().MemoryOps)

	require.Equal(t, WaitInput, c.TryEndPlayerTurn(heroID))
	assert.Equal(t, 40, hero.HP.Current(), "strike absorbed by shield")
	snap = c.Snapshot()
	assert.Equal(t, 2, snap.Turn)
	assert.Equal(t, 3, hero.AP.Current())
	assert.Equal(t, 0, hero.Shield.Current())
	assert.Len(t, snap.Telegraphs, 1)

	list, code := c.Candidates([]int{0, 1})
	require.Equal(t, failure.None, code)
	assert.Len(t, list, 2)

	require.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.RecallAs(3, 0, 1)))
	assert.Equal(t, failure.None, c.LastFailure())
	snap = c.Snapshot()
	assert.True(t, snap.RecallUsed)
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, "Guarded Blow", snap.Slots[0].Spec.Name)
	assert.Equal(t, 2, hero.AP.Current())
	assert.Len(t, snap.MemoryOps, 2)

	require.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.RecallAs(9, 0, 1)))
	assert.Equal(t, failure.RecallUsed, c.LastFailure())

	slotID := snap.Slots[0].SlotID
	require.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.UseSlot(slotID, goblinID)))
	assert.Equal(t, 19, goblin.HP.Current())
	assert.Equal(t, 4, hero.Shield.Current())

	require.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.UseSlot(slotID, goblinID)))
	assert.Equal(t, failure.Cooldown, c.LastFailure())

	last := resolved[len(resolved)-1]
	assert.Equal(t, intent.KindSlot, last.Kind)
	assert.Equal(t, goblinID, last.TargetID)
	assert.Equal(t, len(resolved), renders)
}

func TestEchoGrantsCopyAndIsConsumed(t *testing.T) {
	c, hero, goblin := newCombat(t, 50, Options{})
	require.Equal(t, WaitInput, c.Start())
	c.TryExecutePlayerAction(heroID, intent.Act(memory.TagCharge, intent.NoTarget))
	c.TryExecutePlayerAction(heroID, intent.Act(memory.TagAttack, goblinID))
	require.Equal(t, WaitInput, c.TryEndPlayerTurn(heroID))
	assert.Equal(t, 35, hero.HP.Current())

	require.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.RecallAs(7, 0, 1)))
	require.Equal(t, failure.None, c.LastFailure())
	slotID := c.Snapshot().Slots[0].SlotID

	require.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.UseSlot(slotID, intent.NoTarget)))
	assert.Equal(t, 1, hero.Copy.Current())
	assert.Empty(t, c.Snapshot().Slots)

	require.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.Act(memory.TagAttack, goblinID)))
	assert.Equal(t, 32, goblin.HP.Current())
	assert.Equal(t, 0, hero.Copy.Current())
	assert.Equal(t, 1, hero.AP.Current())
}

func TestVictoryEndsCombat(t *testing.T) {
	c, _, _ := newCombat(t, 6, Options{})
	require.Equal(t, WaitInput, c.Start())

	assert.Equal(t, CombatEnd, c.TryExecutePlayerAction(heroID, intent.Act(memory.TagAttack, goblinID)))
	snap := c.Snapshot()
	assert.Equal(t, CombatOver, snap.Step)
	assert.Equal(t, Victory, snap.Outcome)
	assert.Empty(t, snap.Telegraphs)

	assert.Equal(t, PhaseLocked, c.TryEndPlayerTurn(heroID))
}

func TestImmediateEnemyActsBeforeInput(t *testing.T) {
	hit := recipe.ActSpec{Name: "Ambush", Target: recipe.TargetOther, Damage: 45}
	policy := PolicyFunc(func(v PolicyView) ([]Declaration, error) {
		return []Declaration{{ActorID: goblinID, Intent: intent.Declare(hit, heroID), Timing: TimingImmediate}}, nil
	})
	c, hero, _ := newCombat(t, 20, Options{Policy: policy})

	assert.Equal(t, CombatEnd, c.Start())
	assert.False(t, hero.Alive())
	assert.Equal(t, Defeat, c.Outcome())
}

func TestEndTurnRejectsEnemyActor(t *testing.T) {
	c, _, _ := newCombat(t, 20, Options{})
	require.Equal(t, WaitInput, c.Start())
	assert.Equal(t, PhaseLocked, c.TryEndPlayerTurn(goblinID))
	assert.Equal(t, PlayerInput, c.Step())
}

func TestEndTurnBySelfDeadKeepsInput(t *testing.T) {
	c, _, _ := newCombat(t, 20, Options{})
	require.Equal(t, WaitInput, c.Start())

	assert.Equal(t, WaitInput, c.TryEndPlayerTurn(9))
	assert.Equal(t, failure.SelfDead, c.LastFailure())
	assert.Equal(t, PlayerInput, c.Step())
	assert.Equal(t, 1, c.Turn())
}

func TestPlayerCannotSubmitInlineMove(t *testing.T) {
	c, hero, goblin := newCombat(t, 100, Options{})
	require.Equal(t, WaitInput, c.Start())

	forged := recipe.ActSpec{Name: "Attack", Target: recipe.TargetOther, Damage: 400, Tag: memory.Tag(42)}
	assert.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.Declare(forged, goblinID)))
	assert.Equal(t, failure.UnknownIntent, c.LastFailure())
	assert.Equal(t, 100, goblin.HP.Current())
	assert.Equal(t, 3, hero.AP.Current())
	assert.Empty(t, c.Snapshot().MemoryOps)

	assert.Equal(t, WaitInput, c.TryExecutePlayerAction(heroID, intent.Act(memory.Tag(42), goblinID)))
	assert.Equal(t, failure.UnknownIntent, c.LastFailure())
	assert.Empty(t, c.Snapshot().MemoryOps)
}

func TestStartingShieldLastsFirstTurn(t *testing.T) {
	hero, err := actor.New(heroID, "Hero", actor.SidePlayer, 40, actor.WithAP(3), actor.WithShield(10))
	require.NoError(t, err)
	goblin, err := actor.New(goblinID, "Goblin", actor.SideEnemy, 20, actor.WithShield(8))
	require.NoError(t, err)
	roster, err := actor.NewRoster(hero, goblin)
	require.NoError(t, err)
	c, err := New(roster, Options{})
	require.NoError(t, err)

	require.Equal(t, WaitInput, c.Start())
	assert.Equal(t, 10, hero.Shield.Current())
	assert.Equal(t, 8, goblin.Shield.Current())

	// The strike is absorbed, then turn 2 clears what is left.
	require.Equal(t, WaitInput, c.TryEndPlayerTurn(heroID))
	assert.Equal(t, 2, c.Turn())
	assert.Equal(t, 40, hero.HP.Current())
	assert.Equal(t, 0, hero.Shield.Current())
	assert.Equal(t, 0, goblin.Shield.Current())
}
