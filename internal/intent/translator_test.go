package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/command"
	"github.com/suderio/recall/internal/failure"
	"github.com/suderio/recall/internal/memory"
	"github.com/suderio/recall/internal/recipe"
)

type fakePhase struct {
	side       actor.Side
	turn       int
	recallUsed bool
}

func (f *fakePhase) AcceptsSide(s actor.Side) bool { return s == f.side }
func (f *fakePhase) Turn() int                     { return f.turn }
func (f *fakePhase) RecallUsed() bool              { return f.recallUsed }

type fixture struct {
	hero   *actor.Actor
	goblin *actor.Actor
	phase  *fakePhase
	log    *memory.Log
	slots  *recipe.Slots
	tr     *Translator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hero, err := actor.New(1, "Hero", actor.SidePlayer, 40,
		actor.WithAP(3), actor.WithCharge(3), actor.WithCopy(2))
	require.NoError(t, err)
	goblin, err := actor.New(2, "Goblin", actor.SideEnemy, 20)
	require.NoError(t, err)
	roster, err := actor.NewRoster(hero, goblin)
	require.NoError(t, err)

	log, err := memory.NewLog(memory.DefaultCapacity)
	require.NoError(t, err)
	slots, err := recipe.NewSlots(2)
	require.NoError(t, err)
	phase := &fakePhase{side: actor.SidePlayer, turn: 2}

	tr, err := NewTranslator(roster, phase, log, slots, recipe.Default())
	require.NoError(t, err)
	return &fixture{hero: hero, goblin: goblin, phase: phase, log: log, slots: slots, tr: tr}
}

func TestNewTranslatorRejectsNil(t *testing.T) {
	_, err := NewTranslator(nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestTranslateBasic(t *testing.T) {
	f := newFixture(t)

	plan, code := f.tr.Translate(1, Act(memory.TagAttack, 2))
	require.Equal(t, failure.None, code)
	assert.Equal(t, KindBasic, plan.Kind)
	assert.Same(t, f.goblin, plan.Target)
	assert.Equal(t, 6, plan.Damage)
	assert.Equal(t, 1, plan.Repeat)
	assert.False(t, plan.UseCopy)

	plan, code = f.tr.Translate(1, Act(memory.TagBlock, NoTarget))
	require.Equal(t, failure.None, code)
	assert.Same(t, f.hero, plan.Target)
}

func TestTranslateGates(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		actor int
		in    Intent
		want  failure.Code
	}{
		{"unknown actor", nil, 9, Act(memory.TagAttack, 2), failure.SelfDead},
		{"dead actor", func(f *fixture) { f.hero.HP.Cut(40) }, 1, Act(memory.TagAttack, 2), failure.SelfDead},
		{"wrong phase", func(f *fixture) { f.phase.side = actor.SideEnemy }, 1, Act(memory.TagAttack, 2), failure.PhaseLocked},
		{"nil payload", nil, 1, Intent{}, failure.UnknownIntent},
		{"missing target", nil, 1, Act(memory.TagAttack, NoTarget), failure.BadTarget},
		{"self target", nil, 1, Act(memory.TagAttack, 1), failure.BadTarget},
		{"unresolved target", nil, 1, Act(memory.TagAttack, 7), failure.BadTarget},
		{"dead target", func(f *fixture) { f.goblin.HP.Cut(20) }, 1, Act(memory.TagAttack, 2), failure.BadTarget},
		{"no ap", func(f *fixture) { f.hero.AP.Use(3) }, 1, Act(memory.TagAttack, 2), failure.NoAP},
		{"no charge", func(f *fixture) {
			rc, _ := recipe.Default().Lookup(6)
			f.slots.Add(rc.Instantiate())
		}, 1, UseSlot(1, 2), failure.NoCharge},
		{"unknown basic tag", nil, 1, Act(memory.Tag(42), 2), failure.UnknownIntent},
		{"player move", nil, 1, Declare(recipe.ActSpec{Name: "Attack", Target: recipe.TargetOther, Damage: 400}, 2), failure.UnknownIntent},
		{"missing slot", nil, 1, UseSlot(4, 2), failure.UnknownIntent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}
			_, code := f.tr.Translate(tt.actor, tt.in)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestBasicActUsesTableValues(t *testing.T) {
	f := newFixture(t)
	plan, code := f.tr.Translate(1, Act(memory.TagAttack, 2))
	require.Equal(t, failure.None, code)
	assert.Equal(t, recipe.Attack(), plan.Spec)
	assert.Equal(t, 1, plan.APCost)
	assert.Equal(t, 6, plan.Damage)
}

func TestEnemyMove(t *testing.T) {
	f := newFixture(t)
	f.phase.side = actor.SideEnemy
	club := recipe.ActSpec{Name: "Club", Target: recipe.TargetOther, Damage: 7, Repeat: 1, Tag: memory.Tag(42)}

	plan, code := f.tr.Translate(2, Declare(club, 1))
	require.Equal(t, failure.None, code)
	assert.Equal(t, KindBasic, plan.Kind)
	assert.Same(t, f.hero, plan.Target)
	assert.Equal(t, 7, plan.Damage)
	assert.Equal(t, memory.TagNone, plan.Spec.Tag)
}

func TestTranslateDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	before := f.hero.Snapshot()
	_, code := f.tr.Translate(1, Act(memory.TagAttack, 2))
	require.Equal(t, failure.None, code)
	assert.Equal(t, before, f.hero.Snapshot())
	assert.Equal(t, 20, f.goblin.HP.Current())
}

func TestCopyDoublesRepeatOnce(t *testing.T) {
	f := newFixture(t)
	f.hero.Copy.Add(1)

	plan, code := f.tr.Translate(1, Act(memory.TagAttack, 2))
	require.Equal(t, failure.None, code)
	assert.Equal(t, 2, plan.Repeat)
	assert.True(t, plan.UseCopy)

	cmds := plan.Commands()
	ops := make([]command.Op, 0, len(cmds))
	for _, c := range cmds {
		ops = append(ops, c.Op)
	}
	assert.Equal(t, []command.Op{
		command.OpConsumeAP, command.OpConsumeCopy, command.OpDealDamage, command.OpDealDamage,
	}, ops)

	plan, code = f.tr.Translate(1, Act(memory.TagCharge, NoTarget))
	require.Equal(t, failure.None, code)
	assert.False(t, plan.UseCopy)
}

func TestTranslateSlot(t *testing.T) {
	f := newFixture(t)
	rc, _ := recipe.Default().Lookup(1)
	id, code := f.slots.Add(rc.Instantiate())
	require.Equal(t, failure.None, code)

	plan, code := f.tr.Translate(1, UseSlot(id, 2))
	require.Equal(t, failure.None, code)
	assert.Equal(t, KindSlot, plan.Kind)
	assert.Equal(t, id, plan.SlotID)
	assert.Equal(t, 2, plan.Repeat)

	act, _ := f.slots.Get(id)
	act.StartCooldown()
	_, code = f.tr.Translate(1, UseSlot(id, 2))
	assert.Equal(t, failure.Cooldown, code)

	_, code = f.tr.Translate(2, UseSlot(id, 1))
	assert.Equal(t, failure.PhaseLocked, code)
}

func TestTranslateRecall(t *testing.T) {
	seed := func(f *fixture) {
		f.log.Push(memory.TagAttack, 1)
		f.log.Push(memory.TagBlock, 1)
		f.log.Push(memory.TagCharge, 2)
	}
	tests := []struct {
		name  string
		setup func(f *fixture)
		in    Intent
		want  failure.Code
	}{
		{"ok", nil, RecallAs(3, 0, 1), failure.None},
		{"second candidate", nil, RecallAs(9, 1, 0), failure.None},
		{"used", func(f *fixture) { f.phase.recallUsed = true }, RecallAs(3, 0, 1), failure.RecallUsed},
		{"slots full", func(f *fixture) {
			rc, _ := recipe.Default().Lookup(1)
			f.slots.Add(rc.Instantiate())
			f.slots.Add(rc.Instantiate())
		}, RecallAs(3, 0, 1), failure.ActSlotsFull},
		{"unknown recipe", nil, RecallAs(99, 0, 1), failure.NoRecipe},
		{"empty", nil, RecallAs(3), failure.BadIndex},
		{"current turn", nil, RecallAs(6, 1, 2), failure.IndexLimited},
		{"gap", nil, RecallAs(3, 0, 2), failure.IndexNotContiguous},
		{"wrong pattern", nil, RecallAs(1, 0, 1), failure.NoRecipe},
		{"no ap", func(f *fixture) { f.hero.AP.Use(3) }, RecallAs(3, 0, 1), failure.NoAP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seed(f)
			if tt.setup != nil {
				tt.setup(f)
			}
			before := f.log.Entries()
			plan, code := f.tr.Translate(1, tt.in)
			assert.Equal(t, tt.want, code)
			assert.Equal(t, before, f.log.Entries())
			if code.OK() {
				assert.Equal(t, KindRecall, plan.Kind)
				assert.Equal(t, []int{0, 1}, plan.Indices)
				assert.Equal(t, recipe.RecallAPCost, plan.APCost)
				require.Len(t, plan.Commands(), 1)
			}
		})
	}
}
