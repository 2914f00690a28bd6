package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suderio/recall/internal/data"
	"github.com/suderio/recall/internal/engine"
	"github.com/suderio/recall/internal/failure"
	"github.com/suderio/recall/internal/intent"
	"github.com/suderio/recall/internal/journal"
	"github.com/suderio/recall/internal/memory"
)

func testEncounter() *data.Encounter {
	return &data.Encounter{
		Name:   "practice",
		Player: data.Combatant{ID: 1, Name: "Hero", HP: 40, AP: 3, Charge: 3, Copy: 2},
		Enemies: []data.Enemy{{
			Combatant: data.Combatant{ID: 2, Name: "Dummy", HP: 30},
			Default:   "poke",
			Moves: map[string]data.Move{
				"poke":  {Damage: 4},
				"guard": {Target: "self", Block: 5},
			},
			Policy: []data.Rule{{When: "turn == 2", Move: "guard", Timing: "immediate"}},
		}},
	}
}

func newSession(t *testing.T, j Journal) *Session {
	t.Helper()
	s, err := New(testEncounter(), Options{ID: "test-session", Journal: j})
	require.NoError(t, err)
	return s
}

func TestSubmitIntentIsPhaseGated(t *testing.T) {
	s := newSession(t, nil)
	var codes []failure.Code
	s.OnFailure(func(c failure.Code) { codes = append(codes, c) })

	assert.Equal(t, engine.PhaseLocked, s.SubmitIntent(1, intent.Act(memory.TagAttack, 2)))
	assert.Equal(t, []failure.Code{failure.PhaseLocked}, codes)

	require.Equal(t, engine.WaitInput, s.Start())
	assert.Equal(t, engine.WaitInput, s.SubmitIntent(1, intent.Act(memory.TagAttack, 2)))
	dummy, ok := s.ResolveActorByID(2)
	require.True(t, ok)
	assert.Equal(t, 24, dummy.HP.Current())
	assert.Len(t, codes, 1)
}

func TestExecuteConsole(t *testing.T) {
	s := newSession(t, nil)
	require.Equal(t, engine.WaitInput, s.Start())

	out, err := s.Execute("attack")
	require.NoError(t, err)
	assert.Contains(t, out, "Hero uses Attack on Dummy.")
	assert.Contains(t, out, "#2 takes 6 damage")

	_, err = s.Execute("block")
	require.NoError(t, err)

	_, err = s.Execute("attack to: 1")
	assert.ErrorContains(t, err, failure.BadTarget.Hint())

	out, err = s.Execute("end")
	require.NoError(t, err)
	assert.Contains(t, out, "Dummy uses Poke on Hero.")

	out, err = s.Execute("recall 0 1")
	require.NoError(t, err)
	assert.Contains(t, out, "3. Guarded Blow")
	assert.Contains(t, out, "9. Shield Breaker")

	out, err = s.Execute("recall 0 1 pick: 3")
	require.NoError(t, err)
	assert.Contains(t, out, "Hero recalls Guarded Blow (slot 1).")

	_, err = s.Execute("recall 0 1 pick: 9")
	assert.Error(t, err)
	assert.Equal(t, failure.RecallUsed, s.LastFailure())

	_, err = s.Execute("use 1")
	require.NoError(t, err)

	out, err = s.Execute("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Turn 2 (player_input) recall used")
	assert.Contains(t, out, "[0]A@T1 [1]B@T1")
	assert.Contains(t, out, "slot 1: Guarded Blow")

	out, err = s.Execute("recipes")
	require.NoError(t, err)
	assert.Contains(t, out, "ABC")

	out, err = s.Execute("help use")
	require.NoError(t, err)
	assert.Equal(t, "use <slot id> [to: <enemy id>]", out)

	_, err = s.Execute("quit")
	assert.ErrorIs(t, err, ErrQuit)

	_, err = s.Execute("sing")
	assert.Error(t, err)
}

func TestJournalRecordsSession(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "j.jsonl"))
	require.NoError(t, err)
	s := newSession(t, store)

	require.Equal(t, engine.WaitInput, s.Start())
	s.SubmitIntent(1, intent.Act(memory.TagAttack, 2))
	s.SubmitIntent(1, intent.RecallAs(3, 0))
	s.EndTurn(1)

	records, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	var types []journal.RecordType
	for _, r := range records {
		types = append(types, r.Type())
	}
	assert.Equal(t, []journal.RecordType{
		journal.TypeCombatStarted,
		journal.TypeActionResolved,
		journal.TypeActionRejected,
		journal.TypeActionResolved,
		journal.TypeActionResolved,
	}, types)

	sum := journal.Summarize(records)
	assert.Equal(t, 1, sum.Sessions)
	assert.Equal(t, 6, sum.Damage[1])
	assert.Equal(t, 1, sum.Rejections["IndexLimited"])
}

func TestAutoplayFinishes(t *testing.T) {
	s := newSession(t, nil)
	out, err := s.Autoplay(50)
	require.NoError(t, err)
	assert.Equal(t, engine.Victory, out)
	assert.Equal(t, engine.CombatOver, s.Snapshot().Step)
}

func TestNewRejectsBadPolicy(t *testing.T) {
	enc := testEncounter()
	enc.Enemies[0].Policy[0].When = "turn +"
	_, err := New(enc, Options{})
	assert.Error(t, err)
}

func TestLoadedEncounterRuns(t *testing.T) {
	enc, err := data.NewLoader(nil).LoadEncounter("goblin-ambush")
	require.NoError(t, err)
	s, err := New(enc, Options{Roll: func(string) int { return 1 }})
	require.NoError(t, err)

	_, err = s.Autoplay(100)
	require.NoError(t, err)
	assert.NotEqual(t, engine.Ongoing, s.Snapshot().Outcome)
}

func TestStartTwiceJournalsOnce(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "j.jsonl"))
	require.NoError(t, err)
	s := newSession(t, store)
	defer s.Close()

	require.Equal(t, engine.WaitInput, s.Start())
	assert.Equal(t, engine.PhaseLocked, s.Start())

	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, journal.TypeCombatStarted, records[0].Type())
}
