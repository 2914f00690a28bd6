package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suderio/recall/internal/recipe"
)

func TestLoaderEmbeddedFallback(t *testing.T) {
	l := NewLoader(nil)

	enc, err := l.LoadEncounter("Goblin Ambush")
	require.NoError(t, err)
	assert.Equal(t, "goblin-ambush", enc.Name)
	assert.Equal(t, 40, enc.Player.HP)
	require.Len(t, enc.Enemies, 2)
	assert.Equal(t, "Goblin Cutter", enc.Enemies[0].Name)
	assert.Equal(t, "immediate", enc.Enemies[0].Policy[0].Timing)

	_, err = l.LoadEncounter("missing")
	assert.Error(t, err)
}

const custom = `
name: custom
player: {id: 1, name: Tester, hp: 10, ap: 2}
enemies:
  - id: 5
    name: Dummy
    hp: 3
    default: poke
    moves:
      poke: {damage: 1}
`

func TestLoaderPrefersDataDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "encounters"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "encounters", "goblin-ambush.yaml"), []byte(custom), 0o644))

	l := NewLoader([]string{dir})
	enc, err := l.LoadEncounter("goblin-ambush")
	require.NoError(t, err)
	assert.Equal(t, "custom", enc.Name)

	names, err := l.ListEncounters()
	require.NoError(t, err)
	assert.Contains(t, names, "goblin-ambush")
	assert.Contains(t, names, "ogre-den")
}

func TestLoadEncounterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.yaml")
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o644))

	enc, err := NewLoader(nil).LoadEncounterFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, enc.Player.AP)

	require.NoError(t, os.WriteFile(path, []byte("name: x\nbogus: 1\n"), 0o644))
	_, err = NewLoader(nil).LoadEncounterFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Encounter {
		return Encounter{
			Name:   "t",
			Player: Combatant{ID: 1, Name: "P", HP: 10},
			Enemies: []Enemy{{
				Combatant: Combatant{ID: 2, Name: "E", HP: 5},
				Default:   "hit",
				Moves:     map[string]Move{"hit": {Damage: 2}},
			}},
		}
	}
	ok := base()
	require.NoError(t, ok.Validate())

	tests := []struct {
		name   string
		mutate func(e *Encounter)
	}{
		{"no name", func(e *Encounter) { e.Name = "" }},
		{"player hp", func(e *Encounter) { e.Player.HP = 0 }},
		{"no enemies", func(e *Encounter) { e.Enemies = nil }},
		{"duplicate id", func(e *Encounter) { e.Enemies[0].ID = 1 }},
		{"bad default", func(e *Encounter) { e.Enemies[0].Default = "nap" }},
		{"bad target", func(e *Encounter) { e.Enemies[0].Moves["hit"] = Move{Target: "everyone"} }},
		{"bad rule move", func(e *Encounter) { e.Enemies[0].Policy = []Rule{{When: "true", Move: "x"}} }},
		{"bad timing", func(e *Encounter) { e.Enemies[0].Policy = []Rule{{When: "true", Move: "hit", Timing: "later"}} }},
		{"negative ap", func(e *Encounter) { e.Player.AP = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := base()
			tt.mutate(&e)
			assert.Error(t, e.Validate())
		})
	}
}

func TestMoveSpec(t *testing.T) {
	spec, err := Move{Damage: 2, Repeat: 3}.Spec("wild_flurry")
	require.NoError(t, err)
	assert.Equal(t, "Wild Flurry", spec.Name)
	assert.Equal(t, recipe.TargetOther, spec.Target)
	assert.Equal(t, 3, spec.Hits())

	spec, err = Move{Target: "Self", Block: 4}.Spec("guard")
	require.NoError(t, err)
	assert.Equal(t, recipe.TargetSelf, spec.Target)
}
