package data

import (
	"fmt"
	"strings"

	"github.com/suderio/recall/internal/recipe"
)

// Encounter is a fight definition read from YAML.
type Encounter struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Player      Combatant `yaml:"player"`
	Enemies     []Enemy   `yaml:"enemies"`
}

// Combatant holds the numbers shared by players and enemies.
type Combatant struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	HP     int    `yaml:"hp"`
	Shield int    `yaml:"shield"`
	AP     int    `yaml:"ap"`
	Charge int    `yaml:"charge"`
	Copy   int    `yaml:"copy"`
}

// Enemy is a combatant with scripted moves.
type Enemy struct {
	Combatant `yaml:",inline"`
	Default   string          `yaml:"default"`
	Moves     map[string]Move `yaml:"moves"`
	Policy    []Rule          `yaml:"policy"`
}

// Move is an enemy action. Target is "other" (default) or "self".
type Move struct {
	Description string `yaml:"description"`
	Target      string `yaml:"target"`
	Damage      int    `yaml:"damage"`
	Repeat      int    `yaml:"repeat"`
	Block       int    `yaml:"block"`
}

// Rule selects a move when the CEL condition When holds.
// Timing is "mark" (default) or "immediate".
type Rule struct {
	When   string `yaml:"when"`
	Move   string `yaml:"move"`
	Timing string `yaml:"timing"`
}

// Spec converts a move to an act description named after key.
func (m Move) Spec(key string) (recipe.ActSpec, error) {
	mode, err := recipe.ParseTargetMode(strings.ToLower(m.Target))
	if err != nil {
		return recipe.ActSpec{}, fmt.Errorf("move %q: %w", key, err)
	}
	return recipe.ActSpec{
		Name:        displayName(key),
		Description: m.Description,
		Target:      mode,
		Damage:      m.Damage,
		Repeat:      m.Repeat,
		Block:       m.Block,
	}, nil
}

func displayName(key string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(key))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Validate reports the first structural problem in the encounter.
func (e *Encounter) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("encounter has no name")
	}
	if err := e.Player.validate("player"); err != nil {
		return err
	}
	if len(e.Enemies) == 0 {
		return fmt.Errorf("encounter %q has no enemies", e.Name)
	}

	ids := map[int]bool{e.Player.ID: true}
	for _, en := range e.Enemies {
		label := fmt.Sprintf("enemy %q", en.Name)
		if err := en.validate(label); err != nil {
			return err
		}
		if ids[en.ID] {
			return fmt.Errorf("%s: duplicate id %d", label, en.ID)
		}
		ids[en.ID] = true

		if len(en.Moves) == 0 {
			return fmt.Errorf("%s: no moves", label)
		}
		for key, m := range en.Moves {
			if _, err := m.Spec(key); err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
		}
		if _, ok := en.Moves[en.Default]; !ok {
			return fmt.Errorf("%s: default move %q is not defined", label, en.Default)
		}
		for i, r := range en.Policy {
			if _, ok := en.Moves[r.Move]; !ok {
				return fmt.Errorf("%s: policy %d uses undefined move %q", label, i, r.Move)
			}
			if strings.TrimSpace(r.When) == "" {
				return fmt.Errorf("%s: policy %d has no condition", label, i)
			}
			switch r.Timing {
			case "", "mark", "immediate":
			default:
				return fmt.Errorf("%s: policy %d has unknown timing %q", label, i, r.Timing)
			}
		}
	}
	return nil
}

func (c Combatant) validate(label string) error {
	if c.ID <= 0 {
		return fmt.Errorf("%s: id must be positive", label)
	}
	if c.HP <= 0 {
		return fmt.Errorf("%s: hp must be positive", label)
	}
	if c.AP < 0 || c.Charge < 0 || c.Copy < 0 || c.Shield < 0 {
		return fmt.Errorf("%s: resources cannot be negative", label)
	}
	return nil
}
