package recipe

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateRecipe is returned when two recipes share an id.
var ErrDuplicateRecipe = errors.New("duplicate recipe id")

// Recipe is an immutable combo template keyed by id and matched by pattern.
type Recipe struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Pattern int     `json:"pattern"`
	Spec    ActSpec `json:"spec"`
}

// Instantiate copies the recipe into a fresh act with runtime fields reset.
func (r Recipe) Instantiate() Act {
	return Act{Spec: r.Spec, RecipeID: r.ID}
}

// Registry is a read-only recipe table.
type Registry struct {
	byID      map[int]Recipe
	byPattern map[int][]Recipe
	ids       []int
}

// NewRegistry indexes recipes by id and pattern.
func NewRegistry(recipes ...Recipe) (*Registry, error) {
	r := &Registry{
		byID:      make(map[int]Recipe, len(recipes)),
		byPattern: make(map[int][]Recipe),
	}
	for _, rc := range recipes {
		if rc.ID <= 0 {
			return nil, fmt.Errorf("recipe %q: id must be positive", rc.Name)
		}
		if _, ok := r.byID[rc.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateRecipe, rc.ID)
		}
		if rc.Spec.Name == "" {
			rc.Spec.Name = rc.Name
		}
		r.byID[rc.ID] = rc
		r.byPattern[rc.Pattern] = append(r.byPattern[rc.Pattern], rc)
		r.ids = append(r.ids, rc.ID)
	}
	sort.Ints(r.ids)
	for p := range r.byPattern {
		list := r.byPattern[p]
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}
	return r, nil
}

// Lookup finds a recipe by id.
func (r *Registry) Lookup(id int) (Recipe, bool) {
	rc, ok := r.byID[id]
	return rc, ok
}

// Match returns every recipe for a pattern key, ordered by id.
func (r *Registry) Match(pattern int) []Recipe {
	list := r.byPattern[pattern]
	out := make([]Recipe, len(list))
	copy(out, list)
	return out
}

// All lists the registry ordered by id.
func (r *Registry) All() []Recipe {
	out := make([]Recipe, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

// Default returns the stock combo table.
func Default() *Registry {
	reg, err := NewRegistry(
		Recipe{ID: 1, Name: "Twin Strike", Pattern: 11, Spec: ActSpec{
			Target: TargetOther, APCost: 1, Damage: 4, Repeat: 2, Cooldown: 1,
			Description: "two quick hits"}},
		Recipe{ID: 2, Name: "Bulwark", Pattern: 22, Spec: ActSpec{
			Target: TargetSelf, APCost: 1, Block: 12, Cooldown: 2}},
		Recipe{ID: 3, Name: "Guarded Blow", Pattern: 12, Spec: ActSpec{
			Target: TargetOther, APCost: 1, Damage: 5, Block: 4, Cooldown: 1,
			Description: "strike and raise a small shield"}},
		Recipe{ID: 4, Name: "Counter Stance", Pattern: 21, Spec: ActSpec{
			Target: TargetOther, APCost: 1, Block: 6, Damage: 3, Cooldown: 1}},
		Recipe{ID: 5, Name: "Overcharge", Pattern: 33, Spec: ActSpec{
			Target: TargetSelf, ChargeGain: 2, Consumable: true}},
		Recipe{ID: 6, Name: "Discharge", Pattern: 13, Spec: ActSpec{
			Target: TargetOther, APCost: 1, ChargeCost: 1, Damage: 10, Cooldown: 2}},
		Recipe{ID: 7, Name: "Echo", Pattern: 31, Spec: ActSpec{
			Target: TargetSelf, CopyGain: 1, Consumable: true,
			Description: "the next act repeats its hits"}},
		Recipe{ID: 8, Name: "Reverb", Pattern: 32, Spec: ActSpec{
			Target: TargetSelf, APCost: 1, CopyGain: 1, Block: 3, Cooldown: 2}},
		Recipe{ID: 9, Name: "Shield Breaker", Pattern: 12, Spec: ActSpec{
			Target: TargetOther, APCost: 2, Damage: 9, Consumable: true}},
		Recipe{ID: 10, Name: "Tempest", Pattern: 111, Spec: ActSpec{
			Target: TargetOther, APCost: 2, Damage: 3, Repeat: 4, Consumable: true}},
		Recipe{ID: 11, Name: "Aegis", Pattern: 222, Spec: ActSpec{
			Target: TargetSelf, APCost: 1, Block: 20, Consumable: true}},
		Recipe{ID: 12, Name: "Cataclysm", Pattern: 123, Spec: ActSpec{
			Target: TargetOther, APCost: 2, ChargeCost: 2, Damage: 8, Repeat: 2, Consumable: true}},
	)
	if err != nil {
		panic(err)
	}
	return reg
}
