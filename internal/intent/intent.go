// Package intent turns external action requests into validated plans.
// Translation only reads state; a rejected intent leaves no trace.
package intent

import (
	"fmt"

	"github.com/suderio/recall/internal/memory"
	"github.com/suderio/recall/internal/recipe"
)

// NoTarget marks an intent without an explicit target.
const NoTarget = 0

// Payload is the closed set of things an intent can ask for.
type Payload interface {
	isPayload()
	Describe() string
}

// Basic asks for one of the fixed basic acts, named by its memory tag. Its
// numbers always come from the basic act table.
type Basic struct {
	Tag memory.Tag
}

// Move is an enemy move declared by a policy. Only enemies may submit it.
type Move struct {
	Spec recipe.ActSpec
}

// Slot asks for the act stored in a slot.
type Slot struct {
	SlotID int
}

// Recall asks to turn a memory window into the recipe RecipeID.
type Recall struct {
	RecipeID int
	Indices  []int
}

func (Basic) isPayload()  {}
func (Move) isPayload()   {}
func (Slot) isPayload()   {}
func (Recall) isPayload() {}

// Describe names the basic act, or its tag when the tag is unknown.
func (b Basic) Describe() string {
	if spec, ok := recipe.Basic(b.Tag); ok {
		return spec.Name
	}
	return fmt.Sprintf("act %s", b.Tag)
}

// Describe names the move.
func (m Move) Describe() string { return m.Spec.Name }

// Describe names the slot.
func (s Slot) Describe() string { return fmt.Sprintf("slot %d", s.SlotID) }

// Describe shows the selection and the chosen recipe.
func (r Recall) Describe() string { return fmt.Sprintf("recall %v as #%d", r.Indices, r.RecipeID) }

// Intent is an immutable request, consumed once by the translator.
type Intent struct {
	TargetID int
	Payload  Payload
}

// Describe renders the intent for logs and telegraphs.
func (in Intent) Describe() string {
	if in.Payload == nil {
		return "nothing"
	}
	if in.TargetID == NoTarget {
		return in.Payload.Describe()
	}
	return fmt.Sprintf("%s -> #%d", in.Payload.Describe(), in.TargetID)
}

// Act builds an intent for the basic act recorded under tag.
func Act(tag memory.Tag, target int) Intent {
	return Intent{TargetID: target, Payload: Basic{Tag: tag}}
}

// Declare builds an intent for an enemy move.
func Declare(spec recipe.ActSpec, target int) Intent {
	return Intent{TargetID: target, Payload: Move{Spec: spec}}
}

// UseSlot builds an intent for a slot act.
func UseSlot(slotID, target int) Intent {
	return Intent{TargetID: target, Payload: Slot{SlotID: slotID}}
}

// RecallAs builds a recall intent.
func RecallAs(recipeID int, indices ...int) Intent {
	return Intent{Payload: Recall{RecipeID: recipeID, Indices: indices}}
}
