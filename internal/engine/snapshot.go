package engine

import (
	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/memory"
	"github.com/suderio/recall/internal/recipe"
)

// Telegraph is a declared enemy intent not yet resolved.
type Telegraph struct {
	ActorID     int    `json:"actor_id"`
	Description string `json:"description"`
	Timing      string `json:"timing"`
}

// Snapshot is a value copy of everything a renderer needs.
type Snapshot struct {
	MemoryOps   []memory.Tag  `json:"memory_ops"`
	MemoryTurns []int         `json:"memory_turns"`
	Step        Step          `json:"step"`
	Turn        int           `json:"turn"`
	RecallUsed  bool          `json:"recall_used"`
	Actors      []actor.State `json:"actors"`
	Slots       []recipe.Act  `json:"slots"`
	SlotCap     int           `json:"slot_capacity"`
	Telegraphs  []Telegraph   `json:"telegraphs"`
	Outcome     Outcome       `json:"outcome"`
}

// Snapshot copies the current state.
func (c *Combat) Snapshot() Snapshot {
	s := Snapshot{
		MemoryOps:   c.memory.SnapshotOps(),
		MemoryTurns: c.memory.SnapshotTurns(),
		Step:        c.phase.Step(),
		Turn:        c.phase.Turn(),
		RecallUsed:  c.phase.RecallUsed(),
		Actors:      c.roster.States(),
		Slots:       c.slots.List(),
		SlotCap:     c.slots.Cap(),
		Outcome:     c.Outcome(),
	}
	for _, q := range append(c.immediate.Items(), c.mark.Items()...) {
		s.Telegraphs = append(s.Telegraphs, Telegraph{
			ActorID:     q.ActorID,
			Description: q.Intent.Describe(),
			Timing:      q.Timing.String(),
		})
	}
	return s
}
