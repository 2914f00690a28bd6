// Package journal keeps an append-only JSONL record of what happened in each
// combat session. Journals are read back for reports, never to restore a fight.
package journal

import (
	"fmt"
	"time"

	"github.com/suderio/recall/internal/command"
)

// RecordType identifies the concrete record stored in an envelope.
type RecordType string

const (
	TypeCombatStarted  RecordType = "CombatStarted"
	TypeActionResolved RecordType = "ActionResolved"
	TypeRecallResolved RecordType = "RecallResolved"
	TypeActionRejected RecordType = "ActionRejected"
	TypeCombatEnded    RecordType = "CombatEnded"
)

// Record is one journal line.
type Record interface {
	Type() RecordType
	Apply(s *Summary)
	Message() string
}

// CombatStarted opens a session.
type CombatStarted struct {
	Session   string    `json:"session"`
	Encounter string    `json:"encounter"`
	At        time.Time `json:"at"`
}

func (r *CombatStarted) Type() RecordType { return TypeCombatStarted }
func (r *CombatStarted) Apply(s *Summary) {
	s.Sessions++
	s.Encounters[r.Encounter]++
}
func (r *CombatStarted) Message() string {
	return fmt.Sprintf("Combat %s started (%s)", short(r.Session), r.Encounter)
}

// ActionResolved records an act that went through.
type ActionResolved struct {
	Session  string           `json:"session"`
	Turn     int              `json:"turn"`
	ActorID  int              `json:"actor_id"`
	TargetID int              `json:"target_id,omitempty"`
	Action   string           `json:"action"`
	Effects  []command.Effect `json:"effects"`
}

func (r *ActionResolved) Type() RecordType { return TypeActionResolved }
func (r *ActionResolved) Apply(s *Summary) {
	s.Actions++
	s.Uses[r.Action]++
	for _, e := range r.Effects {
		if e.Op == command.OpDealDamage {
			s.Damage[r.ActorID] += e.Delta
		}
	}
	s.observeTurn(r.Turn)
}
func (r *ActionResolved) Message() string {
	dmg := 0
	for _, e := range r.Effects {
		if e.Op == command.OpDealDamage {
			dmg += e.Delta
		}
	}
	if r.TargetID != 0 {
		return fmt.Sprintf("T%d #%d %s -> #%d (%d damage)", r.Turn, r.ActorID, r.Action, r.TargetID, dmg)
	}
	return fmt.Sprintf("T%d #%d %s", r.Turn, r.ActorID, r.Action)
}

// RecallResolved records a recall that granted an act.
type RecallResolved struct {
	Session  string `json:"session"`
	Turn     int    `json:"turn"`
	ActorID  int    `json:"actor_id"`
	RecipeID int    `json:"recipe_id"`
	Recipe   string `json:"recipe"`
	SlotID   int    `json:"slot_id"`
}

func (r *RecallResolved) Type() RecordType { return TypeRecallResolved }
func (r *RecallResolved) Apply(s *Summary) {
	s.Recalls++
	s.Recipes[r.Recipe]++
	s.observeTurn(r.Turn)
}
func (r *RecallResolved) Message() string {
	return fmt.Sprintf("T%d #%d recalled %s into slot %d", r.Turn, r.ActorID, r.Recipe, r.SlotID)
}

// ActionRejected records a failure code shown to the player.
type ActionRejected struct {
	Session string `json:"session"`
	Turn    int    `json:"turn"`
	ActorID int    `json:"actor_id"`
	Code    string `json:"code"`
}

func (r *ActionRejected) Type() RecordType { return TypeActionRejected }
func (r *ActionRejected) Apply(s *Summary) {
	s.Rejections[r.Code]++
}
func (r *ActionRejected) Message() string {
	return fmt.Sprintf("T%d #%d rejected: %s", r.Turn, r.ActorID, r.Code)
}

// CombatEnded closes a session.
type CombatEnded struct {
	Session string `json:"session"`
	Turn    int    `json:"turn"`
	Outcome string `json:"outcome"`
}

func (r *CombatEnded) Type() RecordType { return TypeCombatEnded }
func (r *CombatEnded) Apply(s *Summary) {
	s.Outcomes[r.Outcome]++
	s.observeTurn(r.Turn)
}
func (r *CombatEnded) Message() string {
	return fmt.Sprintf("Combat %s ended on turn %d: %s", short(r.Session), r.Turn, r.Outcome)
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
