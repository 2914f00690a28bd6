// Package session is the outer API of a combat: it builds a fight from an
// encounter, gates external calls, journals results and serves the console.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/data"
	"github.com/suderio/recall/internal/engine"
	"github.com/suderio/recall/internal/failure"
	"github.com/suderio/recall/internal/intent"
	"github.com/suderio/recall/internal/journal"
	"github.com/suderio/recall/internal/recipe"
	"github.com/suderio/recall/internal/rules"
)

// Journal is where a session writes its records.
type Journal interface {
	Append(r journal.Record) error
	Close() error
}

// Options configures a session. Zero values pick engine defaults.
type Options struct {
	ID             string
	MaxIterations  int
	MemoryCapacity int
	SlotCapacity   int
	Journal        Journal
	Logger         zerolog.Logger
	Roll           rules.RollFunc
	OnRender       func()
}

// Session wraps one combat.
type Session struct {
	id        string
	encounter string
	combat    *engine.Combat
	journal   Journal
	log       zerolog.Logger
	sinks     []func(code failure.Code)
	feed      []string
	ended     bool
}

// New builds a session for enc. Start must be called before submitting intents.
func New(enc *data.Encounter, opts Options) (*Session, error) {
	roster, err := BuildRoster(enc)
	if err != nil {
		return nil, fmt.Errorf("failed to build roster: %w", err)
	}
	env, err := rules.NewEnv(opts.Roll)
	if err != nil {
		return nil, err
	}
	policy, err := BuildPolicy(enc, env)
	if err != nil {
		return nil, fmt.Errorf("failed to compile enemy policy: %w", err)
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	s := &Session{
		id:        id,
		encounter: enc.Name,
		journal:   opts.Journal,
		log:       opts.Logger.With().Str("session", id).Logger(),
	}

	s.combat, err = engine.New(roster, engine.Options{
		MaxIterations:  opts.MaxIterations,
		MemoryCapacity: opts.MemoryCapacity,
		SlotCapacity:   opts.SlotCapacity,
		Policy:         policy,
		Logger:         &s.log,
		Hooks: engine.Hooks{
			OnFailure:  s.handleFailure,
			OnResolved: s.handleResolved,
			OnRender:   opts.OnRender,
		},
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session id stamped on journal records.
func (s *Session) ID() string { return s.id }

// Encounter returns the encounter name.
func (s *Session) Encounter() string { return s.encounter }

// Start journals the opening and runs the cycle to the first player input.
// A combat that already started is left alone and yields PhaseLocked.
func (s *Session) Start() engine.Signal {
	if s.combat.Step() != engine.CombatStart {
		return s.combat.Start()
	}
	s.record(&journal.CombatStarted{Session: s.id, Encounter: s.encounter, At: time.Now().UTC()})
	return s.after(s.combat.Start())
}

// ResolveActorByID looks an actor up by id.
func (s *Session) ResolveActorByID(id int) (*actor.Actor, bool) {
	return s.combat.Roster().ResolveActorByID(id)
}

// PlayerID returns the id of the player actor.
func (s *Session) PlayerID() int { return s.combat.Roster().Player().ID }

// SubmitIntent is the only way to act. It is rejected outside player input.
func (s *Session) SubmitIntent(actorID int, in intent.Intent) engine.Signal {
	return s.after(s.combat.TryExecutePlayerAction(actorID, in))
}

// EndTurn hands the turn to the enemies.
func (s *Session) EndTurn(actorID int) engine.Signal {
	return s.after(s.combat.TryEndPlayerTurn(actorID))
}

// Snapshot returns the state for rendering.
func (s *Session) Snapshot() engine.Snapshot { return s.combat.Snapshot() }

// LastFailure returns the failure of the latest call, or failure.None.
func (s *Session) LastFailure() failure.Code { return s.combat.LastFailure() }

// Candidates lists the recipes a memory selection would match now.
func (s *Session) Candidates(indices []int) ([]recipe.Recipe, failure.Code) {
	return s.combat.Candidates(indices)
}

// Registry returns the recipe table.
func (s *Session) Registry() *recipe.Registry { return s.combat.Registry() }

// OnFailure registers a sink for failures of player actions.
func (s *Session) OnFailure(fn func(code failure.Code)) {
	s.sinks = append(s.sinks, fn)
}

// Feed returns the messages produced since the last call and clears them.
func (s *Session) Feed() []string {
	out := s.feed
	s.feed = nil
	return out
}

// Close closes the journal.
func (s *Session) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}

func (s *Session) after(sig engine.Signal) engine.Signal {
	if sig == engine.CombatEnd && !s.ended {
		s.ended = true
		out := s.combat.Outcome()
		s.feed = append(s.feed, fmt.Sprintf("Combat over: %s.", out))
		s.record(&journal.CombatEnded{Session: s.id, Turn: s.combat.Turn(), Outcome: out.String()})
	}
	if sig == engine.Interrupt || sig == engine.Pending {
		s.log.Warn().Str("signal", sig.String()).Str("step", s.combat.Step().String()).Msg("combat stopped abnormally")
	}
	return sig
}

func (s *Session) name(id int) string {
	if a, ok := s.ResolveActorByID(id); ok {
		return a.Name
	}
	return fmt.Sprintf("#%d", id)
}

func (s *Session) handleFailure(actorID int, code failure.Code) {
	s.record(&journal.ActionRejected{Session: s.id, Turn: s.combat.Turn(), ActorID: actorID, Code: code.String()})
	if a, ok := s.ResolveActorByID(actorID); ok && a.Side == actor.SideEnemy {
		return
	}
	for _, fn := range s.sinks {
		fn(code)
	}
}

func (s *Session) handleResolved(r engine.Resolution) {
	if r.Kind == intent.KindRecall && r.Granted != nil {
		s.feed = append(s.feed, fmt.Sprintf("%s recalls %s (slot %d).", s.name(r.ActorID), r.Granted.Spec.Name, r.Granted.SlotID))
		s.record(&journal.RecallResolved{
			Session:  s.id,
			Turn:     r.Turn,
			ActorID:  r.ActorID,
			RecipeID: r.Granted.RecipeID,
			Recipe:   r.Granted.Spec.Name,
			SlotID:   r.Granted.SlotID,
		})
		return
	}

	line := fmt.Sprintf("%s uses %s", s.name(r.ActorID), r.Action)
	if r.TargetID != 0 && r.TargetID != r.ActorID {
		line += " on " + s.name(r.TargetID)
	}
	s.feed = append(s.feed, line+".")
	for _, e := range r.Effects {
		if e.Requested > 0 && e.OK && e.Op.Visible() {
			s.feed = append(s.feed, "  "+e.Message())
		}
	}
	s.record(&journal.ActionResolved{
		Session:  s.id,
		Turn:     r.Turn,
		ActorID:  r.ActorID,
		TargetID: r.TargetID,
		Action:   r.Action,
		Effects:  r.Effects,
	})
}

func (s *Session) record(r journal.Record) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Append(r); err != nil {
		s.log.Error().Err(err).Str("record", string(r.Type())).Msg("journal write failed")
	}
}
