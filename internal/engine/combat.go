// Package engine runs a combat: the phase machine, the intent queues, the
// resolve pipeline and the handler table that ties them together.
package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/command"
	"github.com/suderio/recall/internal/failure"
	"github.com/suderio/recall/internal/intent"
	"github.com/suderio/recall/internal/memory"
	"github.com/suderio/recall/internal/recipe"
)

// ErrNoPlayer is returned when a roster has no player-side actor.
var ErrNoPlayer = errors.New("combat requires a player actor")

// Outcome is the result of a combat.
type Outcome int

const (
	Ongoing Outcome = iota
	Victory
	Defeat
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	}
	return "ongoing"
}

// Resolution describes an action that went through.
type Resolution struct {
	Turn     int              `json:"turn"`
	Step     string           `json:"step"`
	ActorID  int              `json:"actor_id"`
	TargetID int              `json:"target_id,omitempty"`
	Kind     intent.Kind      `json:"kind"`
	Action   string           `json:"action"`
	Effects  []command.Effect `json:"effects"`
	Granted  *recipe.Act      `json:"granted,omitempty"`
}

// Hooks are the collaborators notified by the pipeline. Any may be nil.
type Hooks struct {
	OnFailure  func(actorID int, code failure.Code)
	OnResolved func(r Resolution)
	OnRender   func()
}

// Options configures a combat. Zero values pick defaults.
type Options struct {
	MaxIterations  int
	MemoryCapacity int
	SlotCapacity   int
	Registry       *recipe.Registry
	Policy         EnemyPolicy
	Hooks          Hooks
	Logger         *zerolog.Logger
	Table          Table
}

// Combat owns every piece of state of one fight.
type Combat struct {
	roster     *actor.Roster
	phase      *Phase
	runner     *Runner
	translator *intent.Translator
	memory     *memory.Log
	slots      *recipe.Slots
	registry   *recipe.Registry
	policy     EnemyPolicy
	hooks      Hooks
	log        zerolog.Logger

	player    Queue
	mark      Queue
	immediate Queue

	lastFailure failure.Code
}

// New builds a combat over roster. It does not start it.
func New(roster *actor.Roster, opts Options) (*Combat, error) {
	if roster == nil || roster.Player() == nil {
		return nil, ErrNoPlayer
	}
	if opts.MaxIterations == 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.MemoryCapacity == 0 {
		opts.MemoryCapacity = memory.DefaultCapacity
	}
	if opts.SlotCapacity == 0 {
		opts.SlotCapacity = recipe.DefaultSlotCapacity
	}
	if opts.Registry == nil {
		opts.Registry = recipe.Default()
	}
	if opts.Policy == nil {
		opts.Policy = StaticPolicy(DefaultEnemyMove)
	}
	if opts.Table == nil {
		opts.Table = DefaultTable()
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	mem, err := memory.NewLog(opts.MemoryCapacity)
	if err != nil {
		return nil, fmt.Errorf("combat: %w", err)
	}
	slots, err := recipe.NewSlots(opts.SlotCapacity)
	if err != nil {
		return nil, fmt.Errorf("combat: %w", err)
	}
	runner, err := NewRunner(opts.Table, opts.MaxIterations, log)
	if err != nil {
		return nil, fmt.Errorf("combat: %w", err)
	}

	c := &Combat{
		roster:   roster,
		phase:    NewPhase(),
		runner:   runner,
		memory:   mem,
		slots:    slots,
		registry: opts.Registry,
		policy:   opts.Policy,
		hooks:    opts.Hooks,
		log:      log,
	}
	c.translator, err = intent.NewTranslator(roster, c.phase, mem, slots, opts.Registry)
	if err != nil {
		return nil, fmt.Errorf("combat: %w", err)
	}
	return c, nil
}

// Start runs the cycle up to the first player input.
func (c *Combat) Start() Signal {
	if c.phase.Step() != CombatStart {
		return PhaseLocked
	}
	return c.runner.Run(c)
}

// TryExecutePlayerAction queues a player intent and resolves it. Outside
// PlayerInput nothing changes and PhaseLocked is returned.
func (c *Combat) TryExecutePlayerAction(actorID int, in intent.Intent) Signal {
	c.lastFailure = failure.None
	if c.phase.Step() != PlayerInput {
		c.reject(actorID, failure.PhaseLocked)
		return PhaseLocked
	}
	c.player.Push(Queued{ActorID: actorID, Intent: in})
	if err := c.phase.Fire(EventSubmit); err != nil {
		c.log.Error().Err(err).Msg("submit")
		return Interrupt
	}
	return c.runner.Run(c)
}

// TryEndPlayerTurn hands the turn to the enemies.
func (c *Combat) TryEndPlayerTurn(actorID int) Signal {
	c.lastFailure = failure.None
	if c.phase.Step() != PlayerInput {
		c.reject(actorID, failure.PhaseLocked)
		return PhaseLocked
	}
	a, ok := c.roster.ResolveActorByID(actorID)
	if !ok || !a.Alive() {
		// Same as a rejected action: the step stays at PlayerInput.
		c.reject(actorID, failure.SelfDead)
		return WaitInput
	}
	if a.Side != actor.SidePlayer {
		c.reject(actorID, failure.PhaseLocked)
		return PhaseLocked
	}
	if err := c.phase.Fire(EventEndTurn); err != nil {
		c.log.Error().Err(err).Msg("end turn")
		return Interrupt
	}
	return c.runner.Run(c)
}

// LastFailure returns the failure of the latest entry point call, or None.
func (c *Combat) LastFailure() failure.Code { return c.lastFailure }

// Step returns the current phase step.
func (c *Combat) Step() Step { return c.phase.Step() }

// Turn returns the current turn number.
func (c *Combat) Turn() int { return c.phase.Turn() }

// Roster exposes the actors for lookups.
func (c *Combat) Roster() *actor.Roster { return c.roster }

// Registry exposes the recipe table.
func (c *Combat) Registry() *recipe.Registry { return c.registry }

// Memory exposes the memory log for read-only queries.
func (c *Combat) Memory() *memory.Log { return c.memory }

// Candidates lists the recipes a memory selection would match right now.
func (c *Combat) Candidates(indices []int) ([]recipe.Recipe, failure.Code) {
	return c.registry.Candidates(c.memory, indices, c.phase.Turn())
}

// Outcome reports whether either side has been wiped out.
func (c *Combat) Outcome() Outcome {
	switch {
	case !c.roster.AnyAlive(actor.SidePlayer):
		return Defeat
	case !c.roster.AnyAlive(actor.SideEnemy):
		return Victory
	}
	return Ongoing
}

func (c *Combat) reject(actorID int, code failure.Code) {
	if a, ok := c.roster.ResolveActorByID(actorID); !ok || a.Side == actor.SidePlayer {
		c.lastFailure = code
	}
	c.log.Info().Int("actor", actorID).Str("code", code.String()).Msg("action rejected")
	if c.hooks.OnFailure != nil {
		c.hooks.OnFailure(actorID, code)
	}
}

// resolve runs one queued intent through translate, execute and commit.
func (c *Combat) resolve(q Queued) failure.Code {
	plan, code := c.translator.Translate(q.ActorID, q.Intent)
	if !code.OK() {
		c.reject(q.ActorID, code)
		return code
	}
	effects, code := command.ExecuteOrDiscard(plan.Commands())
	if !code.OK() {
		c.reject(q.ActorID, code)
		return code
	}
	res := Resolution{
		Turn:    c.phase.Turn(),
		Step:    c.phase.Step().String(),
		ActorID: q.ActorID,
		Kind:    plan.Kind,
		Action:  plan.Spec.Name,
		Effects: effects,
	}
	if plan.Target != nil {
		res.TargetID = plan.Target.ID
	}
	res.Granted = c.commit(plan)

	c.log.Debug().Int("actor", q.ActorID).Str("action", res.Action).Int("effects", len(effects)).Msg("action resolved")
	if c.hooks.OnResolved != nil {
		c.hooks.OnResolved(res)
	}
	if c.hooks.OnRender != nil {
		c.hooks.OnRender()
	}
	return failure.None
}

// commit applies the bookkeeping of a successful plan.
func (c *Combat) commit(plan intent.Plan) *recipe.Act {
	if plan.Owner.Side == actor.SidePlayer && plan.Kind != intent.KindRecall && plan.Spec.Tag != memory.TagNone {
		c.memory.Push(plan.Spec.Tag, c.phase.Turn())
	}
	switch plan.Kind {
	case intent.KindSlot:
		act, ok := c.slots.Get(plan.SlotID)
		if !ok {
			break
		}
		if act.Spec.Consumable {
			c.slots.Remove(plan.SlotID)
		} else {
			act.StartCooldown()
		}
	case intent.KindRecall:
		c.phase.MarkRecallUsed()
		id, code := c.slots.Add(plan.Recipe.Instantiate())
		if !code.OK() {
			c.log.Error().Str("code", code.String()).Msg("recall grant lost after validation")
			return nil
		}
		act, _ := c.slots.Get(id)
		granted := *act
		return &granted
	}
	return nil
}

// drain resolves a queue front to back. It stops early when the fight is over.
func (c *Combat) drain(q *Queue) {
	for {
		if c.Outcome() != Ongoing {
			q.Clear()
			return
		}
		item, ok := q.Pop()
		if !ok {
			return
		}
		c.resolve(item)
	}
}
