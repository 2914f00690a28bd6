package command

import (
	"errors"
	"fmt"

	"github.com/suderio/recall/internal/actor"
)

var (
	// ErrNilTarget is returned when a command is built without a target.
	ErrNilTarget = errors.New("atomic command requires a target")
	// ErrSourceMismatch is returned when a ConsumeAP command does not name
	// the same actor as source and target.
	ErrSourceMismatch = errors.New("ConsumeAP requires source and target to be the same actor")
)

// Op tags an atomic mutation.
type Op int

const (
	OpDealDamage Op = iota + 1
	OpAddShield
	OpGainCharge
	OpConsumeCharge
	OpConsumeAP
	OpGainCopy
	OpConsumeCopy
)

func (o Op) String() string {
	switch o {
	case OpDealDamage:
		return "DealDamage"
	case OpAddShield:
		return "AddShield"
	case OpGainCharge:
		return "GainCharge"
	case OpConsumeCharge:
		return "ConsumeCharge"
	case OpConsumeAP:
		return "ConsumeAP"
	case OpGainCopy:
		return "GainCopy"
	case OpConsumeCopy:
		return "ConsumeCopy"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Visible reports whether the op is worth showing to a player. Spending
// resources is bookkeeping.
func (o Op) Visible() bool { return !isConsume(o) }

// AtomicCmd is the smallest indivisible mutation of actor state.
// Source may be nil except for OpConsumeAP. Target is never nil.
type AtomicCmd struct {
	Op     Op
	Source *actor.Actor
	Target *actor.Actor
	Amount int
}

// New validates and builds a command.
func New(op Op, source, target *actor.Actor, amount int) (AtomicCmd, error) {
	if target == nil {
		return AtomicCmd{}, fmt.Errorf("%s: %w", op, ErrNilTarget)
	}
	if op == OpConsumeAP && source != target {
		return AtomicCmd{}, fmt.Errorf("%s: %w", op, ErrSourceMismatch)
	}
	return AtomicCmd{Op: op, Source: source, Target: target, Amount: amount}, nil
}

// MustNew is New for call sites whose arguments are already validated.
func MustNew(op Op, source, target *actor.Actor, amount int) AtomicCmd {
	c, err := New(op, source, target, amount)
	if err != nil {
		panic(err)
	}
	return c
}

// Effect is one entry of the executor's log.
type Effect struct {
	Op        Op   `json:"op"`
	SourceID  int  `json:"source_id,omitempty"`
	TargetID  int  `json:"target_id"`
	Requested int  `json:"requested"`
	Delta     int  `json:"delta"`
	OK        bool `json:"ok"`
}

// Message renders the effect for logs and the console.
func (e Effect) Message() string {
	switch e.Op {
	case OpDealDamage:
		absorbed := e.Requested - e.Delta
		if e.Requested <= 0 || absorbed <= 0 {
			return fmt.Sprintf("#%d takes %d damage", e.TargetID, e.Delta)
		}
		return fmt.Sprintf("#%d takes %d damage (%d absorbed)", e.TargetID, e.Delta, absorbed)
	case OpAddShield:
		return fmt.Sprintf("#%d gains %d shield", e.TargetID, e.Delta)
	case OpGainCharge:
		return fmt.Sprintf("#%d gains %d charge", e.TargetID, e.Delta)
	case OpGainCopy:
		return fmt.Sprintf("#%d gains %d copy", e.TargetID, e.Delta)
	case OpConsumeAP:
		return fmt.Sprintf("#%d spends %d AP", e.TargetID, e.Delta)
	case OpConsumeCharge:
		return fmt.Sprintf("#%d spends %d charge", e.TargetID, e.Delta)
	case OpConsumeCopy:
		return fmt.Sprintf("#%d spends %d copy", e.TargetID, e.Delta)
	}
	return fmt.Sprintf("%s on #%d: %d", e.Op, e.TargetID, e.Delta)
}

// Execute applies the command and reports the effect. Amount <= 0 is a
// no-op with delta 0. For DealDamage the delta is the HP portion only.
func (c AtomicCmd) Execute() Effect {
	eff := Effect{Op: c.Op, TargetID: c.Target.ID, Requested: c.Amount, OK: true}
	if c.Source != nil {
		eff.SourceID = c.Source.ID
	}
	if c.Amount <= 0 {
		return eff
	}

	switch c.Op {
	case OpDealDamage:
		absorbed := c.Target.Shield.Cut(c.Amount)
		eff.Delta = c.Target.HP.Cut(c.Amount - absorbed)
	case OpAddShield:
		eff.Delta = c.Target.Shield.Add(c.Amount)
	case OpGainCharge:
		eff.Delta = c.Target.Charge.Add(c.Amount)
	case OpGainCopy:
		eff.Delta = c.Target.Copy.Add(c.Amount)
	case OpConsumeCharge:
		eff.OK = c.Target.Charge.Use(c.Amount)
	case OpConsumeCopy:
		eff.OK = c.Target.Copy.Use(c.Amount)
	case OpConsumeAP:
		eff.OK = c.Target.AP.Use(c.Amount)
	default:
		eff.OK = false
	}
	if eff.OK && isConsume(c.Op) {
		eff.Delta = c.Amount
	}
	return eff
}

func isConsume(op Op) bool {
	return op == OpConsumeAP || op == OpConsumeCharge || op == OpConsumeCopy
}
