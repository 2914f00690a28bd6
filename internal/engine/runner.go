package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrNoTable is returned when a runner is built without handlers.
	ErrNoTable = errors.New("runner requires a handler table")
	// ErrMaxIterations is returned for a non-positive iteration ceiling.
	ErrMaxIterations = errors.New("runner iteration ceiling must be positive")
)

// DefaultMaxIterations bounds a single Run call.
const DefaultMaxIterations = 100

// Handler performs the work of one step and reports how to proceed.
type Handler func(c *Combat) Signal

// Table maps each step to its handler.
type Table map[Step]Handler

// Runner drives the handler table until a handler asks it to stop.
type Runner struct {
	table   Table
	maxIter int
	log     zerolog.Logger
}

// NewRunner validates the table and ceiling.
func NewRunner(table Table, maxIter int, log zerolog.Logger) (*Runner, error) {
	if len(table) == 0 {
		return nil, ErrNoTable
	}
	if maxIter <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrMaxIterations, maxIter)
	}
	return &Runner{table: table, maxIter: maxIter, log: log}, nil
}

// Run calls handlers until one returns something other than Continue. A
// step with no handler, or hitting the ceiling, yields Interrupt.
func (r *Runner) Run(c *Combat) Signal {
	for i := 0; i < r.maxIter; i++ {
		step := c.phase.Step()
		h, ok := r.table[step]
		if !ok {
			r.log.Error().Str("step", step.String()).Msg("no handler for step")
			return Interrupt
		}
		sig := h(c)
		r.log.Debug().Str("step", step.String()).Str("signal", sig.String()).Int("iteration", i).Msg("phase step")
		if sig != Continue {
			return sig
		}
	}
	r.log.Error().Str("step", c.phase.Step().String()).Int("max_iterations", r.maxIter).Msg("runner hit iteration ceiling")
	return Interrupt
}
