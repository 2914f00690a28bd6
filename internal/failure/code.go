// Package failure defines the closed set of gameplay failure codes returned
// synchronously by the translator, the executor and the phase runner.
package failure

import "fmt"

// Code identifies why an action was rejected. None is the success sentinel.
type Code int

const (
	None Code = iota
	NoAP
	NoCharge
	BadTarget
	SelfDead
	RecallUsed
	BadIndex
	IndexOutOfBound
	IndexLimited
	IndexNotContiguous
	NoRecipe
	ActSlotsFull
	PhaseLocked
	UnknownIntent
	// Cooldown rejects a slot act whose cooldown has not elapsed.
	Cooldown
)

var names = map[Code]string{
	None:               "None",
	NoAP:               "NoAP",
	NoCharge:           "NoCharge",
	BadTarget:          "BadTarget",
	SelfDead:           "SelfDead",
	RecallUsed:         "RecallUsed",
	BadIndex:           "BadIndex",
	IndexOutOfBound:    "IndexOutOfBound",
	IndexLimited:       "IndexLimited",
	IndexNotContiguous: "IndexNotContiguous",
	NoRecipe:           "NoRecipe",
	ActSlotsFull:       "ActSlotsFull",
	PhaseLocked:        "PhaseLocked",
	UnknownIntent:      "UnknownIntent",
	Cooldown:           "Cooldown",
}

var hints = map[Code]string{
	NoAP:               "not enough action points",
	NoCharge:           "not enough charge",
	BadTarget:          "that target cannot be chosen",
	SelfDead:           "the acting actor is down",
	RecallUsed:         "recall was already used this turn",
	BadIndex:           "select at least one memory entry",
	IndexOutOfBound:    "memory index out of range or repeated",
	IndexLimited:       "memories from the current turn cannot be recalled",
	IndexNotContiguous: "memory selection must be contiguous",
	NoRecipe:           "no combo matches that memory",
	ActSlotsFull:       "all act slots are taken",
	PhaseLocked:        "actions are not accepted right now",
	UnknownIntent:      "unknown action",
	Cooldown:           "that act is still cooling down",
}

// String returns the code name, e.g. "NoAP".
func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// OK reports whether c is the success sentinel.
func (c Code) OK() bool { return c == None }

// Hint returns a short player-facing explanation.
func (c Code) Hint() string { return hints[c] }

// Err adapts the code to an error for CLI surfaces. None yields nil.
func (c Code) Err() error {
	if c == None {
		return nil
	}
	return &Error{Code: c}
}

// Error wraps a Code so it can travel through error-returning APIs.
type Error struct {
	Code Code
}

func (e *Error) Error() string {
	if h := e.Code.Hint(); h != "" {
		return fmt.Sprintf("%s: %s", e.Code, h)
	}
	return e.Code.String()
}

// Parse returns the code with the given name.
func Parse(name string) (Code, bool) {
	for c, n := range names {
		if n == name {
			return c, true
		}
	}
	return None, false
}
