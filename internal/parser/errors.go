package parser

import (
	"fmt"
	"strings"
)

// Usage lists the syntax of every console command.
var Usage = map[string]string{
	"attack":  "attack to: <enemy id>",
	"block":   "block",
	"charge":  "charge",
	"use":     "use <slot id> [to: <enemy id>]",
	"recall":  "recall <memory index>... [pick: <recipe id>]",
	"end":     "end",
	"status":  "status",
	"recipes": "recipes",
	"help":    "help [command]",
	"quit":    "quit",
}

// MapError takes a raw input and a participle error, and returns a human-friendly guidance message.
func MapError(input string, err error) error {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(parts) == 0 {
		return fmt.Errorf("I wasn't able to understand your command")
	}
	cmd := parts[0]
	if cmd == "pass" {
		cmd = "end"
	}
	if cmd == "exit" {
		cmd = "quit"
	}
	if u, ok := Usage[cmd]; ok {
		return fmt.Errorf("The command %s must be: %s", cmd, u)
	}
	return fmt.Errorf("I wasn't able to understand your command")
}
