package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/engine"
	"github.com/suderio/recall/internal/intent"
	"github.com/suderio/recall/internal/memory"
	"github.com/suderio/recall/internal/parser"
	"github.com/suderio/recall/internal/recipe"
)

// ErrQuit is returned by Execute when the player asks to leave.
var ErrQuit = errors.New("quit")

// Execute runs one console line for the player and returns what to print.
// Rejected actions come back as the failure code's error.
func (s *Session) Execute(line string) (string, error) {
	cmd, err := parser.Parse(line)
	if err != nil {
		return "", err
	}
	player := s.PlayerID()

	switch {
	case cmd.Act != nil:
		tag := map[string]memory.Tag{
			"attack": memory.TagAttack,
			"block":  memory.TagBlock,
			"charge": memory.TagCharge,
		}[cmd.Act.Verb]
		spec, _ := recipe.Basic(tag)
		return s.submit(player, intent.Act(tag, s.targetOf(cmd.Act.Target, spec.Target)))

	case cmd.Use != nil:
		return s.submit(player, intent.UseSlot(cmd.Use.Slot, s.targetOf(cmd.Use.Target, recipe.TargetOther)))

	case cmd.Recall != nil:
		if cmd.Recall.Pick == nil {
			list, code := s.Candidates(cmd.Recall.Indices)
			if !code.OK() {
				return "", code.Err()
			}
			var b strings.Builder
			b.WriteString("Candidates:\n")
			for _, rc := range list {
				fmt.Fprintf(&b, "  %d. %s\n", rc.ID, rc.Spec.Summary())
			}
			fmt.Fprintf(&b, "Pick one with: recall %s pick: <id>", joinInts(cmd.Recall.Indices))
			return b.String(), nil
		}
		return s.submit(player, intent.RecallAs(cmd.Recall.Pick.RecipeID, cmd.Recall.Indices...))

	case cmd.End != nil:
		return s.outcome(s.EndTurn(player))

	case cmd.Status != nil:
		return Status(s.Snapshot()), nil

	case cmd.Recipes != nil:
		return Recipes(s.Registry()), nil

	case cmd.Help != nil:
		return Help(cmd.Help.Topic), nil

	case cmd.Quit != nil:
		return "", ErrQuit
	}
	return "", fmt.Errorf("I wasn't able to understand your command")
}

func (s *Session) submit(actorID int, in intent.Intent) (string, error) {
	return s.outcome(s.SubmitIntent(actorID, in))
}

func (s *Session) outcome(sig engine.Signal) (string, error) {
	out := strings.Join(s.Feed(), "\n")
	if code := s.LastFailure(); !code.OK() {
		return out, code.Err()
	}
	switch sig {
	case engine.Interrupt, engine.Pending:
		return out, fmt.Errorf("combat stopped: %s", sig)
	}
	return out, nil
}

// targetOf picks the explicit target, or the first living enemy for acts
// that need one.
func (s *Session) targetOf(t *parser.TargetExpr, mode recipe.TargetMode) int {
	if t != nil {
		return t.ID
	}
	if mode != recipe.TargetOther {
		return intent.NoTarget
	}
	for _, a := range s.combat.Roster().Side(actor.SideEnemy) {
		if a.Alive() {
			return a.ID
		}
	}
	return intent.NoTarget
}

// Status renders a snapshot as plain text.
func Status(snap engine.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn %d (%s)", snap.Turn, snap.Step)
	if snap.RecallUsed {
		b.WriteString(" recall used")
	}
	b.WriteString("\n")
	for _, a := range snap.Actors {
		fmt.Fprintf(&b, "  #%d %-14s HP %d/%d", a.ID, a.Name, a.HP, a.MaxHP)
		if a.Shield > 0 {
			fmt.Fprintf(&b, " shield %d", a.Shield)
		}
		if a.HasAP {
			fmt.Fprintf(&b, " AP %d/%d", a.AP, a.APMax)
		}
		if a.ChargeMax > 0 {
			fmt.Fprintf(&b, " charge %d/%d", a.Charge, a.ChargeMax)
		}
		if a.CopyMax > 0 {
			fmt.Fprintf(&b, " copy %d/%d", a.Copy, a.CopyMax)
		}
		if !a.Alive {
			b.WriteString(" (down)")
		}
		b.WriteString("\n")
	}
	b.WriteString("Memory:")
	if len(snap.MemoryOps) == 0 {
		b.WriteString(" empty")
	}
	for i, op := range snap.MemoryOps {
		fmt.Fprintf(&b, " [%d]%s@T%d", i, op, snap.MemoryTurns[i])
	}
	b.WriteString("\n")
	for _, act := range snap.Slots {
		fmt.Fprintf(&b, "  slot %d: %s", act.SlotID, act.Spec.Summary())
		if act.Cooldown > 0 {
			fmt.Fprintf(&b, " cooling %d", act.Cooldown)
		}
		b.WriteString("\n")
	}
	for _, t := range snap.Telegraphs {
		fmt.Fprintf(&b, "  ! #%d plans %s (%s)\n", t.ActorID, t.Description, t.Timing)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Recipes lists the combo table with the tag pattern of each entry.
func Recipes(reg *recipe.Registry) string {
	var b strings.Builder
	for _, rc := range reg.All() {
		fmt.Fprintf(&b, "%2d. %-6s %s\n", rc.ID, pattern(rc.Pattern), rc.Spec.Summary())
	}
	return strings.TrimRight(b.String(), "\n")
}

func pattern(p int) string {
	var b strings.Builder
	for _, d := range fmt.Sprint(p) {
		b.WriteString(memory.Tag(d - '0').String())
	}
	return b.String()
}

// Help returns usage for one command or all of them.
func Help(topic string) string {
	if u, ok := parser.Usage[topic]; ok {
		return u
	}
	keys := make([]string, 0, len(parser.Usage))
	for k := range parser.Usage {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "  "+parser.Usage[k])
	}
	return "Commands:\n" + strings.Join(lines, "\n")
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}
