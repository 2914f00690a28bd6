package rules

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// RollResult is a dice total with the rolls that produced it.
type RollResult struct {
	Total    int
	Raw      []int
	Kept     []int
	Dropped  []int
	Modifier int
}

// Dice rolls dice expressions such as "2d6+1", "1d20a" (advantage),
// "1d20d" (disadvantage) or "4d6kh3".
type Dice struct {
	face func(sides int) int
}

// NewDice returns dice backed by crypto/rand.
func NewDice() *Dice { return &Dice{face: secureFace} }

// FixedDice returns dice that yield faces in order and then repeat the last
// one. It is meant for deterministic runs and tests.
func FixedDice(faces ...int) *Dice {
	i := 0
	return &Dice{face: func(sides int) int {
		if len(faces) == 0 {
			return 1
		}
		v := faces[min(i, len(faces)-1)]
		i++
		return v
	}}
}

func secureFace(sides int) int {
	if sides <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(sides)))
	if err != nil {
		return 1
	}
	return int(n.Int64()) + 1
}

var diceRegex = regexp.MustCompile(`(?i)^(\d*)d(\d+)(k[hl]\d+|[ad])?([+-]\d+)?$`)

// Roll evaluates expr.
func (d *Dice) Roll(expr string) (RollResult, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(expr), " ", "")
	if raw == "" {
		return RollResult{}, fmt.Errorf("empty dice expression")
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return RollResult{Total: n, Modifier: n}, nil
	}
	m := diceRegex.FindStringSubmatch(raw)
	if m == nil {
		return RollResult{}, fmt.Errorf("invalid dice expression %q", expr)
	}

	count := 1
	if m[1] != "" {
		count, _ = strconv.Atoi(m[1])
	}
	sides, _ := strconv.Atoi(m[2])
	if sides <= 0 {
		return RollResult{}, fmt.Errorf("dice expression %q: die needs at least one side", expr)
	}

	keep, highest := count, true
	switch kd := strings.ToLower(m[3]); {
	case kd == "a":
		count, keep = 2, 1
	case kd == "d":
		count, keep, highest = 2, 1, false
	case strings.HasPrefix(kd, "k"):
		highest = kd[1] == 'h'
		keep, _ = strconv.Atoi(kd[2:])
	}
	keep = max(0, min(keep, count))

	res := RollResult{}
	for i := 0; i < count; i++ {
		res.Raw = append(res.Raw, d.face(sides))
	}
	sorted := append([]int(nil), res.Raw...)
	sort.Slice(sorted, func(i, j int) bool {
		if highest {
			return sorted[i] > sorted[j]
		}
		return sorted[i] < sorted[j]
	})
	res.Kept, res.Dropped = sorted[:keep], sorted[keep:]
	for _, v := range res.Kept {
		res.Total += v
	}
	if m[4] != "" {
		res.Modifier, _ = strconv.Atoi(m[4])
		res.Total += res.Modifier
	}
	return res, nil
}

// Total rolls expr and returns only the total, or 0 for a bad expression.
func (d *Dice) Total(expr string) int {
	res, err := d.Roll(expr)
	if err != nil {
		return 0
	}
	return res.Total
}
