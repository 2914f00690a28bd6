package recipe

import (
	"sort"

	"github.com/suderio/recall/internal/failure"
	"github.com/suderio/recall/internal/memory"
)

// Encode folds tags left to right as base-10 digits: [1,2] -> 12.
func Encode(tags []memory.Tag) int {
	key := 0
	for _, t := range tags {
		key = key*10 + int(t)
	}
	return key
}

// ValidateRecall checks a memory selection against the recorded turns and
// returns the indices sorted ascending. turns is index-aligned with the log.
func ValidateRecall(indices []int, turns []int, current int) ([]int, failure.Code) {
	if len(indices) == 0 {
		return nil, failure.BadIndex
	}
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(turns) || seen[i] {
			return nil, failure.IndexOutOfBound
		}
		seen[i] = true
	}
	for _, i := range indices {
		if turns[i] == current {
			return nil, failure.IndexLimited
		}
	}

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)
	for k := 1; k < len(sorted); k++ {
		if sorted[k] != sorted[k-1]+1 {
			return nil, failure.IndexNotContiguous
		}
	}
	return sorted, failure.None
}

// Window picks the tags at the given indices, in order.
func Window(ops []memory.Tag, indices []int) []memory.Tag {
	out := make([]memory.Tag, 0, len(indices))
	for _, i := range indices {
		out = append(out, ops[i])
	}
	return out
}

// Candidates validates a selection against a memory snapshot and returns the
// recipes its pattern matches. The log is only read.
func (r *Registry) Candidates(log *memory.Log, indices []int, current int) ([]Recipe, failure.Code) {
	sorted, code := ValidateRecall(indices, log.SnapshotTurns(), current)
	if !code.OK() {
		return nil, code
	}
	list := r.Match(Encode(Window(log.SnapshotOps(), sorted)))
	if len(list) == 0 {
		return nil, failure.NoRecipe
	}
	return list, failure.None
}

// Contains reports whether id is one of the candidates.
func Contains(list []Recipe, id int) bool {
	for _, rc := range list {
		if rc.ID == id {
			return true
		}
	}
	return false
}
