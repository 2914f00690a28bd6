package journal

// Summary is the fold of a journal.
type Summary struct {
	Sessions   int            `json:"sessions"`
	Actions    int            `json:"actions"`
	Recalls    int            `json:"recalls"`
	LastTurn   int            `json:"last_turn"`
	Encounters map[string]int `json:"encounters"`
	Uses       map[string]int `json:"uses"`
	Recipes    map[string]int `json:"recipes"`
	Rejections map[string]int `json:"rejections"`
	Damage     map[int]int    `json:"damage"`
	Outcomes   map[string]int `json:"outcomes"`
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{
		Encounters: make(map[string]int),
		Uses:       make(map[string]int),
		Recipes:    make(map[string]int),
		Rejections: make(map[string]int),
		Damage:     make(map[int]int),
		Outcomes:   make(map[string]int),
	}
}

// Summarize folds records in order.
func Summarize(records []Record) *Summary {
	s := NewSummary()
	for _, r := range records {
		r.Apply(s)
	}
	return s
}

func (s *Summary) observeTurn(turn int) {
	if turn > s.LastTurn {
		s.LastTurn = turn
	}
}
