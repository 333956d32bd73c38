package duration

// Breakdown holds the duration analysis of the subgraph rooted at one task.
type Breakdown struct {
	Root           string
	Aggregate      float64
	EarliestFinish float64
	Tasks          map[string]*Entry
	Order          []string // prerequisites before dependents
	CriticalChain  []string // root first
}

// Entry holds the computed durations of a single task in the subgraph.
type Entry struct {
	Name           string  `json:"name"`
	Duration       float64 `json:"duration"` // stored
	Aggregate      float64 `json:"aggregate"`
	EarliestFinish float64 `json:"earliest_finish"`
	Depth          int     `json:"depth"` // distance from the root along the longest path seen
	IsPrimitive    bool    `json:"is_primitive"`
}
