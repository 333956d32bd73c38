package reporter

import (
	"github.com/tanyabudhrani/Task-Management-System/internal/criteria"
	"github.com/tanyabudhrani/Task-Management-System/internal/duration"
	"github.com/tanyabudhrani/Task-Management-System/internal/task"
)

// TaskView is the machine-readable form of a task.
type TaskView struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Duration      float64  `json:"duration"`
	Kind          string   `json:"kind"`
	Prerequisites []string `json:"prerequisites"`
}

// CriterionView is the machine-readable form of a criterion.
type CriterionView struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Expression string `json:"expression"`
}

// DurationView is the machine-readable form of a duration analysis.
type DurationView struct {
	Task           string            `json:"task"`
	Aggregate      float64           `json:"aggregate"`
	EarliestFinish float64           `json:"earliest_finish"`
	CriticalChain  []string          `json:"critical_chain"`
	Tasks          []*duration.Entry `json:"tasks"`
}

// SearchView is the machine-readable form of a search result.
type SearchView struct {
	Criterion string   `json:"criterion"`
	Matches   []string `json:"matches"`
}

func NewTaskView(t *task.Task) TaskView {
	kind := "composite"
	if t.IsPrimitive() {
		kind = "primitive"
	}
	prereqs := append([]string{}, t.Prerequisites...)
	return TaskView{
		Name:          t.Name,
		Description:   t.Description,
		Duration:      t.Duration,
		Kind:          kind,
		Prerequisites: prereqs,
	}
}

func TaskViews(tasks []*task.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewTaskView(t))
	}
	return views
}

func NewCriterionView(c criteria.Criterion) CriterionView {
	return CriterionView{Name: c.CriterionName(), Kind: Kind(c), Expression: Describe(c)}
}

func CriterionViews(cs []criteria.Criterion) []CriterionView {
	views := make([]CriterionView, 0, len(cs))
	for _, c := range cs {
		views = append(views, NewCriterionView(c))
	}
	return views
}

// NewDurationView lists entries root first, matching the console report.
func NewDurationView(b *duration.Breakdown) DurationView {
	v := DurationView{
		Task:           b.Root,
		Aggregate:      b.Aggregate,
		EarliestFinish: b.EarliestFinish,
		CriticalChain:  b.CriticalChain,
	}
	for i := len(b.Order) - 1; i >= 0; i-- {
		v.Tasks = append(v.Tasks, b.Tasks[b.Order[i]])
	}
	return v
}

func NewSearchView(criterion string, matches []*task.Task) SearchView {
	names := make([]string, 0, len(matches))
	for _, t := range matches {
		names = append(names, t.Name)
	}
	return SearchView{Criterion: criterion, Matches: names}
}
