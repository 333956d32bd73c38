package task

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
	"github.com/tanyabudhrani/Task-Management-System/internal/logger"
)

// Lookup resolves task names. *Registry implements it.
type Lookup interface {
	Get(name string) (*Task, bool)
}

// AggregateFunc computes the aggregate duration of a registered task. The
// duration package supplies it; the registry only needs it when a composite
// task is created.
type AggregateFunc func(g Lookup, name string) (float64, error)

// Registry owns every Task, keyed by name, and remembers creation order so
// that enumeration is deterministic.
type Registry struct {
	tasks     map[string]*Task
	order     []string
	aggregate AggregateFunc
	log       logger.Logger
}

// NewRegistry creates an empty registry. aggregate is used by
// CreateComposite; log receives diagnostics for silently filtered input.
func NewRegistry(aggregate AggregateFunc, log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNop()
	}
	return &Registry{
		tasks:     make(map[string]*Task),
		aggregate: aggregate,
		log:       log,
	}
}

// Get returns the task registered under name.
func (r *Registry) Get(name string) (*Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Len returns the number of tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Names returns task names in creation order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns tasks in creation order.
func (r *Registry) All() []*Task {
	out := make([]*Task, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tasks[name])
	}
	return out
}

// IsPrimitive reports whether name is registered and has no prerequisites.
func (r *Registry) IsPrimitive(name string) bool {
	t, ok := r.tasks[name]
	return ok && t.IsPrimitive()
}

// CreatePrimitive inserts a leaf task. Prerequisite names that are not
// registered, and the task's own name, are dropped.
func (r *Registry) CreatePrimitive(name, description string, duration float64, prerequisiteNames []string) (*Task, error) {
	if name == "" {
		return nil, errs.Validationf("task name is empty")
	}
	if duration < 0 || math.IsNaN(duration) {
		return nil, errs.Validationf("duration %v of task %q is negative", duration, name)
	}

	t := &Task{
		Name:          name,
		Description:   description,
		Duration:      duration,
		Prerequisites: r.resolveNew(name, prerequisiteNames),
	}
	r.put(t)
	return t, nil
}

// CreateComposite inserts a task over the registered subset of subtaskNames,
// excluding its own name.
// Its stored duration is the largest aggregate duration among those subtasks,
// never less than 1.
func (r *Registry) CreateComposite(name, description string, subtaskNames []string) (*Task, error) {
	if name == "" {
		return nil, errs.Validationf("task name is empty")
	}

	subtasks := r.resolveNew(name, subtaskNames)
	duration := 1.0
	for _, sub := range subtasks {
		if r.aggregate == nil {
			break
		}
		d, err := r.aggregate(r, sub)
		if err != nil {
			return nil, err
		}
		duration = math.Max(duration, d)
	}

	t := &Task{
		Name:          name,
		Description:   description,
		Duration:      duration,
		Prerequisites: subtasks,
	}
	r.put(t)
	return t, nil
}

// Delete removes name and strips it from every other prerequisite list.
func (r *Registry) Delete(name string) error {
	if _, ok := r.tasks[name]; !ok {
		return errs.NotFound("task", name)
	}
	delete(r.tasks, name)
	r.order = removeName(r.order, name)

	for _, t := range r.tasks {
		t.Prerequisites = removeName(t.Prerequisites, name)
	}
	return nil
}

// Change mutates one property of a registered task. For prerequisites and
// subtasks, value is a comma-separated list that replaces the current list;
// names that are not registered are dropped.
func (r *Registry) Change(name, property, value string) error {
	t, ok := r.tasks[name]
	if !ok {
		return errs.NotFound("task", name)
	}

	switch strings.ToLower(strings.TrimSpace(property)) {
	case PropName:
		return r.rename(t, value)
	case PropDescription:
		t.Description = value
	case PropDuration:
		d, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return errs.Validationf("duration %q is not a number", value)
		}
		if d < 0 || math.IsNaN(d) {
			return errs.Validationf("duration %v is negative", d)
		}
		t.Duration = d
	case PropPrerequisites, PropSubtasks:
		t.Prerequisites = r.resolve(name, SplitNames(value))
	default:
		return errs.Validationf("unknown task property %q", property)
	}
	return nil
}

// rename re-keys t under newName, keeping its creation slot and rewriting
// references held by other tasks.
func (r *Registry) rename(t *Task, newName string) error {
	oldName := t.Name
	if newName == oldName {
		return nil
	}
	if newName == "" {
		return errs.Validationf("task name is empty")
	}
	if _, taken := r.tasks[newName]; taken {
		return errs.Validationf("task %q already exists", newName)
	}

	delete(r.tasks, oldName)
	t.Name = newName
	r.tasks[newName] = t
	for i, n := range r.order {
		if n == oldName {
			r.order[i] = newName
			break
		}
	}
	for _, other := range r.tasks {
		for i, p := range other.Prerequisites {
			if p == oldName {
				other.Prerequisites[i] = newName
			}
		}
	}
	return nil
}

// Restore inserts tasks verbatim, in the given order. Prerequisite lists are
// not filtered.
func (r *Registry) Restore(tasks []*Task) {
	for _, t := range tasks {
		if t == nil || t.Name == "" {
			continue
		}
		r.put(t)
	}
}

// DetectCycle returns a cycle along prerequisite edges, or nil if the graph is
// acyclic. Uses DFS with coloring: white (unvisited), gray (in progress),
// black (done).
func (r *Registry) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int)
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range r.tasks[node].Prerequisites {
			if _, ok := r.tasks[next]; !ok {
				continue
			}
			if color[next] == gray {
				cycle := []string{next, node}
				cur := node
				for cur != next {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	names := r.Names()
	sort.Strings(names)
	for _, name := range names {
		if color[name] == white {
			if cycle := dfs(name); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

func (r *Registry) put(t *Task) {
	if _, exists := r.tasks[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tasks[t.Name] = t
}

// resolve keeps the registered names, in order, without duplicates.
func (r *Registry) resolve(owner string, names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := r.tasks[n]; !ok {
			r.log.Debug("dropping unknown prerequisite", "task", owner, "prerequisite", n)
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// resolveNew is resolve for a task being created. The task's own name is left
// out: when it names an existing task, that task is the one being replaced.
func (r *Registry) resolveNew(owner string, names []string) []string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if n == owner {
			r.log.Debug("dropping self reference", "task", owner)
			continue
		}
		kept = append(kept, n)
	}
	return r.resolve(owner, kept)
}

// SplitNames parses a comma-separated name list. Blank entries are skipped,
// so "," is the empty list.
func SplitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func removeName(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
