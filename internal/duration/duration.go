package duration

import (
	"sort"

	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
	"github.com/tanyabudhrani/Task-Management-System/internal/logger"
	"github.com/tanyabudhrani/Task-Management-System/internal/task"
)

// Graph is the read access the aggregator needs.
type Graph = task.Lookup

// NewRegistry returns a task registry that computes composite durations with
// Aggregate.
func NewRegistry(log logger.Logger) *task.Registry {
	return task.NewRegistry(Aggregate, log)
}

// Aggregate returns the aggregate duration of name: the stored duration for a
// primitive task, otherwise the largest aggregate duration among its
// prerequisites. A task whose prerequisites are all gone falls back to its
// stored duration.
func Aggregate(g Graph, name string) (float64, error) {
	w := newWalker(g)
	return w.aggregate(name)
}

// EarliestFinish returns max(own duration, earliest finish of each
// prerequisite). Unlike Aggregate, the stored duration counts at every level.
func EarliestFinish(g Graph, name string) (float64, error) {
	w := newWalker(g)
	return w.earliestFinish(name)
}

const (
	white = 0
	gray  = 1
	black = 2
)

// walker memoizes one traversal and turns a revisited in-progress node into a
// cycle error.
type walker struct {
	g     Graph
	color map[string]int
	stack []string
	memo  map[string]float64
}

func newWalker(g Graph) *walker {
	return &walker{
		g:     g,
		color: make(map[string]int),
		memo:  make(map[string]float64),
	}
}

func (w *walker) enter(name string) error {
	if w.color[name] == gray {
		return errs.Cycle(w.cyclePath(name))
	}
	w.color[name] = gray
	w.stack = append(w.stack, name)
	return nil
}

func (w *walker) leave(name string, v float64) {
	w.color[name] = black
	w.stack = w.stack[:len(w.stack)-1]
	w.memo[name] = v
}

func (w *walker) cyclePath(name string) []string {
	for i, n := range w.stack {
		if n == name {
			path := append([]string{}, w.stack[i:]...)
			return append(path, name)
		}
	}
	return []string{name, name}
}

func (w *walker) lookup(name string) (*task.Task, error) {
	t, ok := w.g.Get(name)
	if !ok {
		return nil, errs.NotFound("task", name)
	}
	return t, nil
}

func (w *walker) aggregate(name string) (float64, error) {
	if w.color[name] == black {
		return w.memo[name], nil
	}
	t, err := w.lookup(name)
	if err != nil {
		return 0, err
	}
	if t.IsPrimitive() {
		return t.Duration, nil
	}
	if err := w.enter(name); err != nil {
		return 0, err
	}

	maxSub := 0.0
	resolved := 0
	for _, p := range t.Prerequisites {
		if _, ok := w.g.Get(p); !ok {
			continue
		}
		resolved++
		d, err := w.aggregate(p)
		if err != nil {
			return 0, err
		}
		if d > maxSub {
			maxSub = d
		}
	}
	if resolved == 0 {
		maxSub = t.Duration
	}

	w.leave(name, maxSub)
	return maxSub, nil
}

func (w *walker) earliestFinish(name string) (float64, error) {
	if w.color[name] == black {
		return w.memo[name], nil
	}
	t, err := w.lookup(name)
	if err != nil {
		return 0, err
	}
	if err := w.enter(name); err != nil {
		return 0, err
	}

	ef := t.Duration
	for _, p := range t.Prerequisites {
		if _, ok := w.g.Get(p); !ok {
			continue
		}
		pf, err := w.earliestFinish(p)
		if err != nil {
			return 0, err
		}
		if pf > ef {
			ef = pf
		}
	}

	w.leave(name, ef)
	return ef, nil
}

// Analyze computes aggregate and earliest finish for every task reachable
// from name, orders the subgraph prerequisites-first, and follows the chain
// of prerequisites with the highest earliest finish down from the root.
func Analyze(g Graph, name string) (*Breakdown, error) {
	if _, ok := g.Get(name); !ok {
		return nil, errs.NotFound("task", name)
	}

	order, depth, err := topoOrder(g, name)
	if err != nil {
		return nil, err
	}

	agg := newWalker(g)
	ef := newWalker(g)
	result := &Breakdown{
		Root:  name,
		Tasks: make(map[string]*Entry, len(order)),
		Order: order,
	}
	for _, id := range order {
		t, _ := g.Get(id)
		a, err := agg.aggregate(id)
		if err != nil {
			return nil, err
		}
		f, err := ef.earliestFinish(id)
		if err != nil {
			return nil, err
		}
		result.Tasks[id] = &Entry{
			Name:           id,
			Duration:       t.Duration,
			Aggregate:      a,
			EarliestFinish: f,
			Depth:          depth[id],
			IsPrimitive:    t.IsPrimitive(),
		}
	}
	result.Aggregate = result.Tasks[name].Aggregate
	result.EarliestFinish = result.Tasks[name].EarliestFinish
	result.CriticalChain = criticalChain(g, result, name)

	return result, nil
}

// topoOrder performs Kahn's algorithm over the subgraph reachable from root,
// emitting prerequisites before the tasks that need them.
func topoOrder(g Graph, root string) ([]string, map[string]int, error) {
	// Collect the reachable set and its edges (task -> its prerequisites).
	reach := make(map[string]bool)
	depth := make(map[string]int)
	queue := []string{root}
	reach[root] = true
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		t, _ := g.Get(node)
		for _, p := range t.Prerequisites {
			if _, ok := g.Get(p); !ok || reach[p] {
				continue
			}
			reach[p] = true
			queue = append(queue, p)
		}
	}

	// In-degree counts unresolved prerequisites; dependents lists reverse edges.
	inDegree := make(map[string]int, len(reach))
	dependents := make(map[string][]string, len(reach))
	for id := range reach {
		t, _ := g.Get(id)
		seen := make(map[string]bool)
		for _, p := range t.Prerequisites {
			if !reach[p] || seen[p] {
				continue
			}
			seen[p] = true
			inDegree[id]++
			dependents[p] = append(dependents[p], id)
		}
	}

	var ready []string
	for id := range reach {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		var newReady []string
		for _, dep := range dependents[node] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				newReady = append(newReady, dep)
			}
		}
		sort.Strings(newReady)
		ready = append(ready, newReady...)
	}

	if len(order) != len(reach) {
		var stuck []string
		for id := range reach {
			if inDegree[id] > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, nil, errs.Cycle(stuck)
	}

	// Depth along the longest path from the root, walking dependents first.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		t, _ := g.Get(id)
		for _, p := range t.Prerequisites {
			if reach[p] && depth[id]+1 > depth[p] {
				depth[p] = depth[id] + 1
			}
		}
	}

	return order, depth, nil
}

func criticalChain(g Graph, b *Breakdown, root string) []string {
	chain := []string{root}
	cur := root
	for {
		t, _ := g.Get(cur)
		next := ""
		best := -1.0
		for _, p := range t.Prerequisites {
			e, ok := b.Tasks[p]
			if !ok {
				continue
			}
			if e.EarliestFinish > best {
				best = e.EarliestFinish
				next = p
			}
		}
		if next == "" {
			return chain
		}
		chain = append(chain, next)
		cur = next
	}
}
