package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tanyabudhrani/Task-Management-System/internal/criteria"
	"github.com/tanyabudhrani/Task-Management-System/internal/duration"
	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
	"github.com/tanyabudhrani/Task-Management-System/internal/task"
	"github.com/tanyabudhrani/Task-Management-System/internal/ui"
)

const separator = "------------------------"

// Reporter renders tasks, durations and criteria for the terminal.
type Reporter struct {
	Tasks    *task.Registry
	Criteria *criteria.Store
}

// New creates a new Reporter.
func New(tasks *task.Registry, store *criteria.Store) *Reporter {
	return &Reporter{Tasks: tasks, Criteria: store}
}

// PrintTask writes one task. An unknown name is a not-found error.
func (r *Reporter) PrintTask(w io.Writer, name string) error {
	t, ok := r.Tasks.Get(name)
	if !ok {
		return errs.NotFound("task", name)
	}
	r.printTask(w, t)
	return nil
}

func (r *Reporter) printTask(w io.Writer, t *task.Task) {
	kind := "composite"
	label := "Subtasks:     "
	if t.IsPrimitive() {
		kind = "primitive"
		label = "Prerequisites:"
	}

	fmt.Fprintf(w, "%s %s %s\n", ui.KindIcon(t.IsPrimitive()), ui.TaskName(t.Name), ui.Dim("("+kind+")"))
	fmt.Fprintf(w, "  Description:   %s\n", t.Description)
	fmt.Fprintf(w, "  Duration:      %s hours\n", ui.Hours(t.Duration))

	names := ui.Dim("none")
	if len(t.Prerequisites) > 0 {
		names = strings.Join(t.Prerequisites, ", ")
	}
	fmt.Fprintf(w, "  %s %s\n", label, names)
}

// PrintAllTasks writes every task in creation order.
func (r *Reporter) PrintAllTasks(w io.Writer) {
	all := r.Tasks.All()
	if len(all) == 0 {
		fmt.Fprintln(w, ui.Dim("No tasks."))
		return
	}
	fmt.Fprintf(w, "%s %s\n", ui.BoldCyan("All tasks"), ui.Dim(fmt.Sprintf("(%d)", len(all))))
	fmt.Fprintln(w, ui.Cyan(separator))
	for _, t := range all {
		r.printTask(w, t)
		fmt.Fprintln(w, ui.Cyan(separator))
	}
}

// ReportDuration writes the aggregate duration of name followed by a
// breakdown of the subgraph it depends on.
func (r *Reporter) ReportDuration(w io.Writer, name string) error {
	b, err := duration.Analyze(r.Tasks, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Duration of task %s: %s hours\n", ui.TaskName(name), ui.Bold(ui.Hours(b.Aggregate)))
	if len(b.Order) <= 1 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-10s %8s %10s %8s\n", "TASK", "STORED", "AGGREGATE", "FINISH")
	// dependents first so the root leads
	for i := len(b.Order) - 1; i >= 0; i-- {
		e := b.Tasks[b.Order[i]]
		indent := strings.Repeat(" ", e.Depth*2)
		fmt.Fprintf(w, "  %s %-*s %8s %10s %8s\n",
			ui.KindIcon(e.IsPrimitive), 8, indent+e.Name,
			ui.Hours(e.Duration), ui.Hours(e.Aggregate), ui.Hours(e.EarliestFinish))
	}
	if len(b.CriticalChain) > 1 {
		fmt.Fprintf(w, "\nCritical:  %s\n", ui.BoldYellow("⚡ "+strings.Join(b.CriticalChain, " → ")))
	}
	return nil
}

// ReportEarliestFinish writes the earliest finish time of name.
func (r *Reporter) ReportEarliestFinish(w io.Writer, name string) error {
	ef, err := duration.EarliestFinish(r.Tasks, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Earliest finish time of task %s: %s hours\n", ui.TaskName(name), ui.Bold(ui.Hours(ef)))
	return nil
}

// PrintAllCriteria writes every criterion in definition order. Composite
// criteria are expanded into a tree of their children.
func (r *Reporter) PrintAllCriteria(w io.Writer) {
	all := r.Criteria.All()
	fmt.Fprintf(w, "%s %s\n", ui.BoldCyan("All criteria"), ui.Dim(fmt.Sprintf("(%d)", len(all))))
	fmt.Fprintln(w, ui.Cyan(separator))
	for _, c := range all {
		r.printCriterion(w, c, 0, nil)
		fmt.Fprintln(w, ui.Cyan(separator))
	}
}

func (r *Reporter) printCriterion(w io.Writer, c criteria.Criterion, depth int, path []string) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %s  %s\n", indent, ui.CriterionIcon(Kind(c)), ui.Bold(c.CriterionName()), ui.Dim(Describe(c)))

	if !criteria.IsComposite(c) {
		return
	}
	path = append(path, c.CriterionName())
	for _, ref := range criteria.Children(c) {
		child, ok := r.Criteria.Get(ref)
		switch {
		case ref == "" || !ok:
			fmt.Fprintf(w, "%s  %s\n", indent, ui.Dim("<null>"))
		case contains(path, ref):
			fmt.Fprintf(w, "%s  %s %s\n", indent, ui.Red("↺"), ref)
		default:
			r.printCriterion(w, child, depth+1, path)
		}
	}
}

// PrintSearch writes the tasks matched by a criterion.
func PrintSearch(w io.Writer, criterion string, matches []*task.Task) {
	fmt.Fprintf(w, "Tasks satisfying criterion %s: %s\n", ui.Bold(criterion), ui.Dim(fmt.Sprintf("%d", len(matches))))
	for _, t := range matches {
		fmt.Fprintf(w, "  %s %s\n", ui.MatchIcon(true), ui.TaskName(t.Name))
	}
}

// PrintCycle writes the result of a cycle check.
func PrintCycle(w io.Writer, cycle []string) {
	if len(cycle) == 0 {
		fmt.Fprintf(w, "%s %s\n", ui.Green("✓"), "No prerequisite cycles.")
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", ui.Red("✗"), ui.BoldRed("Cycle:"), strings.Join(cycle, " → "))
}

// Kind names the variant of c.
func Kind(c criteria.Criterion) string {
	switch c.(type) {
	case *criteria.Basic:
		return "basic"
	case *criteria.Combinator:
		return "binary"
	case *criteria.Negation:
		return "negation"
	case *criteria.Primitive:
		return "primitive"
	}
	return "unknown"
}

// Describe renders c as a one-line expression.
func Describe(c criteria.Criterion) string {
	switch v := c.(type) {
	case *criteria.Basic:
		return fmt.Sprintf("%s %s %s", v.Property, v.Op, v.Value)
	case *criteria.Combinator:
		return fmt.Sprintf("%s %s %s", refName(v.Left), v.Op, refName(v.Right))
	case *criteria.Negation:
		return "!" + refName(v.Child)
	case *criteria.Primitive:
		return "task has no prerequisites"
	}
	return ""
}

func refName(ref string) string {
	if ref == "" {
		return "<null>"
	}
	return ref
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
