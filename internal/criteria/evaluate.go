package criteria

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
	"github.com/tanyabudhrani/Task-Management-System/internal/task"
)

// FoldMode selects how a Combinator folds its children.
type FoldMode int

const (
	// FoldCorrected starts && at true and || at false.
	FoldCorrected FoldMode = iota
	// FoldLiteral starts both folds at false, so && never holds. It exists to
	// reproduce results recorded by older tooling.
	FoldLiteral
)

func (m FoldMode) String() string {
	switch m {
	case FoldCorrected:
		return "corrected"
	case FoldLiteral:
		return "literal"
	}
	return fmt.Sprintf("FoldMode(%d)", int(m))
}

// ParseFoldMode accepts "corrected" and "literal".
func ParseFoldMode(s string) (FoldMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "corrected":
		return FoldCorrected, nil
	case "literal":
		return FoldLiteral, nil
	}
	return 0, errs.Validationf("unknown fold mode %q (use corrected or literal)", s)
}

// Resolver looks criteria up by name. *Store implements it.
type Resolver interface {
	Get(name string) (Criterion, bool)
}

// Evaluator decides whether a task satisfies a criterion.
type Evaluator struct {
	criteria Resolver
	mode     FoldMode
}

func NewEvaluator(criteria Resolver, mode FoldMode) *Evaluator {
	return &Evaluator{criteria: criteria, mode: mode}
}

// Evaluate reports whether t satisfies c. Child references are resolved by
// name at evaluation time; a criterion that reaches itself again returns a
// cycle error.
func (e *Evaluator) Evaluate(t *task.Task, c Criterion) (bool, error) {
	return e.eval(t, c, nil)
}

func (e *Evaluator) eval(t *task.Task, c Criterion, path []string) (bool, error) {
	if c == nil {
		return false, nil
	}
	name := c.CriterionName()
	for i, p := range path {
		if p == name {
			return false, errs.Cycle(append(append([]string{}, path[i:]...), name))
		}
	}

	switch v := c.(type) {
	case *Basic:
		return EvaluateBasic(t, v)
	case *Primitive:
		return t.IsPrimitive(), nil
	case *Negation:
		sub, err := e.child(t, v.Child, append(path, name))
		if err != nil {
			return false, err
		}
		return !sub, nil
	case *Combinator:
		return e.fold(t, v, append(path, name))
	}
	return false, fmt.Errorf("unsupported criterion type %T", c)
}

// child evaluates a reference; the null child and dangling names are false.
func (e *Evaluator) child(t *task.Task, ref string, path []string) (bool, error) {
	if ref == "" {
		return false, nil
	}
	c, ok := e.criteria.Get(ref)
	if !ok {
		return false, nil
	}
	return e.eval(t, c, path)
}

func (e *Evaluator) fold(t *task.Task, c *Combinator, path []string) (bool, error) {
	result := false
	if c.Op == And && e.mode == FoldCorrected {
		result = true
	}

	for _, ref := range []string{c.Left, c.Right} {
		sub, err := e.child(t, ref, path)
		if err != nil {
			return false, err
		}
		switch c.Op {
		case And:
			result = result && sub
		case Or:
			result = result || sub
		default:
			return false, errs.Validationf("criterion %q has unknown operator %q", c.Name, c.Op)
		}
	}
	return result, nil
}

// EvaluateBasic applies a basic criterion to t: substring containment for
// name and description, numeric comparison for duration, and membership for
// prerequisites/subtasks (every comma-separated name must be present).
func EvaluateBasic(t *task.Task, b *Basic) (bool, error) {
	switch b.Property {
	case PropName:
		return strings.Contains(t.Name, Unquote(b.Value)), nil
	case PropDescription:
		return strings.Contains(t.Description, Unquote(b.Value)), nil
	case PropDuration:
		want, err := strconv.ParseFloat(b.Value, 64)
		if err != nil {
			return false, errs.Validationf("criterion %q: duration value %q is not a number", b.Name, b.Value)
		}
		return compare(t.Duration, b.Op, want)
	case PropPrerequisites, PropSubtasks:
		names := task.SplitNames(b.Value)
		if len(names) == 0 {
			return false, nil
		}
		for _, n := range names {
			if !t.HasPrerequisite(n) {
				return false, nil
			}
		}
		return true, nil
	}
	return false, errs.Validationf("criterion %q has unknown property %q", b.Name, b.Property)
}

func compare(have float64, op string, want float64) (bool, error) {
	switch op {
	case ">":
		return have > want, nil
	case "<":
		return have < want, nil
	case ">=":
		return have >= want, nil
	case "<=":
		return have <= want, nil
	case "==":
		return have == want, nil
	case "!=":
		return have != want, nil
	}
	return false, errs.Validationf("unknown comparison operator %q", op)
}
