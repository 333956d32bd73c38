package task

import (
	"testing"

	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
	"github.com/tanyabudhrani/Task-Management-System/internal/logger"
)

// leafMax is a one-level stand-in for the duration package's Aggregate.
func leafMax(g Lookup, name string) (float64, error) {
	t, _ := g.Get(name)
	if t.IsPrimitive() {
		return t.Duration, nil
	}
	best := 0.0
	for _, p := range t.Prerequisites {
		if pt, ok := g.Get(p); ok && pt.Duration > best {
			best = pt.Duration
		}
	}
	return best, nil
}

func newTestRegistry() *Registry {
	return NewRegistry(leafMax, logger.NewNop())
}

func TestCreatePrimitive(t *testing.T) {
	r := newTestRegistry()
	tk, err := r.CreatePrimitive("Task1", "boil-water", 0.3, []string{"bowl"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tk.Name != "Task1" || tk.Description != "boil-water" || tk.Duration != 0.3 {
		t.Errorf("unexpected task %+v", tk)
	}
	// "bowl" is not registered and is dropped
	if len(tk.Prerequisites) != 0 {
		t.Errorf("expected no prerequisites, got %v", tk.Prerequisites)
	}
	if !r.IsPrimitive("Task1") {
		t.Error("expected Task1 to be primitive")
	}
}

func TestCreatePrimitive_ResolvesKnownPrerequisites(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("a", "", 1, nil)
	r.CreatePrimitive("b", "", 1, nil)

	tk, err := r.CreatePrimitive("c", "", 2, []string{"b", "ghost", "a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tk.Prerequisites) != 2 || tk.Prerequisites[0] != "b" || tk.Prerequisites[1] != "a" {
		t.Errorf("expected [b a], got %v", tk.Prerequisites)
	}
	if tk.IsPrimitive() {
		t.Error("task with prerequisites should not be primitive")
	}
}

func TestCreatePrimitive_Rejects(t *testing.T) {
	r := newTestRegistry()
	if _, err := r.CreatePrimitive("", "x", 1, nil); !errs.IsValidation(err) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
	if _, err := r.CreatePrimitive("neg", "x", -1, nil); !errs.IsValidation(err) {
		t.Errorf("expected validation error for negative duration, got %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("expected nothing stored, got %d tasks", r.Len())
	}
}

func TestCreateComposite(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("a", "", 3, nil)
	r.CreatePrimitive("b", "", 0.5, nil)

	tk, err := r.CreateComposite("comp", "make-coffee", []string{"a", "missing", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tk.Prerequisites) != 2 {
		t.Errorf("expected 2 subtasks, got %v", tk.Prerequisites)
	}
	if tk.Duration != 3 {
		t.Errorf("expected duration 3, got %v", tk.Duration)
	}
}

func TestCreateComposite_FloorOfOne(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("quick", "", 0.2, nil)

	none, err := r.CreateComposite("empty", "make-tea", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none.Duration != 1 || len(none.Prerequisites) != 0 {
		t.Errorf("expected duration 1 and no subtasks, got %+v", none)
	}

	short, err := r.CreateComposite("short", "", []string{"quick"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if short.Duration != 1 {
		t.Errorf("expected floor duration 1, got %v", short.Duration)
	}
}

func TestCreate_OverwriteKeepsCreationSlot(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("a", "first", 1, nil)
	r.CreatePrimitive("b", "", 1, nil)
	r.CreatePrimitive("a", "second", 2, nil)

	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected [a b], got %v", names)
	}
	tk, _ := r.Get("a")
	if tk.Description != "second" {
		t.Errorf("expected overwritten task, got %+v", tk)
	}
}

func TestCreate_RedefinitionDropsSelfReference(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("a", "", 2, nil)
	if _, err := r.CreateComposite("X", "", []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	x, err := r.CreateComposite("X", "", []string{"X", "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(x.Prerequisites) != 1 || x.Prerequisites[0] != "a" {
		t.Errorf("expected [a], got %v", x.Prerequisites)
	}

	p, err := r.CreatePrimitive("a", "", 1, []string{"a", "X"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Prerequisites) != 1 || p.Prerequisites[0] != "X" {
		t.Errorf("expected [X], got %v", p.Prerequisites)
	}
	if cycle := r.DetectCycle(); cycle == nil {
		t.Error("a and X now depend on each other, expected a cycle")
	}
}

func TestDelete(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("a", "", 1, nil)
	r.CreatePrimitive("b", "", 1, []string{"a"})
	r.CreateComposite("c", "", []string{"a", "b"})

	if err := r.Delete("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := r.Get("a"); ok {
		t.Error("expected a to be removed")
	}
	for _, tk := range r.All() {
		if tk.HasPrerequisite("a") {
			t.Errorf("task %s still references a: %v", tk.Name, tk.Prerequisites)
		}
	}
	if names := r.Names(); len(names) != 2 || names[0] != "b" || names[1] != "c" {
		t.Errorf("expected [b c], got %v", names)
	}

	if err := r.Delete("NonExistentTask"); !errs.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestChange(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("Task1", "boil-water", 0.3, nil)
	r.CreatePrimitive("Task2", "", 1, nil)

	if err := r.Change("Task1", "duration", "0.5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Change("Task1", "Description", "pour-water"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tk, _ := r.Get("Task1")
	if tk.Duration != 0.5 || tk.Description != "pour-water" {
		t.Errorf("unexpected task %+v", tk)
	}

	if err := r.Change("Task1", "prerequisites", " Task2 , ghost"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tk.Prerequisites) != 1 || tk.Prerequisites[0] != "Task2" {
		t.Errorf("expected [Task2], got %v", tk.Prerequisites)
	}
	if err := r.Change("Task1", "subtasks", ","); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tk.IsPrimitive() {
		t.Errorf("expected empty prerequisites, got %v", tk.Prerequisites)
	}
}

func TestChange_Rejects(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("Task1", "x", 0.3, nil)

	if err := r.Change("NonExistentTask", "duration", "0.7"); !errs.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := r.Change("Task1", "duration", "soon"); !errs.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := r.Change("Task1", "duration", "-2"); !errs.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := r.Change("Task1", "colour", "red"); !errs.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	tk, _ := r.Get("Task1")
	if tk.Duration != 0.3 {
		t.Errorf("expected duration unchanged, got %v", tk.Duration)
	}
}

func TestChange_RenameRewritesReferences(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("a", "", 1, nil)
	r.CreatePrimitive("b", "", 1, []string{"a"})
	r.CreatePrimitive("c", "", 1, nil)

	if err := r.Change("a", "name", "alpha"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := r.Get("a"); ok {
		t.Error("old key should be gone")
	}
	if tk, ok := r.Get("alpha"); !ok || tk.Name != "alpha" {
		t.Fatalf("expected task under new key, got %+v", tk)
	}
	b, _ := r.Get("b")
	if !b.HasPrerequisite("alpha") || b.HasPrerequisite("a") {
		t.Errorf("expected reference rewritten, got %v", b.Prerequisites)
	}
	if names := r.Names(); names[0] != "alpha" {
		t.Errorf("expected creation slot kept, got %v", names)
	}

	if err := r.Change("alpha", "name", "c"); !errs.IsValidation(err) {
		t.Errorf("expected validation error for taken name, got %v", err)
	}
	if err := r.Change("alpha", "name", ""); !errs.IsValidation(err) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
}

func TestDetectCycle(t *testing.T) {
	r := newTestRegistry()
	r.CreatePrimitive("a", "", 1, nil)
	r.CreatePrimitive("b", "", 1, []string{"a"})
	r.CreatePrimitive("c", "", 1, []string{"b"})

	if cycle := r.DetectCycle(); cycle != nil {
		t.Fatalf("expected no cycle, got %v", cycle)
	}

	r.Change("a", "prerequisites", "c")
	cycle := r.DetectCycle()
	if cycle == nil {
		t.Fatal("expected cycle, got nil")
	}
	if len(cycle) < 3 {
		t.Errorf("expected cycle of length >= 3, got %v", cycle)
	}
	t.Logf("detected cycle: %v", cycle)
}

func TestRestore_Verbatim(t *testing.T) {
	r := newTestRegistry()
	r.Restore([]*Task{
		{Name: "z", Duration: 2, Prerequisites: []string{"ghost"}},
		{Name: "y", Duration: 1},
		nil,
	})

	if names := r.Names(); len(names) != 2 || names[0] != "z" || names[1] != "y" {
		t.Errorf("expected [z y], got %v", names)
	}
	z, _ := r.Get("z")
	if len(z.Prerequisites) != 1 {
		t.Errorf("restore should not filter prerequisites, got %v", z.Prerequisites)
	}
}

func TestSplitNames(t *testing.T) {
	if got := SplitNames(","); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
	got := SplitNames(" a,b ,, c")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("expected [a b c], got %v", got)
	}
}
