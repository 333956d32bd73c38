// Package state persists the task registry and the criteria store as one
// JSON document.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"

	"github.com/tanyabudhrani/Task-Management-System/internal/criteria"
	"github.com/tanyabudhrani/Task-Management-System/internal/task"
)

const (
	stateDir  = ".tms"
	stateFile = "state.json"

	// FormatVersion is written to every snapshot and checked on load.
	FormatVersion = 1
)

const (
	KindBinary   = "binary"
	KindNegation = "negation"
)

// DefaultPath is where the CLI keeps its state unless configured otherwise.
func DefaultPath() string {
	return filepath.Join(stateDir, stateFile)
}

// Snapshot is the persistent form of all registries. Tasks and criteria keep
// registry order; every reference is by name.
type Snapshot struct {
	Version           int                `json:"version"`
	SavedAt           time.Time          `json:"saved_at"`
	Tasks             []*task.Task       `json:"tasks"`
	BasicCriteria     []*criteria.Basic  `json:"basic_criteria"`
	CompositeCriteria []*CompositeRecord `json:"composite_criteria"`
	CriteriaOrder     []string           `json:"criteria_order"`
}

// CompositeRecord is the flat form of a Combinator or a Negation.
type CompositeRecord struct {
	Name  string           `json:"name"`
	Kind  string           `json:"kind"`
	Op    criteria.LogicOp `json:"op,omitempty"`
	Left  string           `json:"left,omitempty"`
	Right string           `json:"right,omitempty"`
	Child string           `json:"child,omitempty"`
}

// Capture copies the registries into a Snapshot.
func Capture(tasks *task.Registry, store *criteria.Store) *Snapshot {
	s := &Snapshot{
		Version:           FormatVersion,
		Tasks:             []*task.Task{},
		BasicCriteria:     []*criteria.Basic{},
		CompositeCriteria: []*CompositeRecord{},
		CriteriaOrder:     []string{},
	}

	for _, t := range tasks.All() {
		cp := *t
		cp.Prerequisites = append([]string{}, t.Prerequisites...)
		s.Tasks = append(s.Tasks, &cp)
	}

	for _, c := range store.All() {
		switch v := c.(type) {
		case *criteria.Basic:
			cp := *v
			s.BasicCriteria = append(s.BasicCriteria, &cp)
		case *criteria.Combinator:
			s.CompositeCriteria = append(s.CompositeCriteria, &CompositeRecord{
				Name: v.Name, Kind: KindBinary, Op: v.Op, Left: v.Left, Right: v.Right,
			})
		case *criteria.Negation:
			s.CompositeCriteria = append(s.CompositeCriteria, &CompositeRecord{
				Name: v.Name, Kind: KindNegation, Child: v.Child,
			})
		default:
			// built-in criteria are recreated by criteria.NewStore
			continue
		}
		s.CriteriaOrder = append(s.CriteriaOrder, c.CriterionName())
	}
	return s
}

// Apply restores the snapshot into empty registries. Null entries are
// skipped.
func (s *Snapshot) Apply(tasks *task.Registry, store *criteria.Store) error {
	byName := make(map[string]criteria.Criterion)
	for _, b := range s.BasicCriteria {
		if b == nil {
			continue
		}
		cp := *b
		byName[b.Name] = &cp
	}
	for _, r := range s.CompositeCriteria {
		if r == nil {
			continue
		}
		c, err := r.decode()
		if err != nil {
			return err
		}
		byName[r.Name] = c
	}

	ordered := make([]criteria.Criterion, 0, len(byName))
	placed := make(map[string]bool, len(byName))
	for _, name := range s.CriteriaOrder {
		if c, ok := byName[name]; ok && !placed[name] {
			ordered = append(ordered, c)
			placed[name] = true
		}
	}
	// Criteria missing from the order list go last, basics first.
	for _, b := range s.BasicCriteria {
		if b != nil && !placed[b.Name] {
			ordered = append(ordered, byName[b.Name])
			placed[b.Name] = true
		}
	}
	for _, r := range s.CompositeCriteria {
		if r != nil && !placed[r.Name] {
			ordered = append(ordered, byName[r.Name])
			placed[r.Name] = true
		}
	}

	restored := make([]*task.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t == nil {
			continue
		}
		cp := *t
		cp.Prerequisites = append([]string{}, t.Prerequisites...)
		restored = append(restored, &cp)
	}

	tasks.Restore(restored)
	store.Restore(ordered)
	return nil
}

func (r *CompositeRecord) decode() (criteria.Criterion, error) {
	switch r.Kind {
	case KindBinary:
		op, err := criteria.ParseLogicOp(string(r.Op))
		if err != nil {
			return nil, fmt.Errorf("criterion %s: %w", r.Name, err)
		}
		return &criteria.Combinator{Name: r.Name, Op: op, Left: r.Left, Right: r.Right}, nil
	case KindNegation:
		return &criteria.Negation{Name: r.Name, Child: r.Child}, nil
	}
	return nil, fmt.Errorf("criterion %s: unknown kind %q", r.Name, r.Kind)
}

// Save writes the snapshot to path, creating parent directories.
func Save(path string, s *Snapshot) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	s.Version = FormatVersion
	s.SavedAt = time.Now().UTC()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a snapshot from path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse state %s: not valid JSON", path)
	}
	version := gjson.GetBytes(data, "version")
	if !version.Exists() {
		return nil, fmt.Errorf("parse state %s: missing version", path)
	}
	if v := version.Int(); v != FormatVersion {
		return nil, fmt.Errorf("parse state %s: unsupported version %d (want %d)", path, v, FormatVersion)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &s, nil
}

// Exists checks if a state file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
