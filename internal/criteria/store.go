package criteria

import (
	"strconv"
	"strings"

	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
	"github.com/tanyabudhrani/Task-Management-System/internal/logger"
)

var durationOps = map[string]bool{
	">": true, "<": true, ">=": true, "<=": true, "==": true, "!=": true,
}

// Store owns every criterion under one namespace and keeps definition order.
// Redefining a name replaces the criterion in place.
type Store struct {
	items map[string]Criterion
	order []string
	log   logger.Logger
}

// NewStore returns a store holding only the built-in IsPrimitive criterion.
func NewStore(log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Store{
		items: make(map[string]Criterion),
		log:   log,
	}
	s.put(&Primitive{Name: IsPrimitiveName})
	return s
}

// Get returns the criterion registered under name.
func (s *Store) Get(name string) (Criterion, bool) {
	c, ok := s.items[name]
	return c, ok
}

// Len counts every criterion, the built-in one included.
func (s *Store) Len() int {
	return len(s.items)
}

// All returns criteria in definition order.
func (s *Store) All() []Criterion {
	out := make([]Criterion, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.items[name])
	}
	return out
}

// Basics returns the basic criteria in definition order.
func (s *Store) Basics() []*Basic {
	var out []*Basic
	for _, c := range s.All() {
		if b, ok := c.(*Basic); ok {
			out = append(out, b)
		}
	}
	return out
}

// Composites returns combinators and negations in definition order.
func (s *Store) Composites() []Criterion {
	var out []Criterion
	for _, c := range s.All() {
		if IsComposite(c) {
			out = append(out, c)
		}
	}
	return out
}

// DefineBasic stores a basic criterion if property, op and value fit the
// grammar for that property. Property names are case-insensitive.
func (s *Store) DefineBasic(name, property, op, value string) (*Basic, error) {
	if err := s.checkName(name); err != nil {
		return nil, err
	}
	prop := strings.ToLower(strings.TrimSpace(property))
	if err := ValidateBasic(prop, op, value); err != nil {
		return nil, err
	}

	b := &Basic{Name: name, Property: prop, Op: op, Value: value}
	s.put(b)
	return b, nil
}

// ValidateBasic checks the property/operator/value grammar.
func ValidateBasic(property, op, value string) error {
	switch property {
	case PropName, PropDescription:
		if !strings.Contains(op, OpContains) {
			return errs.Validationf("%s criterion needs operator %q, got %q", property, OpContains, op)
		}
		if !isQuoted(value) {
			return errs.Validationf("%s criterion needs a quoted string, got %s", property, value)
		}
	case PropDuration:
		if !durationOps[op] {
			return errs.Validationf("duration criterion operator %q is not one of > < >= <= == !=", op)
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return errs.Validationf("duration criterion value %q is not a number", value)
		}
	case PropPrerequisites, PropSubtasks:
		if !strings.Contains(op, OpContains) {
			return errs.Validationf("%s criterion needs operator %q, got %q", property, OpContains, op)
		}
		if value == "" {
			return errs.Validationf("%s criterion value is empty", property)
		}
	default:
		return errs.Validationf("unknown criterion property %q", property)
	}
	return nil
}

// DefineNegated stores the negation of baseName. When baseName is not
// registered the negation wraps the null child, which evaluates false, so the
// new criterion matches every task.
func (s *Store) DefineNegated(name, baseName string) (*Negation, error) {
	if err := s.checkName(name); err != nil {
		return nil, err
	}

	n := &Negation{Name: name}
	if _, ok := s.items[baseName]; ok {
		n.Child = baseName
	} else {
		s.log.Warn("base criterion not found, negating placeholder", "criterion", name, "base", baseName)
	}
	s.put(n)
	return n, nil
}

// DefineBinary stores leftName op rightName. Sides that are not registered
// become null children.
func (s *Store) DefineBinary(name, leftName, op, rightName string) (*Combinator, error) {
	if err := s.checkName(name); err != nil {
		return nil, err
	}
	logic, err := ParseLogicOp(op)
	if err != nil {
		return nil, errs.Validationf("%v", err)
	}

	c := &Combinator{Name: name, Op: logic}
	if _, ok := s.items[leftName]; ok {
		c.Left = leftName
	} else {
		s.log.Debug("left criterion not found", "criterion", name, "left", leftName)
	}
	if _, ok := s.items[rightName]; ok {
		c.Right = rightName
	} else {
		s.log.Debug("right criterion not found", "criterion", name, "right", rightName)
	}
	s.put(c)
	return c, nil
}

// Restore inserts criteria verbatim, in the given order. The built-in
// criterion cannot be replaced.
func (s *Store) Restore(cs []Criterion) {
	for _, c := range cs {
		if c == nil || c.CriterionName() == "" || c.CriterionName() == IsPrimitiveName {
			continue
		}
		s.put(c)
	}
}

func (s *Store) checkName(name string) error {
	if name == "" {
		return errs.Validationf("criterion name is empty")
	}
	if name == IsPrimitiveName {
		return errs.Validationf("criterion %q is built in", name)
	}
	return nil
}

func (s *Store) put(c Criterion) {
	name := c.CriterionName()
	if _, exists := s.items[name]; !exists {
		s.order = append(s.order, name)
	}
	s.items[name] = c
}

func isQuoted(v string) bool {
	return len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`)
}

// Unquote strips the surrounding quotes of a text literal.
func Unquote(v string) string {
	if isQuoted(v) {
		return v[1 : len(v)-1]
	}
	return v
}
