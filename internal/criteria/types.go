// Package criteria holds the criterion model, the name-keyed store that owns
// criteria, and the recursive evaluator used by search.
//
// A Criterion is one of four variants:
//
//	*Basic       property/operator/value test against one task
//	*Combinator  && or || over two child criteria
//	*Negation    ! over one child criterion
//	*Primitive   the built-in IsPrimitive test
//
// Combinator and Negation children are references by name to any criterion
// in the store. An empty reference is the null child and evaluates false.
package criteria

import "fmt"

// Criterion is implemented only by the variants in this package.
type Criterion interface {
	CriterionName() string
	isCriterion()
}

// Basic criterion properties.
const (
	PropName          = "name"
	PropDescription   = "description"
	PropDuration      = "duration"
	PropPrerequisites = "prerequisites"
	PropSubtasks      = "subtasks"
)

// OpContains is the operator word for text and set properties.
const OpContains = "contains"

// IsPrimitiveName is the name of the built-in criterion.
const IsPrimitiveName = "IsPrimitive"

// LogicOp is the operator of a Combinator.
type LogicOp string

const (
	And LogicOp = "&&"
	Or  LogicOp = "||"
)

// ParseLogicOp accepts "&&" and "||".
func ParseLogicOp(s string) (LogicOp, error) {
	switch LogicOp(s) {
	case And, Or:
		return LogicOp(s), nil
	}
	return "", fmt.Errorf("unknown logic operator %q", s)
}

// Basic tests one property of a task against a literal value.
type Basic struct {
	Name     string `json:"name"`
	Property string `json:"property"`
	Op       string `json:"op"`
	Value    string `json:"value"`
}

// Combinator folds Op over the Left and Right child references.
type Combinator struct {
	Name  string  `json:"name"`
	Op    LogicOp `json:"op"`
	Left  string  `json:"left,omitempty"`
	Right string  `json:"right,omitempty"`
}

// Negation inverts its Child reference.
type Negation struct {
	Name  string `json:"name"`
	Child string `json:"child,omitempty"`
}

// Primitive holds for tasks without prerequisites.
type Primitive struct {
	Name string `json:"name"`
}

func (c *Basic) CriterionName() string      { return c.Name }
func (c *Combinator) CriterionName() string { return c.Name }
func (c *Negation) CriterionName() string   { return c.Name }
func (c *Primitive) CriterionName() string  { return c.Name }

func (*Basic) isCriterion()      {}
func (*Combinator) isCriterion() {}
func (*Negation) isCriterion()   {}
func (*Primitive) isCriterion()  {}

// IsComposite reports whether c is a Combinator or a Negation.
func IsComposite(c Criterion) bool {
	switch c.(type) {
	case *Combinator, *Negation:
		return true
	}
	return false
}

// Children returns the child references of a composite criterion, including
// null ones, in evaluation order.
func Children(c Criterion) []string {
	switch v := c.(type) {
	case *Combinator:
		return []string{v.Left, v.Right}
	case *Negation:
		return []string{v.Child}
	}
	return nil
}
