// Package errs defines the error kinds shared by the task registry, the
// duration aggregator and the criteria engine.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrCycle      = errors.New("cycle detected")
)

// Error pairs one of the kinds above with a human-readable detail.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Validationf reports refused input.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing key, e.g. NotFound("task", "Task1").
func NotFound(what, name string) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf("%s %q", what, name)}
}

// Cycle reports a cycle along path.
func Cycle(path []string) error {
	msg := "cycle"
	if len(path) > 0 {
		msg = "cycle: " + strings.Join(path, " -> ")
	}
	return &Error{Kind: ErrCycle, Msg: msg}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsCycle(err error) bool      { return errors.Is(err, ErrCycle) }
