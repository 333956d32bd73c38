// Package validate enforces the textual rules on primitive task input
// before it reaches the registry: names are at most seven letters or digits
// and do not start with a digit, descriptions hold letters, digits and
// hyphens, and durations are not negative.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
)

// MaxNameLength is the longest accepted task name.
const MaxNameLength = 7

var descriptionPattern = regexp.MustCompile(`^[A-Za-z0-9-]*$`)

type taskInput struct {
	Name        string  `validate:"required,max=7,alphanum,leadletter"`
	Description string  `validate:"taskdesc"`
	Duration    float64 `validate:"gte=0"`
}

// Validator checks CLI input. The zero value is not usable; call New.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("leadletter", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && !(s[0] >= '0' && s[0] <= '9')
	})
	_ = v.RegisterValidation("taskdesc", func(fl validator.FieldLevel) bool {
		return descriptionPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Task validates the fields of a task being created.
func (v *Validator) Task(name, description string, duration float64) error {
	return v.check(taskInput{Name: name, Description: description, Duration: duration})
}

func (v *Validator) check(in any) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errs.Validationf("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "alphanum":
		return field + " must contain only letters and digits"
	case "leadletter":
		return field + " must not start with a digit"
	case "taskdesc":
		return field + " must contain only letters, digits and hyphens"
	case "gte":
		return field + " must not be negative"
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
