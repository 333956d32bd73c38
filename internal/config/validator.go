package config

import (
	"fmt"
	"strings"

	"github.com/tanyabudhrani/Task-Management-System/internal/criteria"
	"github.com/tanyabudhrani/Task-Management-System/internal/logger"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "warning", "error"}
}

// ValidFoldModes returns the list of valid fold modes
func ValidFoldModes() []string {
	return []string{criteria.FoldCorrected.String(), criteria.FoldLiteral.String()}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.StatePath) == "" {
		errors = append(errors, ValidationError{
			Field:   "state_path",
			Value:   c.StatePath,
			Message: "must not be empty",
		})
	}

	if _, err := criteria.ParseFoldMode(c.Fold); err != nil {
		errors = append(errors, ValidationError{
			Field:   "fold",
			Value:   c.Fold,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidFoldModes(), ", ")),
		})
	}

	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		errors = append(errors, ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
