// Package search filters the task registry through a named criterion.
package search

import (
	"fmt"

	"github.com/tanyabudhrani/Task-Management-System/internal/criteria"
	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
	"github.com/tanyabudhrani/Task-Management-System/internal/logger"
	"github.com/tanyabudhrani/Task-Management-System/internal/task"
)

// Tasks is the registry view search needs.
type Tasks interface {
	All() []*task.Task
}

// Engine composes a task source, a criterion resolver and an evaluator.
type Engine struct {
	tasks    Tasks
	criteria criteria.Resolver
	eval     *criteria.Evaluator
	log      logger.Logger
}

// New builds an Engine evaluating with the given fold mode.
func New(tasks Tasks, store criteria.Resolver, mode criteria.FoldMode, log logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{
		tasks:    tasks,
		criteria: store,
		eval:     criteria.NewEvaluator(store, mode),
		log:      log,
	}
}

// Search returns, in creation order, the tasks satisfying the criterion
// registered under name. An unknown name yields an empty result and a
// not-found error.
func (e *Engine) Search(name string) ([]*task.Task, error) {
	c, ok := e.criteria.Get(name)
	if !ok {
		e.log.Warn("criterion not found", "criterion", name)
		return []*task.Task{}, errs.NotFound("criterion", name)
	}

	matches := []*task.Task{}
	for _, t := range e.tasks.All() {
		ok, err := e.eval.Evaluate(t, c)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s on task %s: %w", name, t.Name, err)
		}
		if ok {
			matches = append(matches, t)
		}
	}
	e.log.Debug("search finished", "criterion", name, "matches", len(matches))
	return matches, nil
}
