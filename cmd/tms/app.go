package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tanyabudhrani/Task-Management-System/internal/config"
	"github.com/tanyabudhrani/Task-Management-System/internal/criteria"
	"github.com/tanyabudhrani/Task-Management-System/internal/duration"
	"github.com/tanyabudhrani/Task-Management-System/internal/logger"
	"github.com/tanyabudhrani/Task-Management-System/internal/reporter"
	"github.com/tanyabudhrani/Task-Management-System/internal/search"
	"github.com/tanyabudhrani/Task-Management-System/internal/state"
	"github.com/tanyabudhrani/Task-Management-System/internal/task"
	"github.com/tanyabudhrani/Task-Management-System/internal/validate"
)

// app carries everything one command invocation needs.
type app struct {
	out     io.Writer
	errOut  io.Writer
	cfgFile string
	jsonOut bool

	cfg      *config.Config
	log      logger.Logger
	tasks    *task.Registry
	store    *criteria.Store
	validate *validate.Validator
}

// Commands annotated with annotationState: stateReplaced overwrite the whole
// state, so the current state file is not read and may be broken.
const (
	annotationState = "tms/state"
	stateReplaced   = "replaced"
)

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"state":     "state_path",
	"fold":      "fold",
	"log-level": "log.level",
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Root()); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.log = logger.NewLogger(cfg.LoggerConfig(a.errOut))
	a.validate = validate.New()
	a.log.Debug("config loaded", "state", cfg.StatePath, "fold", cfg.Fold, "file", v.ConfigFileUsed())

	if cmd.Annotations[annotationState] == stateReplaced {
		a.tasks = duration.NewRegistry(a.log)
		a.store = criteria.NewStore(a.log)
		return nil
	}
	return a.loadState()
}

// bindFlags only binds flags the user set, so defaults from the config
// file and environment are not shadowed by empty flag values.
func bindFlags(v *viper.Viper, root *cobra.Command) error {
	for flag, key := range flagKeys {
		f := root.PersistentFlags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func (a *app) loadState() error {
	a.tasks = duration.NewRegistry(a.log)
	a.store = criteria.NewStore(a.log)
	if !state.Exists(a.cfg.StatePath) {
		a.log.Debug("no state file, starting empty", "path", a.cfg.StatePath)
		return nil
	}
	return a.loadFrom(a.cfg.StatePath)
}

// loadFrom replaces the registries with the snapshot at path.
func (a *app) loadFrom(path string) error {
	snap, err := state.Load(path)
	if err != nil {
		return err
	}
	tasks := duration.NewRegistry(a.log)
	store := criteria.NewStore(a.log)
	if err := snap.Apply(tasks, store); err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	a.tasks, a.store = tasks, store
	a.log.Debug("state loaded", "path", path, "tasks", tasks.Len(), "criteria", store.Len())
	return nil
}

func (a *app) save() error {
	return a.saveTo(a.cfg.StatePath)
}

func (a *app) saveTo(path string) error {
	if err := state.Save(path, state.Capture(a.tasks, a.store)); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// persistedCriteria counts the criteria a snapshot holds; the built-in one is
// not among them.
func (a *app) persistedCriteria() int {
	return len(a.store.Basics()) + len(a.store.Composites())
}

func (a *app) reporter() *reporter.Reporter {
	return reporter.New(a.tasks, a.store)
}

func (a *app) search() *search.Engine {
	return search.New(a.tasks, a.store, a.cfg.FoldMode(), a.log)
}

// emit writes v as JSON when --json is set, otherwise runs text.
func (a *app) emit(v any, text func(w io.Writer) error) error {
	if a.jsonOut {
		return outputJSON(a.out, v)
	}
	return text(a.out)
}
