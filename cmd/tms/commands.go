package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanyabudhrani/Task-Management-System/internal/criteria"
	"github.com/tanyabudhrani/Task-Management-System/internal/duration"
	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
	"github.com/tanyabudhrani/Task-Management-System/internal/reporter"
	"github.com/tanyabudhrani/Task-Management-System/internal/task"
	"github.com/tanyabudhrani/Task-Management-System/internal/ui"
)

func createPrimitiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "create-primitive NAME DESCRIPTION DURATION [PREREQUISITES]",
		Aliases: []string{"CreatePrimitiveTask"},
		Short:   "Create a primitive task",
		Long: `Create a task with its own duration in hours. PREREQUISITES is a
comma-separated list of existing task names; "," means none. Unknown names are
dropped.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, desc := args[0], args[1]
			dur, err := parseDuration(args[2])
			if err != nil {
				return err
			}
			if err := a.validate.Task(name, desc, dur); err != nil {
				return err
			}
			var prereqs []string
			if len(args) == 4 {
				prereqs = task.SplitNames(args[3])
			}

			t, err := a.tasks.CreatePrimitive(name, desc, dur, prereqs)
			if err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}
			return a.emit(reporter.NewTaskView(t), func(w io.Writer) error {
				fmt.Fprintf(w, "%s Created primitive task %s\n", ui.Green("✓"), ui.TaskName(t.Name))
				return nil
			})
		},
	}
}

func createCompositeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "create-composite NAME DESCRIPTION SUBTASKS",
		Aliases: []string{"CreateCompositeTask"},
		Short:   "Create a composite task over existing subtasks",
		Long: `Create a task whose duration is derived from its subtasks. SUBTASKS is a
comma-separated list of existing task names; unknown names are dropped.
Unlike create-primitive, the name and description are taken as given.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.tasks.CreateComposite(args[0], args[1], task.SplitNames(args[2]))
			if err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}
			return a.emit(reporter.NewTaskView(t), func(w io.Writer) error {
				fmt.Fprintf(w, "%s Created composite task %s %s\n",
					ui.Green("✓"), ui.TaskName(t.Name), ui.Dim(fmt.Sprintf("(%s hours)", ui.Hours(t.Duration))))
				return nil
			})
		},
	}
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"DeleteTask"},
		Short:   "Delete a task and remove it from every prerequisite list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tasks.Delete(args[0]); err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}
			return a.emit(map[string]string{"deleted": args[0]}, func(w io.Writer) error {
				fmt.Fprintf(w, "%s Deleted task %s\n", ui.Green("✓"), ui.TaskName(args[0]))
				return nil
			})
		},
	}
}

func changeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "change NAME PROPERTY VALUE",
		Aliases: []string{"ChangeTask"},
		Short:   "Change one property of a task",
		Long: `Change name, description, duration, prerequisites or subtasks of a task.
List values are comma-separated; "," clears the list.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, property, value := args[0], strings.ToLower(args[1]), args[2]
			if err := a.tasks.Change(name, property, value); err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}

			current := name
			if property == task.PropName {
				current = value
			}
			t, _ := a.tasks.Get(current)
			return a.emit(reporter.NewTaskView(t), func(w io.Writer) error {
				fmt.Fprintf(w, "%s Changed %s of task %s\n", ui.Green("✓"), property, ui.TaskName(current))
				return nil
			})
		},
	}
}

func printCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "print NAME",
		Aliases: []string{"PrintTask"},
		Short:   "Print one task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := a.tasks.Get(args[0])
			if !ok {
				return errs.NotFound("task", args[0])
			}
			return a.emit(reporter.NewTaskView(t), func(w io.Writer) error {
				return a.reporter().PrintTask(w, t.Name)
			})
		},
	}
}

func printAllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "print-all",
		Aliases: []string{"PrintAllTasks"},
		Short:   "Print every task in creation order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emit(reporter.TaskViews(a.tasks.All()), func(w io.Writer) error {
				a.reporter().PrintAllTasks(w)
				return nil
			})
		},
	}
}

func reportDurationCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "report-duration NAME",
		Aliases: []string{"ReportDuration"},
		Short:   "Report the aggregate duration of a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOut {
				b, err := duration.Analyze(a.tasks, args[0])
				if err != nil {
					return err
				}
				return outputJSON(a.out, reporter.NewDurationView(b))
			}
			return a.reporter().ReportDuration(a.out, args[0])
		},
	}
}

func reportEFTCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "report-eft NAME",
		Aliases: []string{"ReportEarliestFinishTime"},
		Short:   "Report the earliest finish time of a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOut {
				ef, err := duration.EarliestFinish(a.tasks, args[0])
				if err != nil {
					return err
				}
				return outputJSON(a.out, map[string]any{"task": args[0], "earliest_finish": ef})
			}
			return a.reporter().ReportEarliestFinish(a.out, args[0])
		},
	}
}

func defineBasicCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "define-basic NAME PROPERTY OPERATOR VALUE",
		Aliases: []string{"DefineBasicCriterion"},
		Short:   "Define a basic criterion",
		Long: `Define a criterion over one task property:

  name, description           contains "text"
  duration                    > < >= <= == != number
  prerequisites, subtasks     contains name[,name...]`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.DefineBasic(args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}
			return a.defined(c)
		},
	}
}

func defineNegatedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "define-negated NAME BASE",
		Aliases: []string{"DefineNegatedCriterion"},
		Short:   "Define the negation of an existing criterion",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.DefineNegated(args[0], args[1])
			if err != nil {
				return err
			}
			return a.defined(c)
		},
	}
}

func defineBinaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "define-binary NAME LEFT OPERATOR RIGHT",
		Aliases: []string{"DefineBinaryCriterion"},
		Short:   "Combine two criteria with && or ||",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.DefineBinary(args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}
			return a.defined(c)
		},
	}
}

// defined saves after a criterion definition and reports it.
func (a *app) defined(c criteria.Criterion) error {
	if err := a.save(); err != nil {
		return err
	}
	return a.emit(reporter.NewCriterionView(c), func(w io.Writer) error {
		fmt.Fprintf(w, "%s Defined %s criterion %s  %s\n",
			ui.Green("✓"), reporter.Kind(c), ui.Bold(c.CriterionName()), ui.Dim(reporter.Describe(c)))
		return nil
	})
}

func printCriteriaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "print-criteria",
		Aliases: []string{"PrintAllCriteria"},
		Short:   "Print every criterion in definition order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emit(reporter.CriterionViews(a.store.All()), func(w io.Writer) error {
				a.reporter().PrintAllCriteria(w)
				return nil
			})
		},
	}
}

func searchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "search CRITERION",
		Aliases: []string{"Search"},
		Short:   "List the tasks satisfying a criterion",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := a.search().Search(args[0])
			if err != nil {
				return err
			}
			return a.emit(reporter.NewSearchView(args[0], matches), func(w io.Writer) error {
				reporter.PrintSearch(w, args[0], matches)
				return nil
			})
		},
	}
}

func storeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "store PATH",
		Aliases: []string{"Store"},
		Short:   "Write all tasks and criteria to a snapshot file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.saveTo(args[0]); err != nil {
				return err
			}
			return a.emit(map[string]string{"stored": args[0]}, func(w io.Writer) error {
				fmt.Fprintf(w, "%s Stored %d tasks and %d criteria to %s\n",
					ui.Green("✓"), a.tasks.Len(), a.persistedCriteria(), args[0])
				return nil
			})
		},
	}
}

func loadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "load PATH",
		Aliases: []string{"Load"},
		Short:   "Replace all tasks and criteria with a snapshot file",
		Args:    cobra.ExactArgs(1),
		Annotations: map[string]string{
			annotationState: stateReplaced,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadFrom(args[0]); err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}
			return a.emit(map[string]string{"loaded": args[0]}, func(w io.Writer) error {
				fmt.Fprintf(w, "%s Loaded %d tasks and %d criteria from %s\n",
					ui.Green("✓"), a.tasks.Len(), a.persistedCriteria(), args[0])
				return nil
			})
		},
	}
}

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the prerequisite graph for cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cycle := a.tasks.DetectCycle()
			err := a.emit(map[string]any{"acyclic": len(cycle) == 0, "cycle": cycle}, func(w io.Writer) error {
				reporter.PrintCycle(w, cycle)
				return nil
			})
			if err != nil {
				return err
			}
			if len(cycle) > 0 {
				return errs.Cycle(cycle)
			}
			return nil
		},
	}
}

func parseDuration(s string) (float64, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errs.Validationf("duration %q is not a number", s)
	}
	return d, nil
}
