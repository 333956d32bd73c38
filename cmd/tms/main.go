package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanyabudhrani/Task-Management-System/internal/errs"
	"github.com/tanyabudhrani/Task-Management-System/internal/ui"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.BoldRed("error:"), err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "tms",
		Short: "Manage a task dependency graph and search it with criteria",
		Long: `tms keeps primitive and composite tasks linked by prerequisites, reports
their aggregate durations and earliest finish times, and filters them with
named criteria that can be negated and combined with && and ||.

State is kept in a JSON snapshot between invocations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintBanner(cmd.ErrOrStderr())
			return cmd.Help()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./tms.yaml or $XDG_CONFIG_HOME/tms/tms.yaml)")
	rootCmd.PersistentFlags().String("state", "", "state file path (default .tms/state.json)")
	rootCmd.PersistentFlags().String("fold", "", "combinator fold mode: corrected or literal")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(createPrimitiveCmd(a))
	rootCmd.AddCommand(createCompositeCmd(a))
	rootCmd.AddCommand(deleteCmd(a))
	rootCmd.AddCommand(changeCmd(a))
	rootCmd.AddCommand(printCmd(a))
	rootCmd.AddCommand(printAllCmd(a))
	rootCmd.AddCommand(reportDurationCmd(a))
	rootCmd.AddCommand(reportEFTCmd(a))
	rootCmd.AddCommand(defineBasicCmd(a))
	rootCmd.AddCommand(defineNegatedCmd(a))
	rootCmd.AddCommand(defineBinaryCmd(a))
	rootCmd.AddCommand(printCriteriaCmd(a))
	rootCmd.AddCommand(searchCmd(a))
	rootCmd.AddCommand(storeCmd(a))
	rootCmd.AddCommand(loadCmd(a))
	rootCmd.AddCommand(checkCmd(a))

	return rootCmd
}

// exitCode maps error kinds to distinct process exit codes.
func exitCode(err error) int {
	switch {
	case errs.IsValidation(err):
		return 2
	case errs.IsNotFound(err):
		return 3
	case errs.IsCycle(err):
		return 4
	}
	return 1
}

func outputJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}
