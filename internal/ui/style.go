package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
)

// PrintBanner renders the colored tms banner to w.
func PrintBanner(w io.Writer) {
	frame := color.New(color.FgCyan)
	brand := color.New(color.Bold, color.FgMagenta)
	tag := color.New(color.Faint)

	fmt.Fprintln(w)
	frame.Fprintln(w, "   +-------------------+")
	brand.Fprintln(w, "   |   T   M   S       |")
	frame.Fprintln(w, "   +-------------------+")
	tag.Fprintln(w, "   task graphs and criteria")
	fmt.Fprintln(w)
}

// KindIcon marks a task as primitive or composite.
func KindIcon(primitive bool) string {
	if primitive {
		return Green("●")
	}
	return Cyan("◆")
}

// CriterionIcon marks a criterion by variant kind.
func CriterionIcon(kind string) string {
	switch kind {
	case "basic":
		return Green("•")
	case "negation":
		return Red("¬")
	case "binary":
		return Cyan("⊕")
	case "primitive":
		return Yellow("◇")
	default:
		return Dim("◌")
	}
}

// MatchIcon returns a colored match marker.
func MatchIcon(ok bool) string {
	if ok {
		return Green("✓")
	}
	return Red("✗")
}

// Hours formats a duration in hours the way the CLI reports it: shortest
// representation, no exponent.
func Hours(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// TaskName returns a bold task name, or a dim placeholder for an empty one.
func TaskName(name string) string {
	if name == "" {
		return Dim("<none>")
	}
	return BoldMagenta(name)
}
