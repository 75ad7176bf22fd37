package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mbdkits/mbdflow/internal/workflow"
)

var workflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "Inspect workflow templates",
}

var workflowsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in workflow templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, w := range workflow.Templates() {
			fmt.Fprintf(out, "%-16s %s", w.ID, w.Name)
			if w.EstimatedTimeMinutes > 0 {
				fmt.Fprintf(out, " (~%d min)", w.EstimatedTimeMinutes)
			}
			fmt.Fprintf(out, " — %d stage(s)\n", len(w.Stages))
		}
		return nil
	},
}

var workflowsShowCmd = &cobra.Command{
	Use:   "show <template-id | file>",
	Short: "Show the stages of a workflow template or document",
	Long: `Show the stages of a workflow with their enablement, dependencies, and
timeouts. The argument is a built-in template id, or a path to a custom
workflow document (.json, .yaml) which is structurally validated while
loading.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, ok := workflow.TemplateByID(args[0])
		if !ok {
			loaded, err := workflow.LoadFile(args[0])
			if err != nil {
				return err
			}
			w = loaded
		}
		printWorkflow(cmd.OutOrStdout(), w)
		return nil
	},
}

func printWorkflow(out io.Writer, w *workflow.Workflow) {
	fmt.Fprintf(out, "%s — %s\n", w.ID, w.Name)
	if w.Description != "" {
		fmt.Fprintf(out, "%s\n", w.Description)
	}
	if w.EstimatedTimeMinutes > 0 {
		fmt.Fprintf(out, "estimated time: %d min\n", w.EstimatedTimeMinutes)
	}
	fmt.Fprintln(out, "stages:")
	for _, s := range w.Stages {
		status := "○"
		if s.Enabled {
			status = "✓"
		}
		fmt.Fprintf(out, "  %s %s [%s] timeout %ds", status, s.ID, s.Kind, s.TimeoutSeconds)
		if len(s.DependsOn) > 0 {
			fmt.Fprintf(out, " depends on %v", s.DependsOn)
		}
		fmt.Fprintln(out)
	}
}

func init() {
	workflowsCmd.AddCommand(workflowsListCmd)
	workflowsCmd.AddCommand(workflowsShowCmd)
	rootCmd.AddCommand(workflowsCmd)
}
