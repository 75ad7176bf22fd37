package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mbdkits/mbdflow/internal/config"
	"github.com/mbdkits/mbdflow/internal/validation"
	"github.com/mbdkits/mbdflow/internal/workflow"
)

var validateCmd = &cobra.Command{
	Use:   "validate [project]",
	Short: "Check that a workflow is executable for a project",
	Long: `Validate a workflow against a project configuration.

Runs structural validation of the stage dependency graph (unknown
references, cycles), then enablement consistency, required parameters,
and filesystem path checks for every enabled stage. All findings are
reported in one pass; execution must be refused while any error-severity
finding remains.

The project is a saved configuration name, or a TOML file given with
--config. The workflow is a built-in template id (--workflow) or a JSON
or YAML workflow document (--workflow-file).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		templateID, _ := cmd.Flags().GetString("workflow")
		workflowFile, _ := cmd.Flags().GetString("workflow-file")

		cfg, err := resolveProject(args, configPath)
		if err != nil {
			return err
		}
		w, err := resolveWorkflow(templateID, workflowFile)
		if err != nil {
			return err
		}

		result := validation.New().Validate(w, cfg)
		printResult(cmd.OutOrStdout(), w, result)
		if !result.IsValid() {
			return &validationFailedError{
				msg: fmt.Sprintf("workflow %q is not executable: %d error(s)", w.ID, result.ErrorCount()),
			}
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().String("config", "", "Path to a project configuration TOML file")
	validateCmd.Flags().String("workflow", "full_build", "Built-in workflow template id")
	validateCmd.Flags().String("workflow-file", "", "Path to a custom workflow document (.json, .yaml)")
	rootCmd.AddCommand(validateCmd)
}

// resolveProject loads the project configuration from a saved project name
// or an explicit file. Loading is lenient: missing parameters surface as
// validation findings, not load errors.
func resolveProject(args []string, configPath string) (*config.ProjectConfig, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a project name or --config file is required")
	}
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}
	if !store.Exists(args[0]) {
		return nil, fmt.Errorf("no saved project named %q (list them with: mbdflow projects list)", args[0])
	}
	return config.Load(store.File(args[0]))
}

func resolveWorkflow(templateID, workflowFile string) (*workflow.Workflow, error) {
	if workflowFile != "" {
		return workflow.LoadFile(workflowFile)
	}
	w, ok := workflow.TemplateByID(templateID)
	if !ok {
		return nil, fmt.Errorf("unknown workflow template %q (list them with: mbdflow workflows list)", templateID)
	}
	return w, nil
}

func printResult(out io.Writer, w *workflow.Workflow, result *validation.Result) {
	for _, f := range result.Findings() {
		marker := "✗"
		switch f.Severity {
		case validation.SeverityWarning:
			marker = "!"
		case validation.SeverityInfo:
			marker = "i"
		}
		fmt.Fprintf(out, "%s [%s] %s: %s\n", marker, f.Severity, f.Field, f.Message)
		for _, s := range f.Suggestions {
			fmt.Fprintf(out, "    - %s\n", s)
		}
	}

	if result.IsValid() {
		if result.WarningCount() > 0 {
			fmt.Fprintf(out, "✓ workflow %q is executable (%d warning(s))\n", w.ID, result.WarningCount())
		} else {
			fmt.Fprintf(out, "✓ workflow %q is executable\n", w.ID)
		}
		return
	}
	fmt.Fprintf(out, "✗ workflow %q is not executable: %d error(s), %d warning(s)\n",
		w.ID, result.ErrorCount(), result.WarningCount())
}
