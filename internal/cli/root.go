// Package cli provides the Cobra-based command tree for mbdflow: workflow
// validation (validate), workflow template inspection (workflows), project
// configuration management (projects), and toolchain detection (detect).
package cli

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "mbdflow",
	Short: "embedded build pipeline configuration and validation",
	Long: `mbdflow assembles multi-stage embedded build pipelines (code generation,
file staging, compilation, post-link data processing, packaging) from a
named project configuration and a workflow definition, and checks the
combination is executable before any external tool is invoked.`,
	Example: `  # Validate a saved project against the full build workflow
  mbdflow validate my_ecu --workflow full_build

  # Validate a project config file against a custom workflow document
  mbdflow validate --config ./my_ecu.toml --workflow-file ./nightly.yaml

  # Inspect the built-in workflow templates
  mbdflow workflows list
  mbdflow workflows show full_build

  # Manage saved project configurations
  mbdflow projects list
  mbdflow projects set my_ecu toolchain_path "C:\Program Files\IAR Systems\EW 9.30"

  # Detect installed toolchains
  mbdflow detect`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
