package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbdkits/mbdflow/internal/config"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage saved project configurations",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved project configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewStore()
		if err != nil {
			return err
		}
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no saved projects")
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a saved project configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewStore()
		if err != nil {
			return err
		}
		cfg, err := store.Load(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "name:                %s\n", cfg.Name)
		if cfg.Description != "" {
			fmt.Fprintf(out, "description:         %s\n", cfg.Description)
		}
		fmt.Fprintf(out, "source_path:         %s\n", cfg.SourcePath)
		fmt.Fprintf(out, "generated_code_path: %s\n", cfg.GeneratedCodePath)
		fmt.Fprintf(out, "toolchain_path:      %s\n", cfg.ToolchainPath)
		fmt.Fprintf(out, "post_link_data_path: %s\n", cfg.PostLinkDataPath)
		fmt.Fprintf(out, "output_path:         %s\n", cfg.OutputPath)
		if cfg.StageTimeout != 0 {
			fmt.Fprintf(out, "stage_timeout:       %d\n", cfg.StageTimeout)
		}
		return nil
	},
}

var projectsSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a project configuration",
	Long: `Save a project configuration under a name. All path parameters are
required; saving fails when any is missing. Use --force to overwrite an
existing configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewStore()
		if err != nil {
			return err
		}

		cfg := &config.ProjectConfig{Name: args[0]}
		for flag, key := range map[string]string{
			"description":    "description",
			"source":         "source_path",
			"generated-code": "generated_code_path",
			"toolchain":      "toolchain_path",
			"postlink-data":  "post_link_data_path",
			"output":         "output_path",
		} {
			if v, _ := cmd.Flags().GetString(flag); v != "" {
				if err := cfg.Set(key, v); err != nil {
					return fmt.Errorf("--%s: %w", flag, err)
				}
			}
		}
		if t, _ := cmd.Flags().GetInt("stage-timeout"); t != 0 {
			cfg.StageTimeout = t
		}

		force, _ := cmd.Flags().GetBool("force")
		saved, err := store.Save(cfg, args[0], force)
		if err != nil {
			return err
		}
		if !saved {
			return fmt.Errorf("project %q already exists (use --force to overwrite)", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ saved project %q\n", args[0])
		return nil
	},
}

var projectsSetCmd = &cobra.Command{
	Use:   "set <name> <key> <value>",
	Short: "Set one key of a saved project configuration",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewStore()
		if err != nil {
			return err
		}
		cfg, err := store.Load(args[0])
		if err != nil {
			return err
		}
		if err := cfg.Set(args[1], args[2]); err != nil {
			return err
		}
		if err := store.Update(args[0], cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[1], args[2])
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved project configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewStore()
		if err != nil {
			return err
		}
		deleted, err := store.Delete(args[0])
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("no saved project named %q", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ deleted project %q\n", args[0])
		return nil
	},
}

func init() {
	projectsSaveCmd.Flags().String("description", "", "Project description")
	projectsSaveCmd.Flags().String("source", "", "Source model tree directory")
	projectsSaveCmd.Flags().String("generated-code", "", "Directory receiving generated code")
	projectsSaveCmd.Flags().String("toolchain", "", "Toolchain install directory")
	projectsSaveCmd.Flags().String("postlink-data", "", "Post-link calibration data file (.a2l)")
	projectsSaveCmd.Flags().String("output", "", "Directory receiving packaged outputs")
	projectsSaveCmd.Flags().Int("stage-timeout", 0, "Per-stage timeout override in seconds")
	projectsSaveCmd.Flags().Bool("force", false, "Overwrite an existing configuration")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsSaveCmd)
	projectsCmd.AddCommand(projectsSetCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}
