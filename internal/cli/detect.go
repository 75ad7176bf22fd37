package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbdkits/mbdflow/internal/toolchain"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect installed MATLAB and IAR toolchains",
	Long: `Scan conventional install directories for MATLAB releases and IAR
Embedded Workbench installs and report the newest of each. Additional
search roots can be supplied with --matlab-root and --iar-root.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := toolchain.DefaultDetector()
		if roots, _ := cmd.Flags().GetStringSlice("matlab-root"); len(roots) > 0 {
			d.MATLABRoots = append(d.MATLABRoots, roots...)
		}
		if roots, _ := cmd.Flags().GetStringSlice("iar-root"); len(roots) > 0 {
			d.IARRoots = append(d.IARRoots, roots...)
		}

		// Walking real Program Files trees can take a while.
		spin := scanSpinner("scanning toolchain install roots")
		matlab, iar := d.DetectAll()
		if spin != nil {
			spin.Stop()
		}

		out := cmd.OutOrStdout()
		if matlab != nil {
			fmt.Fprintf(out, "✓ MATLAB %s: %s\n", matlab.Version, matlab.Path)
		} else {
			fmt.Fprintln(out, "○ MATLAB: not found")
		}
		if iar != nil {
			fmt.Fprintf(out, "✓ IAR Embedded Workbench %s: %s\n", iar.Version, iar.Path)
		} else {
			fmt.Fprintln(out, "○ IAR Embedded Workbench: not found")
		}
		return nil
	},
}

func init() {
	detectCmd.Flags().StringSlice("matlab-root", nil, "Additional MATLAB search root")
	detectCmd.Flags().StringSlice("iar-root", nil, "Additional IAR search root")
	rootCmd.AddCommand(detectCmd)
}
