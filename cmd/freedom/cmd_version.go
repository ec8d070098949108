package freedom

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjzar/freedom/pkg/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionM, "module", "m", false, "module version information")
}

var versionM bool
var versionCmd = &cobra.Command{
	Use:   "version [-m]",
	Short: "Show the version of freedom",
	Run: func(cmd *cobra.Command, args []string) {
		if versionM {
			fmt.Fprint(cmd.OutOrStdout(), version.Modules())
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "freedom %s\n", version.Short())
	},
}
