package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idlab-discover/drivescore-cli/internal/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the drivescore-cli version",
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if v == "" {
			v = "dev"
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatKeyValue("drivescore-cli", v))
	},
}
