package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the Cobra command for displaying the application
// version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mcp-productboard",
		Long:  `All software has versions. This is mcp-productboard's.`,
		Run: func(cmd *cobra.Command, args []string) {
			// rootCmd.Version is set from main at build time.
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mcp-productboard version %s\n", rootCmd.Version)
		},
	}
}
