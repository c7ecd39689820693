package cmd

import (
	"github.com/spf13/cobra"

	"github.com/acdrive/acdrive/internal/dispatch"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the host application's current activity and alerts",
	Long: `Read-only probe: reports the text of any in-progress surface, whether
the host application is busy, and all open alerts. No open activity is a
normal state, not an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoundaryCommand(dispatch.CmdStatus, nil)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
