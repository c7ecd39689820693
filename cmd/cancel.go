package cmd

import (
	"github.com/spf13/cobra"

	"github.com/acdrive/acdrive/internal/dispatch"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Resolve the topmost prompt with the Cancel choice",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoundaryCommand(dispatch.CmdCancel, nil)
	},
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}
