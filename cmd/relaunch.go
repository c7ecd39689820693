package cmd

import (
	"github.com/spf13/cobra"
)

var relaunchCmd = &cobra.Command{
	Use:   "relaunch",
	Short: "Quit and relaunch the host application",
	Long: `Quit the host application, wait for it to exit, and launch it again,
waiting until a device window is ready. --force dismisses the topmost
prompt first so an open modal cannot block the quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		eng, _, err := newEngine()
		if err != nil {
			return err
		}
		return eng.Relaunch(force)
	},
}

func init() {
	rootCmd.AddCommand(relaunchCmd)
	relaunchCmd.Flags().Bool("force", false, "Dismiss the topmost prompt before quitting")
}
