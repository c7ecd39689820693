package cmd

import (
	"github.com/acdrive/acdrive/internal/dispatch"
	"github.com/acdrive/acdrive/internal/jsonio"
	"github.com/spf13/cobra"
)

var vppAppsCmd = &cobra.Command{
	Use:   "vppapps [payload]",
	Short: "Install licensed apps on a set of devices",
	Long: `Select the devices identified by UDID, open the app picker, verify
every requested app is offered, select the apps, and confirm. A request
naming an app the picker does not offer fails before anything is
installed and leaves no dialog open. The payload is either a positional
JSON value like {"apps": ["Word"], "udids": ["a1"]} or built from flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVPPApps,
}

func init() {
	rootCmd.AddCommand(vppAppsCmd)
	vppAppsCmd.Flags().StringSlice("app", nil, "App name to install (repeatable)")
	vppAppsCmd.Flags().StringSlice("udid", nil, "Target device UDID (repeatable)")
}

func runVPPApps(cmd *cobra.Command, args []string) error {
	payload := payloadFromArg(args)
	if payload == nil {
		apps, _ := cmd.Flags().GetStringSlice("app")
		udids, _ := cmd.Flags().GetStringSlice("udid")
		var err error
		payload, err = jsonio.Encode(map[string]any{"apps": apps, "udids": udids})
		if err != nil {
			return err
		}
	}
	return runBoundaryCommand(dispatch.CmdVPPApps, payload)
}
