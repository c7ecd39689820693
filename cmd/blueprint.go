package cmd

import (
	"github.com/acdrive/acdrive/internal/dispatch"
	"github.com/acdrive/acdrive/internal/jsonio"
	"github.com/spf13/cobra"
)

var blueprintCmd = &cobra.Command{
	Use:   "blueprint [payload]",
	Short: "Apply a named blueprint to a set of devices",
	Long: `Select the devices identified by UDID, invoke the blueprint menu item,
and confirm the resulting prompt. The payload is either a positional
JSON value like {"blueprint": "Checkout", "udids": ["a1", "b2"]} or
built from flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlueprint,
}

func init() {
	rootCmd.AddCommand(blueprintCmd)
	blueprintCmd.Flags().String("blueprint", "", "Blueprint name")
	blueprintCmd.Flags().StringSlice("udid", nil, "Target device UDID (repeatable)")
}

func runBlueprint(cmd *cobra.Command, args []string) error {
	payload := payloadFromArg(args)
	if payload == nil {
		name, _ := cmd.Flags().GetString("blueprint")
		udids, _ := cmd.Flags().GetStringSlice("udid")
		var err error
		payload, err = jsonio.Encode(map[string]any{"blueprint": name, "udids": udids})
		if err != nil {
			return err
		}
	}
	return runBoundaryCommand(dispatch.CmdBlueprint, payload)
}
