package cmd

import (
	"github.com/acdrive/acdrive/internal/dispatch"
	"github.com/acdrive/acdrive/internal/jsonio"
	"github.com/acdrive/acdrive/internal/model"
	"github.com/spf13/cobra"
)

var actionCmd = &cobra.Command{
	Use:   "action [payload]",
	Short: "Resolve the topmost prompt with a chosen button",
	Long: `Invoke a button on the topmost prompt, optionally switching checkboxes
on first. The payload is either a positional JSON value like
{"choice": "Apply", "options": ["Update apps"]} or built from flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAction,
}

func init() {
	rootCmd.AddCommand(actionCmd)
	actionCmd.Flags().String("choice", "", "Button label to invoke")
	actionCmd.Flags().StringSlice("option", nil, "Checkbox label to switch on (repeatable)")
}

func runAction(cmd *cobra.Command, args []string) error {
	payload := payloadFromArg(args)
	if payload == nil {
		choice, _ := cmd.Flags().GetString("choice")
		options, _ := cmd.Flags().GetStringSlice("option")
		var err error
		payload, err = jsonio.Encode(model.ActionRequest{Choice: choice, Options: options})
		if err != nil {
			return err
		}
	}
	return runBoundaryCommand(dispatch.CmdAction, payload)
}
