package cmd

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cobra"

	"github.com/acdrive/acdrive/internal/dispatch"
	"github.com/acdrive/acdrive/internal/jsonio"
	"github.com/acdrive/acdrive/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rows of the device table",
	Long: `List every row of the device table, one record per row keyed by the
table's column names plus "selected". --filter narrows the output with
a boolean expression evaluated against each row, for example:
  acdrive list --filter 'Name startsWith "Lab" && UDID != ""'
--udid keeps only the named devices.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("filter", "", "Boolean expression selecting rows")
	listCmd.Flags().StringSlice("udid", nil, "Keep only rows with this UDID (repeatable)")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, _ := cmd.Flags().GetString("filter")
	udids, _ := cmd.Flags().GetStringSlice("udid")
	if filter == "" && len(udids) == 0 {
		return runBoundaryCommand(dispatch.CmdList, nil)
	}

	disp, closer, err := newDispatcher()
	if err != nil {
		return err
	}
	defer closer()

	result, err := disp.Dispatch(context.Background(), dispatch.CmdList, nil)
	if err != nil {
		_ = output.PrintRawJSON(dispatch.ErrorPayload(err))
		return err
	}

	var rows []map[string]any
	if err := jsonio.DecodeInto(result, &rows); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	kept, err := filterRows(rows, filter, udids)
	if err != nil {
		return err
	}

	filtered, err := jsonio.Encode(kept)
	if err != nil {
		return err
	}
	return printResult(filtered)
}

// filterRows keeps the rows matching the boolean expression and, when
// udids is non-empty, one of the given UDIDs.
func filterRows(rows []map[string]any, filter string, udids []string) ([]map[string]any, error) {
	var program *vm.Program
	if filter != "" {
		p, err := expr.Compile(filter, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("compile filter: %w", err)
		}
		program = p
	}

	kept := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if len(udids) > 0 && !matchesUDID(row, udids) {
			continue
		}
		if program != nil {
			out, err := expr.Run(program, row)
			if err != nil {
				return nil, fmt.Errorf("evaluate filter: %w", err)
			}
			if keep, ok := out.(bool); !ok || !keep {
				continue
			}
		}
		kept = append(kept, row)
	}
	return kept, nil
}

func matchesUDID(row map[string]any, udids []string) bool {
	value, _ := row["UDID"].(string)
	for _, udid := range udids {
		if value == udid {
			return true
		}
	}
	return false
}
