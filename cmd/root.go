package cmd

import (
	"fmt"
	"os"

	"github.com/acdrive/acdrive/internal/output"
	"github.com/acdrive/acdrive/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "acdrive",
	Short: "Drive the device-management console through its accessibility tree",
	Long: `acdrive performs bulk device actions (VPP app installs, blueprint
application) against Apple Configurator by automating its UI through the
accessibility tree. Each invocation runs one command and prints one JSON
or YAML result; an external orchestrator owns retry policy and device
lifecycle decisions.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")

		// Smart default: piped output (orchestrator context) gets JSON,
		// terminal output gets YAML.
		if format == "" {
			if output.IsOutputPiped() {
				format = "json"
			} else {
				format = "yaml"
			}
		}

		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}
