package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acdrive/acdrive/internal/config"
	"github.com/acdrive/acdrive/internal/history"
	"github.com/acdrive/acdrive/internal/output"
)

// HistoryEntry is one recorded execution as rendered by the history
// command.
type HistoryEntry struct {
	ID        string `yaml:"id" json:"id"`
	Command   string `yaml:"command" json:"command"`
	Payload   string `yaml:"payload,omitempty" json:"payload,omitempty"`
	Result    string `yaml:"result,omitempty" json:"result,omitempty"`
	Error     string `yaml:"error,omitempty" json:"error,omitempty"`
	Code      int    `yaml:"code,omitempty" json:"code,omitempty"`
	StartedAt string `yaml:"started_at" json:"started_at"`
	Duration  string `yaml:"duration" json:"duration"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent command executions",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum number of executions to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history recording is disabled; enable it in %s", config.Path())
	}
	store, err := history.Open(context.Background(), cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	entries := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, HistoryEntry{
			ID:        rec.ID,
			Command:   rec.Command,
			Payload:   rec.Payload,
			Result:    rec.Result,
			Error:     rec.Error,
			Code:      rec.Code,
			StartedAt: rec.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			Duration:  rec.Duration.String(),
		})
	}
	return output.Print(entries)
}
