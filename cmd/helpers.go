package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/acdrive/acdrive/internal/config"
	"github.com/acdrive/acdrive/internal/dispatch"
	"github.com/acdrive/acdrive/internal/engine"
	"github.com/acdrive/acdrive/internal/history"
	"github.com/acdrive/acdrive/internal/jsonio"
	"github.com/acdrive/acdrive/internal/output"
	"github.com/acdrive/acdrive/internal/platform"
)

// engineOptions converts config timeouts into engine options.
func engineOptions(cfg config.Config) engine.Options {
	return engine.Options{
		DeviceWindowTitles: cfg.DeviceWindows,
		LaunchTimeout:      time.Duration(cfg.LaunchTimeoutSec) * time.Second,
		PromptTimeout:      time.Duration(cfg.PromptTimeoutSec) * time.Second,
		PollInterval:       time.Duration(cfg.PollIntervalSec) * time.Second,
		MenuRetryDelay:     time.Second,
	}
}

// newEngine wires config, platform driver, and engine together.
func newEngine() (*engine.Engine, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	drv, err := platform.NewDriver(cfg.App)
	if err != nil {
		return nil, cfg, err
	}
	return engine.New(drv, engineOptions(cfg)), cfg, nil
}

// newDispatcher builds the full boundary stack. The returned closer
// releases the history store.
func newDispatcher() (*dispatch.Dispatcher, func(), error) {
	eng, cfg, err := newEngine()
	if err != nil {
		return nil, nil, err
	}
	disp, err := dispatch.New(eng)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {}
	if cfg.History.Enabled {
		store, herr := history.Open(context.Background(), cfg.History.Path)
		if herr == nil {
			disp.WithHistory(store)
			closer = func() { _ = store.Close() }
		}
		// A broken history store degrades to no recording; the command
		// itself still runs.
	}
	return disp, closer, nil
}

// runBoundaryCommand dispatches one process-boundary command and prints
// its JSON result (re-rendered as YAML on a terminal). On failure the
// structured {message, code} payload goes to stdout and the error
// propagates for a non-zero exit.
func runBoundaryCommand(command string, payload []byte) error {
	disp, closer, err := newDispatcher()
	if err != nil {
		return err
	}
	defer closer()

	result, err := disp.Dispatch(context.Background(), command, payload)
	if err != nil {
		_ = output.PrintRawJSON(dispatch.ErrorPayload(err))
		return err
	}
	return printResult(result)
}

func printResult(result []byte) error {
	if len(result) == 0 {
		return nil
	}
	if output.OutputFormat == output.FormatYAML {
		value, err := jsonio.Decode(result)
		if err != nil {
			return fmt.Errorf("re-render result: %w", err)
		}
		return output.PrintYAML(value)
	}
	return output.PrintRawJSON(result)
}

// payloadFromArg returns the positional JSON payload when present.
func payloadFromArg(args []string) []byte {
	if len(args) == 0 {
		return nil
	}
	return []byte(args[0])
}
