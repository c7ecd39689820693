package engine

import (
	"errors"
	"time"

	"github.com/acdrive/acdrive/internal/model"
	"github.com/acdrive/acdrive/internal/platform"
)

// Menu paths and prompt choices of the host application.
const (
	menuActions = "Actions"
	menuAdd     = "Add"
	menuApps    = "Apps…"
	menuApply   = "Apply"
	menuView    = "View"
	menuAsList  = "as List"

	choiceAdd    = "Add"
	choiceApply  = "Apply"
	choiceCancel = "Cancel"

	columnUDID = "UDID"
	columnName = "Name"
)

// menuSelect invokes a menu item, retrying exactly once when the item
// exists but is not yet interactable because a prior UI transition has
// not settled: wait, re-assert front-most focus, try again. A second
// such failure is fatal.
func (e *Engine) menuSelect(raise model.Ref, path ...string) error {
	err := e.drv.MenuSelect(path...)
	if err == nil || !platform.IsRetryable(err) {
		return err
	}
	time.Sleep(e.opts.MenuRetryDelay)
	if err := e.drv.Activate(); err != nil {
		return err
	}
	if err := e.drv.Raise(raise); err != nil {
		return err
	}
	if err := e.drv.MenuSelect(path...); err != nil {
		if platform.IsRetryable(err) {
			return Errorf(CodeMenuNotReady, "menu %v still not interactable after retry: %v", path, err)
		}
		return err
	}
	return nil
}

// focusDeviceWindow re-asserts the device window as front-most. This is
// the engine's substitute for a lock: it cannot stop an external actor
// from stealing focus mid-operation, only start each operation from a
// known front-most state.
func (e *Engine) focusDeviceWindow(maximize bool) (model.Surface, error) {
	win, err := e.FindDeviceWindow()
	if err != nil {
		return model.Surface{}, err
	}
	if err := e.drv.Activate(); err != nil {
		return model.Surface{}, err
	}
	if err := e.drv.Raise(win.Ref); err != nil {
		return model.Surface{}, err
	}
	if maximize {
		if err := e.drv.Maximize(win.Ref); err != nil {
			return model.Surface{}, err
		}
	}
	return win, nil
}

// awaitPrompt polls until a prompt is open on win and returns it.
func (e *Engine) awaitPrompt(win model.Surface) (model.Ref, error) {
	var prompt model.Ref
	err := poll(e.opts.PollInterval, e.opts.PromptTimeout, func() (bool, error) {
		p, perr := e.FindTargetPrompt(win)
		if perr != nil {
			if CodeOf(perr) == CodePromptNotFound {
				return false, nil
			}
			return false, perr
		}
		prompt = p
		return true, nil
	})
	if errors.Is(err, ErrPollTimeout) {
		return "", Errorf(CodePromptTimeout, "no prompt appeared on %q within %s", win.Title, e.opts.PromptTimeout)
	}
	if err != nil {
		return "", err
	}
	return prompt, nil
}

// InstallApps installs licensed apps on the devices identified by udids:
// select the devices, open the app picker, verify every requested app is
// offered, select them, and confirm. A request naming an app the picker
// does not offer cancels the picker before failing, so no dialog is left
// open behind the error.
func (e *Engine) InstallApps(udids, apps []string) error {
	if len(udids) == 0 {
		return Errorf(CodeMissingArgument, "no UDIDs specified")
	}
	if len(apps) == 0 {
		return Errorf(CodeMissingArgument, "no apps specified")
	}
	if err := e.EnsureLaunchedAndReady(); err != nil {
		return err
	}
	win, err := e.focusDeviceWindow(true)
	if err != nil {
		return err
	}
	table, err := e.EnsureListView(win.Ref)
	if err != nil {
		return err
	}
	snap, err := e.Extract(table.Ref)
	if err != nil {
		return err
	}
	if err := e.Select(snap, columnUDID, udids); err != nil {
		return err
	}
	if err := e.menuSelect(win.Ref, menuActions, menuAdd, menuApps); err != nil {
		return err
	}

	prompt, err := e.awaitPrompt(win)
	if err != nil {
		return err
	}
	appTable, err := e.EnsureListView(prompt)
	if err != nil {
		return err
	}
	appSnap, err := e.Extract(appTable.Ref)
	if err != nil {
		return err
	}

	offered := make(map[string]bool, len(appSnap.Rows))
	for _, rec := range appSnap.Rows {
		if name, ok := rec[columnName].(string); ok {
			offered[name] = true
		}
	}
	var missing []string
	for _, app := range apps {
		if !offered[app] {
			missing = append(missing, app)
		}
	}
	if len(missing) > 0 {
		// Best effort: the validation error must not leave the picker open.
		_ = e.Resolve(prompt, model.ActionRequest{Choice: choiceCancel})
		return Errorf(CodeAppNotAvailable, "apps not available: %v", missing)
	}

	if err := e.Select(appSnap, columnName, apps); err != nil {
		return err
	}
	return e.Resolve(prompt, model.ActionRequest{Choice: choiceAdd})
}

// ApplyBlueprint applies a named blueprint to the devices identified by
// udids and confirms the resulting prompt.
func (e *Engine) ApplyBlueprint(udids []string, blueprint string) error {
	if len(udids) == 0 {
		return Errorf(CodeMissingArgument, "no UDIDs specified")
	}
	if blueprint == "" {
		return Errorf(CodeMissingArgument, "no blueprint specified")
	}
	if err := e.EnsureLaunchedAndReady(); err != nil {
		return err
	}
	win, err := e.focusDeviceWindow(true)
	if err != nil {
		return err
	}
	table, err := e.EnsureListView(win.Ref)
	if err != nil {
		return err
	}
	snap, err := e.Extract(table.Ref)
	if err != nil {
		return err
	}
	if err := e.Select(snap, columnUDID, udids); err != nil {
		return err
	}
	if err := e.menuSelect(win.Ref, menuActions, menuApply, blueprint); err != nil {
		return err
	}
	prompt, err := e.awaitPrompt(win)
	if err != nil {
		return err
	}
	return e.Resolve(prompt, model.ActionRequest{Choice: choiceApply})
}

// ListDevices returns the device table rows. Row handles stay internal;
// only the records are observable outside the engine.
func (e *Engine) ListDevices() ([]model.RowRecord, error) {
	if err := e.EnsureLaunchedAndReady(); err != nil {
		return nil, err
	}
	win, err := e.focusDeviceWindow(false)
	if err != nil {
		return nil, err
	}
	table, err := e.EnsureListView(win.Ref)
	if err != nil {
		return nil, err
	}
	snap, err := e.Extract(table.Ref)
	if err != nil {
		return nil, err
	}
	return snap.Rows, nil
}

// PerformAction resolves the topmost prompt with the requested choice
// and options.
func (e *Engine) PerformAction(request model.ActionRequest) error {
	if request.Choice == "" {
		return Errorf(CodeMissingArgument, "no choice specified")
	}
	win, err := e.FindDeviceWindow()
	if err != nil {
		return err
	}
	prompt, err := e.FindTargetPrompt(win)
	if err != nil {
		return err
	}
	return e.Resolve(prompt, request)
}

// Cancel resolves the topmost prompt with the Cancel choice.
func (e *Engine) Cancel() error {
	return e.PerformAction(model.ActionRequest{Choice: choiceCancel})
}

// Relaunch quits the host application if it is running and starts it
// again, waiting for readiness. With force, the topmost prompt is
// dismissed first so an open modal cannot block the quit; the dismissal
// is best effort and a failure never aborts the restart.
func (e *Engine) Relaunch(force bool) error {
	running, err := e.drv.Running()
	if err != nil {
		return err
	}
	if running {
		if force {
			_ = e.Cancel()
		}
		if err := e.drv.Quit(); err != nil {
			return err
		}
		err = poll(e.opts.PollInterval, e.opts.LaunchTimeout, func() (bool, error) {
			r, rerr := e.drv.Running()
			return !r, rerr
		})
		if errors.Is(err, ErrPollTimeout) {
			return Errorf(CodeLaunchTimeout, "host application did not quit within %s", e.opts.LaunchTimeout)
		}
		if err != nil {
			return err
		}
	}
	return e.EnsureLaunchedAndReady()
}
