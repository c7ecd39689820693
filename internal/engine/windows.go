package engine

import (
	"errors"

	"github.com/acdrive/acdrive/internal/model"
)

// ListSurfaces partitions all open top-level surfaces into standard
// windows and alert/dialog surfaces. A surface of any other kind fails
// fast: an unclassified surface means either a host-application update
// or a logic error, and acting past it risks targeting the wrong window.
func (e *Engine) ListSurfaces() (standard, alerts []model.Surface, err error) {
	els, err := e.drv.Surfaces()
	if err != nil {
		return nil, nil, err
	}
	for _, el := range els {
		switch {
		case el.Role == model.RoleSheet:
			alerts = append(alerts, model.Surface{Kind: model.SurfaceAlert, Ref: el.Ref})
		case el.Role == model.RoleWindow && el.Subrole == model.SubroleStandardWindow:
			standard = append(standard, model.Surface{Kind: model.SurfaceStandard, Title: el.Title, Ref: el.Ref})
		case el.Role == model.RoleWindow && (el.Subrole == model.SubroleDialog || el.Subrole == model.SubroleSystemDialog):
			alerts = append(alerts, model.Surface{Kind: model.SurfaceAlert, Title: el.Title, Ref: el.Ref})
		default:
			return nil, nil, Errorf(CodeUnexpectedSurface,
				"unexpected surface kind: role=%s subrole=%q title=%q", el.Role, el.Subrole, el.Title)
		}
	}
	return standard, alerts, nil
}

// FindDeviceWindow locates the device-list window among the standard
// surfaces by its recognized titles.
func (e *Engine) FindDeviceWindow() (model.Surface, error) {
	standard, _, err := e.ListSurfaces()
	if err != nil {
		return model.Surface{}, err
	}
	for _, s := range standard {
		for _, title := range e.opts.DeviceWindowTitles {
			if s.Title == title {
				return s, nil
			}
		}
	}
	return model.Surface{}, Errorf(CodeWindowNotFound,
		"device window not found (looked for %v)", e.opts.DeviceWindowTitles)
}

// EnsureLaunchedAndReady starts the host application if it is not
// running and blocks until the device window exists. This is the only
// operation allowed to wait out the full launch timeout.
func (e *Engine) EnsureLaunchedAndReady() error {
	running, err := e.drv.Running()
	if err != nil {
		return err
	}
	if !running {
		if err := e.drv.Launch(); err != nil {
			return err
		}
	}
	err = poll(e.opts.PollInterval, e.opts.LaunchTimeout, func() (bool, error) {
		_, ferr := e.FindDeviceWindow()
		if ferr == nil {
			return true, nil
		}
		if CodeOf(ferr) == CodeWindowNotFound {
			return false, nil
		}
		return false, ferr
	})
	if errors.Is(err, ErrPollTimeout) {
		return Errorf(CodeLaunchTimeout, "host application did not become ready within %s", e.opts.LaunchTimeout)
	}
	return err
}

// EnsureListView makes sure the surface's primary table is visible,
// driving the view-mode control when it is not, and returns the table.
// It is a no-op on a surface already in list view.
func (e *Engine) EnsureListView(ref model.Ref) (model.Element, error) {
	table, ok, err := e.findFirst(ref, model.RoleTable, 6)
	if err != nil {
		return model.Element{}, err
	}
	if ok {
		return table, nil
	}

	// The device window toggles through View > as List; prompts carry
	// their own radio-group toggle whose last segment is the list mode.
	group, hasGroup, err := e.findFirst(ref, model.RoleRadioGroup, 4)
	if err != nil {
		return model.Element{}, err
	}
	if hasGroup {
		radios, err := e.drv.Children(group.Ref)
		if err != nil {
			return model.Element{}, err
		}
		var last model.Element
		found := false
		for _, c := range radios {
			if c.Role == model.RoleRadio {
				last = c
				found = true
			}
		}
		if found {
			if err := e.drv.Press(last.Ref); err != nil {
				return model.Element{}, err
			}
		}
	} else {
		if err := e.menuSelect(ref, menuView, menuAsList); err != nil {
			return model.Element{}, err
		}
	}

	err = poll(e.opts.PollInterval, e.opts.PromptTimeout, func() (bool, error) {
		t, ok, ferr := e.findFirst(ref, model.RoleTable, 6)
		if ferr != nil {
			return false, ferr
		}
		if ok {
			table = t
		}
		return ok, nil
	})
	if errors.Is(err, ErrPollTimeout) {
		return model.Element{}, Errorf(CodeTableNotFound, "surface did not expose a table after switching to list view")
	}
	if err != nil {
		return model.Element{}, err
	}
	return table, nil
}
