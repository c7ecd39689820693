package engine

import "github.com/acdrive/acdrive/internal/model"

// Status is the read-only probe: it inspects the top progress or alert
// surface of every standard window without mutating anything. No open
// activity is a valid, common state and never an error.
func (e *Engine) Status() (model.StatusReport, error) {
	report := model.StatusReport{Alerts: []model.PromptDescriptor{}}

	running, err := e.drv.Running()
	if err != nil {
		return report, err
	}
	if !running {
		return report, nil
	}

	standard, alerts, err := e.ListSurfaces()
	if err != nil {
		return report, err
	}
	for _, s := range standard {
		sheet, ok, err := e.findFirst(s.Ref, model.RoleSheet, 1)
		if err != nil {
			return report, err
		}
		if !ok {
			continue
		}
		busy, err := e.hasProgress(sheet.Ref, 2)
		if err != nil {
			return report, err
		}
		d, err := e.Describe(sheet.Ref)
		if err != nil {
			return report, err
		}
		if busy {
			report.Busy = true
			report.Activity = append(report.Activity, d.Text...)
		} else if len(d.Buttons) > 0 {
			report.Alerts = append(report.Alerts, d)
		}
	}
	for _, a := range alerts {
		d, err := e.Describe(a.Ref)
		if err != nil {
			return report, err
		}
		report.Alerts = append(report.Alerts, d)
	}
	return report, nil
}

// hasProgress reports whether the surface carries a progress or busy
// indicator within depth levels. The host sometimes wraps the indicator
// in a group instead of placing it directly on the sheet.
func (e *Engine) hasProgress(ref model.Ref, depth int) (bool, error) {
	children, err := e.drv.Children(ref)
	if err != nil {
		return false, err
	}
	for _, c := range children {
		if c.Role == model.RoleProgress || c.Role == model.RoleBusy {
			return true, nil
		}
	}
	if depth <= 1 {
		return false, nil
	}
	for _, c := range children {
		if c.Role != model.RoleGroup {
			continue
		}
		busy, err := e.hasProgress(c.Ref, depth-1)
		if err != nil {
			return false, err
		}
		if busy {
			return true, nil
		}
	}
	return false, nil
}
