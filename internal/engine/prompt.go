package engine

import "github.com/acdrive/acdrive/internal/model"

// Describe decomposes an actionable surface into text fragments, button
// labels, checkbox labels, and an optionally nested child alert.
// Elements of other interactive roles, such as progress indicators, are
// intentionally dropped rather than misreported as text or buttons.
func (e *Engine) Describe(ref model.Ref) (model.PromptDescriptor, error) {
	children, err := e.drv.Children(ref)
	if err != nil {
		return model.PromptDescriptor{}, err
	}
	d := model.PromptDescriptor{Text: []string{}, Buttons: []string{}}
	for _, c := range children {
		switch c.Role {
		case model.RoleText:
			if s := textOf(c); s != "" {
				d.Text = append(d.Text, s)
			}
		case model.RoleButton:
			d.Buttons = append(d.Buttons, c.Label())
		case model.RoleCheckbox:
			d.Checkboxes = append(d.Checkboxes, c.Label())
		case model.RoleSheet:
			child, err := e.Describe(c.Ref)
			if err != nil {
				return model.PromptDescriptor{}, err
			}
			d.Child = &child
		}
	}
	return d, nil
}

func textOf(el model.Element) string {
	if el.Value != "" {
		return el.Value
	}
	return el.Label()
}

// Resolve performs request against the surface: it validates the button
// choice, switches each requested checkbox on (never off), and invokes
// the button. Repeated option labels count once; the checked state read
// at entry is stale after the first press, and a second press would
// switch the box back off. The surface is re-read between the toggle and
// invoke steps because toggling a checkbox can change which buttons
// exist.
func (e *Engine) Resolve(ref model.Ref, request model.ActionRequest) error {
	children, err := e.drv.Children(ref)
	if err != nil {
		return err
	}
	if !hasButton(children, request.Choice) {
		return Errorf(CodeInvalidChoice, "choice %q not among prompt buttons %v", request.Choice, buttonLabels(children))
	}

	toggled := make(map[string]bool, len(request.Options))
	for _, opt := range request.Options {
		if toggled[opt] {
			continue
		}
		toggled[opt] = true
		for _, c := range children {
			if c.Role == model.RoleCheckbox && c.Label() == opt && !c.Checked() {
				if err := e.drv.Press(c.Ref); err != nil {
					return err
				}
			}
		}
	}

	children, err = e.drv.Children(ref)
	if err != nil {
		return err
	}
	for _, c := range children {
		if c.Role == model.RoleButton && c.Label() == request.Choice {
			return e.drv.Press(c.Ref)
		}
	}
	return Errorf(CodeInvalidChoice, "button %q disappeared after toggling options", request.Choice)
}

// FindTargetPrompt locates the surface an action should resolve: the
// front-most alert if one is open, otherwise the window's top sheet, in
// both cases descending to the deepest nested alert.
func (e *Engine) FindTargetPrompt(win model.Surface) (model.Ref, error) {
	_, alerts, err := e.ListSurfaces()
	if err != nil {
		return "", err
	}
	var target model.Ref
	if len(alerts) > 0 {
		target = alerts[0].Ref
	} else {
		sheet, ok, err := e.findFirst(win.Ref, model.RoleSheet, 1)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", Errorf(CodePromptNotFound, "no open prompt on window %q", win.Title)
		}
		target = sheet.Ref
	}
	for {
		nested, ok, err := e.findFirst(target, model.RoleSheet, 1)
		if err != nil {
			return "", err
		}
		if !ok {
			return target, nil
		}
		target = nested.Ref
	}
}

func hasButton(children []model.Element, label string) bool {
	for _, c := range children {
		if c.Role == model.RoleButton && c.Label() == label {
			return true
		}
	}
	return false
}

func buttonLabels(children []model.Element) []string {
	labels := []string{}
	for _, c := range children {
		if c.Role == model.RoleButton {
			labels = append(labels, c.Label())
		}
	}
	return labels
}
