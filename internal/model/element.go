package model

// Ref is an opaque reference to a live UI element. It is only valid for
// the duration of a single command invocation; the host application owns
// the element and may destroy it at any time.
type Ref string

// Element is one inspected node of the accessibility tree, with its
// attributes as they were at read time. Children are never embedded:
// the engine descends explicitly through Driver.Children, so every level
// it touches reflects the live tree.
type Element struct {
	Ref      Ref    `json:"ref"`
	Role     Role   `json:"role"`
	Subrole  string `json:"subrole,omitempty"`
	Title    string `json:"title,omitempty"`
	Name     string `json:"name,omitempty"`
	Value    string `json:"value,omitempty"`
	Selected bool   `json:"selected,omitempty"`
	Enabled  bool   `json:"enabled,omitempty"`
}

// Checked reports the on/off state of a checkbox element, whose
// accessibility value is the string "0" or "1".
func (e Element) Checked() bool {
	return e.Value == "1" || e.Value == "true"
}

// Label returns the element's visible text: the title when present,
// otherwise the accessibility name.
func (e Element) Label() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Name
}
