package model

// SurfaceKind partitions top-level surfaces of the host application.
type SurfaceKind string

const (
	// SurfaceStandard is a persistent, named window such as the device
	// list or the activity log.
	SurfaceStandard SurfaceKind = "standard"
	// SurfaceAlert is an ephemeral dialog created and destroyed by the
	// host application in response to actions.
	SurfaceAlert SurfaceKind = "alert"
)

// Surface is one open top-level UI element of the host application.
type Surface struct {
	Kind  SurfaceKind `json:"kind"`
	Title string      `json:"title,omitempty"`
	Ref   Ref         `json:"ref"`
}

// RowRecord maps column names to cell values for one table row, plus the
// synthetic "selected" key carrying the row's selection flag as a bool.
type RowRecord map[string]any

// SelectedKey is the synthetic RowRecord key holding the selection flag.
const SelectedKey = "selected"

// TableSnapshot is a point-in-time copy of a tabular UI region. It is
// never refreshed; re-extract after any action that mutates the table.
// Rows and RowRefs are parallel: RowRefs[i] is the live reference behind
// Rows[i].
type TableSnapshot struct {
	Table   Ref         `json:"-"`
	Columns []string    `json:"columns"`
	Rows    []RowRecord `json:"rows"`
	RowRefs []Ref       `json:"-"`
}

// HasColumn reports whether name is among the snapshot's columns.
func (t TableSnapshot) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// PromptDescriptor is the decomposition of an actionable surface: its
// informational text, the choices it offers, and any alert nested on top
// of it. Nesting depth is not bounded by the model.
type PromptDescriptor struct {
	Text       []string          `json:"text"`
	Buttons    []string          `json:"buttons"`
	Checkboxes []string          `json:"checkboxes,omitempty"`
	Child      *PromptDescriptor `json:"child,omitempty"`
}

// HasButton reports whether label is among the descriptor's buttons.
func (p PromptDescriptor) HasButton(label string) bool {
	for _, b := range p.Buttons {
		if b == label {
			return true
		}
	}
	return false
}

// ActionRequest names the button to invoke on a prompt and the checkbox
// labels to force on beforehand. Options absent from the prompt are
// ignored, not an error.
type ActionRequest struct {
	Choice  string   `json:"choice"`
	Options []string `json:"options,omitempty"`
}
