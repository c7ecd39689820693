package platform

import "github.com/acdrive/acdrive/internal/model"

// Driver exposes the raw accessibility primitives for one host
// application. Every call blocks until the host's UI thread responds;
// callers must not run two drivers against the same application
// concurrently. Element references are positional and only valid until
// the next mutating call.
type Driver interface {
	// Running reports whether the host application has a live process.
	Running() (bool, error)

	// Launch starts the host application without waiting for readiness.
	Launch() error

	// Quit asks the host application to terminate.
	Quit() error

	// Activate makes the host application front-most.
	Activate() error

	// Surfaces returns all open top-level UI elements, in front-to-back
	// order, with their role, subrole, and title populated.
	Surfaces() ([]model.Element, error)

	// Children returns the direct children of ref with attributes
	// populated, in layout order.
	Children(ref model.Ref) ([]model.Element, error)

	// ColumnNames returns the full column-header set of a table, in
	// positional order, with an empty string for unlabeled columns.
	ColumnNames(ref model.Ref) ([]string, error)

	// Press performs the press action on a button, checkbox, or radio
	// button.
	Press(ref model.Ref) error

	// Raise brings the window holding ref to the front of the host
	// application's window stack.
	Raise(ref model.Ref) error

	// Maximize grows the window holding ref to fill the screen.
	Maximize(ref model.Ref) error

	// SelectAll selects every row of a table.
	SelectAll(ref model.Ref) error

	// SetRowSelected forces one row's selection flag.
	SetRowSelected(ref model.Ref, selected bool) error

	// MenuSelect clicks through the menu bar along path. When the final
	// item exists but is not yet interactable the error is Retryable.
	MenuSelect(path ...string) error
}
