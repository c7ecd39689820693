// Package darwin drives the host application's accessibility tree
// through the System Events scripting interface, running the embedded
// JXA driver script once per primitive. The exchange in both directions
// is JSON through the serialization bridge. The package is pure Go and
// compiles everywhere; the constructor refuses to run off macOS.
package darwin

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/acdrive/acdrive/internal/jsonio"
	"github.com/acdrive/acdrive/internal/model"
	"github.com/acdrive/acdrive/internal/platform"
)

//go:embed driver.js
var driverScript string

// caffeinate keeps the display and system awake for the duration of each
// accessibility call; bulk installs run long enough for sleep to kill
// the UI session otherwise.
var runnerArgv = []string{"/usr/bin/caffeinate", "-d", "-i", "-u", "/usr/bin/osascript", "-l", "JavaScript", "-e"}

func init() {
	platform.NewDriverFunc = func(app string) (platform.Driver, error) {
		if runtime.GOOS != "darwin" {
			return nil, platform.ErrUnsupported
		}
		return New(app), nil
	}
}

// Driver is bound to one host application by name.
type Driver struct {
	app string
}

var _ platform.Driver = (*Driver)(nil)

// New returns a Driver for the named application.
func New(app string) *Driver {
	return &Driver{app: app}
}

// request is the wire shape sent to the driver script.
type request struct {
	App      string   `json:"app"`
	Op       string   `json:"op"`
	Ref      string   `json:"ref,omitempty"`
	Path     []string `json:"path,omitempty"`
	Selected *bool    `json:"selected,omitempty"`
}

// response is the wire shape returned by the driver script.
type response struct {
	OK       bool          `json:"ok"`
	NotReady bool          `json:"notReady,omitempty"`
	Error    string        `json:"error,omitempty"`
	Running  bool          `json:"running,omitempty"`
	Elements []wireElement `json:"elements,omitempty"`
	Columns  []string      `json:"columns,omitempty"`
}

type wireElement struct {
	Ref      string `json:"ref"`
	Role     string `json:"role"`
	Subrole  string `json:"subrole"`
	Title    string `json:"title"`
	Name     string `json:"name"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	Enabled  bool   `json:"enabled"`
}

func (d *Driver) call(req request) (*response, error) {
	req.App = d.app
	payload, err := jsonio.Encode(req)
	if err != nil {
		return nil, err
	}

	argv := append(append([]string{}, runnerArgv...), driverScript, string(payload))
	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("osascript %s: %v: %s", req.Op, err, strings.TrimSpace(stderr.String()))
	}

	var resp response
	if err := jsonio.DecodeInto(bytes.TrimSpace(stdout.Bytes()), &resp); err != nil {
		return nil, fmt.Errorf("driver script %s: %w", req.Op, err)
	}
	if !resp.OK {
		if resp.NotReady {
			return nil, &platform.RetryableError{Reason: resp.Error}
		}
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

func (d *Driver) elements(resp *response) []model.Element {
	out := make([]model.Element, 0, len(resp.Elements))
	for _, w := range resp.Elements {
		out = append(out, model.Element{
			Ref:      model.Ref(w.Ref),
			Role:     model.MapRole(w.Role),
			Subrole:  w.Subrole,
			Title:    w.Title,
			Name:     w.Name,
			Value:    w.Value,
			Selected: w.Selected,
			Enabled:  w.Enabled,
		})
	}
	return out
}

func (d *Driver) Running() (bool, error) {
	resp, err := d.call(request{Op: "running"})
	if err != nil {
		return false, err
	}
	return resp.Running, nil
}

func (d *Driver) Launch() error {
	_, err := d.call(request{Op: "launch"})
	return err
}

func (d *Driver) Quit() error {
	_, err := d.call(request{Op: "quit"})
	return err
}

func (d *Driver) Activate() error {
	_, err := d.call(request{Op: "activate"})
	return err
}

func (d *Driver) Surfaces() ([]model.Element, error) {
	resp, err := d.call(request{Op: "surfaces"})
	if err != nil {
		return nil, err
	}
	return d.elements(resp), nil
}

func (d *Driver) Children(ref model.Ref) ([]model.Element, error) {
	resp, err := d.call(request{Op: "children", Ref: string(ref)})
	if err != nil {
		return nil, err
	}
	return d.elements(resp), nil
}

func (d *Driver) ColumnNames(ref model.Ref) ([]string, error) {
	resp, err := d.call(request{Op: "columns", Ref: string(ref)})
	if err != nil {
		return nil, err
	}
	return resp.Columns, nil
}

func (d *Driver) Press(ref model.Ref) error {
	_, err := d.call(request{Op: "press", Ref: string(ref)})
	return err
}

func (d *Driver) Raise(ref model.Ref) error {
	_, err := d.call(request{Op: "raise", Ref: string(ref)})
	return err
}

func (d *Driver) Maximize(ref model.Ref) error {
	_, err := d.call(request{Op: "maximize", Ref: string(ref)})
	return err
}

func (d *Driver) SelectAll(ref model.Ref) error {
	_, err := d.call(request{Op: "selectAll", Ref: string(ref)})
	return err
}

func (d *Driver) SetRowSelected(ref model.Ref, selected bool) error {
	_, err := d.call(request{Op: "setSelected", Ref: string(ref), Selected: &selected})
	return err
}

func (d *Driver) MenuSelect(path ...string) error {
	_, err := d.call(request{Op: "menu", Path: path})
	return err
}
