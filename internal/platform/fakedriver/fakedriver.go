// Package fakedriver is an in-memory platform.Driver over a scriptable
// element tree, used by engine and dispatcher tests. Refs are positional
// paths like "0/2/1" into the tree, matching the transient positional
// references of the real driver.
package fakedriver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/acdrive/acdrive/internal/model"
	"github.com/acdrive/acdrive/internal/platform"
)

// Node is one element of the fake tree.
type Node struct {
	Role     model.Role
	Subrole  string
	Title    string
	Name     string
	Value    string
	Selected bool
	Disabled bool
	Columns  []string
	Children []*Node
}

// Label mirrors model.Element.Label for hook writers.
func (n *Node) Label() string {
	if n.Title != "" {
		return n.Title
	}
	return n.Name
}

// Driver implements platform.Driver against the in-memory tree.
type Driver struct {
	Root      []*Node // top-level surfaces, front-most first
	IsRunning bool

	// Calls records every operation in order, as "op" or "op:detail".
	Calls []string

	// MenuFunc, when set, decides the outcome of MenuSelect.
	MenuFunc func(path ...string) error
	// PressFunc, when set, runs after the default press behavior.
	PressFunc func(n *Node)
}

var _ platform.Driver = (*Driver)(nil)

func (d *Driver) record(op string, args ...string) {
	if len(args) == 0 {
		d.Calls = append(d.Calls, op)
		return
	}
	d.Calls = append(d.Calls, op+":"+strings.Join(args, "/"))
}

// CallCount returns how many recorded calls start with prefix.
func (d *Driver) CallCount(prefix string) int {
	n := 0
	for _, c := range d.Calls {
		if c == prefix || strings.HasPrefix(c, prefix+":") {
			n++
		}
	}
	return n
}

func (d *Driver) resolve(ref model.Ref) (*Node, error) {
	node := (*Node)(nil)
	siblings := d.Root
	for _, part := range strings.Split(string(ref), "/") {
		i, err := strconv.Atoi(part)
		if err != nil || i < 0 || i >= len(siblings) {
			return nil, fmt.Errorf("stale element reference %q", ref)
		}
		node = siblings[i]
		siblings = node.Children
	}
	if node == nil {
		return nil, fmt.Errorf("empty element reference")
	}
	return node, nil
}

func childRef(parent model.Ref, i int) model.Ref {
	if parent == "" {
		return model.Ref(strconv.Itoa(i))
	}
	return model.Ref(string(parent) + "/" + strconv.Itoa(i))
}

func element(n *Node, ref model.Ref) model.Element {
	return model.Element{
		Ref:      ref,
		Role:     n.Role,
		Subrole:  n.Subrole,
		Title:    n.Title,
		Name:     n.Name,
		Value:    n.Value,
		Selected: n.Selected,
		Enabled:  !n.Disabled,
	}
}

func (d *Driver) Running() (bool, error) {
	d.record("running")
	return d.IsRunning, nil
}

func (d *Driver) Launch() error {
	d.record("launch")
	d.IsRunning = true
	return nil
}

func (d *Driver) Quit() error {
	d.record("quit")
	d.IsRunning = false
	return nil
}

func (d *Driver) Activate() error {
	d.record("activate")
	return nil
}

func (d *Driver) Surfaces() ([]model.Element, error) {
	d.record("surfaces")
	out := make([]model.Element, 0, len(d.Root))
	for i, n := range d.Root {
		out = append(out, element(n, childRef("", i)))
	}
	return out, nil
}

func (d *Driver) Children(ref model.Ref) ([]model.Element, error) {
	n, err := d.resolve(ref)
	if err != nil {
		return nil, err
	}
	out := make([]model.Element, 0, len(n.Children))
	for i, c := range n.Children {
		out = append(out, element(c, childRef(ref, i)))
	}
	return out, nil
}

func (d *Driver) ColumnNames(ref model.Ref) ([]string, error) {
	n, err := d.resolve(ref)
	if err != nil {
		return nil, err
	}
	return n.Columns, nil
}

func (d *Driver) Press(ref model.Ref) error {
	n, err := d.resolve(ref)
	if err != nil {
		return err
	}
	d.record("press", n.Label())
	if n.Role == model.RoleCheckbox {
		if n.Checked() {
			n.Value = "0"
		} else {
			n.Value = "1"
		}
	}
	if d.PressFunc != nil {
		d.PressFunc(n)
	}
	return nil
}

// Checked mirrors model.Element.Checked.
func (n *Node) Checked() bool { return n.Value == "1" || n.Value == "true" }

func (d *Driver) Raise(ref model.Ref) error {
	d.record("raise")
	_, err := d.resolve(ref)
	return err
}

func (d *Driver) Maximize(ref model.Ref) error {
	d.record("maximize")
	_, err := d.resolve(ref)
	return err
}

func (d *Driver) SelectAll(ref model.Ref) error {
	n, err := d.resolve(ref)
	if err != nil {
		return err
	}
	d.record("selectAll")
	for _, c := range n.Children {
		if c.Role == model.RoleRow {
			c.Selected = true
		}
	}
	return nil
}

func (d *Driver) SetRowSelected(ref model.Ref, selected bool) error {
	n, err := d.resolve(ref)
	if err != nil {
		return err
	}
	d.record("setSelected", fmt.Sprintf("%v", selected))
	n.Selected = selected
	return nil
}

func (d *Driver) MenuSelect(path ...string) error {
	d.record("menu", path...)
	if d.MenuFunc != nil {
		return d.MenuFunc(path...)
	}
	return nil
}
