package engine

import (
	"testing"

	"github.com/acdrive/acdrive/internal/model"
	"github.com/acdrive/acdrive/internal/platform/fakedriver"
)

func TestStatus_NotRunningIsEmpty(t *testing.T) {
	drv := &fakedriver.Driver{IsRunning: false}
	e := New(drv, fastOptions())

	report, err := e.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if report.Busy {
		t.Error("expected busy=false when not running")
	}
	if report.Alerts == nil || len(report.Alerts) != 0 {
		t.Errorf("expected empty non-nil alerts, got %v", report.Alerts)
	}
}

func TestStatus_NoOpenActivityIsNotAnError(t *testing.T) {
	win, _ := deviceWindow(deviceRow("iPad A", "udid-a"))
	drv := &fakedriver.Driver{IsRunning: true, Root: []*fakedriver.Node{win}}
	e := New(drv, fastOptions())

	report, err := e.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if report.Busy || len(report.Alerts) != 0 || len(report.Activity) != 0 {
		t.Errorf("expected an idle report, got %+v", report)
	}
}

func TestStatus_BusySheetWithProgress(t *testing.T) {
	win := &fakedriver.Node{
		Role:    model.RoleWindow,
		Subrole: model.SubroleStandardWindow,
		Title:   "All Devices",
		Children: []*fakedriver.Node{
			{Role: model.RoleSheet, Children: []*fakedriver.Node{
				{Role: model.RoleProgress},
				{Role: model.RoleText, Value: "Step 2 of 7"},
				{Role: model.RoleText, Value: "Installing Word on iPad A"},
			}},
		},
	}
	drv := &fakedriver.Driver{IsRunning: true, Root: []*fakedriver.Node{win}}
	e := New(drv, fastOptions())

	report, err := e.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !report.Busy {
		t.Error("expected busy=true")
	}
	if len(report.Activity) != 2 || report.Activity[0] != "Step 2 of 7" {
		t.Errorf("unexpected activity: %v", report.Activity)
	}
	pct, ok := report.Progress()
	if !ok || pct != 2.0/7.0 {
		t.Errorf("expected progress 2/7, got %v %v", pct, ok)
	}
	if len(report.Alerts) != 0 {
		t.Errorf("a progress sheet is not an alert: %v", report.Alerts)
	}
}

func TestStatus_ProgressNestedInGroupIsBusy(t *testing.T) {
	win := &fakedriver.Node{
		Role:    model.RoleWindow,
		Subrole: model.SubroleStandardWindow,
		Title:   "All Devices",
		Children: []*fakedriver.Node{
			{Role: model.RoleSheet, Children: []*fakedriver.Node{
				{Role: model.RoleGroup, Children: []*fakedriver.Node{
					{Role: model.RoleProgress},
				}},
				{Role: model.RoleText, Value: "Preparing iPad A"},
			}},
		},
	}
	drv := &fakedriver.Driver{IsRunning: true, Root: []*fakedriver.Node{win}}
	e := New(drv, fastOptions())

	report, err := e.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !report.Busy {
		t.Error("expected busy=true for a wrapped progress indicator")
	}
	if len(report.Activity) != 1 || report.Activity[0] != "Preparing iPad A" {
		t.Errorf("unexpected activity: %v", report.Activity)
	}
}

func TestStatus_AlertSheetWithButtons(t *testing.T) {
	win := &fakedriver.Node{
		Role:    model.RoleWindow,
		Subrole: model.SubroleStandardWindow,
		Title:   "All Devices",
		Children: []*fakedriver.Node{
			{Role: model.RoleSheet, Children: []*fakedriver.Node{
				{Role: model.RoleText, Value: "Device removed during install"},
				{Role: model.RoleButton, Title: "Stop"},
				{Role: model.RoleButton, Title: "Continue"},
			}},
		},
	}
	drv := &fakedriver.Driver{IsRunning: true, Root: []*fakedriver.Node{win}}
	e := New(drv, fastOptions())

	report, err := e.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if report.Busy {
		t.Error("expected busy=false for a button sheet")
	}
	if len(report.Alerts) != 1 || !report.Alerts[0].HasButton("Continue") {
		t.Errorf("unexpected alerts: %v", report.Alerts)
	}
}

func TestStatus_TopLevelDialogReported(t *testing.T) {
	win, _ := deviceWindow()
	dialog := &fakedriver.Node{
		Role:    model.RoleWindow,
		Subrole: model.SubroleDialog,
		Title:   "Error",
		Children: []*fakedriver.Node{
			{Role: model.RoleText, Value: "The operation could not be completed"},
			{Role: model.RoleButton, Title: "OK"},
		},
	}
	drv := &fakedriver.Driver{IsRunning: true, Root: []*fakedriver.Node{win, dialog}}
	e := New(drv, fastOptions())

	report, err := e.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Alerts) != 1 || !report.Alerts[0].HasButton("OK") {
		t.Errorf("expected the dialog reported as an alert, got %v", report.Alerts)
	}
}

func TestStatus_DoesNotMutate(t *testing.T) {
	win := &fakedriver.Node{
		Role:    model.RoleWindow,
		Subrole: model.SubroleStandardWindow,
		Title:   "All Devices",
		Children: []*fakedriver.Node{
			{Role: model.RoleSheet, Children: []*fakedriver.Node{
				{Role: model.RoleCheckbox, Title: "Update apps"},
				{Role: model.RoleButton, Title: "Apply"},
			}},
		},
	}
	drv := &fakedriver.Driver{IsRunning: true, Root: []*fakedriver.Node{win}}
	e := New(drv, fastOptions())

	if _, err := e.Status(); err != nil {
		t.Fatalf("Status: %v", err)
	}
	for _, op := range []string{"press", "selectAll", "setSelected", "menu", "launch", "quit", "raise", "maximize"} {
		if drv.CallCount(op) != 0 {
			t.Errorf("status performed a mutating call: %q", op)
		}
	}
}
