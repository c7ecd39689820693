package dispatch

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/acdrive/acdrive/internal/engine"
	"github.com/acdrive/acdrive/internal/history"
	"github.com/acdrive/acdrive/internal/jsonio"
	"github.com/acdrive/acdrive/internal/model"
)

// fakeOps records operation calls without any UI.
type fakeOps struct {
	calls     []string
	report    model.StatusReport
	rows      []model.RowRecord
	action    model.ActionRequest
	blueprint string
	udids     []string
	apps      []string
	err       error
}

func (f *fakeOps) Status() (model.StatusReport, error) {
	f.calls = append(f.calls, "status")
	return f.report, f.err
}

func (f *fakeOps) ListDevices() ([]model.RowRecord, error) {
	f.calls = append(f.calls, "list")
	return f.rows, f.err
}

func (f *fakeOps) Cancel() error {
	f.calls = append(f.calls, "cancel")
	return f.err
}

func (f *fakeOps) PerformAction(req model.ActionRequest) error {
	f.calls = append(f.calls, "action")
	f.action = req
	return f.err
}

func (f *fakeOps) ApplyBlueprint(udids []string, blueprint string) error {
	f.calls = append(f.calls, "blueprint")
	f.udids, f.blueprint = udids, blueprint
	return f.err
}

func (f *fakeOps) InstallApps(udids, apps []string) error {
	f.calls = append(f.calls, "vppapps")
	f.udids, f.apps = udids, apps
	return f.err
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeOps) {
	t.Helper()
	ops := &fakeOps{}
	d, err := New(ops)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, ops
}

func TestDispatch_UnknownCommand(t *testing.T) {
	d, ops := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), "explode", nil)
	if engine.CodeOf(err) != engine.CodeUnknownCommand {
		t.Fatalf("expected CodeUnknownCommand, got %v", err)
	}
	if len(ops.calls) != 0 {
		t.Errorf("unknown command must not reach operations: %v", ops.calls)
	}
}

func TestDispatch_MissingPayload(t *testing.T) {
	d, ops := newTestDispatcher(t)

	for _, cmd := range []string{CmdAction, CmdBlueprint, CmdVPPApps} {
		_, err := d.Dispatch(context.Background(), cmd, nil)
		if engine.CodeOf(err) != engine.CodeMissingArgument {
			t.Errorf("%s: expected CodeMissingArgument, got %v", cmd, err)
		}
	}
	if len(ops.calls) != 0 {
		t.Errorf("missing payload must not reach operations: %v", ops.calls)
	}
}

func TestDispatch_MalformedPayload(t *testing.T) {
	d, ops := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), CmdAction, []byte(`{"choice":`))
	if engine.CodeOf(err) != engine.CodeMalformed {
		t.Fatalf("expected CodeMalformed, got %v", err)
	}
	if len(ops.calls) != 0 {
		t.Errorf("malformed payload must not reach operations: %v", ops.calls)
	}
}

func TestDispatch_MissingRequiredField(t *testing.T) {
	d, ops := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), CmdBlueprint, []byte(`{"blueprint":"Checkout"}`))
	if engine.CodeOf(err) != engine.CodeMissingArgument {
		t.Fatalf("expected CodeMissingArgument for absent udids, got %v", err)
	}
	if len(ops.calls) != 0 {
		t.Errorf("invalid payload must not reach operations: %v", ops.calls)
	}
}

func TestDispatch_EmptyUDIDsRejected(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), CmdBlueprint, []byte(`{"blueprint":"Checkout","udids":[]}`))
	if engine.CodeOf(err) != engine.CodeMalformed {
		t.Fatalf("expected CodeMalformed for empty udids, got %v", err)
	}
}

func TestDispatch_StatusRendersReport(t *testing.T) {
	d, ops := newTestDispatcher(t)
	ops.report = model.StatusReport{
		Activity: []string{"Step 2 of 7"},
		Busy:     true,
		Alerts:   []model.PromptDescriptor{},
	}

	result, err := d.Dispatch(context.Background(), CmdStatus, nil)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	var got map[string]any
	if err := jsonio.DecodeInto(result, &got); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if got["busy"] != true {
		t.Errorf("expected busy=true in %s", result)
	}
	if _, ok := got["alerts"]; !ok {
		t.Errorf("expected alerts key in %s", result)
	}
}

func TestDispatch_ListRendersRows(t *testing.T) {
	d, ops := newTestDispatcher(t)
	ops.rows = []model.RowRecord{
		{"Name": "iPad A", "UDID": "udid-a", model.SelectedKey: false},
	}

	result, err := d.Dispatch(context.Background(), CmdList, nil)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	var rows []map[string]any
	if err := jsonio.DecodeInto(result, &rows); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if len(rows) != 1 || rows[0]["UDID"] != "udid-a" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestDispatch_ActionRoutesDecodedRequest(t *testing.T) {
	d, ops := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), CmdAction,
		[]byte(`{"choice":"Apply","options":["Update apps"]}`))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if ops.action.Choice != "Apply" || len(ops.action.Options) != 1 {
		t.Errorf("request not routed: %+v", ops.action)
	}
}

func TestDispatch_VPPAppsRoutesDecodedRequest(t *testing.T) {
	d, ops := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), CmdVPPApps,
		[]byte(`{"apps":["Word"],"udids":["udid-a","udid-b"]}`))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(ops.udids) != 2 || len(ops.apps) != 1 || ops.apps[0] != "Word" {
		t.Errorf("request not routed: udids=%v apps=%v", ops.udids, ops.apps)
	}
}

func TestDispatch_CancelRoutes(t *testing.T) {
	d, ops := newTestDispatcher(t)

	if _, err := d.Dispatch(context.Background(), CmdCancel, nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(ops.calls) != 1 || ops.calls[0] != "cancel" {
		t.Errorf("unexpected calls: %v", ops.calls)
	}
}

func TestErrorPayload_Shape(t *testing.T) {
	err := engine.Errorf(engine.CodeWindowNotFound, "device window not found")
	payload := ErrorPayload(err)

	var got struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	if derr := jsonio.DecodeInto(payload, &got); derr != nil {
		t.Fatalf("error payload is not JSON: %v", derr)
	}
	if got.Message != "device window not found" || got.Code != int(engine.CodeWindowNotFound) {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestDispatch_RecordsHistory(t *testing.T) {
	store, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	defer store.Close()

	d, _ := newTestDispatcher(t)
	d.WithHistory(store)

	if _, err := d.Dispatch(context.Background(), CmdStatus, nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if _, err := d.Dispatch(context.Background(), "explode", nil); err == nil {
		t.Fatal("expected unknown command error")
	}

	records, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	var failed *history.Record
	for i := range records {
		if records[i].Command == "explode" {
			failed = &records[i]
		}
	}
	if failed == nil {
		t.Fatal("failed execution not recorded")
	}
	if failed.Code != int(engine.CodeUnknownCommand) || failed.Error == "" {
		t.Errorf("failure details not recorded: %+v", failed)
	}
}
