// Package dispatch is the process-boundary entry point: it maps a
// command name and a JSON payload onto one orchestration operation and
// renders the result (or a structured error) back to JSON. Payloads are
// validated against embedded JSON schemas before any UI interaction, so
// malformed input never causes partial side effects.
package dispatch

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"

	"github.com/acdrive/acdrive/internal/engine"
	"github.com/acdrive/acdrive/internal/history"
	"github.com/acdrive/acdrive/internal/jsonio"
	"github.com/acdrive/acdrive/internal/model"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Operations is the orchestration surface the dispatcher drives.
// *engine.Engine implements it; tests substitute fakes.
type Operations interface {
	Status() (model.StatusReport, error)
	ListDevices() ([]model.RowRecord, error)
	Cancel() error
	PerformAction(model.ActionRequest) error
	ApplyBlueprint(udids []string, blueprint string) error
	InstallApps(udids, apps []string) error
}

// Commands, in the order they are documented.
const (
	CmdStatus    = "status"
	CmdList      = "list"
	CmdCancel    = "cancel"
	CmdAction    = "action"
	CmdBlueprint = "blueprint"
	CmdVPPApps   = "vppapps"
)

// blueprintPayload and vppAppsPayload are the argument shapes of the two
// bulk commands.
type blueprintPayload struct {
	Blueprint string   `json:"blueprint"`
	UDIDs     []string `json:"udids"`
}

type vppAppsPayload struct {
	Apps  []string `json:"apps"`
	UDIDs []string `json:"udids"`
}

// Dispatcher routes commands to operations. It optionally appends every
// execution to a history store.
type Dispatcher struct {
	ops     Operations
	store   *history.Store
	schemas map[string]*jsonschema.Schema
}

// New builds a Dispatcher over ops. The embedded payload schemas are
// compiled eagerly; a failure there is a programming error.
func New(ops Operations) (*Dispatcher, error) {
	compiler := jsonschema.NewCompiler()
	schemas := make(map[string]*jsonschema.Schema, 3)
	for cmd, file := range map[string]string{
		CmdAction:    "schemas/action.json",
		CmdBlueprint: "schemas/blueprint.json",
		CmdVPPApps:   "schemas/vppapps.json",
	} {
		raw, err := schemaFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", file, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", file, err)
		}
		if err := compiler.AddResource(file, doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", file, err)
		}
		sch, err := compiler.Compile(file)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", file, err)
		}
		schemas[cmd] = sch
	}
	return &Dispatcher{ops: ops, schemas: schemas}, nil
}

// WithHistory enables execution recording to store.
func (d *Dispatcher) WithHistory(store *history.Store) *Dispatcher {
	d.store = store
	return d
}

// Dispatch runs one command. The returned bytes are the JSON result
// (nil for commands with no result); a non-nil error always carries an
// engine code via engine.CodeOf.
func (d *Dispatcher) Dispatch(ctx context.Context, command string, payload []byte) ([]byte, error) {
	start := time.Now()
	result, err := d.run(command, payload)
	d.record(ctx, command, payload, result, err, time.Since(start))
	return result, err
}

func (d *Dispatcher) run(command string, payload []byte) ([]byte, error) {
	switch command {
	case CmdStatus:
		report, err := d.ops.Status()
		if err != nil {
			return nil, err
		}
		return jsonio.Encode(report)

	case CmdList:
		rows, err := d.ops.ListDevices()
		if err != nil {
			return nil, err
		}
		return jsonio.Encode(rows)

	case CmdCancel:
		return nil, d.ops.Cancel()

	case CmdAction:
		var req model.ActionRequest
		if err := d.decodePayload(command, payload, &req); err != nil {
			return nil, err
		}
		return nil, d.ops.PerformAction(req)

	case CmdBlueprint:
		var req blueprintPayload
		if err := d.decodePayload(command, payload, &req); err != nil {
			return nil, err
		}
		return nil, d.ops.ApplyBlueprint(req.UDIDs, req.Blueprint)

	case CmdVPPApps:
		var req vppAppsPayload
		if err := d.decodePayload(command, payload, &req); err != nil {
			return nil, err
		}
		return nil, d.ops.InstallApps(req.UDIDs, req.Apps)

	default:
		return nil, engine.Errorf(engine.CodeUnknownCommand, "unknown command %q", command)
	}
}

// decodePayload validates payload against the command's schema, then
// fills dst. Validation happens on the decoded structured value so the
// error distinguishes malformed JSON from missing fields.
func (d *Dispatcher) decodePayload(command string, payload []byte, dst any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return engine.Errorf(engine.CodeMissingArgument, "command %q requires a payload", command)
	}
	value, err := jsonio.Decode(payload)
	if err != nil {
		return engine.Errorf(engine.CodeMalformed, "%v", err)
	}
	if err := d.schemas[command].Validate(value); err != nil {
		return classifyValidation(command, err)
	}
	if err := jsonio.DecodeInto(payload, dst); err != nil {
		return engine.Errorf(engine.CodeMalformed, "%v", err)
	}
	return nil
}

func classifyValidation(command string, err error) error {
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) && hasRequiredCause(verr) {
		return engine.Errorf(engine.CodeMissingArgument, "command %q: %v", command, err)
	}
	return engine.Errorf(engine.CodeMalformed, "command %q: %v", command, err)
}

func hasRequiredCause(verr *jsonschema.ValidationError) bool {
	if _, ok := verr.ErrorKind.(*kind.Required); ok {
		return true
	}
	for _, cause := range verr.Causes {
		if hasRequiredCause(cause) {
			return true
		}
	}
	return false
}

// ErrorPayload renders err in the boundary error shape
// {message, code}.
func ErrorPayload(err error) []byte {
	out, encErr := jsonio.Encode(engine.Error{
		Code:    engine.CodeOf(err),
		Message: err.Error(),
	})
	if encErr != nil {
		return []byte(fmt.Sprintf(`{"message":%q,"code":%d}`, err.Error(), engine.CodeDriverFailure))
	}
	return out
}

func (d *Dispatcher) record(ctx context.Context, command string, payload, result []byte, err error, dur time.Duration) {
	if d.store == nil {
		return
	}
	rec := history.Record{
		Command:  command,
		Payload:  string(payload),
		Result:   string(result),
		Duration: dur,
	}
	if err != nil {
		rec.Error = err.Error()
		rec.Code = int(engine.CodeOf(err))
	}
	// History is diagnostics; a failed write must not fail the command.
	_ = d.store.Append(ctx, rec)
}
