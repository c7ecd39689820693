// Package engine drives the host application's device-management UI
// through its accessibility tree: it classifies windows, extracts
// tables, reconciles row selection, resolves prompts, and composes the
// multi-step install/blueprint flows. All state is derived fresh from
// the live tree per command; nothing is cached across invocations.
package engine

import (
	"time"

	"github.com/acdrive/acdrive/internal/model"
	"github.com/acdrive/acdrive/internal/platform"
)

// Options bound every wait the engine performs.
type Options struct {
	// DeviceWindowTitles are the recognized titles of the device-list
	// views.
	DeviceWindowTitles []string
	// LaunchTimeout bounds ensureLaunchedAndReady.
	LaunchTimeout time.Duration
	// PromptTimeout bounds every "wait until a prompt/table appears"
	// site.
	PromptTimeout time.Duration
	// PollInterval is the fixed re-check interval for all waits.
	PollInterval time.Duration
	// MenuRetryDelay is the settle time before the single menu retry.
	MenuRetryDelay time.Duration
}

// DefaultOptions mirror the host application's observed timing.
func DefaultOptions() Options {
	return Options{
		DeviceWindowTitles: []string{"All Devices", "Supervised", "Unsupervised", "Recovery"},
		LaunchTimeout:      60 * time.Second,
		PromptTimeout:      30 * time.Second,
		PollInterval:       time.Second,
		MenuRetryDelay:     time.Second,
	}
}

// Engine composes accessibility primitives into device-management
// operations. It is not safe for concurrent use; the accessibility tree
// and front-most focus are one shared mutable resource.
type Engine struct {
	drv  platform.Driver
	opts Options
}

// New returns an Engine over drv. Zero fields in opts fall back to
// DefaultOptions.
func New(drv platform.Driver, opts Options) *Engine {
	def := DefaultOptions()
	if len(opts.DeviceWindowTitles) == 0 {
		opts.DeviceWindowTitles = def.DeviceWindowTitles
	}
	if opts.LaunchTimeout == 0 {
		opts.LaunchTimeout = def.LaunchTimeout
	}
	if opts.PromptTimeout == 0 {
		opts.PromptTimeout = def.PromptTimeout
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = def.PollInterval
	}
	if opts.MenuRetryDelay == 0 {
		opts.MenuRetryDelay = def.MenuRetryDelay
	}
	return &Engine{drv: drv, opts: opts}
}

// findFirst walks the subtree under ref breadth-first and returns the
// first element of the wanted role, descending at most maxDepth levels.
func (e *Engine) findFirst(ref model.Ref, role model.Role, maxDepth int) (model.Element, bool, error) {
	frontier := []model.Ref{ref}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []model.Ref
		for _, r := range frontier {
			children, err := e.drv.Children(r)
			if err != nil {
				return model.Element{}, false, err
			}
			for _, c := range children {
				if c.Role == role {
					return c, true, nil
				}
				next = append(next, c.Ref)
			}
		}
		frontier = next
	}
	return model.Element{}, false, nil
}
