package platform

import (
	"fmt"
	"runtime"
)

// ErrUnsupported is returned on platforms with no driver registered.
var ErrUnsupported = fmt.Errorf("acdrive is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// NewDriverFunc is set by platform-specific packages via init().
// See internal/platform/darwin for the macOS registration. Tests swap it
// for a fake.
var NewDriverFunc func(app string) (Driver, error)

// NewDriver returns a Driver bound to the named host application.
func NewDriver(app string) (Driver, error) {
	if NewDriverFunc == nil {
		return nil, ErrUnsupported
	}
	return NewDriverFunc(app)
}
