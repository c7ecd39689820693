package engine

import (
	"errors"
	"time"
)

// ErrPollTimeout is returned by poll when the condition never held.
// Callers convert it into the error code appropriate to their wait site.
var ErrPollTimeout = errors.New("timed out waiting for condition")

// poll re-checks fn at a fixed interval until it reports true, it
// returns an error, or the bounded attempt count derived from timeout is
// exhausted. Every wait in the engine goes through here so that no loop
// can block indefinitely.
func poll(interval, timeout time.Duration, fn func() (bool, error)) error {
	attempts := int(timeout / interval)
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; ; i++ {
		ok, err := fn()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if i >= attempts {
			return ErrPollTimeout
		}
		time.Sleep(interval)
	}
}
