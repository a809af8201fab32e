package script

import (
	"errors"
	"fmt"
)

// ErrRunnerClosed is returned when running a script on a closed Runner.
var ErrRunnerClosed = errors.New("script runner is closed")

// Error reports a failed script.
type Error struct {
	// Source names the script: a file path or "<string>".
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
