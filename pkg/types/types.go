// Package types holds the small set of value types shared across the CLI
// boundary: currently just the exit-code sentinel.
package types

import "fmt"

// ExitError carries a specific process exit code out of the command layer.
// cmd.Execute unwraps it via errors.As; any other error exits with code 1.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Message
}
