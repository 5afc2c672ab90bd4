package cli

import (
	"errors"
	"fmt"
)

// Common CLI errors
var (
	ErrNoEndpointTable = errors.New("no endpoint table given - use --config or SERVERIFY_CONFIG")
)

// ExitError ends the process with Code after the command has already
// reported the problem itself.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
