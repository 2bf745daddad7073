package commands

import (
	"errors"
	"fmt"
	"io"

	"household/internal/exitcode"
	"household/internal/service"
)

// reportError prints a backend error and returns its exit code.
func reportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
