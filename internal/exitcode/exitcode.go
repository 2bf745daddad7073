// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error: bad arguments, unknown task id,
	// invalid filter or sort.
	UserError = 1

	// AuthError indicates a missing or rejected session, or missing OAuth
	// credentials.
	AuthError = 2

	// BackendError indicates a backend, API or network failure.
	BackendError = 3
)
