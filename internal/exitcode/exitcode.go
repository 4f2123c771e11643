// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown item reference).
	UserError = 1

	// ConfigError indicates invalid or incomplete configuration.
	ConfigError = 2

	// BackendError indicates a load or save failure in the storage backend.
	BackendError = 3
)
