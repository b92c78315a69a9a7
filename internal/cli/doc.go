// Package cli implements the procrelay command line on top of cobra.
//
// The run subcommand maps a supervised invocation onto process exit codes:
// a completed child's exit code is returned unchanged, an aborted run
// (signal or --timeout) exits with ExitAborted, and a launch failure exits
// with ExitLaunchFailed.
package cli
