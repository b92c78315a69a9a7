// Package core provides the internal implementation behind the procrelay
// package: the package-level logger, run configuration and its validation,
// and Run, which applies a validated configuration to a process.Spec and
// hands it to the supervisor.
package core
