// Package sentinel provides an immutable error type for sentinel error declarations.
//
// procrelay reports launch failures and channel faults through sentinel errors
// that callers match with errors.Is. Declaring them with errors.New would make
// them reassignable package variables; Error is a string type, so sentinels
// can be declared as const and still compare correctly through wrapped chains.
package sentinel
