// Package cmdline converts a single pre-joined argument string into the form
// the host's process-creation facility expects.
//
// On Windows the string is passed through untouched and the target program
// splits it. Elsewhere Split applies the Microsoft C runtime rules so that a
// given argument string produces the same argv on every platform.
package cmdline
