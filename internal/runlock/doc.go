// Package runlock serializes procrelay invocations across processes with an
// advisory file lock, so that two runs sharing a lock file never supervise
// their children at the same time.
package runlock
