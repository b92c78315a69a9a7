// Package fileutil opens the files the procrelay command connects to a
// child's standard streams.
//
// EnsureDir creates directories recursively. CreateSink opens an output file
// for a relayed stream, optionally writing through a temp file that is
// renamed into place on Close so that readers never see partial output.
// OpenSource opens an input file, treating "-" as the command's own stdin.
package fileutil
