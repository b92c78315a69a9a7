package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/giantswarm/procrelay/internal/sentinel"
)

// ErrEmptyPath is returned when a sink or source path is empty.
const ErrEmptyPath = sentinel.Error("path must not be empty")

// ErrAtomicAppend is returned when a sink is asked to both append and write
// atomically.
const ErrAtomicAppend = sentinel.Error("atomic sink cannot append")

// SinkOptions configures how CreateSink opens its file.
type SinkOptions struct {
	Mode   *os.FileMode // Optional: permissions of the created file (ignored on Windows)
	Append bool         // If true, append to an existing file instead of truncating it
	Sync   bool         // If true, call Sync() before closing
	Atomic bool         // If true, write to a temp file then rename to path on Close
}

// Sink is an output file receiving one relayed stream. Writes go straight to
// the file; Close finalizes it. A Sink is written by one goroutine at a time.
type Sink struct {
	f         *os.File
	path      string
	writePath string
	sync      bool
}

// CreateSink opens path for writing, creating parent directories as needed.
// If opts is nil, uses default behavior (truncate, no sync, not atomic).
//
// The file is created with its target permissions via os.OpenFile, avoiding
// a window where it has broader permissions than intended. If opts.Mode is
// set, that mode is used; otherwise defaults to 0644.
//
// When opts.Atomic is true, data is written to a temporary file in the same
// directory as path, then renamed to path by Close. On POSIX systems rename
// is atomic, so concurrent readers never observe partially relayed output.
func CreateSink(path string, opts *SinkOptions) (*Sink, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	var o SinkOptions
	if opts != nil {
		o = *opts
	}
	if o.Atomic && o.Append {
		return nil, fmt.Errorf("create sink %s: %w", path, ErrAtomicAppend)
	}

	if err := EnsureDirForFile(path); err != nil {
		return nil, fmt.Errorf("prepare sink: %w", err)
	}

	f, writePath, err := openSinkFile(path, resolveFileMode(&o), o)
	if err != nil {
		return nil, err
	}
	return &Sink{f: f, path: path, writePath: writePath, sync: o.Sync || o.Atomic}, nil
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

// Path returns the final path of the sink.
func (s *Sink) Path() string {
	return s.path
}

// Close syncs (if requested), closes, and for atomic sinks renames the temp
// file to the final path. On failure an atomic sink's temp file is removed
// and path is left untouched.
func (s *Sink) Close() (retErr error) {
	if s.writePath != s.path {
		defer func() {
			if retErr != nil {
				_ = os.Remove(s.writePath)
			}
		}()
	}

	// For atomic writes, fsync before rename ensures a crash cannot leave the
	// renamed file with incomplete contents.
	if s.sync {
		if err := s.f.Sync(); err != nil {
			_ = s.f.Close()
			return fmt.Errorf("sync %s: %w", s.path, err)
		}
	}

	if err := s.f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}

	if s.writePath != s.path {
		if err := os.Rename(s.writePath, s.path); err != nil {
			return fmt.Errorf("rename temp file to %s: %w", s.path, err)
		}
	}
	return nil
}

// resolveFileMode returns the file mode from opts, defaulting to 0o644.
func resolveFileMode(opts *SinkOptions) os.FileMode {
	if opts.Mode != nil {
		return *opts.Mode
	}
	return 0o644
}

// openSinkFile opens the file that receives writes. For atomic sinks it is a
// temp file in the same directory as path (with the correct permissions) so
// that the final rename stays on one filesystem.
func openSinkFile(path string, mode os.FileMode, o SinkOptions) (*os.File, string, error) {
	if o.Atomic {
		tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-sink-*")
		if err != nil {
			return nil, "", fmt.Errorf("create temp file: %w", err)
		}
		writePath := tmpFile.Name()
		if err := tmpFile.Chmod(mode); err != nil {
			_ = tmpFile.Close()
			_ = os.Remove(writePath) //nolint:gosec // G304: writePath is from os.CreateTemp, not user input.
			return nil, "", fmt.Errorf("chmod temp file: %w", err)
		}
		return tmpFile, writePath, nil
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if o.Append {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, mode) //nolint:gosec // G304: path is chosen by the operator
	if err != nil {
		return nil, "", fmt.Errorf("create sink %s: %w", path, err)
	}
	return f, path, nil
}
