package fileutil

import (
	"fmt"
	"io"
	"os"
)

// StdinName is the source path that selects the command's own stdin.
const StdinName = "-"

// OpenSource opens path for reading as a child's input. StdinName returns
// os.Stdin wrapped so that closing it leaves the real stdin open.
func OpenSource(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if path == StdinName {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path) //nolint:gosec // G304: path is chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	return f, nil
}
