package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("line\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rc, err := OpenSource(path)
	if err != nil {
		t.Fatalf("OpenSource() error: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "line\n" {
		t.Errorf("content = %q, want %q", got, "line\n")
	}
}

func TestOpenSource_Errors(t *testing.T) {
	t.Parallel()

	if _, err := OpenSource(""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("OpenSource(\"\") error = %v, want %v", err, ErrEmptyPath)
	}
	if _, err := OpenSource(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OpenSource(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestOpenSource_StdinCloseIsNoOp(t *testing.T) {
	t.Parallel()

	rc, err := OpenSource(StdinName)
	if err != nil {
		t.Fatalf("OpenSource(-) error: %v", err)
	}
	if err := rc.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := os.Stdin.Stat(); err != nil {
		t.Errorf("os.Stdin unusable after Close: %v", err)
	}
}
