package process

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"time"
)

func collectLines(t *testing.T, ctx context.Context, src io.Reader) ([]string, error) {
	t.Helper()

	lines, errc := readLines(ctx, src)
	var got []string
	for line := range lines {
		got = append(got, line)
	}
	select {
	case err := <-errc:
		return got, err
	default:
		return got, nil
	}
}

func TestReadLines(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want []string
	}{
		"empty":            {in: "", want: nil},
		"one line":         {in: "a\n", want: []string{"a"}},
		"unterminated":     {in: "a\nb", want: []string{"a", "b"}},
		"crlf":             {in: "a\r\nb\r\n", want: []string{"a", "b"}},
		"blank lines":      {in: "\n\n", want: []string{"", ""}},
		"long line":        {in: strings.Repeat("x", 1<<17) + "\n", want: []string{strings.Repeat("x", 1<<17)}},
		"trailing cr only": {in: "a\r", want: []string{"a"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := collectLines(t, context.Background(), strings.NewReader(tc.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("lines = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReadLines_SourceError(t *testing.T) {
	t.Parallel()

	want := errors.New("source broke")
	src := io.MultiReader(strings.NewReader("first\n"), errReader{err: want})

	got, err := collectLines(t, context.Background(), src)
	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want %v", err, want)
	}
	if !slices.Equal(got, []string{"first"}) {
		t.Errorf("lines = %q, want [first]", got)
	}
}

func TestReadLines_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	lines, _ := readLines(ctx, strings.NewReader("a\nb\nc\n"))

	// Take nothing; the reader is parked sending the first line.
	cancel()

	select {
	case _, ok := <-lines:
		// Either the first line raced the cancel or the channel closed.
		if ok {
			for range lines {
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reader did not stop after cancel")
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
