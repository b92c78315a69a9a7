package process

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// readLines reads src line by line on its own goroutine and delivers each
// line, without its terminator, on the returned channel. The channel is
// closed at end of input; a read error other than io.EOF is delivered on
// errc first. The goroutine stops early once ctx is done, but a src.Read that
// never returns keeps it alive; it only ever touches src.
func readLines(ctx context.Context, src io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		br := bufio.NewReader(src)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				select {
				case lines <- trimEOL(line):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					errc <- err
				}
				return
			}
		}
	}()
	return lines, errc
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// forwardInput copies lines from src to the child's stdin until src is
// exhausted or the combined signal fires, then closes stdin so the child sees
// end of input. It is a no-op when stdin is not piped.
func (co *coordinator) forwardInput(combined context.Context, src io.Reader) {
	dst := co.child.stdin
	if dst == nil {
		return
	}
	defer co.child.closeStream(Stdin)

	lines, errc := readLines(combined, src)
	for {
		select {
		case <-combined.Done():
			co.log.Debug("input forwarding canceled", "cause", context.Cause(combined))
			return
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					co.callerFault(Stdin, "read", err)
				default:
					co.log.Debug("input source exhausted")
				}
				return
			}
			// One write per line keeps a line and its terminator together.
			if _, err := io.WriteString(dst, line+lineTerminator); err != nil {
				co.channelFault(Stdin, "write", err)
				return
			}
		}
	}
}
