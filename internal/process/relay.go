package process

import (
	"context"
	"io"
)

// relayOutput copies the child's stream s to sink one chunk at a time until
// end of stream or until the coordinator aborts and closes the pipe. Exactly
// the bytes read are written, in order; nothing is accumulated beyond the
// single chunk buffer.
//
// The relay watches the coordinator's abort signal rather than the combined
// signal: after a natural exit the pipe still holds the child's last output,
// and it must be drained to end of stream.
//
// A sink write failure ends the relay and asks the coordinator to close the
// pipe, so the child sees a broken pipe instead of blocking on a full one.
func (co *coordinator) relayOutput(abort context.Context, s Stream, sink io.Writer) {
	src := co.child.stream(s)
	buf := make([]byte, co.chunkSize)
	log := co.log.With("stream", s)

	for {
		if abort.Err() != nil {
			log.Debug("relay stopped by abort")
			return
		}

		n, err := src.Read(buf)
		if n > 0 {
			wn, werr := sink.Write(buf[:n])
			if werr == nil && wn < n {
				werr = io.ErrShortWrite
			}
			if werr != nil {
				co.callerFault(s, "write", werr)
				co.sinkFailed <- s
				return
			}
		}
		if err != nil {
			co.channelFault(s, "read", err)
			return
		}
	}
}
