// Package procrelay supervises a single external process and relays its
// standard streams.
//
// Run launches an executable with a pre-joined argument string (never
// interpreted by a shell), forwards lines from an optional input source to
// the child's stdin, and relays the child's stdout and stderr to optional
// sinks as the bytes arrive. Canceling the context aborts the invocation:
// the child is killed and every handle is released before Run returns.
//
// # Basic Usage
//
//	import "github.com/giantswarm/procrelay"
//
//	var stdout, stderr bytes.Buffer
//	out, err := procrelay.Run(ctx, procrelay.ProcessSpec{
//	    Path:   "dotnet",
//	    Args:   `msbuild "My Project.csproj" /t:Build`,
//	    Stdout: &stdout,
//	    Stderr: &stderr,
//	})
//	if err != nil {
//	    // errors.Is(err, procrelay.ErrLaunchFailed): the process never started.
//	    log.Fatal(err)
//	}
//	if out.IsAborted() {
//	    // ctx was canceled first; there is no reliable exit code.
//	}
//	fmt.Println(out.ExitCode)
//
// # Outcomes
//
// Every successful launch yields exactly one Outcome. Completed carries the
// child's exit code; a non-zero code is the child's own failure, not an
// invocation error. Aborted means the context was canceled before the child
// exited; Outcome.Code reports AbortedExitCode for it. A cancellation that
// arrives after the child already exited does not change the outcome.
//
// # Streams
//
// A nil Stdin, Stdout or Stderr leaves that channel connected to the parent's
// own stream and starts no goroutine for it. Output is relayed in chunks of at
// most WithChunkSize bytes, one chunk in flight per stream, with byte order
// preserved. Read and write failures on the streams end the affected relay
// without failing the invocation; those seen while the child was still
// running are listed in Outcome.Faults.
package procrelay
