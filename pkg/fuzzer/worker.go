package fuzzer

import (
	"context"
	"time"

	"github.com/jihwankim/fazz/pkg/corpus"
	"github.com/jihwankim/fazz/pkg/protoclient"
)

// WorkerResult is what a subordinate worker reports back: whether it
// finished within the deadline and, if so, its error: either the client
// construction error (e.g. the target refused the connection) or the seed's
// own execution error (an FnNotFound bubbling out of Seed.Execute).
type WorkerResult struct {
	TimedOut bool
	Err      error
}

// RunWorker constructs a client for (protocol, addr) and executes seed
// against it, isolated by ctx's deadline. This is the Go-native substitution
// for spec.md §5's subprocess-isolated executor: a goroutine plus a
// context.WithTimeout-bounded channel handoff. A Go goroutine blocked on
// network I/O can be safely abandoned — it leaks until the connection is
// forced closed or the process exits, but it cannot corrupt the fuzzer's
// own address space the way a foreign native client could. See
// DESIGN.md for the full rationale and RunWorkerSubprocess in workerexec.go
// for the subprocess fallback this repo also provides.
func RunWorker(ctx context.Context, protocol, addr string, seed *corpus.Seed) WorkerResult {
	done := make(chan error, 1)

	go func() {
		client, err := protoclient.New(protocol, addr)
		if err != nil {
			done <- err
			return
		}
		defer client.Close()
		done <- seed.Execute(client)
	}()

	select {
	case err := <-done:
		return WorkerResult{Err: err}
	case <-ctx.Done():
		// The goroutine above is abandoned; it will observe its own
		// network I/O erroring out once the target is terminated, or
		// simply leak until process exit. Neither corrupts the fuzzer.
		return WorkerResult{TimedOut: true}
	}
}

// DefaultTestcaseTimeout is the per-testcase worker deadline spec.md §4.6
// names (timeout_testcase, default 2.0s).
const DefaultTestcaseTimeout = 2 * time.Second
