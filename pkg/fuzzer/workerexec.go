package fuzzer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/jihwankim/fazz/pkg/corpus"
	"github.com/jihwankim/fazz/pkg/protoclient"
)

// RunWorkerSubprocess implements the subprocess-isolation fallback spec.md §9
// describes as the language-neutral default ("do not substitute an
// in-process thread"). It is not this repo's default executor (see
// worker.go and DESIGN.md for why a goroutine suffices for a memory-safe
// runtime), but it is provided for protocol clients that are cgo/native and
// could genuinely hang or crash the owning OS thread. FuzzOne does not call it.
//
// RunWorkerSubprocess re-invokes the fazz binary with "--worker" (plus the
// protocol as the positional argument the root command requires), piping the
// seed's JSON document on stdin; the child executes exactly one seed and
// exits. The parent enforces the same ctx deadline by killing the child.
func RunWorkerSubprocess(ctx context.Context, selfPath, protocol, addr string, seed *corpus.Seed) WorkerResult {
	payload, err := json.Marshal(seed.ToDocument(protocol))
	if err != nil {
		return WorkerResult{Err: err}
	}

	cmd := exec.CommandContext(ctx, selfPath, "--worker", "--protocol", protocol, "--addr", addr, protocol)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return WorkerResult{Err: err}
	}

	if err := cmd.Start(); err != nil {
		return WorkerResult{Err: err}
	}
	go func() {
		_, _ = stdin.Write(payload)
		stdin.Close()
	}()

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return WorkerResult{Err: err}
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return WorkerResult{TimedOut: true}
	}
}

// Rehydrate rebuilds a live *corpus.Seed from a persisted SeedDocument.
// Each protocol's seed definition package supplies one, since only it knows
// the right mutate/unpack rule for its Record arguments; generic kinds
// (Int/Real/Bool/String/Enum) are rebuilt the same way for every protocol.
type Rehydrate func(doc *corpus.SeedDocument) (*corpus.Seed, error)

// RunAsWorker is the child-side entry point invoked by cmd/fazz's --worker
// flag: it reads a SeedDocument from stdin, executes it against
// (protocol, addr), and exits 0 on success or 1 on failure.
func RunAsWorker(rehydrate Rehydrate, protocol, addr string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fazz worker: read stdin:", err)
		os.Exit(2)
	}

	var doc corpus.SeedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		fmt.Fprintln(os.Stderr, "fazz worker: decode seed document:", err)
		os.Exit(2)
	}

	seed, err := rehydrate(&doc)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fazz worker: rehydrate seed:", err)
		os.Exit(2)
	}

	client, err := protoclient.New(protocol, addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fazz worker: connect:", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := seed.Execute(client); err != nil {
		fmt.Fprintln(os.Stderr, "fazz worker: execute:", err)
		os.Exit(1)
	}
	os.Exit(0)
}
