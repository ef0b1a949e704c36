// Package target owns the scoped lifecycle of the server under test
// (spec.md §4.5): start, wait-for-ready, terminate, cleanup, and coverage
// sampling. Grounded on the teacher's pkg/injection/container/restart.go
// (stop/wait/start/wait-for-state shape, translated from Docker's container
// API to a bare os/exec child process since spec.md §4.5 and §6 are explicit
// that cmd/path are a plain argv+working-directory pair, not a container)
// and pkg/core/orchestrator/orchestrator.go's scoped-resource pattern
// (deferred cleanup on every exit path). Coverage-line parsing is a literal
// port of original_source/fuzzer.py's collect_coverage() regex grammar.
package target

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os/exec"
	"regexp"
	"strconv"
	"syscall"
	"time"

	"github.com/jihwankim/fazz/pkg/config"
)

// Errors surfaced by the controller up to the fuzzer (spec.md §4.5, §7).
var (
	ErrServerNotStarted        = fmt.Errorf("target: server failed to start")
	ErrServerAlreadyTerminated = fmt.Errorf("target: server already terminated")
)

// startGrace is the small sleep spec.md §4.5 names to let the server bind
// its listening socket before the client attempts to connect.
const startGrace = 100 * time.Millisecond

// terminateGrace is how long Terminate waits for the child to exit after a
// catchable os.Interrupt/SIGTERM before escalating to an unconditional Kill.
const terminateGrace = 2 * time.Second

// CoverageSample is the (line_pct, line_abs, branch_pct, branch_abs) tuple
// spec.md §3 defines; only the absolute counts participate in the
// "interesting" decision (spec.md §4.6 step 5).
type CoverageSample struct {
	LinePct   float64
	LineAbs   int
	BranchPct float64
	BranchAbs int
}

var (
	lineRe   = regexp.MustCompile(`^lines: (\d+(?:\.\d+)?)% \((\d+) out of (\d+)\)`)
	branchRe = regexp.MustCompile(`^branches: (\d+(?:\.\d+)?)% \((\d+) out of (\d+)\)`)
)

// Controller wraps one server-under-test process. A Controller is scoped to
// a single testcase: NewController, Start, (drive via Addr), Terminate,
// Cleanup — release must run on every exit path, per spec.md §4.5.
type Controller struct {
	cfg   *config.TargetConfig
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// NewController prepares a Controller for cfg. The process is not started
// yet; call Start.
func NewController(cfg *config.TargetConfig) *Controller {
	return &Controller{cfg: cfg}
}

// Addr is the (host, port) the client should connect to, formatted as
// host:port. The controller is oblivious to which protocol is spoken over
// it (spec.md §4.5).
func (c *Controller) Addr() string {
	return net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
}

// Start launches cfg.Cmd in directory cfg.Path with a pipe on stdin, then
// waits startGrace for the server to bind. Stdout and stderr are not piped:
// both go to the null device.
func (c *Controller) Start(ctx context.Context) error {
	if len(c.cfg.Cmd) == 0 {
		return ErrServerNotStarted
	}
	cmd := exec.CommandContext(ctx, c.cfg.Cmd[0], c.cfg.Cmd[1:]...)
	cmd.Dir = c.cfg.Path
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerNotStarted, err)
	}
	c.stdin = stdin
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrServerNotStarted, err)
	}
	c.cmd = cmd

	time.Sleep(startGrace)

	if c.cmd.ProcessState != nil && c.cmd.ProcessState.Exited() {
		return ErrServerAlreadyTerminated
	}
	return nil
}

// Terminate sends a catchable termination signal (SIGTERM) to the child and
// waits up to terminateGrace for it to exit, escalating to an unconditional
// Kill only if the grace window elapses — a SIGKILL can never be caught, so
// sending it first would make every server exit "killed by signal" and never
// the clean code AcceptedCodes expects. Calling Terminate on a Controller
// that never started is a no-op returning exit code 0.
func (c *Controller) Terminate(ctx context.Context) (int, error) {
	if c.cmd == nil || c.cmd.Process == nil {
		return 0, nil
	}
	if c.stdin != nil {
		_ = c.stdin.Close()
	}

	waitDone := make(chan error, 1)
	go func() { waitDone <- c.cmd.Wait() }()

	_ = c.cmd.Process.Signal(syscall.SIGTERM)

	var err error
	select {
	case err = <-waitDone:
	case <-time.After(terminateGrace):
		_ = c.cmd.Process.Kill()
		err = <-waitDone
	}

	code := exitCode(c.cmd, err)
	if !acceptedCode(code, c.cfg.AcceptedCodes) {
		return code, fmt.Errorf("target: server exited abnormally with code %d", code)
	}
	return code, nil
}

// Cleanup runs the configured clean_cmd, if any (e.g. rm stale data dirs),
// and returns its exit code.
func (c *Controller) Cleanup(ctx context.Context) (int, error) {
	if len(c.cfg.Clean) == 0 {
		return 0, nil
	}
	cmd := exec.CommandContext(ctx, c.cfg.Clean[0], c.cfg.Clean[1:]...)
	cmd.Dir = c.cfg.Path
	err := cmd.Run()
	return exitCode(cmd, err), err
}

// CollectCoverage invokes the external coverage tool rooted at cfg.Root and
// parses the two lines spec.md §6 pins:
//
//	^lines: <pct>% (<abs> out of <tot>)
//	^branches: <pct>% (<abs> out of <tot>)
//
// Any other stdout shape fails the sample — per spec.md §7, a coverage-tool
// parse failure is fatal to the run, not recoverable per-testcase.
func (c *Controller) CollectCoverage(ctx context.Context) (CoverageSample, error) {
	if len(c.cfg.CoverageCmd) == 0 {
		return CoverageSample{}, fmt.Errorf("target: no coverage_cmd configured")
	}
	cmd := exec.CommandContext(ctx, c.cfg.CoverageCmd[0], c.cfg.CoverageCmd[1:]...)
	cmd.Dir = c.cfg.Root
	out, err := cmd.StdoutPipe()
	if err != nil {
		return CoverageSample{}, fmt.Errorf("target: coverage tool pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return CoverageSample{}, fmt.Errorf("target: coverage tool start: %w", err)
	}

	var sample CoverageSample
	var sawLine, sawBranch bool
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		line := scanner.Text()
		if m := lineRe.FindStringSubmatch(line); m != nil {
			sample.LinePct, _ = strconv.ParseFloat(m[1], 64)
			abs, _ := strconv.Atoi(m[2])
			sample.LineAbs = abs
			sawLine = true
			continue
		}
		if m := branchRe.FindStringSubmatch(line); m != nil {
			sample.BranchPct, _ = strconv.ParseFloat(m[1], 64)
			abs, _ := strconv.Atoi(m[2])
			sample.BranchAbs = abs
			sawBranch = true
			continue
		}
	}
	waitErr := cmd.Wait()

	if !sawLine || !sawBranch {
		return CoverageSample{}, fmt.Errorf("target: cannot parse coverage tool output (lines_ok=%v branches_ok=%v)", sawLine, sawBranch)
	}
	if waitErr != nil {
		// The tool may exit nonzero even on a parseable report (gcovr-style
		// tools sometimes do); the parsed sample is what matters here.
		_ = waitErr
	}
	return sample, nil
}

func acceptedCode(code int, accepted []int) bool {
	for _, a := range accepted {
		if code == a {
			return true
		}
	}
	return false
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}
