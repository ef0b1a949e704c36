// Package fuzzer is the outer loop (spec.md §4.6): it owns the queue,
// composes the argument algebra, mutation engine, and target controller,
// isolates each testcase in a subordinate worker, classifies outcomes,
// persists interesting seeds, and emits epoch telemetry. Grounded on the
// teacher's pkg/fuzz/runner.go Runner.Run round shape (sample -> build ->
// execute -> classify -> log -> accumulate, ctx.Err()-checked interrupt
// path), composed with the coverage-guided classify/append-to-queue logic
// spec.md §4.6 itself specifies.
package fuzzer

import (
	"context"
	"time"

	"github.com/jihwankim/fazz/pkg/config"
	"github.com/jihwankim/fazz/pkg/corpus"
	"github.com/jihwankim/fazz/pkg/mutation"
	"github.com/jihwankim/fazz/pkg/reporting"
	"github.com/jihwankim/fazz/pkg/target"
)

// DefaultTimeoutMinutes is the CLI's -t/--timeout default (spec.md §6).
const DefaultTimeoutMinutes = 1

// Loop holds all state for one fuzzing run: the queue, running-best
// coverage, epoch count, and the cumulative active execution time the
// budget is measured against (spec.md §9's fixed Open Question: active
// time, not wall clock).
type Loop struct {
	Protocol string
	Target   *config.TargetConfig
	Queue    []*corpus.Seed
	Scheduler *mutation.Scheduler
	Reporter  *reporting.EpochReporter
	SeedDir   string

	bestLine   int
	bestBranch int
	activeTime time.Duration
	epoch      int
	runStart   time.Time
}

// NewLoop constructs a Loop seeded with one initial seed for protocol.
func NewLoop(protocol string, tc *config.TargetConfig, initial *corpus.Seed, sched *mutation.Scheduler, reporter *reporting.EpochReporter, seedDir string) *Loop {
	return &Loop{
		Protocol:  protocol,
		Target:    tc,
		Queue:     []*corpus.Seed{initial},
		Scheduler: sched,
		Reporter:  reporter,
		SeedDir:   seedDir,
	}
}

// Outcome is what FuzzOne classified a single testcase as.
type Outcome struct {
	Status corpus.SeedStatus
	Err    error
}

// FuzzOne runs the strictly serial per-testcase procedure spec.md §4.6
// names: acquire target, spawn a worker with a deadline, release target,
// sample coverage, classify.
func (l *Loop) FuzzOne(ctx context.Context, seed *corpus.Seed, testcaseTimeout time.Duration) Outcome {
	start := time.Now()
	defer func() { l.activeTime += time.Since(start) }()

	ctrl := target.NewController(l.Target)
	if err := ctrl.Start(ctx); err != nil {
		return Outcome{Status: corpus.Crash, Err: err}
	}

	workerCtx, cancel := context.WithTimeout(ctx, testcaseTimeout)
	result := RunWorker(workerCtx, l.Protocol, ctrl.Addr(), seed)
	cancel()

	_, termErr := ctrl.Terminate(ctx)
	_, _ = ctrl.Cleanup(ctx)

	if result.TimedOut {
		return Outcome{Status: corpus.Timeout}
	}
	if termErr != nil {
		return Outcome{Status: corpus.Crash, Err: termErr}
	}
	if result.Err != nil {
		// The client could not connect, or FnNotFound: the seed definition
		// itself is wrong. Treat as a crash classification so the fuzzer
		// surfaces it rather than silently discarding a testcase that could
		// never have run correctly.
		return Outcome{Status: corpus.Crash, Err: result.Err}
	}

	sample, covErr := ctrl.CollectCoverage(ctx)
	if covErr != nil {
		return Outcome{Status: corpus.Crash, Err: covErr}
	}

	interesting, newLine, newBranch := classifyCoverage(sample, l.bestLine, l.bestBranch)
	l.bestLine, l.bestBranch = newLine, newBranch
	if interesting {
		return Outcome{Status: corpus.Interesting}
	}
	return Outcome{Status: corpus.Boring}
}

// classifyCoverage is the pure decision spec.md §4.6 step 5 and §8's
// coverage-monotonicity scenario describe: a testcase is Interesting iff
// either absolute count strictly exceeds the running best, and the running
// best is monotonically non-decreasing across epochs regardless of outcome.
func classifyCoverage(sample target.CoverageSample, bestLine, bestBranch int) (interesting bool, newLine, newBranch int) {
	newLine, newBranch = bestLine, bestBranch
	if sample.LineAbs > bestLine {
		newLine = sample.LineAbs
		interesting = true
	}
	if sample.BranchAbs > bestBranch {
		newBranch = sample.BranchAbs
		interesting = true
	}
	return interesting, newLine, newBranch
}

// Catch runs the initial seed once and prints one epoch report, then
// returns — spec.md §4.6's catch mode, used to prime auxiliary tooling
// such as a packet capture. The dry run's call trace (resolved name and
// argument count per call) is logged first, matching the original tool's
// catch-mode behavior of surfacing exactly what is about to be replayed.
func (l *Loop) Catch(ctx context.Context, testcaseTimeout time.Duration) error {
	l.runStart = time.Now()
	seed := l.Queue[0]
	for i, call := range seed.Calls {
		l.Reporter.Trace(i, call.Name, len(call.Args))
	}
	outcome := l.FuzzOne(ctx, seed, testcaseTimeout)
	if outcome.Status == corpus.Timeout {
		return ErrSeedDryRunTimeout
	}
	l.Reporter.Report(reporting.EpochReport{
		Epoch:      0,
		Elapsed:    time.Since(l.runStart),
		Interval:   l.activeTime,
		ActiveTime: l.activeTime,
		Coverage:   target.CoverageSample{LineAbs: l.bestLine, BranchAbs: l.bestBranch},
		QueueLen:   len(l.Queue),
	})
	return outcome.Err
}

// Fuzz runs the full outer loop: epoch 0 is a dry run of the initial queue
// unmutated (a Timeout here is fatal: ErrSeedDryRunTimeout), then every
// subsequent epoch asks the mutation engine for a batch, runs each testcase,
// appends and persists Interesting seeds, discards Boring/Timeout, and
// persists Crash artefacts. The run terminates when cumulative active
// execution time reaches timeoutMinutes*60.
func (l *Loop) Fuzz(ctx context.Context, timeoutMinutes int, testcaseTimeout time.Duration) error {
	l.runStart = time.Now()
	budget := time.Duration(timeoutMinutes) * time.Minute

	corpus.RediscoverSeedIndex(l.SeedDir)

	// Epoch 0: dry run of the initial queue, unmutated.
	epochStart := time.Now()
	for _, seed := range l.Queue {
		outcome := l.FuzzOne(ctx, seed, testcaseTimeout)
		if outcome.Status == corpus.Timeout {
			return ErrSeedDryRunTimeout
		}
		if outcome.Err != nil {
			return outcome.Err
		}
	}
	l.reportEpoch(epochStart)

	for l.activeTime < budget {
		if ctx.Err() != nil {
			break
		}
		l.epoch++
		epochStart = time.Now()

		batch := l.Scheduler.Batch(l.Queue)
		for _, seed := range batch {
			if l.activeTime >= budget {
				break
			}
			outcome := l.FuzzOne(ctx, seed, testcaseTimeout)
			switch outcome.Status {
			case corpus.Interesting:
				seed.BumpPower()
				l.Queue = append(l.Queue, seed)
				_, _ = seed.Save(l.SeedDir, corpus.Interesting, l.Protocol)
			case corpus.Crash:
				_, _ = seed.Save(l.SeedDir, corpus.Crash, l.Protocol)
			case corpus.Boring, corpus.Timeout:
				// discarded
			}
		}
		l.reportEpoch(epochStart)
	}

	l.Reporter.Summary(l.epoch, l.activeTime, target.CoverageSample{LineAbs: l.bestLine, BranchAbs: l.bestBranch}, len(l.Queue))
	return nil
}

func (l *Loop) reportEpoch(epochStart time.Time) {
	l.Reporter.Report(reporting.EpochReport{
		Epoch:      l.epoch,
		Elapsed:    time.Since(l.runStart),
		Interval:   time.Since(epochStart),
		ActiveTime: l.activeTime,
		Coverage:   target.CoverageSample{LineAbs: l.bestLine, BranchAbs: l.bestBranch},
		QueueLen:   len(l.Queue),
	})
}
