package reporting

import (
	"fmt"
	"time"

	"github.com/jihwankim/fazz/pkg/target"
)

// EpochReport is the per-epoch telemetry emitted by the fuzz loop: epoch
// number, formatted elapsed, epoch interval, cumulative active time,
// coverage, and queue length — exactly the fields spec.md §4.7 names.
type EpochReport struct {
	Epoch        int
	Elapsed      time.Duration
	Interval     time.Duration
	ActiveTime   time.Duration
	Coverage     target.CoverageSample
	QueueLen     int
}

// EpochReporter renders epoch telemetry through the structured logger plus
// a human banner line, mirroring the teacher's dual style of a zerolog event
// alongside a fmt.Printf progress line.
type EpochReporter struct {
	logger *Logger
}

// NewEpochReporter constructs an EpochReporter around an already-configured
// Logger (see NewLogger).
func NewEpochReporter(logger *Logger) *EpochReporter {
	return &EpochReporter{logger: logger}
}

// Report emits one epoch's telemetry line.
func (r *EpochReporter) Report(rep EpochReport) {
	r.logger.Info("epoch complete",
		"epoch", rep.Epoch,
		"elapsed", formatHMS(rep.Elapsed),
		"interval_s", rep.Interval.Seconds(),
		"active_s", rep.ActiveTime.Seconds(),
		"line_cov", rep.Coverage.LineAbs,
		"branch_cov", rep.Coverage.BranchAbs,
		"queue_len", rep.QueueLen,
	)
	fmt.Printf("[epoch %4d] elapsed=%s interval=%.2fs active=%s line=%d branch=%d queue=%d\n",
		rep.Epoch, formatHMS(rep.Elapsed), rep.Interval.Seconds(), formatHMS(rep.ActiveTime),
		rep.Coverage.LineAbs, rep.Coverage.BranchAbs, rep.QueueLen)
}

// Trace logs one call of a dry-run trace (spec.md §6 catch mode): the
// call's position, resolved name, and argument count, so an operator can
// see exactly what is about to be replayed before an external tool (e.g. a
// packet capture) is armed.
func (r *EpochReporter) Trace(index int, name string, argCount int) {
	r.logger.Info("catch trace", "index", index, "call", name, "args", argCount)
	fmt.Printf("[catch %2d] %s(%d args)\n", index, name, argCount)
}

// Summary emits the final one-line totals summary on termination.
func (r *EpochReporter) Summary(epochs int, activeTime time.Duration, cov target.CoverageSample, queueLen int) {
	r.logger.Info("run complete",
		"epochs", epochs,
		"active_s", activeTime.Seconds(),
		"line_cov", cov.LineAbs,
		"branch_cov", cov.BranchAbs,
		"queue_len", queueLen,
	)
	fmt.Printf("\ndone: %d epochs, active=%s, line=%d, branch=%d, queue=%d\n",
		epochs, formatHMS(activeTime), cov.LineAbs, cov.BranchAbs, queueLen)
}

func formatHMS(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
