// Command fazz is the single CLI entry point spec.md §6 names:
//
//	fazz <protocol> [-t MINUTES] [-d] [-c] [-l]
//
// protocol selects the client and initial seed (ftp, smtp, dns, dicom).
// Grounded on the teacher's cmd/chaos-runner/main.go cobra-root pattern,
// collapsed to a single command since spec.md §6 specifies one entry point
// rather than a subcommand tree.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jihwankim/fazz/pkg/config"
	"github.com/jihwankim/fazz/pkg/corpus"
	"github.com/jihwankim/fazz/pkg/emergency"
	"github.com/jihwankim/fazz/pkg/fuzzer"
	"github.com/jihwankim/fazz/pkg/mutation"
	"github.com/jihwankim/fazz/pkg/reporting"
	"github.com/jihwankim/fazz/pkg/seeddefs"
)

var version = "dev"

var seedBuilders = map[string]func() *corpus.Seed{
	"ftp":   seeddefs.FTP,
	"smtp":  seeddefs.SMTP,
	"dns":   seeddefs.DNS,
	"dicom": seeddefs.DICOM,
}

var (
	timeoutMinutes int
	debug          bool
	catchMode      bool
	writeLog       bool
	configPath     string
	topN           int
	mutLimit       int
	testcaseTimeout time.Duration

	// worker-mode flags backing the subprocess isolation fallback
	// (pkg/fuzzer.RunAsWorker); hidden from --help since it is an internal
	// re-exec path, not something an operator invokes directly.
	workerMode     bool
	workerProtocol string
	workerAddr     string
)

var rootCmd = &cobra.Command{
	Use:   "fazz <protocol>",
	Short: "Coverage-guided, stateful API fuzzer for network protocol servers",
	Long: `fazz repeatedly starts a protocol server, drives it through a client
stub by executing a mutated sequence of protocol-level API calls, measures
code coverage inside the server, and evolves the corpus of call sequences
toward ones that uncover new coverage.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runFazz,
}

func init() {
	rootCmd.Flags().IntVarP(&timeoutMinutes, "timeout", "t", fuzzer.DefaultTimeoutMinutes, "budget in minutes for cumulative active execution")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "verbose logging")
	rootCmd.Flags().BoolVarP(&catchMode, "catch", "c", false, "catch mode: one dry run, then exit")
	rootCmd.Flags().BoolVarP(&writeLog, "log", "l", false, "write a per-run log file")
	rootCmd.Flags().StringVar(&configPath, "config", "server-config.ini", "path to the server-config.ini describing the target")
	rootCmd.Flags().IntVar(&topN, "top-n", 10, "scheduler: sample at most this many queued seeds per epoch")
	rootCmd.Flags().IntVar(&mutLimit, "mut-limit", 5, "scheduler: cap on mutated copies drawn per selected seed")
	rootCmd.Flags().DurationVar(&testcaseTimeout, "testcase-timeout", fuzzer.DefaultTestcaseTimeout, "per-testcase worker deadline")

	rootCmd.Flags().BoolVar(&workerMode, "worker", false, "internal: run as a subprocess-isolated seed executor")
	rootCmd.Flags().StringVar(&workerProtocol, "protocol", "", "internal: protocol name for -worker")
	rootCmd.Flags().StringVar(&workerAddr, "addr", "", "internal: target address for -worker")
	_ = rootCmd.Flags().MarkHidden("worker")
	_ = rootCmd.Flags().MarkHidden("protocol")
	_ = rootCmd.Flags().MarkHidden("addr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runFazz(cmd *cobra.Command, args []string) error {
	if workerMode {
		fuzzer.RunAsWorker(rehydrateSeed, workerProtocol, workerAddr)
		return nil
	}

	protocol := args[0]
	builder, ok := seedBuilders[protocol]
	if !ok {
		return fmt.Errorf("unknown protocol %q; valid: ftp, smtp, dns, dicom", protocol)
	}

	tc, err := config.LoadTarget(configPath)
	if err != nil {
		return fmt.Errorf("%w: %v", fuzzer.ErrServerConfigNotFound, err)
	}

	fw, err := config.LoadFramework("")
	if err != nil {
		return err
	}

	logLevel := reporting.LogLevel(fw.Logging.Level)
	if debug {
		logLevel = reporting.LogLevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if writeLog {
		if err := os.MkdirAll(fw.Reporting.LogDir, 0755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		path := fmt.Sprintf("%s/%s-%s.log", fw.Reporting.LogDir, protocol, time.Now().Format("20060102-150405"))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create log file: %w", err)
		}
		defer f.Close()
		logOutput = io.MultiWriter(os.Stdout, f)
	}

	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  logLevel,
		Format: reporting.LogFormat(fw.Logging.Format),
		Output: logOutput,
	})
	reporter := reporting.NewEpochReporter(logger)

	sched := mutation.NewScheduler(topN, mutLimit)
	loop := fuzzer.NewLoop(protocol, tc, builder(), sched, reporter, fw.Reporting.SeedDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emergencyCtl := emergency.New()
	emergencyCtl.Start(ctx)
	emergencyCtl.OnStop(func() {
		logger.Warn("interrupted, target cleanup already ran on FuzzOne's own exit path")
	})

	if catchMode {
		return loop.Catch(ctx, testcaseTimeout)
	}
	return loop.Fuzz(ctx, timeoutMinutes, testcaseTimeout)
}
