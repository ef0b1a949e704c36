package target

import (
	"context"
	"testing"

	"github.com/jihwankim/fazz/pkg/config"
)

// TestCollectCoverageParsesGcovrGrammar exercises spec.md §6's coverage-tool
// contract: two lines matching "^lines: <pct>% (<abs> out of <tot>)" and
// "^branches: <pct>% (<abs> out of <tot>)", a literal port of
// original_source/fuzzer.py's collect_coverage() regexes.
func TestCollectCoverageParsesGcovrGrammar(t *testing.T) {
	cfg := testConfig()
	cfg.CoverageCmd = []string{"printf", "lines: 91.3%% (210 out of 230)\nbranches: 40.0%% (80 out of 200)\n"}

	ctrl := NewController(cfg)
	sample, err := ctrl.CollectCoverage(context.Background())
	if err != nil {
		t.Fatalf("CollectCoverage: %v", err)
	}
	if sample.LineAbs != 210 || sample.BranchAbs != 80 {
		t.Fatalf("got %+v, want LineAbs=210 BranchAbs=80", sample)
	}
	if sample.LinePct != 91.3 || sample.BranchPct != 40.0 {
		t.Fatalf("got %+v, want LinePct=91.3 BranchPct=40.0", sample)
	}
}

func TestCollectCoverageMalformedOutputFails(t *testing.T) {
	cfg := testConfig()
	cfg.CoverageCmd = []string{"echo", "not a coverage report"}

	ctrl := NewController(cfg)
	if _, err := ctrl.CollectCoverage(context.Background()); err == nil {
		t.Fatal("expected an error for malformed coverage output")
	}
}

func TestAcceptedCode(t *testing.T) {
	cases := []struct {
		code     int
		accepted []int
		want     bool
	}{
		{0, []int{0}, true},
		{1, []int{0}, false},
		{137, []int{0, 137}, true},
	}
	for _, tc := range cases {
		if got := acceptedCode(tc.code, tc.accepted); got != tc.want {
			t.Errorf("acceptedCode(%d, %v) = %v, want %v", tc.code, tc.accepted, got, tc.want)
		}
	}
}

// TestTerminateSendsCatchableSignalFirst exercises the fix for sending an
// unconditional Kill straight away: a child that traps SIGTERM and exits 0
// must be observed as exit code 0, not -1/"killed by signal", since
// AcceptedCodes defaults to {0} and a premature SIGKILL would fail every
// testcase including the epoch-0 dry run.
func TestTerminateSendsCatchableSignalFirst(t *testing.T) {
	cfg := testConfig()
	cfg.Cmd = []string{"sh", "-c", "trap 'exit 0' TERM; sleep 5 & wait"}
	cfg.Path = "."

	ctrl := NewController(cfg)
	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	code, err := ctrl.Terminate(context.Background())
	if err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	if code != 0 {
		t.Fatalf("Terminate exit code = %d, want 0 (child should have caught SIGTERM)", code)
	}
}

func TestAddrFormatsHostPort(t *testing.T) {
	cfg := testConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 2200
	ctrl := NewController(cfg)
	if got, want := ctrl.Addr(), "127.0.0.1:2200"; got != want {
		t.Fatalf("Addr() = %q, want %q", got, want)
	}
}

func testConfig() *config.TargetConfig {
	return &config.TargetConfig{Host: "127.0.0.1", Port: 0, AcceptedCodes: []int{0}}
}
