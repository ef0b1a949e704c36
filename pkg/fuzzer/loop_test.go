package fuzzer

import (
	"testing"

	"github.com/jihwankim/fazz/pkg/target"
)

// TestClassifyCoverageMonotonicity exercises spec.md §8 scenario 6: scripted
// coverage samples (100,10) (100,10) (110,12) (110,12) must yield interesting
// flags [T,F,T,F] and a final running best of (110,12).
func TestClassifyCoverageMonotonicity(t *testing.T) {
	samples := []target.CoverageSample{
		{LineAbs: 100, BranchAbs: 10},
		{LineAbs: 100, BranchAbs: 10},
		{LineAbs: 110, BranchAbs: 12},
		{LineAbs: 110, BranchAbs: 12},
	}
	wantInteresting := []bool{true, false, true, false}

	var bestLine, bestBranch int
	for i, s := range samples {
		interesting, newLine, newBranch := classifyCoverage(s, bestLine, bestBranch)
		if interesting != wantInteresting[i] {
			t.Fatalf("sample %d: interesting=%v want %v", i, interesting, wantInteresting[i])
		}
		if newLine < bestLine || newBranch < bestBranch {
			t.Fatalf("sample %d: running best regressed: (%d,%d) -> (%d,%d)", i, bestLine, bestBranch, newLine, newBranch)
		}
		bestLine, bestBranch = newLine, newBranch
	}
	if bestLine != 110 || bestBranch != 12 {
		t.Fatalf("final running best = (%d,%d), want (110,12)", bestLine, bestBranch)
	}
}

func TestClassifyCoverageFirstSampleAlwaysInteresting(t *testing.T) {
	interesting, line, branch := classifyCoverage(target.CoverageSample{LineAbs: 1, BranchAbs: 0}, 0, 0)
	if !interesting || line != 1 || branch != 0 {
		t.Fatalf("got interesting=%v line=%d branch=%d", interesting, line, branch)
	}
}
