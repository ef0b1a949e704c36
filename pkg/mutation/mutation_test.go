package mutation

import (
	"testing"

	"github.com/jihwankim/fazz/pkg/corpus"
)

func buildSeed(n int, terminal bool) *corpus.Seed {
	calls := make([]*corpus.Call, 0, n)
	for i := 0; i < n; i++ {
		calls = append(calls, corpus.NewCall("call", false, corpus.NewInt("n", int64(i), true)))
	}
	if terminal {
		calls = append(calls, corpus.NewCall("quit", true))
	}
	return corpus.NewSeed(calls...)
}

func TestMutatorReturnsIndependentCopy(t *testing.T) {
	s := buildSeed(3, false)
	out := Dup(s)
	out.Get(0).Args[0].Value = int64(-1)
	if s.Get(0).Args[0].Value == int64(-1) {
		t.Fatalf("mutating the mutator's output affected the original seed")
	}
}

func TestDupAlwaysIncreasesLengthByOne(t *testing.T) {
	s := buildSeed(5, false)
	out := Dup(s)
	if out.Len() != s.Len()+1 {
		t.Fatalf("dup must increase length by exactly one: got %d want %d", out.Len(), s.Len()+1)
	}
}

func TestSwapPreservesTerminal(t *testing.T) {
	s := buildSeed(3, true)
	term := s.TerminalIndex()
	for i := 0; i < 1000; i++ {
		s = Swap(s)
		if s.TerminalIndex() != term || !s.Get(term).IsLast {
			t.Fatalf("swap moved the terminal call off index %d after %d applications", term, i)
		}
	}
}

func TestSwapNoopUnderTwoCalls(t *testing.T) {
	s := buildSeed(1, false)
	out := Swap(s)
	if out.Len() != 1 || out.Get(0).Args[0].Value != s.Get(0).Args[0].Value {
		t.Fatalf("swap on a single-call seed must be a no-op")
	}
}

func TestDelNeverReducesBelowTwo(t *testing.T) {
	s := buildSeed(2, false)
	for i := 0; i < 50; i++ {
		s = Del(s)
		if s.Len() < 2 {
			t.Fatalf("del reduced length below 2: %d", s.Len())
		}
	}
}

func TestDelPreservesTerminal(t *testing.T) {
	s := buildSeed(4, true)
	for i := 0; i < 200; i++ {
		s = Del(s)
		if term := s.TerminalIndex(); term != s.Len()-1 {
			t.Fatalf("del left terminal call at %d, not last position %d", term, s.Len()-1)
		}
	}
}

func TestArgMutatesOnlyMutableArgs(t *testing.T) {
	pinned := corpus.NewInt("pinned", 42, false)
	call := corpus.NewCall("call", false, pinned)
	s := corpus.NewSeed(call)

	for i := 0; i < 20; i++ {
		out := Arg(s)
		if out.Get(0).Args[0].Value != int64(42) {
			t.Fatalf("arg mutator touched a pinned (non-mutable) argument")
		}
	}
}

func TestArgMutationIntegerBounds(t *testing.T) {
	call := corpus.NewCall("call", false, corpus.NewInt("n", 0, true))
	s := corpus.NewSeed(call)
	out := Arg(s)
	if _, ok := out.Get(0).Args[0].Value.(int64); !ok {
		t.Fatalf("integer arg mutated out of its kind: %#v", out.Get(0).Args[0].Value)
	}
}

func TestSchedulerUsesWholeQueueWhenBelowTopN(t *testing.T) {
	sch := NewScheduler(10, 5)
	queue := []*corpus.Seed{buildSeed(2, false), buildSeed(2, false)}
	for _, s := range queue {
		s.Power = 1
	}
	batch := sch.Batch(queue)
	if len(batch) != len(queue) {
		t.Fatalf("power=1 over a small queue should yield one mutated copy per seed: got %d want %d", len(batch), len(queue))
	}
}

func TestSchedulerPowerOneYieldsOneCopy(t *testing.T) {
	sch := NewScheduler(10, 5)
	s := buildSeed(3, false)
	s.Power = 1
	batch := sch.Batch([]*corpus.Seed{s})
	if len(batch) != 1 {
		t.Fatalf("power=1 must yield exactly one mutated copy, got %d", len(batch))
	}
}

func TestSchedulerTopNSamplesWithoutReplacement(t *testing.T) {
	sch := NewScheduler(2, 5)
	queue := make([]*corpus.Seed, 5)
	for i := range queue {
		queue[i] = buildSeed(2, false)
		queue[i].Power = 1
	}
	batch := sch.Batch(queue)
	if len(batch) != 2 {
		t.Fatalf("top_n=2 over a 5-seed queue should produce a 2-seed batch, got %d", len(batch))
	}
}
