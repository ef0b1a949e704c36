package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArgMutateRespectsMutableGate(t *testing.T) {
	a := NewInt("n", 0, false)
	a.Mutate()
	if a.Value != int64(0) {
		t.Fatalf("expected pinned arg to stay unmutated, got %v", a.Value)
	}
}

func TestBoolMutateToggles(t *testing.T) {
	a := NewBool("flag", true, true)
	for i := 0; i < 20; i++ {
		before := a.Value.(bool)
		a.Mutate()
		after, ok := a.Value.(bool)
		if !ok {
			t.Fatalf("boolean mutated out of its value space: %#v", a.Value)
		}
		if after == before {
			t.Fatalf("boolean mutation must be an unconditional flip, got %v -> %v", before, after)
		}
	}
}

func TestStringMutateEmptyIsNoop(t *testing.T) {
	a := NewString("s", "", true)
	a.Mutate()
	if a.Value != "" {
		t.Fatalf("empty string mutation must be a no-op, got %q", a.Value)
	}
}

func TestEnumMutateSamplesMemberSet(t *testing.T) {
	members := []any{"A", "B", "C"}
	a := NewEnum("e", "A", members, true)
	for i := 0; i < 50; i++ {
		a.Mutate()
		found := false
		for _, m := range members {
			if m == a.Value {
				found = true
			}
		}
		if !found {
			t.Fatalf("enum mutated outside its member set: %v", a.Value)
		}
	}
}

func TestCallExecuteUnknownNameIsFnNotFound(t *testing.T) {
	c := NewCall("bogus", false)
	err := c.Execute(stubClient{})
	if !errors.Is(err, ErrFnNotFound) {
		t.Fatalf("expected ErrFnNotFound, got %v", err)
	}
}

func TestSeedCopyIsIndependent(t *testing.T) {
	s := NewSeed(NewCall("noop", false, NewInt("n", 1, true)))
	clone := s.Copy()
	clone.Get(0).Args[0].Value = int64(999)

	if s.Get(0).Args[0].Value == int64(999) {
		t.Fatalf("mutating the clone affected the original seed")
	}
}

func TestSeedCopyResetsCountersPreservesHistory(t *testing.T) {
	s := NewSeed(NewCall("noop", false))
	s.Mutations = append(s.Mutations, "dup")
	s.ExecCount, s.SuccCount, s.FailCount = 3, 2, 1

	clone := s.Copy()
	if clone.ExecCount != 0 || clone.SuccCount != 0 || clone.FailCount != 0 {
		t.Fatalf("copy must reset execution counters, got %+v", clone)
	}
	if diff := cmp.Diff(s.Mutations, clone.Mutations); diff != "" {
		t.Fatalf("copy must preserve mutation history (-orig +clone):\n%s", diff)
	}
}

func TestSeedExecuteCountsBoundedByCallCount(t *testing.T) {
	s := NewSeed(
		NewCall("ok", false),
		NewCall("fails", false),
		NewCall("ok", false),
	)
	_ = s.Execute(failingClient{failOn: "fails"})
	if s.SuccCount+s.FailCount > s.Len() {
		t.Fatalf("succ_count+fail_count must not exceed call count: %d+%d > %d", s.SuccCount, s.FailCount, s.Len())
	}
}

func TestSeedSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewSeed(
		NewCall("login", false, NewString("user", "anonymous", true)),
		NewCall("quit", true),
	)

	path, err := s.Save(dir, Interesting, "ftp")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("unexpected save directory: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	doc, err := LoadSeedDocument(path)
	if err != nil {
		t.Fatalf("LoadSeedDocument: %v", err)
	}
	if len(doc.Calls) != s.Len() {
		t.Fatalf("round-trip call count mismatch: got %d want %d", len(doc.Calls), s.Len())
	}
	if doc.Calls[0].Args[0].Value != "anonymous" {
		t.Fatalf("round-trip argument value mismatch: %v", doc.Calls[0].Args[0].Value)
	}
	if !doc.Calls[1].IsLast {
		t.Fatalf("round-trip lost is_last flag")
	}
}

func TestSeedSaveDiscardsBoringAndTimeout(t *testing.T) {
	dir := t.TempDir()
	s := NewSeed(NewCall("noop", false))

	for _, status := range []SeedStatus{Boring, Timeout} {
		path, err := s.Save(dir, status, "ftp")
		if err != nil {
			t.Fatalf("Save(%v): %v", status, err)
		}
		if path != "" {
			t.Fatalf("Save(%v) should not persist, got path %q", status, path)
		}
	}
}

type stubClient struct{}

func (stubClient) Call(name string, args []any) (any, error) {
	return nil, ErrFnNotFound
}

type failingClient struct{ failOn string }

func (f failingClient) Call(name string, args []any) (any, error) {
	if name == f.failOn {
		return nil, errors.New("boom")
	}
	return nil, nil
}
