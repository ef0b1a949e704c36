package corpus

import "errors"

// Seed is an ordered sequence of protocol API calls with typed arguments —
// the fuzzer's unit of input. Calls themselves are only ever changed by a
// mutator operating on a Clone; Execute only advances the bookkeeping
// counters.
type Seed struct {
	Calls     []*Call
	Mutations []string
	Power     int
	ExecCount int
	SuccCount int
	FailCount int
}

// NewSeed constructs a Seed from an ordered call list. Power defaults to 1.
func NewSeed(calls ...*Call) *Seed {
	return &Seed{Calls: calls, Power: 1}
}

// Len returns the number of calls in the seed.
func (s *Seed) Len() int { return len(s.Calls) }

// Get returns the call at position i.
func (s *Seed) Get(i int) *Call { return s.Calls[i] }

// Set replaces the call at position i.
func (s *Seed) Set(i int, c *Call) { s.Calls[i] = c }

// InsertAfter inserts c immediately after position i.
func (s *Seed) InsertAfter(i int, c *Call) {
	s.Calls = append(s.Calls, nil)
	copy(s.Calls[i+2:], s.Calls[i+1:])
	s.Calls[i+1] = c
}

// Delete removes the call at position i.
func (s *Seed) Delete(i int) {
	s.Calls = append(s.Calls[:i], s.Calls[i+1:]...)
}

// Execute iterates calls in order against client. Per-call FnExecFailed
// failures are caught and counted (fail_count++, seed continues);
// FnNotFound is a seed-definition bug and propagates unchanged so the caller
// can treat it as fatal.
func (s *Seed) Execute(client Client) error {
	for _, c := range s.Calls {
		s.ExecCount++
		err := c.Execute(client)
		if err == nil {
			s.SuccCount++
			continue
		}
		if errors.Is(err, ErrFnNotFound) {
			return err
		}
		s.FailCount++
	}
	return nil
}

// Copy produces a deep-independent clone of the seed. Execution counters
// reset to zero; the mutation history is preserved so lineage stays
// inspectable, and Power carries over since it is a property of the lineage,
// not of a single execution.
func (s *Seed) Copy() *Seed {
	calls := make([]*Call, len(s.Calls))
	for i, c := range s.Calls {
		calls[i] = c.Clone()
	}
	mutations := append([]string(nil), s.Mutations...)
	return &Seed{
		Calls:     calls,
		Mutations: mutations,
		Power:     s.Power,
	}
}

// BumpPower increments the seed's power (capped at 10) — the supplemented
// heuristic from the original implementation that lets a seed which just
// contributed new coverage get sampled more aggressively next epoch. This is
// additive to the scheduler's algorithm, not a change to it: Power is only
// ever an input the scheduler already consumes.
func (s *Seed) BumpPower() {
	if s.Power < 10 {
		s.Power++
	}
}

// TerminalIndex returns the position of the IsLast call, or -1 if none.
func (s *Seed) TerminalIndex() int {
	for i, c := range s.Calls {
		if c.IsLast {
			return i
		}
	}
	return -1
}
