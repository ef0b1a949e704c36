// Package mutation implements the weighted mutator set and the stateless
// scheduler that turns a queue of seeds into the next epoch's batch.
package mutation

import (
	"math/rand"

	"github.com/jihwankim/fazz/pkg/corpus"
)

// Mutator transforms a seed into a new, independent mutated copy. Mutators
// never touch their input seed; they operate on a fresh Copy.
type Mutator func(s *corpus.Seed) *corpus.Seed

// Tag identifies a mutator in a seed's mutation history.
type Tag string

const (
	TagDup Tag = "dup"
	TagSwap Tag = "swap"
	TagDel Tag = "del"
	TagArg Tag = "arg"
	TagIns Tag = "ins"
)

// Dup picks a call index uniformly (excluding the terminal position) and
// inserts a deep copy of that call immediately after it. Always applicable;
// always increases length by exactly one.
func Dup(s *corpus.Seed) *corpus.Seed {
	out := s.Copy()
	i := randomNonTerminalIndex(out)
	out.InsertAfter(i, out.Get(i).Clone())
	out.Mutations = append(out.Mutations, string(TagDup))
	return out
}

// Swap picks two distinct non-terminal indices and swaps their calls. No-op
// when the seed has fewer than 2 calls, or fewer than 2 non-terminal calls.
func Swap(s *corpus.Seed) *corpus.Seed {
	out := s.Copy()
	if out.Len() < 2 {
		out.Mutations = append(out.Mutations, string(TagSwap))
		return out
	}

	candidates := nonTerminalIndices(out)
	if len(candidates) < 2 {
		out.Mutations = append(out.Mutations, string(TagSwap))
		return out
	}

	i := candidates[rand.Intn(len(candidates))]
	j := i
	for j == i {
		j = candidates[rand.Intn(len(candidates))]
	}
	ci, cj := out.Get(i), out.Get(j)
	out.Set(i, cj)
	out.Set(j, ci)
	out.Mutations = append(out.Mutations, string(TagSwap))
	return out
}

// Del picks a non-terminal call index and removes it. No-op when the seed
// has 2 or fewer calls (delete never reduces length below 2).
func Del(s *corpus.Seed) *corpus.Seed {
	out := s.Copy()
	if out.Len() <= 2 {
		out.Mutations = append(out.Mutations, string(TagDel))
		return out
	}
	candidates := nonTerminalIndices(out)
	if len(candidates) == 0 {
		out.Mutations = append(out.Mutations, string(TagDel))
		return out
	}
	i := candidates[rand.Intn(len(candidates))]
	out.Delete(i)
	out.Mutations = append(out.Mutations, string(TagDel))
	return out
}

// Arg picks one call uniformly and mutates every mutable argument of it.
// No-op when the seed has no calls with mutable arguments; the attempt is
// still recorded in history since the original does.
func Arg(s *corpus.Seed) *corpus.Seed {
	out := s.Copy()
	if out.Len() == 0 {
		return out
	}
	candidates := make([]int, 0, out.Len())
	for i := 0; i < out.Len(); i++ {
		for _, a := range out.Get(i).Args {
			if a.Mutable {
				candidates = append(candidates, i)
				break
			}
		}
	}
	if len(candidates) > 0 {
		i := candidates[rand.Intn(len(candidates))]
		for _, a := range out.Get(i).Args {
			a.Mutate()
		}
	}
	out.Mutations = append(out.Mutations, string(TagArg))
	return out
}

// Ins is reserved for future structural insertion; currently a no-op that
// still records its tag, matching the weight table entry of 0.0 (never
// selected by the scheduler, but present so the weighted set is complete).
func Ins(s *corpus.Seed) *corpus.Seed {
	out := s.Copy()
	out.Mutations = append(out.Mutations, string(TagIns))
	return out
}

// DefaultWeights is the default weighted mutator set: argument mutation is
// the richest source of diversity so it dominates; structural edits shake
// sequences loose without overwhelming them. Ins is reserved (weight 0) and
// never drawn, though it is wired into the set for completeness.
var DefaultWeights = map[Tag]float64{
	TagArg:  0.4,
	TagDup:  0.2,
	TagSwap: 0.2,
	TagDel:  0.2,
	TagIns:  0.0,
}

var mutatorByTag = map[Tag]Mutator{
	TagDup:  Dup,
	TagSwap: Swap,
	TagDel:  Del,
	TagArg:  Arg,
	TagIns:  Ins,
}

func randomNonTerminalIndex(s *corpus.Seed) int {
	candidates := nonTerminalIndices(s)
	if len(candidates) == 0 {
		return s.Len() - 1
	}
	return candidates[rand.Intn(len(candidates))]
}

func nonTerminalIndices(s *corpus.Seed) []int {
	term := s.TerminalIndex()
	out := make([]int, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if i != term {
			out = append(out, i)
		}
	}
	return out
}
