package mutation

import (
	"math/rand"

	"github.com/jihwankim/fazz/pkg/corpus"
)

// Scheduler is the stateless, randomised batch producer described in
// spec.md §4.4: sample top_n seeds without replacement when the queue is
// larger than top_n, then draw seed.Power mutators per selected seed.
type Scheduler struct {
	TopN     int
	MutLimit int
	Weights  map[Tag]float64
}

// NewScheduler constructs a Scheduler with the spec defaults (top_n=10,
// mut_limit=5) unless overridden.
func NewScheduler(topN, mutLimit int) *Scheduler {
	if topN <= 0 {
		topN = 10
	}
	if mutLimit <= 0 {
		mutLimit = 5
	}
	weights := make(map[Tag]float64, len(DefaultWeights))
	for k, v := range DefaultWeights {
		weights[k] = v
	}
	return &Scheduler{TopN: topN, MutLimit: mutLimit, Weights: weights}
}

// Batch produces the flat, traversal-ordered batch of mutated seeds for the
// next epoch. Power drives how many mutated copies a selected seed yields,
// not MutLimit — MutLimit only caps pathologically large Power values so a
// single misconfigured seed cannot blow up a batch.
func (sch *Scheduler) Batch(queue []*corpus.Seed) []*corpus.Seed {
	selected := sch.selectSeeds(queue)

	batch := make([]*corpus.Seed, 0, len(selected))
	for _, s := range selected {
		draws := s.Power
		if draws > sch.MutLimit {
			draws = sch.MutLimit
		}
		if draws < 1 {
			draws = 1
		}
		for i := 0; i < draws; i++ {
			tag := sch.drawWeighted()
			mutator := mutatorByTag[tag]
			batch = append(batch, mutator(s))
		}
	}
	return batch
}

// selectSeeds samples top_n seeds without replacement when the queue
// exceeds top_n; otherwise it uses the whole queue, in order.
func (sch *Scheduler) selectSeeds(queue []*corpus.Seed) []*corpus.Seed {
	if len(queue) <= sch.TopN {
		out := make([]*corpus.Seed, len(queue))
		copy(out, queue)
		return out
	}

	indices := rand.Perm(len(queue))[:sch.TopN]
	out := make([]*corpus.Seed, sch.TopN)
	for i, idx := range indices {
		out[i] = queue[idx]
	}
	return out
}

// drawWeighted performs one weighted draw with replacement over the
// mutator set.
func (sch *Scheduler) drawWeighted() Tag {
	var total float64
	for _, w := range sch.Weights {
		total += w
	}
	if total <= 0 {
		return TagArg
	}

	// The cumulative walk uses a fixed tag order rather than ranging over the
	// Weights map, so the mapping from r to a tag is the same on every draw.
	// Tags in Weights outside this list count toward total but are never
	// returned; the TagArg fallback below covers that remainder.
	r := rand.Float64() * total
	for _, tag := range []Tag{TagArg, TagDup, TagSwap, TagDel, TagIns} {
		w := sch.Weights[tag]
		if r < w {
			return tag
		}
		r -= w
	}
	return TagArg
}
