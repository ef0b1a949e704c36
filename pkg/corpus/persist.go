package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// SeedStatus is the closed set of outcomes a testcase can be classified
// into. Only Interesting and Crash are persisted; Boring and Timeout are
// discarded.
type SeedStatus int

const (
	Boring SeedStatus = iota
	Interesting
	Timeout
	Crash
)

func (s SeedStatus) String() string {
	switch s {
	case Boring:
		return "boring"
	case Interesting:
		return "interesting"
	case Timeout:
		return "timeout"
	case Crash:
		return "crash"
	default:
		return "unknown"
	}
}

// seedIndex is the process-global monotonic index saved-seed filenames draw
// their suffix from. It is mutated only by the fuzzer's single-threaded main
// flow, per spec — no atomic is strictly required, but atomic.Int64 costs
// nothing and removes any doubt if a future caller isn't single-threaded.
var seedIndex atomic.Int64

// SeedDocument is the self-describing, round-trippable JSON form a Seed is
// persisted as. The teacher's own report persistence (pkg/reporting/storage.go)
// uses JSON for the same reason: a format that survives a process restart
// without needing the exact in-memory struct layout.
type SeedDocument struct {
	Protocol  string         `json:"protocol"`
	Calls     []CallDocument `json:"calls"`
	Mutations []string       `json:"mutations"`
	Power     int            `json:"power"`
}

type CallDocument struct {
	Name   string         `json:"name"`
	IsLast bool            `json:"is_last"`
	Args   []ArgDocument  `json:"args"`
}

type ArgDocument struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Value   any    `json:"value"`
	Mutable bool   `json:"mutable"`
}

// ToDocument converts the seed to its persisted form. Record arguments whose
// Value is not JSON-marshalable as-is are the protocol definition's
// responsibility (e.g. storing a UID string rather than a live object).
func (s *Seed) ToDocument(protocol string) SeedDocument {
	doc := SeedDocument{Protocol: protocol, Mutations: s.Mutations, Power: s.Power}
	for _, c := range s.Calls {
		cd := CallDocument{Name: c.Name, IsLast: c.IsLast}
		for _, a := range c.Args {
			cd.Args = append(cd.Args, ArgDocument{
				Kind:    a.Kind.String(),
				Name:    a.Name,
				Value:   a.Value,
				Mutable: a.Mutable,
			})
		}
		doc.Calls = append(doc.Calls, cd)
	}
	return doc
}

// Save writes the seed to dir under the layout spec.md §6 pins:
// cov_<timestamp>_<index07> for Interesting, crash_<...> for Crash. Boring
// and Timeout are not persisted; Save is a no-op for them. The monotonic
// index is process-global and increments by one per save.
func (s *Seed) Save(dir string, status SeedStatus, protocol string) (string, error) {
	var prefix string
	switch status {
	case Interesting:
		prefix = "cov"
	case Crash:
		prefix = "crash"
	default:
		return "", nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("corpus: create seed dir: %w", err)
	}

	idx := seedIndex.Add(1)
	name := fmt.Sprintf("%s_%s_%07d", prefix, time.Now().Format("2006-01-02-15-04-05"), idx)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(s.ToDocument(protocol), "", "  ")
	if err != nil {
		return "", fmt.Errorf("corpus: marshal seed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("corpus: write seed file: %w", err)
	}
	return path, nil
}

// LoadSeedDocument reads and unmarshals a persisted seed file without
// reconstructing live Arg closures — callers rehydrate a Seed by matching
// each ArgDocument's Kind back to the protocol's own constructors, since only
// the protocol's seed definition knows the right mutate/unpack rule for a
// Record argument.
func LoadSeedDocument(path string) (*SeedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: read seed file: %w", err)
	}
	var doc SeedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corpus: unmarshal seed file: %w", err)
	}
	return &doc, nil
}

// RediscoverSeedIndex scans dir for existing saved-seed filenames and resets
// the process-global monotonic index to the highest suffix found, so the next
// Save uses one past it and a restarted fuzzer does not reuse suffixes. If dir does not exist or is
// empty, the index starts at 0 (spec.md §9: "on restart, rediscover max from
// the directory or start at 0").
func RediscoverSeedIndex(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	var max int64
	for _, e := range entries {
		name := e.Name()
		if len(name) < 7 {
			continue
		}
		suffix := name[len(name)-7:]
		var n int64
		if _, err := fmt.Sscanf(suffix, "%07d", &n); err == nil && n > max {
			max = n
		}
	}
	seedIndex.Store(max)
}
