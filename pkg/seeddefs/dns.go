package seeddefs

import (
	"math/rand"

	"github.com/jihwankim/fazz/pkg/corpus"
)

// DNS builds the initial DNS seed: a single query call whose Record
// argument carries a hand-built wire-format question for "fazz.test A IN".
// DNS wire bytes are exactly the protocol-specific composite spec.md §3
// assigns to Record(R); no DNS library is available in the retrieved
// example pack, so the seed definition owns the byte layout and the client
// stays a thin UDP transport (see pkg/protoclient/dns.go).
func DNS() *corpus.Seed {
	query := buildQuery("fazz.test", 1, 1) // qtype=A, qclass=IN

	record := corpus.NewRecord("query", query, true, mutateDNSQuery, nil)
	return corpus.NewSeed(
		corpus.NewCall("query", true, record),
	)
}

// buildQuery constructs a minimal DNS query: a 12-byte header followed by
// one question section.
func buildQuery(name string, qtype, qclass uint16) []byte {
	out := make([]byte, 12)
	out[0], out[1] = 0x13, 0x37 // transaction ID
	out[2] = 0x01               // RD (recursion desired)
	out[5] = 0x01                // QDCOUNT = 1

	for _, label := range splitLabels(name) {
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	out = append(out, 0x00) // root label

	out = append(out, byte(qtype>>8), byte(qtype))
	out = append(out, byte(qclass>>8), byte(qclass))
	return out
}

func splitLabels(name string) []string {
	var labels []string
	start := 0
	for i := 0; i <= len(name); i++ {
		if i == len(name) || name[i] == '.' {
			if i > start {
				labels = append(labels, name[start:i])
			}
			start = i + 1
		}
	}
	return labels
}

// mutateDNSQuery flips a random byte in the wire payload, keeping it the
// richest source of malformed-input diversity for a protocol whose grammar
// is otherwise opaque to the fuzzer core.
func mutateDNSQuery(a *corpus.Arg) {
	payload, ok := a.Value.([]byte)
	if !ok || len(payload) == 0 {
		return
	}
	mutated := append([]byte(nil), payload...)
	mutated[rand.Intn(len(mutated))] = byte(rand.Intn(256))
	a.Value = mutated
}
