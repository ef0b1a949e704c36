package main

import "github.com/jihwankim/fazz/pkg/corpus"

// rehydrateSeed rebuilds a live *corpus.Seed from a persisted SeedDocument
// for the -worker subprocess path (pkg/fuzzer.RunWorkerSubprocess /
// RunAsWorker). Generic kinds round-trip exactly; Record arguments are
// rehydrated inert (value only, no mutate/unpack) since only the owning
// protocol's seeddefs package knows the right rule, and the worker process
// only ever executes a seed, it never mutates one.
func rehydrateSeed(doc *corpus.SeedDocument) (*corpus.Seed, error) {
	calls := make([]*corpus.Call, 0, len(doc.Calls))
	for _, cd := range doc.Calls {
		args := make([]*corpus.Arg, 0, len(cd.Args))
		for _, ad := range cd.Args {
			args = append(args, rehydrateArg(ad))
		}
		calls = append(calls, corpus.NewCall(cd.Name, cd.IsLast, args...))
	}
	seed := corpus.NewSeed(calls...)
	seed.Mutations = doc.Mutations
	seed.Power = doc.Power
	return seed, nil
}

func rehydrateArg(ad corpus.ArgDocument) *corpus.Arg {
	switch ad.Kind {
	case "int":
		v, _ := ad.Value.(float64) // encoding/json decodes numbers as float64
		return corpus.NewInt(ad.Name, int64(v), ad.Mutable)
	case "real":
		v, _ := ad.Value.(float64)
		return corpus.NewReal(ad.Name, v, ad.Mutable)
	case "bool":
		v, _ := ad.Value.(bool)
		return corpus.NewBool(ad.Name, v, ad.Mutable)
	case "string":
		v, _ := ad.Value.(string)
		return corpus.NewString(ad.Name, v, ad.Mutable)
	case "filepath":
		v, _ := ad.Value.(string)
		return corpus.NewFilePath(ad.Name, v, ad.Mutable)
	case "callable":
		return corpus.NewCallable(ad.Name, ad.Value, ad.Mutable)
	case "enum":
		return corpus.NewEnum(ad.Name, ad.Value, nil, ad.Mutable)
	default: // "record" and anything unrecognized: inert passthrough
		return corpus.NewRecord(ad.Name, ad.Value, ad.Mutable, nil, nil)
	}
}
