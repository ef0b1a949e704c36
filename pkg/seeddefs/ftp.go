// Package seeddefs holds the authored initial seed for each protocol —
// explicitly out of core scope per spec.md §1 ("the initial per-protocol
// seed definitions (authored data, not code)"), but a fuzzer with nothing to
// fuzz isn't a fuzzer, so a minimal, representative call sequence is
// provided for each of the four protocols the CLI accepts.
package seeddefs

import "github.com/jihwankim/fazz/pkg/corpus"

// FTP builds the initial FTP seed: an anonymous login, a walk of the
// directory tree, a file transfer round-trip, and a terminal quit.
func FTP() *corpus.Seed {
	return corpus.NewSeed(
		corpus.NewCall("user", false, corpus.NewString("name", "anonymous", true)),
		corpus.NewCall("pass", false, corpus.NewString("password", "guest@", true)),
		corpus.NewCall("pwd", false),
		corpus.NewCall("mkd", false, corpus.NewString("dir", "fazz-scratch", true)),
		corpus.NewCall("cwd", false, corpus.NewString("dir", "fazz-scratch", true)),
		corpus.NewCall("stor", false, corpus.NewString("name", "probe.bin", true)),
		corpus.NewCall("list", false, corpus.NewString("path", ".", true)),
		corpus.NewCall("retr", false, corpus.NewString("name", "probe.bin", true)),
		corpus.NewCall("rename", false,
			corpus.NewString("from", "probe.bin", true),
			corpus.NewString("to", "probe2.bin", true)),
		corpus.NewCall("dele", false, corpus.NewString("name", "probe2.bin", true)),
		corpus.NewCall("cwd", false, corpus.NewString("dir", "..", true)),
		corpus.NewCall("rmd", false, corpus.NewString("dir", "fazz-scratch", true)),
		corpus.NewCall("quit", true),
	)
}
