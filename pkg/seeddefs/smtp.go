package seeddefs

import "github.com/jihwankim/fazz/pkg/corpus"

// SMTP builds the initial SMTP seed: a greeting handshake and a single
// envelope/transaction cycle.
func SMTP() *corpus.Seed {
	return corpus.NewSeed(
		corpus.NewCall("ehlo", false, corpus.NewString("domain", "fazz.test", true)),
		corpus.NewCall("mail", false, corpus.NewString("from", "FROM:<fuzzer@fazz.test>", true)),
		corpus.NewCall("rcpt", false, corpus.NewString("to", "TO:<victim@fazz.test>", true)),
		corpus.NewCall("data", false),
		corpus.NewCall("rset", false),
		corpus.NewCall("noop", false),
		corpus.NewCall("vrfy", false, corpus.NewString("user", "postmaster", true)),
		corpus.NewCall("quit", true),
	)
}
