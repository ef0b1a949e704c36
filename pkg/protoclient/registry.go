// Package protoclient is the external collaborator boundary: concrete
// per-protocol clients and the factory registry the fuzzer resolves them
// through. Of the core packages only pkg/fuzzer imports this package (its
// workers construct clients through New); corpus, mutation and target do
// not, keeping the mutation/scheduling/lifecycle logic ignorant of protocol
// internals per spec.md §1.
package protoclient

import "fmt"

// Factory constructs a Client connected to addr (host:port).
type Factory func(addr string) (Client, error)

// Client is the extension point a protocol client must satisfy: dynamic
// dispatch on call name plus teardown. It is identical in shape to
// corpus.Client plus Close, so any Client here also satisfies corpus.Client.
type Client interface {
	Call(name string, args []any) (any, error)
	Close() error
}

// Registry maps a protocol name to its Client factory.
var Registry = map[string]Factory{
	"ftp":   newFTPClient,
	"smtp":  newSMTPClient,
	"dns":   newDNSClient,
	"dicom": newDICOMClient,
}

// New resolves protocol against Registry and constructs a Client for addr.
func New(protocol, addr string) (Client, error) {
	factory, ok := Registry[protocol]
	if !ok {
		return nil, fmt.Errorf("protoclient: unknown protocol %q", protocol)
	}
	return factory(addr)
}
