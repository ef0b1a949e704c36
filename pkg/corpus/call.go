package corpus

import (
	"errors"
	"fmt"
	"os"
)

// ErrFnNotFound is returned when a call names an operation the client does
// not expose. It is fatal to the seed: the seed definition itself is wrong.
var ErrFnNotFound = errors.New("corpus: call name not found on client")

// ErrFnExecFailed wraps a client-side failure raised while executing a call.
// It is recoverable at the Seed level: fail_count is bumped and the seed
// continues.
var ErrFnExecFailed = errors.New("corpus: call execution failed")

// Client is the extension point a protocol client must satisfy: dynamic
// dispatch on call name, invoked with the unpacked argument values in order.
type Client interface {
	Call(name string, args []any) (any, error)
}

// Call is a named operation plus its ordered argument list. IsLast marks
// operations that force session termination (e.g. "quit"); mutators must
// preserve the property that an IsLast call, if present, stays last.
type Call struct {
	Name   string
	Args   []*Arg
	IsLast bool
}

// NewCall constructs a Call from a name and its ordered arguments.
func NewCall(name string, isLast bool, args ...*Arg) *Call {
	return &Call{Name: name, Args: args, IsLast: isLast}
}

// Execute resolves Name against client and invokes it with the unpacked
// argument values in order. Argument unpack I/O errors (e.g. a missing
// FilePath) are folded into ErrFnExecFailed since they have the same
// recovery semantics: continue the seed, bump fail_count. File handles
// opened by FilePath arguments are closed when Execute returns.
func (c *Call) Execute(client Client) error {
	unpacked := make([]any, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Unpack()
		if err != nil {
			return fmt.Errorf("%w: unpack arg %q: %v", ErrFnExecFailed, a.Name, err)
		}
		if f, ok := v.(*os.File); ok && a.Kind == KindFilePath {
			defer f.Close()
		}
		unpacked[i] = v
	}

	result, err := client.Call(c.Name, unpacked)
	if err != nil {
		if errors.Is(err, ErrFnNotFound) {
			return fmt.Errorf("%w: %s", ErrFnNotFound, c.Name)
		}
		return fmt.Errorf("%w: %s: %v", ErrFnExecFailed, c.Name, err)
	}
	_ = result
	return nil
}

// Clone returns a deep, independent copy of the call and its arguments.
func (c *Call) Clone() *Call {
	args := make([]*Arg, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Clone()
	}
	return &Call{Name: c.Name, Args: args, IsLast: c.IsLast}
}

// unpackFilePath opens a fresh read-only handle to the path on every call so
// repeated executions of the same seed never share file offsets.
func unpackFilePath(a *Arg) (any, error) {
	path, _ := a.Value.(string)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
