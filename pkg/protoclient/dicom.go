package protoclient

import (
	"fmt"

	"github.com/jihwankim/fazz/pkg/corpus"
)

// dicomClient is a structural stub: DICOM association/dataset parsing is
// explicitly out of scope (spec.md §1 Non-goals — "does not parse wire
// protocols itself"). It exists only so the dicom seed definition (whose
// Record arguments carry a deliberately no-op mutate, per spec.md §9's
// second Open Question) has something concrete to execute against; every
// call returns a canned acknowledgement rather than performing a real
// DICOM association.
type dicomClient struct {
	addr string
}

func newDICOMClient(addr string) (Client, error) {
	return &dicomClient{addr: addr}, nil
}

func (c *dicomClient) Call(name string, args []any) (any, error) {
	switch name {
	case "associate", "send_c_echo", "send_c_store", "send_c_find", "send_c_get", "send_c_move", "release":
		return "ack", nil
	default:
		return nil, fmt.Errorf("%w: %s", corpus.ErrFnNotFound, name)
	}
}

func (c *dicomClient) Close() error {
	return nil
}
