package protoclient

import (
	"fmt"
	"net"
	"time"

	"github.com/jihwankim/fazz/pkg/corpus"
)

// dnsClient is a thin UDP transport: no DNS wire-format library appears
// anywhere in the retrieved example pack, and spec.md §3 explicitly assigns
// protocol-specific composites to the Record(R) argument kind, so the seed
// definition owns the query bytes and this client only sends/receives them.
type dnsClient struct {
	conn net.Conn
}

func newDNSClient(addr string) (Client, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("protoclient: dns dial: %w", err)
	}
	return &dnsClient{conn: conn}, nil
}

// Call expects a single "query" operation whose sole argument is the raw
// wire-format query bytes ([]byte) built by the dns seed definition's
// Record argument. Any other name is unknown.
func (c *dnsClient) Call(name string, args []any) (any, error) {
	if name != "query" {
		return nil, fmt.Errorf("%w: %s", corpus.ErrFnNotFound, name)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("protoclient: dns query expects exactly one record argument")
	}
	payload, ok := args[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("protoclient: dns query argument must be []byte wire bytes")
	}

	if _, err := c.conn.Write(payload); err != nil {
		return nil, err
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 512)
	n, err := c.conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (c *dnsClient) Close() error {
	return c.conn.Close()
}
