package protoclient

import (
	"fmt"
	"net/textproto"

	"github.com/jihwankim/fazz/pkg/corpus"
)

// smtpClient speaks raw SMTP commands over net/textproto rather than
// net/smtp's high-level Client: a stateful fuzzer needs to issue HELO/MAIL/
// RCPT/DATA in arbitrary orders and with malformed arguments, which
// net/smtp's session-shaped API does not allow.
type smtpClient struct {
	conn *textproto.Conn
}

func newSMTPClient(addr string) (Client, error) {
	conn, err := textproto.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("protoclient: smtp dial: %w", err)
	}
	if _, _, err := conn.ReadResponse(220); err != nil {
		conn.Close()
		return nil, fmt.Errorf("protoclient: smtp greeting: %w", err)
	}
	return &smtpClient{conn: conn}, nil
}

func (c *smtpClient) Call(name string, args []any) (any, error) {
	switch name {
	case "helo":
		return c.command("HELO", args)
	case "ehlo":
		return c.command("EHLO", args)
	case "mail":
		return c.command("MAIL", args)
	case "rcpt":
		return c.command("RCPT", args)
	case "data":
		return c.command("DATA", nil)
	case "rset":
		return c.command("RSET", nil)
	case "noop":
		return c.command("NOOP", nil)
	case "vrfy":
		return c.command("VRFY", args)
	case "quit":
		return c.command("QUIT", nil)
	default:
		return nil, fmt.Errorf("%w: %s", corpus.ErrFnNotFound, name)
	}
}

func (c *smtpClient) command(verb string, args []any) (any, error) {
	text := verb
	for _, a := range args {
		text += fmt.Sprintf(" %v", a)
	}
	id, err := c.conn.Cmd("%s", text)
	if err != nil {
		return nil, err
	}
	c.conn.StartResponse(id)
	defer c.conn.EndResponse(id)
	code, msg, err := c.conn.ReadResponse(0)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%d %s", code, msg), nil
}

func (c *smtpClient) Close() error {
	return c.conn.Close()
}
