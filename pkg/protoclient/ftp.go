package protoclient

import (
	"fmt"
	"net/textproto"

	"github.com/jihwankim/fazz/pkg/corpus"
)

// ftpClient drives an FTP control connection directly over net/textproto —
// no ecosystem FTP client library appears anywhere in the retrieved example
// pack, so raw command-level access is used, matching what a stateful
// protocol fuzzer actually needs (arbitrary, possibly malformed command
// sequences) rather than a high-level "upload/download" abstraction.
type ftpClient struct {
	conn *textproto.Conn
}

func newFTPClient(addr string) (Client, error) {
	conn, err := textproto.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("protoclient: ftp dial: %w", err)
	}
	// Consume the server's greeting before issuing commands.
	if _, _, err := conn.ReadResponse(0); err != nil {
		conn.Close()
		return nil, fmt.Errorf("protoclient: ftp greeting: %w", err)
	}
	return &ftpClient{conn: conn}, nil
}

// Call dispatches by name against the small set of FTP verbs the seed
// definitions exercise. Unknown names return corpus.ErrFnNotFound so the
// call layer can classify them as a seed-definition bug, not a transient
// failure.
func (c *ftpClient) Call(name string, args []any) (any, error) {
	switch name {
	case "user":
		return c.command("USER", args)
	case "pass":
		return c.command("PASS", args)
	case "cwd":
		return c.command("CWD", args)
	case "pwd":
		return c.command("PWD", nil)
	case "list":
		return c.command("LIST", args)
	case "retr":
		return c.command("RETR", args)
	case "stor":
		return c.command("STOR", args)
	case "mkd":
		return c.command("MKD", args)
	case "rmd":
		return c.command("RMD", args)
	case "dele":
		return c.command("DELE", args)
	case "rename":
		return c.renameCommand(args)
	case "quit":
		return c.command("QUIT", nil)
	default:
		return nil, fmt.Errorf("%w: %s", corpus.ErrFnNotFound, name)
	}
}

func (c *ftpClient) command(verb string, args []any) (any, error) {
	id, err := c.conn.Cmd("%s", formatCommand(verb, args))
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

func (c *ftpClient) renameCommand(args []any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("protoclient: rename requires from/to args")
	}
	if _, err := c.command("RNFR", args[:1]); err != nil {
		return nil, err
	}
	return c.command("RNTO", args[1:2])
}

func (c *ftpClient) Close() error {
	return c.conn.Close()
}

func formatCommand(verb string, args []any) string {
	out := verb
	for _, a := range args {
		out += fmt.Sprintf(" %v", a)
	}
	return out
}
