package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"time"
)

// ClamAV talks to a clamd daemon with the INSTREAM command.
type ClamAV struct {
	address string // host:port, or an absolute unix socket path
	timeout time.Duration
	chunk   int
}

func NewClamAV(address string, timeout time.Duration) *ClamAV {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAV{address: address, timeout: timeout, chunk: 64 << 10}
}

func (c *ClamAV) Name() string { return "clamav" }

func (c *ClamAV) dial(ctx context.Context) (net.Conn, error) {
	network := "tcp"
	if strings.HasPrefix(c.address, "/") {
		network = "unix"
	}
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, network, c.address)
	if err != nil {
		return nil, fmt.Errorf("clamd dial: %w", err)
	}
	deadline := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Ping reports whether clamd answers PONG.
func (c *ClamAV) Ping(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return fmt.Errorf("clamd ping: %w", err)
	}
	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		return fmt.Errorf("clamd ping: %w", err)
	}
	if !strings.HasPrefix(reply, "PONG") {
		return fmt.Errorf("clamd ping: unexpected reply %q", strings.TrimRight(reply, "\x00"))
	}
	return nil
}

func (c *ClamAV) Scan(ctx context.Context, data []byte) (Verdict, error) {
	v := Verdict{Scanner: c.Name()}
	conn, err := c.dial(ctx)
	if err != nil {
		return v, err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return v, fmt.Errorf("clamd instream: %w", err)
	}
	size := make([]byte, 4)
	for start := 0; start < len(data); start += c.chunk {
		end := min(start+c.chunk, len(data))
		binary.BigEndian.PutUint32(size, uint32(end-start))
		if _, err := conn.Write(size); err != nil {
			return v, fmt.Errorf("clamd instream: %w", err)
		}
		if _, err := conn.Write(data[start:end]); err != nil {
			return v, fmt.Errorf("clamd instream: %w", err)
		}
	}
	// zero-length chunk terminates the stream
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		return v, fmt.Errorf("clamd instream: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		return v, fmt.Errorf("clamd reply: %w", err)
	}
	return parseReply(v, strings.TrimSpace(strings.TrimRight(reply, "\x00")))
}

// parseReply decodes "stream: OK", "stream: <sig> FOUND" or "... ERROR".
func parseReply(v Verdict, reply string) (Verdict, error) {
	body := strings.TrimSpace(strings.TrimPrefix(reply, "stream:"))
	switch {
	case body == "OK":
		v.Clean = true
		return v, nil
	case strings.HasSuffix(body, " FOUND"):
		v.Threat = strings.TrimSuffix(body, " FOUND")
		return v, nil
	default:
		return v, fmt.Errorf("clamd: %s", reply)
	}
}
