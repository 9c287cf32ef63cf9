package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClamd accepts one INSTREAM session and answers with reply(payload).
func fakeClamd(t *testing.T, reply func(payload []byte) string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		cmd, err := r.ReadString(0)
		if err != nil {
			return
		}
		if cmd == "zPING\x00" {
			_, _ = conn.Write([]byte("PONG\x00"))
			return
		}
		var payload []byte
		size := make([]byte, 4)
		for {
			if _, err := io.ReadFull(r, size); err != nil {
				return
			}
			n := binary.BigEndian.Uint32(size)
			if n == 0 {
				break
			}
			chunk := make([]byte, n)
			if _, err := io.ReadFull(r, chunk); err != nil {
				return
			}
			payload = append(payload, chunk...)
		}
		_, _ = conn.Write([]byte(reply(payload) + "\x00"))
	}()
	return ln.Addr().String()
}

func TestClamAV_Scan(t *testing.T) {
	ctx := context.Background()

	t.Run("clean", func(t *testing.T) {
		var seen []byte
		addr := fakeClamd(t, func(p []byte) string { seen = p; return "stream: OK" })
		c := NewClamAV(addr, 2*time.Second)
		c.chunk = 3

		v, err := c.Scan(ctx, []byte("hello world"))
		require.NoError(t, err)
		assert.True(t, v.Clean)
		assert.Equal(t, "hello world", string(seen))
	})

	t.Run("infected", func(t *testing.T) {
		addr := fakeClamd(t, func([]byte) string { return "stream: Eicar-Signature FOUND" })
		err := Check(ctx, NewClamAV(addr, 2*time.Second), []byte("X5O!P%@AP"))
		assert.True(t, errors.Is(err, ErrInfected))
		assert.Contains(t, err.Error(), "Eicar-Signature")
	})

	t.Run("daemon error", func(t *testing.T) {
		addr := fakeClamd(t, func([]byte) string { return "INSTREAM size limit exceeded. ERROR" })
		_, err := NewClamAV(addr, 2*time.Second).Scan(ctx, []byte("x"))
		assert.Error(t, err)
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := NewClamAV("127.0.0.1:1", 500*time.Millisecond).Scan(ctx, []byte("x"))
		assert.Error(t, err)
	})
}

func TestClamAV_Ping(t *testing.T) {
	addr := fakeClamd(t, nil)
	assert.NoError(t, NewClamAV(addr, time.Second).Ping(context.Background()))
}

func TestCheck_NoOp(t *testing.T) {
	assert.NoError(t, Check(context.Background(), NoOp{}, []byte("anything")))
	assert.NoError(t, Check(context.Background(), nil, []byte("anything")))
}
