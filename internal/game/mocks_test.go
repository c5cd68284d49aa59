package game

import (
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeConn is a channel-backed transport.Conn for driving the server in
// tests without sockets.
type fakeConn struct {
	addr      string
	inbox     chan []byte
	outbox    chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn(addr string) *fakeConn {
	return &fakeConn{
		addr:   addr,
		inbox:  make(chan []byte, 16),
		outbox: make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (fc *fakeConn) Read() ([]byte, error) {
	select {
	case data := <-fc.inbox:
		return data, nil
	case <-fc.closed:
		return nil, io.EOF
	}
}

func (fc *fakeConn) Write(data []byte) error {
	select {
	case <-fc.closed:
		return io.ErrClosedPipe
	case fc.outbox <- data:
		return nil
	}
}

func (fc *fakeConn) Close() error {
	fc.closeOnce.Do(func() { close(fc.closed) })
	return nil
}

func (fc *fakeConn) RemoteAddr() string {
	return fc.addr
}

func (fc *fakeConn) isClosed() bool {
	select {
	case <-fc.closed:
		return true
	default:
		return false
	}
}

// expectEnvelope waits for the next flushed envelope on a connection and
// returns its decoded command objects.
func expectEnvelope(t *testing.T, fc *fakeConn) []map[string]any {
	t.Helper()

	select {
	case data := <-fc.outbox:
		var env struct {
			Commands []map[string]any `json:"commands"`
		}
		require.NoError(t, json.Unmarshal(data, &env))
		return env.Commands

	case <-time.After(time.Second * 2):
		t.Fatal("timed out waiting for envelope")
		return nil
	}
}

// expectSilence asserts no envelope arrives on a connection.
func expectSilence(t *testing.T, fc *fakeConn) {
	t.Helper()

	select {
	case data := <-fc.outbox:
		t.Fatalf("unexpected envelope: %s", data)
	case <-time.After(time.Millisecond * 100):
	}
}

func commandNames(commands []map[string]any) []string {
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		name, _ := cmd["command"].(string)
		names = append(names, name)
	}
	return names
}
