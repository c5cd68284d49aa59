package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
)

// Frames are a 4-byte big-endian length prefix followed by that many bytes of
// JSON. No message comes close to maxFrameSize; anything larger is a broken
// or hostile client.
const maxFrameSize = 64 * 1024

var ErrFrameTooLarge = errors.New("frame exceeds maximum size")

// tcpConn frames JSON messages over a raw TCP stream.
type tcpConn struct {
	conn net.Conn
}

// NewTCPConn wraps an accepted TCP connection in the framed codec.
func NewTCPConn(conn net.Conn) Conn {
	return &tcpConn{conn: conn}
}

func (tc *tcpConn) Read() ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(tc.conn, header[:]); err != nil {
		return nil, err
	}

	size := binary.BigEndian.Uint32(header[:])
	if size > maxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(tc.conn, data); err != nil {
		return nil, err
	}

	return data, nil
}

func (tc *tcpConn) Write(data []byte) error {
	if len(data) > maxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}

	frame := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(frame[:4], uint32(len(data)))
	copy(frame[4:], data)

	_, err := tc.conn.Write(frame)
	return err
}

func (tc *tcpConn) Close() error {
	return tc.conn.Close()
}

func (tc *tcpConn) RemoteAddr() string {
	return tc.conn.RemoteAddr().String()
}
