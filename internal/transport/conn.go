// Package transport carries opaque message bytes between clients and the game
// server. The game layer sees only the Conn interface; framing details live
// here.
package transport

// Conn is one client connection. Read blocks until a whole inbound message is
// available; Write sends one whole outbound message.
type Conn interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Close() error
	RemoteAddr() string
}
