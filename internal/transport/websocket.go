package transport

import (
	"time"

	"github.com/gorilla/websocket"
)

const writeDeadline = time.Second * 20

// wsConn adapts a websocket connection to the Conn interface. The websocket
// layer does its own framing, so messages map one-to-one onto binary frames.
type wsConn struct {
	socket *websocket.Conn
}

// NewWebsocketConn wraps an upgraded websocket connection.
func NewWebsocketConn(socket *websocket.Conn) Conn {
	socket.SetReadLimit(maxFrameSize)
	return &wsConn{socket: socket}
}

func (wc *wsConn) Read() ([]byte, error) {
	_, data, err := wc.socket.ReadMessage()
	return data, err
}

func (wc *wsConn) Write(data []byte) error {
	wc.socket.SetWriteDeadline(time.Now().Add(writeDeadline))
	return wc.socket.WriteMessage(websocket.BinaryMessage, data)
}

func (wc *wsConn) Close() error {
	wc.socket.SetWriteDeadline(time.Now().Add(writeDeadline))
	wc.socket.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return wc.socket.Close()
}

func (wc *wsConn) RemoteAddr() string {
	return wc.socket.RemoteAddr().String()
}
