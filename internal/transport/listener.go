package transport

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog"
)

// Acceptor receives every connection the listener accepts. It must not block
// for long; the game server's join queue is buffered.
type Acceptor interface {
	Accept(conn Conn)
}

// Listener accepts framed TCP connections and hands them to the game server.
type Listener struct {
	listener net.Listener
	acceptor Acceptor
	log      zerolog.Logger
}

func NewListener(addr string, acceptor Acceptor, log zerolog.Logger) (*Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Listener{
		listener: listener,
		acceptor: acceptor,
		log:      log.With().Str("component", "listener").Logger(),
	}, nil
}

func (l *Listener) Addr() string {
	return l.listener.Addr().String()
}

// Serve accepts connections until the context is cancelled or the listener
// fails.
func (l *Listener) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.listener.Close()
	}()

	for {
		conn, err := l.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			l.log.Error().Err(err).Msg("accept failed")
			return err
		}

		l.log.Debug().Str("remote_addr", conn.RemoteAddr().String()).Msg("accepted connection")
		l.acceptor.Accept(NewTCPConn(conn))
	}
}
