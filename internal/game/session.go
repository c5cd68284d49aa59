package game

import (
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/hdp1213/billionaire/internal/cards"
	"github.com/hdp1213/billionaire/internal/transport"
)

const (
	// Inbound batches per second a single client may send, with a small
	// burst allowance. Batches over the limit are dropped before dispatch.
	inboundRate  = 10
	inboundBurst = 20

	outboundQueueSize = 64
)

// Session is one connected client: its connection, stable id, hand, score and
// the queue of outbound documents pending the next flush. The hand, score and
// pending queue are owned by the server actor; the pumps only move bytes.
type Session struct {
	id   string
	conn transport.Conn

	hand  *cards.Inventory
	score int

	// pending is appended to by the dispatcher and drained by flushAll.
	pending []any

	outbound chan []byte
	limiter  *rate.Limiter
	log      zerolog.Logger
}

func newSession(id string, conn transport.Conn, log zerolog.Logger) *Session {
	return &Session{
		id:       id,
		conn:     conn,
		hand:     &cards.Inventory{},
		outbound: make(chan []byte, outboundQueueSize),
		limiter:  rate.NewLimiter(inboundRate, inboundBurst),
		log:      log.With().Str("client_id", id).Logger(),
	}
}

func (sess *Session) ID() string {
	return sess.id
}

// enqueue appends an outbound document to the session's queue. Called only
// from the server actor.
func (sess *Session) enqueue(doc any) {
	sess.pending = append(sess.pending, doc)
}

// readPump forwards inbound messages to the server actor until the
// connection fails, then requests its own removal.
func (sess *Session) readPump(inbox chan<- inboundBatch, removals chan<- *Session) {
	for {
		data, err := sess.conn.Read()
		if err != nil {
			sess.log.Debug().Err(err).Msg("read failed, disconnecting")
			break
		}

		if !sess.limiter.Allow() {
			sess.log.Warn().Msg("inbound rate limit exceeded, dropping batch")
			continue
		}

		inbox <- inboundBatch{from: sess, data: data}
	}

	removals <- sess
}

// writePump drains the outbound channel to the connection. It exits when the
// channel is closed by the actor or the connection fails; readPump notices
// the closed connection and requests removal.
func (sess *Session) writePump() {
	for data := range sess.outbound {
		if err := sess.conn.Write(data); err != nil {
			sess.log.Debug().Err(err).Msg("write failed")
			break
		}
	}

	sess.conn.Close()
}
