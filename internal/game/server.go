// Package game runs the Billionaire trading game: client sessions, the offer
// book, the command dispatcher and the game lifecycle. All mutable state is
// confined to a single actor goroutine fed by channels; the transport layer
// never touches it directly.
package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/hdp1213/billionaire/internal/book"
	"github.com/hdp1213/billionaire/internal/cards"
	"github.com/hdp1213/billionaire/internal/protocol"
	"github.com/hdp1213/billionaire/internal/transport"
)

// Config fixes the game parameters before the server starts.
type Config struct {
	PlayerLimit     int
	HasBillionaire  bool
	HasTaxCollector bool
	Seed            int64
}

// Status is a point-in-time snapshot of the game for the ops surface.
type Status struct {
	Running     bool `json:"running"`
	Players     int  `json:"players"`
	PlayerLimit int  `json:"player_limit"`
}

type inboundBatch struct {
	from *Session
	data []byte
}

// Server owns the whole game: session list, registry, book and deck. Nothing
// here is safe for concurrent use; Run confines all access to one goroutine.
type Server struct {
	cfg Config
	log zerolog.Logger

	sessions []*Session
	registry *Registry
	trades   *book.Book
	deck     []cards.CardID
	running  bool

	joins    chan transport.Conn
	removals chan *Session
	inbox    chan inboundBatch
	statusc  chan chan Status
}

func NewServer(cfg Config, log zerolog.Logger) *Server {
	rng := rand.New(rand.NewSource(cfg.Seed))

	return &Server{
		cfg:      cfg,
		log:      log.With().Str("component", "game").Logger(),
		registry: NewRegistry(),
		trades:   book.New(),
		deck:     cards.NewDeck(cfg.PlayerLimit, cfg.HasBillionaire, cfg.HasTaxCollector, rng),
		joins:    make(chan transport.Conn, 16),
		removals: make(chan *Session, 64),
		inbox:    make(chan inboundBatch, 256),
		statusc:  make(chan chan Status),
	}
}

// Accept hands a freshly accepted connection to the actor. Implements
// transport.Acceptor.
func (s *Server) Accept(conn transport.Conn) {
	s.joins <- conn
}

// Status queries the actor for a snapshot.
func (s *Server) Status(ctx context.Context) (Status, bool) {
	resp := make(chan Status, 1)

	select {
	case s.statusc <- resp:
	case <-ctx.Done():
		return Status{}, false
	}

	select {
	case status := <-resp:
		return status, true
	case <-ctx.Done():
		return Status{}, false
	}
}

// Run drives the actor until the context is cancelled. Every mutation of game
// state happens on this goroutine; each handled event ends with one flush of
// all affected outbound queues.
func (s *Server) Run(ctx context.Context) {
	s.log.Info().
		Int("player_limit", s.cfg.PlayerLimit).
		Bool("billionaire", s.cfg.HasBillionaire).
		Bool("tax_collector", s.cfg.HasTaxCollector).
		Int("deck_size", len(s.deck)).
		Msg("game server running")

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return

		case conn := <-s.joins:
			s.handleJoin(conn)
			s.flushAll()

		case sess := <-s.removals:
			s.handleRemove(sess)
			s.flushAll()

		case batch := <-s.inbox:
			s.handleBatch(batch)
			s.flushAll()

		case resp := <-s.statusc:
			resp <- Status{
				Running:     s.running,
				Players:     len(s.sessions),
				PlayerLimit: s.cfg.PlayerLimit,
			}
		}
	}
}

// clientID derives the stable 8-hex-digit id for a connection from its remote
// address.
func clientID(addr string) string {
	return fmt.Sprintf("%08x", uint32(xxhash.Sum64String(addr)))
}

func (s *Server) handleJoin(conn transport.Conn) {
	addr := conn.RemoteAddr()

	// New players only join between games.
	if s.running {
		s.log.Info().Str("remote_addr", addr).Msg("game running, refusing connection")
		conn.Close()
		return
	}

	sess := newSession(clientID(addr), conn, s.log)

	if err := s.registry.Put(sess); err != nil {
		s.log.Warn().
			Str("remote_addr", addr).
			Str("client_id", sess.id).
			Msg("client id collision, refusing connection")
		conn.Close()
		return
	}

	s.sessions = append(s.sessions, sess)

	go sess.readPump(s.inbox, s.removals)
	go sess.writePump()

	s.log.Info().
		Str("remote_addr", addr).
		Str("client_id", sess.id).
		Int("players", len(s.sessions)).
		Msg("client joined")

	sess.enqueue(protocol.Join(sess.id))

	if len(s.sessions) == s.cfg.PlayerLimit {
		s.startGame()
	}
}

func (s *Server) handleRemove(sess *Session) {
	ind := -1
	for i, existing := range s.sessions {
		if existing == sess {
			ind = i
			break
		}
	}

	// Removal requests can arrive twice for the same session; only the first
	// one counts.
	if ind < 0 {
		return
	}

	s.sessions = append(s.sessions[:ind], s.sessions[ind+1:]...)
	s.registry.Remove(sess.id)
	close(sess.outbound)

	s.log.Info().
		Str("client_id", sess.id).
		Int("players", len(s.sessions)).
		Msg("client disconnected")

	if s.running && len(s.sessions) < s.cfg.PlayerLimit {
		s.stopGame()
	}
}

// startGame deals the shuffled deck round-robin and tells every client its
// opening hand and score.
func (s *Server) startGame() {
	s.log.Info().Int("player_limit", s.cfg.PlayerLimit).Msg("player limit reached, game starting")
	s.running = true

	hands := cards.Deal(s.deck, len(s.sessions))

	for i, sess := range s.sessions {
		sess.hand = hands[i]
		sess.enqueue(protocol.Start(sess.hand, sess.score))
	}
}

// stopGame returns to the lobby: standing offers are discarded without
// restitution and every remaining client hears END_GAME.
func (s *Server) stopGame() {
	s.log.Info().Int("player_limit", s.cfg.PlayerLimit).Msg("player limit no longer satisfied, game stopping")
	s.running = false

	s.trades.Clear()

	for _, sess := range s.sessions {
		sess.enqueue(protocol.EndGame())
	}
}

func (s *Server) shutdown() {
	s.log.Info().Msg("shutting down")

	for _, sess := range s.sessions {
		s.registry.Remove(sess.id)
		close(sess.outbound)
	}
	s.sessions = nil
}

// flushAll writes one envelope per session with queued documents, in queue
// order. Sessions with nothing pending are untouched. This is the only place
// game traffic reaches the wire.
func (s *Server) flushAll() {
	for _, sess := range s.sessions {
		if len(sess.pending) == 0 {
			continue
		}

		data, err := protocol.EncodeEnvelope(sess.pending)
		sess.pending = nil

		if err != nil {
			s.log.Error().Err(err).Str("client_id", sess.id).Msg("envelope encode failed")
			continue
		}

		select {
		case sess.outbound <- data:
		default:
			s.log.Warn().Str("client_id", sess.id).Msg("outbound queue full, dropping envelope")
		}
	}
}
