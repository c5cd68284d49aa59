package game

import (
	"errors"

	"github.com/hdp1213/billionaire/internal/book"
	"github.com/hdp1213/billionaire/internal/cards"
	"github.com/hdp1213/billionaire/internal/protocol"
)

// handleBatch decodes one inbound message and dispatches its commands in
// array order. A decode failure of the envelope rejects the whole batch with
// a single ERROR; a failure inside one command rejects that command only and
// processing continues with the next.
func (s *Server) handleBatch(batch inboundBatch) {
	sess := batch.from

	// The session may have been removed between the pump forwarding the
	// message and the actor picking it up.
	if !s.member(sess) {
		return
	}

	if !s.running {
		s.log.Debug().Str("client_id", sess.id).Msg("game not running, ignoring message")
		return
	}

	commands, err := protocol.DecodeEnvelope(batch.data)
	if err != nil {
		sess.enqueue(protocol.Error(protocol.AsCmdError(err)))
		return
	}

	for _, rc := range commands {
		switch rc.Name {
		case protocol.CmdNewOffer:
			s.handleNewOffer(sess, rc)

		case protocol.CmdCancelOffer:
			s.handleCancelOffer(sess, rc)

		case "":
			sess.enqueue(protocol.Error(protocol.NewCmdError(protocol.EBADCMDOBJ,
				"command object does not contain 'command' field")))

		default:
			sess.enqueue(protocol.Error(protocol.NewCmdError(protocol.EBADCMDNAME,
				"invalid command name: "+rc.Name)))
		}
	}
}

func (s *Server) member(sess *Session) bool {
	for _, existing := range s.sessions {
		if existing == sess {
			return true
		}
	}
	return false
}

func (s *Server) handleNewOffer(sess *Session, rc protocol.RawCommand) {
	s.log.Debug().Str("client_id", sess.id).Msg("received NEW_OFFER")

	var doc protocol.NewOfferDoc
	if err := rc.Decode(&doc); err != nil {
		sess.enqueue(protocol.Error(protocol.AsCmdError(err)))
		return
	}

	if doc.Cards == nil {
		sess.enqueue(protocol.Error(protocol.NewCmdError(protocol.EJSONVAL,
			"NEW_OFFER does not contain 'cards' field")))
		return
	}

	offered, err := protocol.InventoryFromStacks(doc.Cards)
	if err != nil {
		sess.enqueue(protocol.Error(protocol.AsCmdError(err)))
		return
	}

	if err := cards.ValidateOffer(offered, sess.hand); err != nil {
		// Rejected offers are echoed back so the client can restore its
		// display, except empty ones, which carry nothing to echo.
		if !errors.Is(err, cards.ErrEmptyOffer) {
			sess.enqueue(protocol.CancelledOffer(offered))
		}
		sess.enqueue(protocol.Error(protocol.AsCmdError(err)))
		return
	}

	newOffer := book.NewOffer(sess.id, offered)

	matched, err := s.trades.Fill(newOffer)
	if err != nil {
		sess.enqueue(protocol.CancelledOffer(offered))
		sess.enqueue(protocol.Error(protocol.AsCmdError(err)))
		return
	}

	// The book accepted the offer, so the cards leave the sender's hand.
	// ValidateOffer guaranteed the subset, so this cannot underflow.
	if err := sess.hand.Subtract(offered); err != nil {
		sess.enqueue(protocol.Error(protocol.AsCmdError(err)))
		return
	}

	total := offered.Total()

	if matched == nil {
		s.log.Debug().
			Str("client_id", sess.id).
			Int("card_amt", total).
			Msg("offer added to book")

		s.broadcastBookEvent(protocol.CmdNewOffer, total, []string{sess.id}, sess)
		return
	}

	s.completeTrade(sess, newOffer, matched)
}

// completeTrade settles a matched pair of offers: cards swap hands, both
// participants hear SUCCESSFUL_TRADE, everyone else a BOOK_EVENT, and any
// resulting win ends the round.
func (s *Server) completeTrade(sess *Session, newOffer, matched *book.Offer) {
	other, ok := s.registry.Get(matched.OwnerID)
	if !ok {
		// A standing offer always belongs to a connected client: the book is
		// cleared before its owner can leave it behind.
		s.log.Error().
			Str("owner_id", matched.OwnerID).
			Msg("matched offer has no connected owner, discarding")
		sess.hand.Merge(newOffer.Cards)
		return
	}

	sess.hand.Merge(matched.Cards)
	other.hand.Merge(newOffer.Cards)

	sess.enqueue(protocol.SuccessfulTrade(matched.Cards, other.id))
	other.enqueue(protocol.SuccessfulTrade(newOffer.Cards, sess.id))

	total := newOffer.Cards.Total()
	participants := []string{sess.id, other.id}

	s.log.Info().
		Str("client_id", sess.id).
		Str("owner_id", other.id).
		Int("card_amt", total).
		Msg("trade completed")

	sessWon := cards.HasWon(sess.hand)
	otherWon := cards.HasWon(other.hand)

	for _, client := range s.sessions {
		if sessWon {
			client.enqueue(protocol.Billionaire(sess.id))
		}
		if otherWon {
			client.enqueue(protocol.Billionaire(other.id))
		}

		if client == sess || client == other {
			continue
		}

		client.enqueue(protocol.BookEvent(protocol.CmdSuccessfulTrade, total, participants))
	}

	if sessWon || otherWon {
		s.endRound()
	}
}

// endRound scores every hand, announces the new totals and clears the book.
func (s *Server) endRound() {
	s.log.Info().Msg("round won, updating scores")

	for _, client := range s.sessions {
		client.score += cards.Score(client.hand)
		client.enqueue(protocol.EndRound(client.score))
	}

	s.trades.Clear()
}

func (s *Server) handleCancelOffer(sess *Session, rc protocol.RawCommand) {
	s.log.Debug().Str("client_id", sess.id).Msg("received CANCEL_OFFER")

	var doc protocol.CancelOfferDoc
	if err := rc.Decode(&doc); err != nil {
		sess.enqueue(protocol.Error(protocol.AsCmdError(err)))
		return
	}

	cancelled, err := s.trades.Cancel(doc.CardAmt, sess.id)
	if err != nil {
		sess.enqueue(protocol.Error(protocol.AsCmdError(err)))
		return
	}

	sess.hand.Merge(cancelled.Cards)
	sess.enqueue(protocol.CancelledOffer(cancelled.Cards))

	s.log.Debug().
		Str("client_id", sess.id).
		Int("card_amt", doc.CardAmt).
		Msg("offer cancelled")

	s.broadcastBookEvent(protocol.CmdCancelledOffer, doc.CardAmt, []string{sess.id}, sess)
}

// broadcastBookEvent queues a BOOK_EVENT for every session except the ones
// party to the mutation.
func (s *Server) broadcastBookEvent(event string, cardAmt int, participants []string, except ...*Session) {
	for _, client := range s.sessions {
		skip := false
		for _, ex := range except {
			if client == ex {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		client.enqueue(protocol.BookEvent(event, cardAmt, participants))
	}
}
