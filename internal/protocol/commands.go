// Package protocol defines the JSON command protocol spoken between the
// server and its clients: command names, document shapes, the batching
// envelope and the protocol error taxonomy.
package protocol

// Server-to-client command names.
const (
	CmdJoin            = "JOIN"
	CmdStart           = "START"
	CmdSuccessfulTrade = "SUCCESSFUL_TRADE"
	CmdCancelledOffer  = "CANCELLED_OFFER"
	CmdBookEvent       = "BOOK_EVENT"
	CmdBillionaire     = "BILLIONAIRE"
	CmdEndRound        = "END_ROUND"
	CmdEndGame         = "END_GAME"
	CmdErr             = "ERROR"
)

// Client-to-server command names.
const (
	CmdNewOffer    = "NEW_OFFER"
	CmdCancelOffer = "CANCEL_OFFER"
)
