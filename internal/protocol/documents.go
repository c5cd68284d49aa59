package protocol

import "github.com/hdp1213/billionaire/internal/cards"

// Outbound documents. Each is built once, owned by the session's command
// queue until flushed, then dropped.

type JoinDoc struct {
	Command  string `json:"command"`
	ClientID string `json:"client_id"`
}

func Join(clientID string) JoinDoc {
	return JoinDoc{Command: CmdJoin, ClientID: clientID}
}

type StartDoc struct {
	Command string      `json:"command"`
	Hand    []CardStack `json:"hand"`
	Score   int         `json:"score"`
}

func Start(hand *cards.Inventory, score int) StartDoc {
	return StartDoc{Command: CmdStart, Hand: StacksFromInventory(hand), Score: score}
}

type SuccessfulTradeDoc struct {
	Command string      `json:"command"`
	Cards   []CardStack `json:"cards"`
	OwnerID string      `json:"owner_id"`
}

// SuccessfulTrade tells one trade participant which cards it received and who
// the counterparty was.
func SuccessfulTrade(received *cards.Inventory, counterpartyID string) SuccessfulTradeDoc {
	return SuccessfulTradeDoc{
		Command: CmdSuccessfulTrade,
		Cards:   StacksFromInventory(received),
		OwnerID: counterpartyID,
	}
}

type CancelledOfferDoc struct {
	Command string      `json:"command"`
	Cards   []CardStack `json:"cards"`
}

func CancelledOffer(offered *cards.Inventory) CancelledOfferDoc {
	return CancelledOfferDoc{Command: CmdCancelledOffer, Cards: StacksFromInventory(offered)}
}

type BookEventDoc struct {
	Command      string   `json:"command"`
	Event        string   `json:"event"`
	CardAmt      int      `json:"card_amt"`
	Participants []string `json:"participants"`
}

// BookEvent announces a book mutation to clients that were not party to it.
// Event is the command name of the mutation: NEW_OFFER, SUCCESSFUL_TRADE or
// CANCELLED_OFFER.
func BookEvent(event string, cardAmt int, participants []string) BookEventDoc {
	return BookEventDoc{
		Command:      CmdBookEvent,
		Event:        event,
		CardAmt:      cardAmt,
		Participants: participants,
	}
}

type BillionaireDoc struct {
	Command  string `json:"command"`
	WinnerID string `json:"winner_id"`
}

func Billionaire(winnerID string) BillionaireDoc {
	return BillionaireDoc{Command: CmdBillionaire, WinnerID: winnerID}
}

type EndRoundDoc struct {
	Command string `json:"command"`
	Score   int    `json:"score"`
}

func EndRound(score int) EndRoundDoc {
	return EndRoundDoc{Command: CmdEndRound, Score: score}
}

type EndGameDoc struct {
	Command string `json:"command"`
}

func EndGame() EndGameDoc {
	return EndGameDoc{Command: CmdEndGame}
}

type ErrorDoc struct {
	Command string `json:"command"`
	Errno   int    `json:"errno"`
	What    string `json:"what"`
}

func Error(err *CmdError) ErrorDoc {
	return ErrorDoc{Command: CmdErr, Errno: int(err.Code), What: err.What}
}

// Inbound documents.

type NewOfferDoc struct {
	Command string      `json:"command"`
	Cards   []CardStack `json:"cards"`
}

type CancelOfferDoc struct {
	Command string `json:"command"`
	CardAmt int    `json:"card_amt"`
}
