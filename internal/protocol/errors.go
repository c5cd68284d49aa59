package protocol

import (
	"errors"
	"fmt"

	"github.com/hdp1213/billionaire/internal/book"
	"github.com/hdp1213/billionaire/internal/cards"
)

// Errno is the numeric error code carried by ERROR documents. Values are part
// of the wire protocol and must stay stable.
type Errno int

const (
	EJSON       Errno = iota + 1 // malformed JSON
	EJSONVAL                     // JSON value unable to be extracted
	EJSONTYPE                    // JSON object is not the desired type
	EBADCMDNAME                  // invalid command name
	EBADCMDOBJ                   // command object does not contain 'command' field
	ECANEMPTY                    // offer to cancel is empty
	ECANPERM                     // offer could not be cancelled due to permission error
	EOFFEROVER                   // new offer overrides previously declared offer
	ENOOFFER                     // offer does not contain any cards
	ESMALLOFFER                  // offer does not contain enough cards
	EBIGOFFER                    // offer exceeds the largest trade size
	EHANDSUBSET                  // cards in offer do not exist in hand
	EUNIQCOMMS                   // offer contains too many unique commodities
	EUNIQWILDS                   // offer contains too many unique wildcards
	ECARDRM                      // not enough cards to remove from inventory
)

// CmdError is a protocol-level failure: recoverable, reported to the client
// as a single ERROR document, never fatal to the connection.
type CmdError struct {
	Code Errno
	What string
}

func (e *CmdError) Error() string {
	return fmt.Sprintf("command error %d: %s", e.Code, e.What)
}

// NewCmdError builds a CmdError from a code and message.
func NewCmdError(code Errno, what string) *CmdError {
	return &CmdError{Code: code, What: what}
}

// AsCmdError maps an error from the cards or book layers onto its wire code.
// Unmapped errors come back as EJSONVAL, the catch-all code.
func AsCmdError(err error) *CmdError {
	var cmdErr *CmdError
	if errors.As(err, &cmdErr) {
		return cmdErr
	}

	code := EJSONVAL
	switch {
	case errors.Is(err, cards.ErrEmptyOffer):
		code = ENOOFFER
	case errors.Is(err, cards.ErrOfferTooSmall):
		code = ESMALLOFFER
	case errors.Is(err, cards.ErrNotInHand):
		code = EHANDSUBSET
	case errors.Is(err, cards.ErrTooManyCommodities):
		code = EUNIQCOMMS
	case errors.Is(err, cards.ErrTooManyWildcards):
		code = EUNIQWILDS
	case errors.Is(err, cards.ErrCardRemoval):
		code = ECARDRM
	case errors.Is(err, book.ErrDuplicateOwnOffer):
		code = EOFFEROVER
	case errors.Is(err, book.ErrOfferTooLarge):
		code = EBIGOFFER
	case errors.Is(err, book.ErrCancelEmpty):
		code = ECANEMPTY
	case errors.Is(err, book.ErrCancelPermission):
		code = ECANPERM
	}

	return &CmdError{Code: code, What: err.Error()}
}
