package cards

import "errors"

var (
	ErrCardRemoval        = errors.New("not enough cards to remove")
	ErrEmptyOffer         = errors.New("offer does not contain any cards")
	ErrOfferTooSmall      = errors.New("offer does not contain enough cards")
	ErrNotInHand          = errors.New("cards in offer do not exist in hand")
	ErrTooManyCommodities = errors.New("offer contains too many unique commodities")
	ErrTooManyWildcards   = errors.New("offer contains too many unique wildcards")
)
