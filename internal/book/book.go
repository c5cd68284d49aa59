// Package book implements the fixed-slot trade matching structure. Offers are
// slotted purely by size: a trade is two same-size offers from different
// owners, whatever the cards involved, so matching is a single index lookup.
package book

import (
	"errors"

	"github.com/hdp1213/billionaire/internal/cards"
)

var (
	ErrDuplicateOwnOffer = errors.New("new offer overrides previously declared offer")
	ErrOfferTooLarge     = errors.New("offer exceeds the largest trade size")
	ErrCancelEmpty       = errors.New("offer to cancel is empty")
	ErrCancelPermission  = errors.New("offer could not be cancelled due to incorrect owner")
)

// offerIndexOffset shifts offer sizes down so the smallest tradeable offer
// lands in slot zero.
const offerIndexOffset = cards.MinOfferSize

// NumSlots is one slot per legal offer size, from MinOfferSize up to a full
// commodity set.
const NumSlots = (cards.NumCommodities + 1) - offerIndexOffset

// MaxOfferSize is the largest offer the book can slot.
const MaxOfferSize = NumSlots + offerIndexOffset - 1

// Offer is a proposed trade: a set of cards put up by one client, waiting for
// a same-size counter-offer.
type Offer struct {
	OwnerID string
	Cards   *cards.Inventory
}

func NewOffer(ownerID string, offered *cards.Inventory) *Offer {
	return &Offer{OwnerID: ownerID, Cards: offered}
}

// SlotIndex maps an offer size to its book slot. Callers must have validated
// cardCount >= MinOfferSize.
func SlotIndex(cardCount int) int {
	return cardCount - offerIndexOffset
}

// Book holds at most one outstanding offer per trade size.
type Book struct {
	offers [NumSlots]*Offer
}

func New() *Book {
	return &Book{}
}

// OfferAt reports whether a slot is occupied.
func (b *Book) OfferAt(ind int) bool {
	return b.offers[ind] != nil
}

// Fill inserts an offer, or pops the counter-offer it completes. A nil return
// with nil error means the offer was stored and now belongs to the book. A
// non-nil return is the matched counterparty offer, removed from its slot; the
// new offer's ownership stays with the caller. Filling against the owner's own
// standing offer fails with ErrDuplicateOwnOffer, the slot untouched.
func (b *Book) Fill(offer *Offer) (*Offer, error) {
	total := offer.Cards.Total()
	if total > MaxOfferSize {
		return nil, ErrOfferTooLarge
	}

	ind := SlotIndex(total)

	standing := b.offers[ind]
	if standing == nil {
		b.offers[ind] = offer
		return nil, nil
	}

	if standing.OwnerID == offer.OwnerID {
		return nil, ErrDuplicateOwnOffer
	}

	b.offers[ind] = nil
	return standing, nil
}

// Cancel removes and returns the requester's offer of the given size. It
// fails with ErrCancelEmpty if no offer of that size is standing, or
// ErrCancelPermission if the standing offer belongs to someone else.
func (b *Book) Cancel(cardCount int, requesterID string) (*Offer, error) {
	if cardCount < cards.MinOfferSize || cardCount > MaxOfferSize {
		return nil, ErrCancelEmpty
	}

	ind := SlotIndex(cardCount)

	standing := b.offers[ind]
	if standing == nil {
		return nil, ErrCancelEmpty
	}

	if standing.OwnerID != requesterID {
		return nil, ErrCancelPermission
	}

	b.offers[ind] = nil
	return standing, nil
}

// Clear discards every standing offer. Cards held by cleared offers are not
// returned to hands.
func (b *Book) Clear() {
	b.offers = [NumSlots]*Offer{}
}
