package cards

// MinOfferSize is the smallest number of cards a trade can involve.
const MinOfferSize = 2

// Limits on the unique kinds a single offer may mix.
const (
	maxUniqueCommodities = 1
	maxUniqueWildcards   = 1
)

// Inventory is a multiset of cards: a per-kind count array with a cached
// total. The zero value is an empty inventory ready for use.
type Inventory struct {
	counts [NumKinds]int
	total  int
}

// NewInventory builds an inventory holding one of each given card.
func NewInventory(held ...CardID) *Inventory {
	inv := &Inventory{}
	for _, c := range held {
		inv.Add(c, 1)
	}
	return inv
}

func (inv *Inventory) Add(card CardID, amount int) {
	inv.counts[card] += amount
	inv.total += amount
}

// Remove takes amount cards of a kind out of the inventory. If fewer than
// amount are present nothing is removed and ErrCardRemoval is returned.
func (inv *Inventory) Remove(card CardID, amount int) error {
	if !inv.HasAtLeast(card, amount) {
		return ErrCardRemoval
	}
	inv.counts[card] -= amount
	inv.total -= amount
	return nil
}

// Merge adds every count of other into inv. other is left unchanged.
func (inv *Inventory) Merge(other *Inventory) {
	for card := Diamonds; card < NumKinds; card++ {
		if amt := other.counts[card]; amt > 0 {
			inv.Add(card, amt)
		}
	}
}

// Subtract removes every count of other from inv. inv must be a superset of
// other: on underflow the subtraction stops partway and ErrCardRemoval is
// returned, leaving inv partially subtracted. Callers must validate first.
func (inv *Inventory) Subtract(other *Inventory) error {
	for card := Diamonds; card < NumKinds; card++ {
		amt := other.counts[card]
		if amt == 0 {
			continue
		}
		if err := inv.Remove(card, amt); err != nil {
			return err
		}
	}
	return nil
}

func (inv *Inventory) Amount(card CardID) int {
	return inv.counts[card]
}

func (inv *Inventory) Total() int {
	return inv.total
}

func (inv *Inventory) HasAtLeast(card CardID, amount int) bool {
	return inv.counts[card] >= amount
}

func (inv *Inventory) Clear() {
	inv.counts = [NumKinds]int{}
	inv.total = 0
}

// Clone returns an independent copy of the inventory.
func (inv *Inventory) Clone() *Inventory {
	out := *inv
	return &out
}

// ValidateOffer checks the business rules for an offered set of cards against
// the offering player's hand. Rules are checked in a fixed order: the offer
// must not be empty, must hold at least MinOfferSize cards, must be a subset
// of the hand, and may mix at most one unique commodity kind with at most one
// unique wildcard kind.
func ValidateOffer(offer, hand *Inventory) error {
	switch total := offer.Total(); {
	case total == 0:
		return ErrEmptyOffer
	case total < MinOfferSize:
		return ErrOfferTooSmall
	}

	numCommodities, numWildcards := 0, 0

	for card := Diamonds; card < NumKinds; card++ {
		amt := offer.Amount(card)
		if amt == 0 {
			continue
		}

		if !hand.HasAtLeast(card, amt) {
			return ErrNotInHand
		}

		if card.IsCommodity() {
			numCommodities++
			if numCommodities > maxUniqueCommodities {
				return ErrTooManyCommodities
			}
		} else {
			numWildcards++
			if numWildcards > maxUniqueWildcards {
				return ErrTooManyWildcards
			}
		}
	}

	return nil
}

// HasWon reports whether a hand holds a full commodity set, with wildcards
// substituting for missing copies.
func HasWon(hand *Inventory) bool {
	wildcards := hand.Amount(Billionaire) + hand.Amount(TaxCollector)

	for card := Diamonds; card < NumCommodities; card++ {
		if hand.Amount(card)+wildcards >= copiesPerCommodity {
			return true
		}
	}

	return false
}

// Score evaluates a hand at the end of a round: the winning commodity's value
// if a full set is held, minus the tax collector penalty, doubled by the
// billionaire.
func Score(hand *Inventory) int {
	score := 0
	wildcards := hand.Amount(Billionaire) + hand.Amount(TaxCollector)

	if hand.Amount(TaxCollector) > 0 {
		score += TaxCollector.Value()
	}

	for card := Diamonds; card < NumCommodities; card++ {
		if hand.Amount(card)+wildcards >= copiesPerCommodity {
			score += card.Value()
		}
	}

	if hand.Amount(Billionaire) > 0 {
		score *= 2
	}

	return score
}
