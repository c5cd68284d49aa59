package cards

// CardID enumerates every card in play. Commodities come first so a CardID
// below NumCommodities can index the value table directly.
type CardID int

const (
	Invalid CardID = -1

	Diamonds CardID = iota - 1
	Gold
	Oil
	Property
	Mining
	Shipping
	Banking
	Sport
	Billionaire
	TaxCollector

	NumKinds
)

// NumCommodities is the number of tradeable commodity kinds.
const NumCommodities = 8

// copiesPerCommodity is how many copies of each commodity a deck holds. A
// full set of one commodity wins the round, wildcards substituting.
const copiesPerCommodity = NumCommodities + 1

// cardValues maps each CardID to its fixed point value.
var cardValues = [NumKinds]int{
	700,  // Diamonds
	500,  // Gold
	800,  // Oil
	200,  // Property
	400,  // Mining
	300,  // Shipping
	600,  // Banking
	100,  // Sport
	0,    // Billionaire
	-200, // TaxCollector
}

func (c CardID) Valid() bool {
	return c > Invalid && c < NumKinds
}

func (c CardID) IsCommodity() bool {
	return c >= Diamonds && c < NumCommodities
}

func (c CardID) IsWildcard() bool {
	return c == Billionaire || c == TaxCollector
}

// Value returns the fixed point value of a card kind.
func (c CardID) Value() int {
	return cardValues[c]
}

func (c CardID) String() string {
	switch c {
	case Diamonds:
		return "DIAMONDS"
	case Gold:
		return "GOLD"
	case Oil:
		return "OIL"
	case Property:
		return "PROPERTY"
	case Mining:
		return "MINING"
	case Shipping:
		return "SHIPPING"
	case Banking:
		return "BANKING"
	case Sport:
		return "SPORT"
	case Billionaire:
		return "BILLIONAIRE"
	case TaxCollector:
		return "TAX_COLLECTOR"
	}
	return "INVALID"
}
