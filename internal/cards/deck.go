package cards

import "math/rand"

// NewDeck generates the ordered draw sequence for a game. Each of the first
// players commodity kinds contributes a full set of copies, plus any enabled
// wildcards. The sequence is shuffled in place with the supplied source so a
// fixed seed reproduces the same deal.
func NewDeck(players int, hasBillionaire, hasTaxCollector bool, rng *rand.Rand) []CardID {
	size := players * copiesPerCommodity
	if hasBillionaire {
		size++
	}
	if hasTaxCollector {
		size++
	}

	deck := make([]CardID, 0, size)

	for card := Diamonds; card < CardID(players); card++ {
		for i := 0; i < copiesPerCommodity; i++ {
			deck = append(deck, card)
		}
	}

	if hasBillionaire {
		deck = append(deck, Billionaire)
	}
	if hasTaxCollector {
		deck = append(deck, TaxCollector)
	}

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	return deck
}

// Deal splits a shuffled deck round-robin into one hand per player: card i
// goes to player i mod players.
func Deal(deck []CardID, players int) []*Inventory {
	hands := make([]*Inventory, players)
	for i := range hands {
		hands[i] = &Inventory{}
	}

	for i, card := range deck {
		hands[i%players].Add(card, 1)
	}

	return hands
}
