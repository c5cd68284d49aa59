package protocol

import (
	"github.com/hdp1213/billionaire/internal/cards"
)

// CardStack is the wire shape of one card kind and its count. Outbound stacks
// also carry the kind's point value; inbound parsing ignores it.
type CardStack struct {
	ID  int `json:"id"`
	Amt int `json:"amt"`
	Val int `json:"val,omitempty"`
}

// StacksFromInventory flattens an inventory to its wire shape: ascending by
// id, zero counts omitted.
func StacksFromInventory(inv *cards.Inventory) []CardStack {
	stacks := make([]CardStack, 0, cards.NumKinds)

	for card := cards.Diamonds; card < cards.NumKinds; card++ {
		amt := inv.Amount(card)
		if amt == 0 {
			continue
		}

		stacks = append(stacks, CardStack{
			ID:  int(card),
			Amt: amt,
			Val: card.Value(),
		})
	}

	return stacks
}

// InventoryFromStacks rebuilds an inventory from wire stacks. Unknown ids and
// non-positive counts are rejected so a client cannot mint cards out of range.
func InventoryFromStacks(stacks []CardStack) (*cards.Inventory, error) {
	inv := &cards.Inventory{}

	for _, stack := range stacks {
		card := cards.CardID(stack.ID)
		if !card.Valid() {
			return nil, NewCmdError(EJSONVAL, "card id out of range")
		}
		if stack.Amt <= 0 {
			return nil, NewCmdError(EJSONVAL, "card amount must be positive")
		}

		inv.Add(card, stack.Amt)
	}

	return inv, nil
}
