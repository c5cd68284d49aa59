package protocol

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdp1213/billionaire/internal/book"
	"github.com/hdp1213/billionaire/internal/cards"
)

func TestStacksFromInventory(t *testing.T) {
	inv := &cards.Inventory{}
	inv.Add(cards.Gold, 2)
	inv.Add(cards.Diamonds, 3)
	inv.Add(cards.TaxCollector, 1)

	stacks := StacksFromInventory(inv)

	// Ascending by id, zero counts omitted, values attached.
	want := []CardStack{
		{ID: int(cards.Diamonds), Amt: 3, Val: 700},
		{ID: int(cards.Gold), Amt: 2, Val: 500},
		{ID: int(cards.TaxCollector), Amt: 1, Val: -200},
	}
	if diff := cmp.Diff(want, stacks); diff != "" {
		t.Errorf("stack mismatch (-want +got):\n%s", diff)
	}
}

func TestInventoryRoundTrip(t *testing.T) {
	inv := &cards.Inventory{}
	inv.Add(cards.Oil, 4)
	inv.Add(cards.Billionaire, 1)

	back, err := InventoryFromStacks(StacksFromInventory(inv))

	require.NoError(t, err)
	for c := cards.Diamonds; c < cards.NumKinds; c++ {
		assert.Equal(t, inv.Amount(c), back.Amount(c), "kind %v", c)
	}
}

func TestInventoryFromStacks_Rejects(t *testing.T) {
	testCases := []struct {
		desc   string
		stacks []CardStack
	}{
		{desc: "id too large", stacks: []CardStack{{ID: int(cards.NumKinds), Amt: 1}}},
		{desc: "negative id", stacks: []CardStack{{ID: -1, Amt: 1}}},
		{desc: "zero amount", stacks: []CardStack{{ID: 0, Amt: 0}}},
		{desc: "negative amount", stacks: []CardStack{{ID: 0, Amt: -2}}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := InventoryFromStacks(tc.stacks)

			var cmdErr *CmdError
			require.ErrorAs(t, err, &cmdErr)
			assert.Equal(t, EJSONVAL, cmdErr.Code)
		})
	}
}

func TestDecodeEnvelope(t *testing.T) {
	t.Run("malformed JSON", func(t *testing.T) {
		_, err := DecodeEnvelope([]byte(`{"commands": [`))

		var cmdErr *CmdError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, EJSON, cmdErr.Code)
	})

	t.Run("missing commands array", func(t *testing.T) {
		_, err := DecodeEnvelope([]byte(`{"other": 1}`))

		var cmdErr *CmdError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, EJSONVAL, cmdErr.Code)
	})

	t.Run("preserves batch order", func(t *testing.T) {
		data := []byte(`{"commands": [
			{"command": "CANCEL_OFFER", "card_amt": 3},
			{"command": "NEW_OFFER", "cards": []},
			{"no_command": true}
		]}`)

		batch, err := DecodeEnvelope(data)

		require.NoError(t, err)
		require.Len(t, batch, 3)
		assert.Equal(t, CmdCancelOffer, batch[0].Name)
		assert.Equal(t, CmdNewOffer, batch[1].Name)
		assert.Empty(t, batch[2].Name)
	})

	t.Run("decodes payload fields", func(t *testing.T) {
		batch, err := DecodeEnvelope([]byte(`{"commands": [{"command": "CANCEL_OFFER", "card_amt": 5}]}`))
		require.NoError(t, err)
		require.Len(t, batch, 1)

		var doc CancelOfferDoc
		require.NoError(t, batch[0].Decode(&doc))
		assert.Equal(t, 5, doc.CardAmt)
	})
}

func TestEncodeEnvelope(t *testing.T) {
	hand := &cards.Inventory{}
	hand.Add(cards.Diamonds, 2)

	data, err := EncodeEnvelope([]any{
		Join("cafe0123"),
		Start(hand, 0),
	})
	require.NoError(t, err)

	var decoded struct {
		Commands []map[string]any `json:"commands"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Commands, 2)
	assert.Equal(t, CmdJoin, decoded.Commands[0]["command"])
	assert.Equal(t, "cafe0123", decoded.Commands[0]["client_id"])
	assert.Equal(t, CmdStart, decoded.Commands[1]["command"])
}

func TestAsCmdError(t *testing.T) {
	testCases := []struct {
		err  error
		code Errno
	}{
		{cards.ErrEmptyOffer, ENOOFFER},
		{cards.ErrOfferTooSmall, ESMALLOFFER},
		{cards.ErrNotInHand, EHANDSUBSET},
		{cards.ErrTooManyCommodities, EUNIQCOMMS},
		{cards.ErrTooManyWildcards, EUNIQWILDS},
		{cards.ErrCardRemoval, ECARDRM},
		{book.ErrDuplicateOwnOffer, EOFFEROVER},
		{book.ErrOfferTooLarge, EBIGOFFER},
		{book.ErrCancelEmpty, ECANEMPTY},
		{book.ErrCancelPermission, ECANPERM},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.code, AsCmdError(tc.err).Code)
		})
	}

	t.Run("passes through CmdError", func(t *testing.T) {
		orig := NewCmdError(EBADCMDNAME, "nope")
		assert.Equal(t, orig, AsCmdError(orig))
	})
}

func TestErrorDoc(t *testing.T) {
	doc := Error(NewCmdError(ECANEMPTY, "offer to cancel is empty"))

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t, `{"command":"ERROR","errno":6,"what":"offer to cancel is empty"}`, string(data))
}
