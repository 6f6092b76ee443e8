package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardEncoding(t *testing.T) {
	t.Parallel()

	// all 52 ids decode to distinct (rank, suit) pairs and re-encode to
	// the same id
	seen := make(map[[2]uint8]bool)
	for id := 0; id < 52; id++ {
		c := Card(id)
		pair := [2]uint8{uint8(c.Rank()), uint8(c.Suit())}
		assert.False(t, seen[pair], "duplicate (rank,suit) for id %d", id)
		seen[pair] = true
		assert.Equal(t, c, NewCard(c.Rank(), c.Suit()))
	}
	assert.Len(t, seen, 52)
}

func TestCardRankSuit(t *testing.T) {
	t.Parallel()

	c := NewCard(Ace, Spades)
	assert.Equal(t, Ace, c.Rank())
	assert.Equal(t, Spades, c.Suit())
	assert.Equal(t, Card(48), c)

	assert.True(t, NewCard(Ten, Hearts).SameRank(NewCard(Ten, Clubs)))
	assert.False(t, NewCard(Ten, Hearts).SameRank(NewCard(Nine, Hearts)))
	assert.True(t, NewCard(Two, Diamonds).SameSuit(NewCard(King, Diamonds)))
	assert.False(t, NewCard(Two, Diamonds).SameSuit(NewCard(Two, Clubs)))
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		rank Rank
		suit Suit
	}{
		{"As", Ace, Spades},
		{"Kh", King, Hearts},
		{"Td", Ten, Diamonds},
		{"2c", Two, Clubs},
		{"9s", Nine, Spades},
	}

	for _, tt := range tests {
		card, err := ParseCard(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.rank, card.Rank(), tt.in)
		assert.Equal(t, tt.suit, card.Suit(), tt.in)
		assert.Equal(t, tt.in, card.String())
	}

	_, err := ParseCard("Xx")
	assert.Error(t, err)
	_, err = ParseCard("A")
	assert.Error(t, err)
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	cards, err := ParseCards("AsKsQsJsTs")
	require.NoError(t, err)
	require.Len(t, cards, 5)
	assert.Equal(t, NewCard(Ace, Spades), cards[0])
	assert.Equal(t, NewCard(Ten, Spades), cards[4])

	// spaces are tolerated
	cards, err = ParseCards("Ah Kd")
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	_, err = ParseCards("AsK")
	assert.Error(t, err)
}
