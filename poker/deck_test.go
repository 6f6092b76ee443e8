package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/randutil"
)

func TestShuffleEmptyAndSingleton(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Shuffle(randutil.New(1), []Card{}))
	assert.Equal(t, []Card{7}, Shuffle(randutil.New(1), []Card{7}))
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := MustParseCards("AsKsQsJsTs9s8s")
	original := append([]Card(nil), input...)

	Shuffle(randutil.New(42), input)
	assert.Equal(t, original, input)
}

func TestShuffleIsPermutation(t *testing.T) {
	t.Parallel()

	input := make([]Card, 52)
	for i := range input {
		input[i] = Card(i)
	}

	out := Shuffle(randutil.New(99), input)
	require.Len(t, out, 52)

	counts := make(map[Card]int)
	for _, c := range out {
		counts[c]++
	}
	for _, c := range input {
		assert.Equal(t, 1, counts[c], "card %v", c)
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	input := make([]Card, 52)
	for i := range input {
		input[i] = Card(i)
	}

	a := Shuffle(randutil.New(7), input)
	b := Shuffle(randutil.New(7), input)
	assert.Equal(t, a, b)

	c := Shuffle(randutil.New(8), input)
	assert.NotEqual(t, a, c)
}

func TestNewDeckDeals52DistinctCards(t *testing.T) {
	t.Parallel()

	deck := NewDeck(randutil.New(1))
	assert.Equal(t, 52, deck.CardsRemaining())

	seen := make(map[Card]bool)
	for deck.CardsRemaining() > 0 {
		cards := deck.Deal(1)
		require.Len(t, cards, 1)
		assert.False(t, seen[cards[0]])
		seen[cards[0]] = true
	}
	assert.Len(t, seen, 52)
}

func TestDeckDealConsumesFromFront(t *testing.T) {
	t.Parallel()

	deck := NewDeck(randutil.New(5))
	first := deck.Deal(5)
	require.Len(t, first, 5)
	assert.Equal(t, 47, deck.CardsRemaining())

	// dealing more than remain fails without consuming
	assert.Nil(t, deck.Deal(48))
	assert.Equal(t, 47, deck.CardsRemaining())
}
