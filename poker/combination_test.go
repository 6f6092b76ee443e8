package poker

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightOrderingAcrossCategories(t *testing.T) {
	t.Parallel()

	// ascending by strength: weights must be strictly increasing
	hands := []string{
		"AsJh9s5h3c", // high card
		"AsAh9s5h3c", // pair
		"JsJhTsTh3c", // two pair
		"QsQhQd9s8h", // three of a kind
		"9s8h7d6c5s", // straight
		"KsJs8s5s2s", // flush
		"KsKhKdQsQh", // full house
		"AsAhAdAcKs", // four of a kind
		"KsQsJsTs9s", // straight flush
		"AsKsQsJsTs", // royal flush
	}

	weights := make([]int64, len(hands))
	for i, h := range hands {
		weights[i] = Classify(subsetOf(t, h)).Weight()
	}

	assert.True(t, sort.SliceIsSorted(weights, func(i, j int) bool { return weights[i] < weights[j] }))
	for i := 1; i < len(weights); i++ {
		assert.Less(t, weights[i-1], weights[i], "%s vs %s", hands[i-1], hands[i])
	}
}

func TestWeightTieBreaksWithinCategory(t *testing.T) {
	t.Parallel()

	// kicker decides between equal pairs
	low := Classify(subsetOf(t, "AsAh9s5h3c")).Weight()
	high := Classify(subsetOf(t, "AsAhKs5h3c")).Weight()
	assert.Less(t, low, high)

	// higher straight beats lower straight; wheel is the lowest straight
	wheel := Classify(subsetOf(t, "As5h4d3c2s")).Weight()
	six := Classify(subsetOf(t, "6s5h4d3c2s")).Weight()
	broadway := Classify(subsetOf(t, "AsKhQsJsTd")).Weight()
	assert.Less(t, wheel, six)
	assert.Less(t, six, broadway)
}

func TestBestRoyalFlushScenario(t *testing.T) {
	t.Parallel()

	// raw rank-major encodings
	pool := []Card{
		Card(11<<2 + 0), // Ks
		Card(8<<2 + 1),  // Th
		Card(12<<2 + 0), // As
		Card(8<<2 + 0),  // Ts
		Card(10<<2 + 0), // Qs
		Card(3<<2 + 0),  // 5s
		Card(9<<2 + 0),  // Js
	}

	best, ok := Best(pool)
	require.True(t, ok)
	assert.Equal(t, RoyalFlush, best.Category)
	assert.Equal(t, Subset{
		Card(12<<2 + 0),
		Card(11<<2 + 0),
		Card(10<<2 + 0),
		Card(9<<2 + 0),
		Card(8<<2 + 0),
	}, best.Subset)
}

func TestBestNeedsFiveCards(t *testing.T) {
	t.Parallel()

	_, ok := Best(nil)
	assert.False(t, ok)
	_, ok = Best(MustParseCards("AsKs"))
	assert.False(t, ok)
	_, ok = Best(MustParseCards("AsKsQsJs"))
	assert.False(t, ok)

	best, ok := Best(MustParseCards("AsKsQsJsTs"))
	require.True(t, ok)
	assert.Equal(t, RoyalFlush, best.Category)
}

func TestBestDoesNotMutatePool(t *testing.T) {
	t.Parallel()

	pool := MustParseCards("2s9hAsKc5d7h8c")
	original := append([]Card(nil), pool...)

	_, ok := Best(pool)
	require.True(t, ok)
	assert.Equal(t, original, pool)
}

func TestBestPicksMaximumOverSubsets(t *testing.T) {
	t.Parallel()

	// the pool holds both a flush and a straight; the flush must win
	best, ok := Best(MustParseCards("9s8s7s6s5h4s"))
	require.True(t, ok)
	assert.Equal(t, Flush, best.Category)

	// trips plus two pairs make a full house
	best, ok = Best(MustParseCards("QsQhQdJsJh8c2d"))
	require.True(t, ok)
	assert.Equal(t, FullHouse, best.Category)
}

func TestBestRoundTrip(t *testing.T) {
	t.Parallel()

	pools := []string{
		"2s9hAsKc5d7h8c",
		"AsAhKsKhQd9c2s",
		"AsQh4d3c2s8h9d",
		"KsQsJsTs9s2h3d",
		"7s7h7d7cAs2h3d",
		"4s5c6d7h8s9cTd",
	}

	for _, p := range pools {
		best, ok := Best(MustParseCards(p))
		require.True(t, ok, p)

		// reclassifying the winning subset reproduces the category
		again := Classify(best.Subset)
		assert.Equal(t, best.Category, again.Category, p)
		assert.Equal(t, best.Weight(), again.Weight(), p)
	}
}

func TestBestWheelStraight(t *testing.T) {
	t.Parallel()

	best, ok := Best(MustParseCards("As5h4d3c2s9h7d"))
	require.True(t, ok)
	assert.Equal(t, Straight, best.Category)
	// ace reordered to the low end
	assert.Equal(t, Ace, best.Subset[4].Rank())
	assert.Equal(t, Five, best.Subset[0].Rank())
}
