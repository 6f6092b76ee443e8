package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subsetOf builds a Subset from card notation; classifiers expect the cards
// pre-sorted by descending raw value, which these literals are.
func subsetOf(t *testing.T, s string) Subset {
	t.Helper()
	cards := MustParseCards(s)
	require.Len(t, cards, 5)
	return Subset{cards[0], cards[1], cards[2], cards[3], cards[4]}
}

func TestFlush(t *testing.T) {
	t.Parallel()

	out, ok := subsetOf(t, "KsJs8s5s2s").Flush()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "KsJs8s5s2s"), out, "flush keeps identity order")

	_, ok = subsetOf(t, "KsJs8s5s2h").Flush()
	assert.False(t, ok)
}

func TestStraight(t *testing.T) {
	t.Parallel()

	out, ok := subsetOf(t, "9s8h7d6c5s").Straight()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "9s8h7d6c5s"), out, "straight keeps identity order")

	// wheel: ace plays low and moves to the end
	out, ok = subsetOf(t, "As5h4d3c2s").Straight()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "5h4d3c2sAs"), out)

	_, ok = subsetOf(t, "9s8h7d6c4s").Straight()
	assert.False(t, ok)

	// ranks must step by exactly one
	_, ok = subsetOf(t, "AsKhQdJc9s").Straight()
	assert.False(t, ok)
}

func TestStraightFlush(t *testing.T) {
	t.Parallel()

	out, ok := subsetOf(t, "9s8s7s6s5s").StraightFlush()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "9s8s7s6s5s"), out)

	// straight but mixed suits
	_, ok = subsetOf(t, "9s8h7s6s5s").StraightFlush()
	assert.False(t, ok)

	// steel wheel keeps the straight's ace-low ordering
	out, ok = subsetOf(t, "As5s4s3s2s").StraightFlush()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "5s4s3s2sAs"), out)
}

func TestRoyalFlush(t *testing.T) {
	t.Parallel()

	out, ok := subsetOf(t, "AsKsQsJsTs").RoyalFlush()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "AsKsQsJsTs"), out)

	// king-high straight flush is not royal
	_, ok = subsetOf(t, "KsQsJsTs9s").RoyalFlush()
	assert.False(t, ok)

	// steel wheel has its ace low, so it is not royal
	_, ok = subsetOf(t, "As5s4s3s2s").RoyalFlush()
	assert.False(t, ok)

	// ace-high straight without the flush is not royal
	_, ok = subsetOf(t, "AsKhQsJsTs").RoyalFlush()
	assert.False(t, ok)
}

func TestFourOfAKind(t *testing.T) {
	t.Parallel()

	out, ok := subsetOf(t, "AsAhAdAcKs").FourOfAKind()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "AsAhAdAcKs"), out)

	// higher kicker ahead of the quad moves behind it
	out, ok = subsetOf(t, "AsKsKhKdKc").FourOfAKind()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "KsKhKdKcAs"), out)

	_, ok = subsetOf(t, "AsAhAdKsKh").FourOfAKind()
	assert.False(t, ok)
}

func TestFullHouse(t *testing.T) {
	t.Parallel()

	// leading triple matches identity
	out, ok := subsetOf(t, "KsKhKdQsQh").FullHouse()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "KsKhKdQsQh"), out)

	// trailing triple moves in front of the pair
	out, ok = subsetOf(t, "AsAhKsKhKd").FullHouse()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "KsKhKdAsAh"), out)

	_, ok = subsetOf(t, "KsKhKdQsJh").FullHouse()
	assert.False(t, ok)
}

func TestThreeOfAKind(t *testing.T) {
	t.Parallel()

	out, ok := subsetOf(t, "QsQhQd9s8h").ThreeOfAKind()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "QsQhQd9s8h"), out)

	// trips in the middle: remaining cards keep their relative order
	out, ok = subsetOf(t, "AsQsQhQd8h").ThreeOfAKind()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "QsQhQdAs8h"), out)

	_, ok = subsetOf(t, "QsQh9s8h7d").ThreeOfAKind()
	assert.False(t, ok)
}

func TestTwoPair(t *testing.T) {
	t.Parallel()

	out, ok := subsetOf(t, "JsJhTsTh3c").TwoPair()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "JsJhTsTh3c"), out)

	// kicker ahead of both pairs moves to the end
	out, ok = subsetOf(t, "AsJsJh5s5h").TwoPair()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "JsJh5s5hAs"), out)

	_, ok = subsetOf(t, "JsJhTs9h3c").TwoPair()
	assert.False(t, ok)
}

func TestPair(t *testing.T) {
	t.Parallel()

	out, ok := subsetOf(t, "AsAh9s5h3c").Pair()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "AsAh9s5h3c"), out)

	// pair in the middle: the rest keep their relative order
	out, ok = subsetOf(t, "As9s9h5h3c").Pair()
	require.True(t, ok)
	assert.Equal(t, subsetOf(t, "9s9hAs5h3c"), out)

	_, ok = subsetOf(t, "As9s8h5h3c").Pair()
	assert.False(t, ok)
}

func TestSubsetsEnumeration(t *testing.T) {
	t.Parallel()

	// C(7,5) = 21 subsets, in lexicographic index order
	pool := MustParseCards("AsKsQsJsTs9s8s")
	subsets := Subsets(pool)
	require.Len(t, subsets, 21)
	assert.Equal(t, Subset{pool[0], pool[1], pool[2], pool[3], pool[4]}, subsets[0])
	assert.Equal(t, Subset{pool[0], pool[1], pool[2], pool[3], pool[5]}, subsets[1])
	assert.Equal(t, Subset{pool[2], pool[3], pool[4], pool[5], pool[6]}, subsets[20])

	assert.Len(t, Subsets(MustParseCards("AsKsQsJsTs")), 1)
	assert.Empty(t, Subsets(MustParseCards("AsKsQsJs")))
	assert.Empty(t, Subsets(nil))
}

func TestExactlyOneCategoryPerSubset(t *testing.T) {
	t.Parallel()

	// Classify assigns the strongest matching category; the high-card
	// fallback guarantees every subset lands somewhere
	tests := []struct {
		cards string
		want  Category
	}{
		{"AsKsQsJsTs", RoyalFlush},
		{"KsQsJsTs9s", StraightFlush},
		{"As5s4s3s2s", StraightFlush},
		{"AsAhAdAcKs", FourOfAKind},
		{"KsKhKdQsQh", FullHouse},
		{"KsJs8s5s2s", Flush},
		{"9s8h7d6c5s", Straight},
		{"As5h4d3c2s", Straight},
		{"QsQhQd9s8h", ThreeOfAKind},
		{"JsJhTsTh3c", TwoPair},
		{"AsAh9s5h3c", OnePair},
		{"AsJh9s5h3c", HighCard},
	}

	for _, tt := range tests {
		got := Classify(subsetOf(t, tt.cards))
		assert.Equal(t, tt.want, got.Category, tt.cards)
	}
}
