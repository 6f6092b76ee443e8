package poker

import (
	rand "math/rand/v2"
)

// Shuffle returns a uniformly shuffled copy of cards using Fisher-Yates.
// The input slice is never mutated. A nil rng falls back to the package-level
// random source; tests pass a seeded *rand.Rand for deterministic sequences.
func Shuffle(rng *rand.Rand, cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)

	for i := len(out) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// Deck is an ephemeral ordered sequence of the 52 distinct cards, consumed
// from the front as cards are dealt. Create one per deal and discard it.
type Deck struct {
	cards []Card
}

// NewDeck creates a freshly shuffled 52-card deck using the given RNG
func NewDeck(rng *rand.Rand) *Deck {
	cards := make([]Card, 52)
	for i := range cards {
		cards[i] = Card(i)
	}
	return &Deck{cards: Shuffle(rng, cards)}
}

// Deal removes and returns the next n cards from the front of the deck.
// Returns nil if fewer than n cards remain.
func (d *Deck) Deal(n int) []Card {
	if n > len(d.cards) {
		return nil
	}
	cards := d.cards[:n]
	d.cards = d.cards[n:]
	return cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}
