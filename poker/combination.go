package poker

import (
	"sort"
	"strings"
)

// Category enumerates the standard poker hand categories in ascending strength
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Combination is a classified five-card hand: a category plus the subset
// reordered so the cards that make the hand come first.
type Combination struct {
	Category Category
	Subset   Subset
}

// Weight folds the category and the five post-reorder ranks into a single
// integer so combinations are totally ordered: category is the most
// significant digit pair, then each card rank in subset order.
func (c Combination) Weight() int64 {
	w := int64(c.Category)
	for _, card := range c.Subset {
		w = w*100 + int64(card.Rank())
	}
	return w
}

// String renders the combination for logs, e.g. "Full House (KKK22)"
func (c Combination) String() string {
	var b strings.Builder
	for _, card := range c.Subset {
		b.WriteString(card.String())
	}
	return c.Category.String() + " (" + b.String() + ")"
}

// Classify assigns a pre-sorted subset to the strongest category it matches.
// High card always matches as the fallback.
func Classify(s Subset) Combination {
	if out, ok := s.RoyalFlush(); ok {
		return Combination{RoyalFlush, out}
	}
	if out, ok := s.StraightFlush(); ok {
		return Combination{StraightFlush, out}
	}
	if out, ok := s.FourOfAKind(); ok {
		return Combination{FourOfAKind, out}
	}
	if out, ok := s.FullHouse(); ok {
		return Combination{FullHouse, out}
	}
	if out, ok := s.Flush(); ok {
		return Combination{Flush, out}
	}
	if out, ok := s.Straight(); ok {
		return Combination{Straight, out}
	}
	if out, ok := s.ThreeOfAKind(); ok {
		return Combination{ThreeOfAKind, out}
	}
	if out, ok := s.TwoPair(); ok {
		return Combination{TwoPair, out}
	}
	if out, ok := s.Pair(); ok {
		return Combination{OnePair, out}
	}
	return Combination{HighCard, s}
}

// Best returns the strongest five-card combination in the pool (2-7 cards).
// The pool is sorted by descending raw card value before subsets are
// enumerated, so the classifiers' first-match scans land on the highest
// ranks. Ties on weight resolve to the last subset in enumeration order.
// ok is false when the pool holds fewer than five cards.
func Best(pool []Card) (best Combination, ok bool) {
	if len(pool) < 5 {
		return Combination{}, false
	}

	sorted := make([]Card, len(pool))
	copy(sorted, pool)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	for _, subset := range Subsets(sorted) {
		combination := Classify(subset)
		if !ok || combination.Weight() >= best.Weight() {
			best = combination
			ok = true
		}
	}

	return best, ok
}
