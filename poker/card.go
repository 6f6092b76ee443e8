package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// Rank represents a card rank. Ace is high.
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r <= Nine {
			return string(rune('2' + r))
		}
		return "?"
	}
}

// Card is a playing card encoded rank-major as rank*4 + suit, so the 52
// values 0..51 cover every (rank, suit) pair and comparing raw card values
// orders by rank first, suit second.
type Card uint8

// NewCard creates a card from a rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(rank)<<2 | uint8(suit))
}

// Rank returns the rank of the card
func (c Card) Rank() Rank {
	return Rank(c >> 2)
}

// Suit returns the suit of the card
func (c Card) Suit() Suit {
	return Suit(c & 3)
}

// SameRank reports whether both cards share a rank
func (c Card) SameRank(o Card) bool {
	return c.Rank() == o.Rank()
}

// SameSuit reports whether both cards share a suit
func (c Card) SameSuit(o Card) bool {
	return c.Suit() == o.Suit()
}

// String returns the card in [Rank][Suit] notation, e.g. "As" or "Td"
func (c Card) String() string {
	return c.Rank().String() + c.Suit().String()
}

// ParseCard parses a single card in [Rank][Suit] notation.
// Ranks: A K Q J T 9 8 7 6 5 4 3 2. Suits: s h d c.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q: must be two characters", s)
	}

	rank, err := parseRank(s[0])
	if err != nil {
		return 0, fmt.Errorf("invalid card %q: %w", s, err)
	}

	suit, err := parseSuit(s[1])
	if err != nil {
		return 0, fmt.Errorf("invalid card %q: %w", s, err)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a string of concatenated cards, e.g. "AsKsQsJsTs".
// Spaces are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length %d: must be even", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	case '9', '8', '7', '6', '5', '4', '3', '2':
		return Rank(c - '2'), nil
	default:
		return 0, fmt.Errorf("unknown rank %q", c)
	}
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", c)
	}
}
