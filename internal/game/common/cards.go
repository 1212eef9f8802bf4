package common

import (
	"fmt"
	"strings"
)

type Suit string

const (
	Spades   Suit = "S"
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
)

// Suits in canonical order, used for deck construction and tie-break ordering.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

func (s Suit) order() int {
	switch s {
	case Spades:
		return 0
	case Hearts:
		return 1
	case Diamonds:
		return 2
	case Clubs:
		return 3
	}
	return 4
}

type Rank int

const (
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

const (
	MinRank Rank = 2
	MaxRank Rank = Ace
)

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// ChipValue is the chip contribution of a played card: its numeric rank
// (J=11, Q=12, K=13, A=14).
func (c Card) ChipValue() int {
	return int(c.Rank)
}

// Less orders cards by rank, then by suit.
func (c Card) Less(other Card) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return c.Suit.order() < other.Suit.order()
}

func (c Card) String() string {
	var r string
	switch c.Rank {
	case Jack:
		r = "J"
	case Queen:
		r = "Q"
	case King:
		r = "K"
	case Ace:
		r = "A"
	default:
		r = fmt.Sprintf("%d", int(c.Rank))
	}
	return r + string(c.Suit)
}

func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card")
	}
	suit := Suit(s[len(s)-1:])
	rankStr := s[:len(s)-1]
	var r Rank
	switch rankStr {
	case "A":
		r = Ace
	case "J":
		r = Jack
	case "Q":
		r = Queen
	case "K":
		r = King
	default:
		var v int
		_, err := fmt.Sscanf(rankStr, "%d", &v)
		if err != nil || v < 2 || v > 10 {
			return Card{}, fmt.Errorf("invalid rank")
		}
		r = Rank(v)
	}
	switch suit {
	case Spades, Hearts, Diamonds, Clubs:
	default:
		return Card{}, fmt.Errorf("invalid suit")
	}
	return Card{Rank: r, Suit: suit}, nil
}

// ParseCards parses a list of card strings, failing on the first invalid one.
func ParseCards(ss []string) ([]Card, error) {
	out := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			return nil, fmt.Errorf("invalid card %q", s)
		}
		out = append(out, c)
	}
	return out, nil
}
