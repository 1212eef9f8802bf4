package common

import "testing"

func TestParseCard(t *testing.T) {
	cases := []struct {
		in   string
		want Card
	}{
		{"2S", Card{Rank: 2, Suit: Spades}},
		{"10H", Card{Rank: 10, Suit: Hearts}},
		{"JD", Card{Rank: Jack, Suit: Diamonds}},
		{"qc", Card{Rank: Queen, Suit: Clubs}},
		{" KS ", Card{Rank: King, Suit: Spades}},
		{"AH", Card{Rank: Ace, Suit: Hearts}},
	}
	for _, tc := range cases {
		got, err := ParseCard(tc.in)
		if err != nil {
			t.Fatalf("ParseCard(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseCardInvalid(t *testing.T) {
	for _, in := range []string{"", "S", "1S", "11S", "0H", "AX", "AA", "5"} {
		if _, err := ParseCard(in); err == nil {
			t.Errorf("ParseCard(%q) accepted invalid input", in)
		}
	}
}

func TestCardStringRoundTrip(t *testing.T) {
	for _, s := range Suits {
		for r := MinRank; r <= MaxRank; r++ {
			c := Card{Rank: r, Suit: s}
			got, err := ParseCard(c.String())
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", c.String(), err)
			}
			if got != c {
				t.Errorf("round trip %v -> %q -> %v", c, c.String(), got)
			}
		}
	}
}

func TestChipValue(t *testing.T) {
	cases := []struct {
		card Card
		want int
	}{
		{Card{Rank: 2, Suit: Spades}, 2},
		{Card{Rank: 10, Suit: Hearts}, 10},
		{Card{Rank: Jack, Suit: Clubs}, 11},
		{Card{Rank: Queen, Suit: Diamonds}, 12},
		{Card{Rank: King, Suit: Spades}, 13},
		{Card{Rank: Ace, Suit: Hearts}, 14},
	}
	for _, tc := range cases {
		if got := tc.card.ChipValue(); got != tc.want {
			t.Errorf("ChipValue(%v) = %d, want %d", tc.card, got, tc.want)
		}
	}
}

func TestCardLess(t *testing.T) {
	lo := Card{Rank: 5, Suit: Clubs}
	hi := Card{Rank: 6, Suit: Spades}
	if !lo.Less(hi) {
		t.Errorf("expected %v < %v", lo, hi)
	}
	if hi.Less(lo) {
		t.Errorf("expected %v not < %v", hi, lo)
	}
	// Same rank breaks the tie on suit order.
	sp := Card{Rank: 9, Suit: Spades}
	cl := Card{Rank: 9, Suit: Clubs}
	if !sp.Less(cl) {
		t.Errorf("expected %v < %v on suit order", sp, cl)
	}
}
