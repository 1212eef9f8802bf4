package common

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// DeckSize is the number of cards in a standard deck without jokers.
const DeckSize = 52

// NewRand returns a rand.Rand seeded from crypto/rand, falling back to the
// wall clock if the system entropy source fails.
func NewRand() *rand.Rand {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}

// Deck is a mutable, order-sensitive stack of cards. It starts as the full
// 52-card set in canonical order; callers shuffle explicitly. The random
// source is injected so tests can make shuffles and reinsertions
// deterministic.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = NewRand()
	}
	d := &Deck{rng: rng}
	d.fill()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	if cap(d.cards) < DeckSize {
		d.cards = make([]Card, 0, DeckSize)
	}
	for _, s := range Suits {
		for r := MinRank; r <= MaxRank; r++ {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
}

// Shuffle permutes the deck in place with a Fisher–Yates pass: each position i
// swaps with a uniformly chosen position in [i, n).
func (d *Deck) Shuffle() {
	for i := 0; i < len(d.cards); i++ {
		j := i + d.rng.Intn(len(d.cards)-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// DealCards removes and returns up to count cards from the front of the deck.
// Fewer (possibly zero) cards are returned when the deck runs out.
func (d *Deck) DealCards(count int) []Card {
	if count <= 0 {
		return nil
	}
	if count > len(d.cards) {
		count = len(d.cards)
	}
	dealt := make([]Card, count)
	copy(dealt, d.cards[:count])
	d.cards = d.cards[count:]
	return dealt
}

// DrawCard removes and returns the front card. ok is false when the deck is
// empty.
func (d *Deck) DrawCard() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// ReturnCard reinserts a single card at a uniformly chosen position.
func (d *Deck) ReturnCard(c Card) {
	i := d.rng.Intn(len(d.cards) + 1)
	d.cards = append(d.cards, Card{})
	copy(d.cards[i+1:], d.cards[i:])
	d.cards[i] = c
}

// ReturnCards reinserts each card independently at a uniformly chosen
// position, so a batch does not come back as a contiguous block.
func (d *Deck) ReturnCards(cards []Card) {
	for _, c := range cards {
		d.ReturnCard(c)
	}
}

// Reset reinitializes the deck to the full 52-card set and shuffles it.
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
