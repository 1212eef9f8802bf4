package common

import (
	"math/rand"
	"testing"
)

func assertFullUniqueDeck(t *testing.T, d *Deck) {
	t.Helper()
	if d.Remaining() != DeckSize {
		t.Fatalf("deck has %d cards, want %d", d.Remaining(), DeckSize)
	}
	seen := map[Card]bool{}
	for d.Remaining() > 0 {
		c, ok := d.DrawCard()
		if !ok {
			t.Fatal("DrawCard failed with cards remaining")
		}
		if seen[c] {
			t.Fatalf("duplicate card %v", c)
		}
		seen[c] = true
	}
}

func TestNewDeckFullAndUnique(t *testing.T) {
	assertFullUniqueDeck(t, NewDeck(rand.New(rand.NewSource(1))))
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	a := NewDeck(rand.New(rand.NewSource(7)))
	b := NewDeck(rand.New(rand.NewSource(7)))
	a.Shuffle()
	b.Shuffle()
	for a.Remaining() > 0 {
		ca, _ := a.DrawCard()
		cb, _ := b.DrawCard()
		if ca != cb {
			t.Fatalf("same seed produced different orders: %v vs %v", ca, cb)
		}
	}
}

func TestShufflePreservesContents(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(3)))
	d.Shuffle()
	assertFullUniqueDeck(t, d)
}

func TestDealCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	dealt := d.DealCards(8)
	if len(dealt) != 8 {
		t.Fatalf("dealt %d cards, want 8", len(dealt))
	}
	if d.Remaining() != DeckSize-8 {
		t.Fatalf("deck has %d cards after deal, want %d", d.Remaining(), DeckSize-8)
	}
	if got := d.DealCards(0); got != nil {
		t.Errorf("DealCards(0) = %v, want nil", got)
	}
}

func TestDealCardsShortOnExhaustion(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	d.DealCards(50)
	dealt := d.DealCards(8)
	if len(dealt) != 2 {
		t.Fatalf("dealt %d cards from near-empty deck, want 2", len(dealt))
	}
	if !d.IsEmpty() {
		t.Error("deck should be empty")
	}
	if _, ok := d.DrawCard(); ok {
		t.Error("DrawCard from empty deck reported ok")
	}
}

func TestReturnCardsRestoresConservation(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(5)))
	d.Shuffle()
	dealt := d.DealCards(10)
	d.ReturnCards(dealt)
	assertFullUniqueDeck(t, d)
}

func TestResetRebuildsFullDeck(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(9)))
	d.DealCards(30)
	d.Reset()
	assertFullUniqueDeck(t, d)
}
