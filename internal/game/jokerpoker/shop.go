package jokerpoker

import (
	"math/rand"

	"joker-poker-go/backend/internal/models"
)

// Shop is the rotating between-round joker catalog. It is owned by a session
// and shares the session's serialization; it has no lock of its own.
type Shop struct {
	rng    *rand.Rand
	size   int
	jokers []Joker
}

func NewShop(size int, rng *rand.Rand) *Shop {
	return &Shop{rng: rng, size: size}
}

// Refresh replaces the catalog with size jokers drawn uniformly at random,
// with replacement, from the full type enum.
func (s *Shop) Refresh() {
	s.jokers = s.jokers[:0]
	for i := 0; i < s.size; i++ {
		t := JokerTypes[s.rng.Intn(len(JokerTypes))]
		s.jokers = append(s.jokers, NewJoker(t))
	}
}

// Jokers returns a copy of the current catalog.
func (s *Shop) Jokers() []Joker {
	return append([]Joker(nil), s.jokers...)
}

// Buy charges the shop price to the player (shortfall becomes debt), moves
// the joker into the player's owned set, and shrinks the catalog. The slot is
// not replenished until the next Refresh.
func (s *Shop) Buy(index int, p *Player, maxJokers int) (Joker, error) {
	if p == nil {
		return Joker{}, models.ErrNotSeated
	}
	if index < 0 || index >= len(s.jokers) {
		return Joker{}, models.ErrShopIndexOutOfRange
	}
	if len(p.Jokers) >= maxJokers {
		return Joker{}, models.ErrJokerLimitReached
	}

	j := s.jokers[index]
	p.SubtractMoney(j.ShopPrice)
	p.Jokers = append(p.Jokers, j)
	s.jokers = append(s.jokers[:index], s.jokers[index+1:]...)
	return j, nil
}

// Sell credits the joker's sell price to the player's balance and removes it
// from the owned set.
func (s *Shop) Sell(index int, p *Player) (Joker, error) {
	if p == nil {
		return Joker{}, models.ErrNotSeated
	}
	if index < 0 || index >= len(p.Jokers) {
		return Joker{}, models.ErrJokerIndexOutOfRange
	}

	j := p.Jokers[index]
	p.AddMoney(j.SellPrice)
	p.Jokers = append(p.Jokers[:index], p.Jokers[index+1:]...)
	return j, nil
}
