package jokerpoker

import "joker-poker-go/backend/internal/game/common"

// Player is one seated participant's mutable economic and round state. The
// session engine is its only writer; snapshots for display are deep copies.
type Player struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	AvatarID int    `json:"avatar_id"`

	Balance int `json:"balance"`
	Debt    int `json:"debt"`

	Hand        []common.Card `json:"hand"`
	PlayedCards []common.Card `json:"played_cards"`
	Jokers      []Joker       `json:"jokers"`

	CurrentScore      int  `json:"current_score"`
	RemainingPlays    int  `json:"remaining_plays"`
	RemainingDiscards int  `json:"remaining_discards"`
	HasPlayed         bool `json:"has_played"`
}

func NewPlayer(userID int64, name string, avatarID int) *Player {
	return &Player{
		UserID:   userID,
		Name:     name,
		AvatarID: avatarID,
		Balance:  StartingBalance,
	}
}

// AddMoney unconditionally increases the balance. Round settlement pays debt
// separately, after winnings are credited.
func (p *Player) AddMoney(amount int) {
	if amount <= 0 {
		return
	}
	p.Balance += amount
}

// SubtractMoney removes amount from the balance. A shortfall is converted to
// debt and the balance floored at zero, so every mandatory spend (ante, bet,
// purchase) fully succeeds.
func (p *Player) SubtractMoney(amount int) {
	if amount <= 0 {
		return
	}
	p.Balance -= amount
	if p.Balance < 0 {
		p.Debt += -p.Balance
		p.Balance = 0
	}
}

// PayDebt reduces debt by min(amount, debt) and returns the amount actually
// paid. Debt never goes negative.
func (p *Player) PayDebt(amount int) int {
	if amount <= 0 || p.Debt <= 0 {
		return 0
	}
	paid := amount
	if paid > p.Debt {
		paid = p.Debt
	}
	p.Debt -= paid
	return paid
}

// ResetRound clears the per-round state while keeping balance, debt and owned
// jokers. Called for every seated player when a round starts.
func (p *Player) ResetRound(rules Rules) {
	p.Hand = nil
	p.PlayedCards = nil
	p.CurrentScore = 0
	p.RemainingPlays = rules.PlaysPerRound
	p.RemainingDiscards = rules.DiscardsPerRound
	p.HasPlayed = false
}

// HoldsAll reports whether every card in cards is currently in the hand,
// matching by suit and rank. Duplicate requests for the same card fail,
// since each hand card can satisfy only one request.
func (p *Player) HoldsAll(cards []common.Card) bool {
	used := make([]bool, len(p.Hand))
	for _, want := range cards {
		found := false
		for i, have := range p.Hand {
			if !used[i] && have == want {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// removeFromHand deletes the first hand occurrence of each card. Callers
// validate with HoldsAll first.
func (p *Player) removeFromHand(cards []common.Card) {
	for _, want := range cards {
		for i, have := range p.Hand {
			if have == want {
				p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
				break
			}
		}
	}
}
