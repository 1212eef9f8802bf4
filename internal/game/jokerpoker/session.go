package jokerpoker

import (
	"math/rand"

	"joker-poker-go/backend/internal/game/common"
	"joker-poker-go/backend/internal/models"
)

// Session orchestrates one table: seats, the deck, the shop and the per-round
// turn state machine. It is single-writer: callers must serialize every
// command (the handlers layer holds one mutex per session). Rejected commands
// return a sentinel error and mutate nothing.
type Session struct {
	rules  Rules
	rng    *rand.Rand
	deck   *common.Deck
	shop   *Shop
	events Events

	players []*Player // seat order, stable across rounds

	// Per-round state, reset by StartRound.
	playOrder    []*Player
	currentIndex int
	pot          int
	running      bool
}

// NewSession creates a session with no seated players. A nil rng gets a
// crypto-seeded source; a nil events sink discards notifications. The shop is
// stocked immediately so players can browse before the first round.
func NewSession(rules Rules, rng *rand.Rand, events Events) *Session {
	if rng == nil {
		rng = common.NewRand()
	}
	if events == nil {
		events = NopEvents{}
	}
	rules = rules.Normalize()
	s := &Session{
		rules:  rules,
		rng:    rng,
		deck:   common.NewDeck(rng),
		shop:   NewShop(rules.ShopSize, rng),
		events: events,
	}
	s.shop.Refresh()
	return s
}

func (s *Session) Rules() Rules   { return s.rules }
func (s *Session) Running() bool  { return s.running }
func (s *Session) Pot() int       { return s.pot }
func (s *Session) SeatCount() int { return len(s.players) }

// Player returns the seated player with the given user id.
func (s *Session) Player(userID int64) (*Player, bool) {
	for _, p := range s.players {
		if p.UserID == userID {
			return p, true
		}
	}
	return nil, false
}

// AddPlayer seats a participant. Rejected while a round is running.
func (s *Session) AddPlayer(p *Player) error {
	if p == nil {
		return models.ErrNotSeated
	}
	if s.running {
		return models.ErrRoundInProgress
	}
	if len(s.players) >= MaxPlayers {
		return models.ErrTableFull
	}
	if _, ok := s.Player(p.UserID); ok {
		return models.ErrAlreadySeated
	}
	s.players = append(s.players, p)
	return nil
}

// RemovePlayer unseats a participant. Rejected while a round is running so a
// mid-round leave can never strand cards outside the deck.
func (s *Session) RemovePlayer(userID int64) error {
	if s.running {
		return models.ErrRoundInProgress
	}
	for i, p := range s.players {
		if p.UserID == userID {
			s.players = append(s.players[:i], s.players[i+1:]...)
			return nil
		}
	}
	return models.ErrNotSeated
}

// StartRound begins a new round: shuffled turn order, forced antes (shortfall
// becomes debt so every player pays in full), a fresh shuffled deck, and a
// dealt hand for every seat.
func (s *Session) StartRound() error {
	if s.running {
		return models.ErrRoundInProgress
	}
	if len(s.players) < MinPlayers {
		return models.ErrNotEnoughPlayers
	}

	s.running = true
	s.pot = 0

	// Same Fisher-Yates pass the deck uses.
	s.playOrder = append(s.playOrder[:0], s.players...)
	for i := 0; i < len(s.playOrder); i++ {
		j := i + s.rng.Intn(len(s.playOrder)-i)
		s.playOrder[i], s.playOrder[j] = s.playOrder[j], s.playOrder[i]
	}

	for _, p := range s.players {
		p.ResetRound(s.rules)
		p.SubtractMoney(s.rules.Ante)
		s.pot += s.rules.Ante
	}

	s.deck.Reset()
	for _, p := range s.players {
		p.Hand = s.deck.DealCards(s.rules.HandSize)
	}

	s.currentIndex = 0

	order := make([]int64, len(s.playOrder))
	for i, p := range s.playOrder {
		order[i] = p.UserID
	}
	s.events.RoundStarted(order)
	s.startTurn()
	return nil
}

// PlayCards scores the acting player's play, returns every card they held to
// the deck, and ends their turn.
func (s *Session) PlayCards(userID int64, cards []common.Card) error {
	p, err := s.actingPlayer(userID)
	if err != nil {
		return err
	}
	if p.HasPlayed {
		return models.ErrAlreadyPlayed
	}
	if len(cards) == 0 {
		return models.ErrEmptyPlay
	}
	if len(cards) > s.rules.MaxPlayCards {
		return models.ErrTooManyCards
	}
	if !p.HoldsAll(cards) {
		return models.ErrCardNotInHand
	}

	// Copy before removal: cards may alias the hand's backing array.
	played := append([]common.Card(nil), cards...)
	p.removeFromHand(played)

	handType := DetectHandType(played)
	score := CalculateScore(played, p.Jokers)
	p.CurrentScore = score
	p.PlayedCards = played
	p.RemainingPlays--

	// Everything the player held, played or not, goes back into the deck at
	// random positions.
	s.deck.ReturnCards(p.Hand)
	s.deck.ReturnCards(played)
	p.Hand = nil
	p.HasPlayed = true

	s.events.PlayerPlayed(p.UserID, played, handType, score)
	s.endTurn()
	return nil
}

// PlaceBet adds chips to the pot (shortfall becomes debt) and ends the
// acting player's turn. Betting needs at least two players still holding an
// unplayed hand, so the last unplayed player is forced to play.
func (s *Session) PlaceBet(userID int64, amount int) error {
	p, err := s.actingPlayer(userID)
	if err != nil {
		return err
	}
	if s.unplayedCount() < 2 {
		return models.ErrBetNotAllowed
	}
	if amount <= 0 {
		return models.ErrInvalidBetAmount
	}

	p.SubtractMoney(amount)
	s.pot += amount

	s.events.PlayerBet(p.UserID, amount, s.pot)
	s.endTurn()
	return nil
}

// DiscardCards returns the chosen cards to the deck and immediately draws the
// same number of replacements. Discarding never ends the turn.
func (s *Session) DiscardCards(userID int64, cards []common.Card) error {
	p, err := s.actingPlayer(userID)
	if err != nil {
		return err
	}
	if p.RemainingDiscards <= 0 {
		return models.ErrNoDiscardsLeft
	}
	if len(cards) == 0 {
		return models.ErrEmptyPlay
	}
	if len(cards) > s.rules.MaxDiscardCards {
		return models.ErrTooManyDiscards
	}
	if !p.HoldsAll(cards) {
		return models.ErrCardNotInHand
	}

	// Copy before removal: cards may alias the hand's backing array.
	dropped := append([]common.Card(nil), cards...)
	p.removeFromHand(dropped)
	s.deck.ReturnCards(dropped)
	p.Hand = append(p.Hand, s.deck.DealCards(len(dropped))...)
	p.RemainingDiscards--

	s.events.PlayerDiscarded(p.UserID, len(dropped))
	return nil
}

// BuyJoker purchases the shop joker at index for the given player. Not
// turn-gated: purchases are legal whenever the player is seated.
func (s *Session) BuyJoker(userID int64, index int) error {
	p, ok := s.Player(userID)
	if !ok {
		return models.ErrNotSeated
	}
	_, err := s.shop.Buy(index, p, s.rules.MaxJokers)
	return err
}

// SellJoker sells the player's owned joker at index back for its sell price.
func (s *Session) SellJoker(userID int64, index int) error {
	p, ok := s.Player(userID)
	if !ok {
		return models.ErrNotSeated
	}
	_, err := s.shop.Sell(index, p)
	return err
}

// ShopCatalog returns a copy of the current shop contents.
func (s *Session) ShopCatalog() []Joker {
	return s.shop.Jokers()
}

// actingPlayer resolves the common guards shared by every turn-gated command.
func (s *Session) actingPlayer(userID int64) (*Player, error) {
	if !s.running {
		return nil, models.ErrRoundNotRunning
	}
	p, ok := s.Player(userID)
	if !ok {
		return nil, models.ErrNotSeated
	}
	if s.currentIndex >= len(s.playOrder) || s.playOrder[s.currentIndex] != p {
		return nil, models.ErrNotYourTurn
	}
	return p, nil
}

func (s *Session) unplayedCount() int {
	n := 0
	for _, p := range s.playOrder {
		if !p.HasPlayed {
			n++
		}
	}
	return n
}

// startTurn advances to the next player who can still act, wrapping around
// the turn order. Each time the index runs past the end the round-end
// condition is evaluated first.
func (s *Session) startTurn() {
	for {
		if s.currentIndex >= len(s.playOrder) {
			if s.checkRoundEnd() {
				return
			}
			s.currentIndex = 0
			continue
		}
		if p := s.playOrder[s.currentIndex]; p.HasPlayed || p.RemainingPlays == 0 {
			s.currentIndex++
			continue
		}
		break
	}

	cur := s.playOrder[s.currentIndex]
	mustPlay := s.unplayedCount() == 1
	s.events.TurnStarted(cur.UserID, mustPlay)
}

func (s *Session) endTurn() {
	s.currentIndex++
	s.startTurn()
}

// checkRoundEnd settles the round once every player has either played or run
// out of plays. Returns true when the round ended.
func (s *Session) checkRoundEnd() bool {
	for _, p := range s.playOrder {
		if !p.HasPlayed && p.RemainingPlays > 0 {
			return false
		}
	}
	s.endRound()
	return true
}

// endRound distributes the pot to the highest scorer(s), settles debts, and
// restocks the shop. On a tie the pot is integer-divided; the remainder goes
// to the house.
func (s *Session) endRound() {
	s.running = false

	maxScore := s.playOrder[0].CurrentScore
	for _, p := range s.playOrder[1:] {
		if p.CurrentScore > maxScore {
			maxScore = p.CurrentScore
		}
	}

	var winners []*Player
	for _, p := range s.playOrder {
		if p.CurrentScore == maxScore {
			winners = append(winners, p)
		}
	}

	share := s.pot / len(winners)
	for _, w := range winners {
		w.AddMoney(share)
	}

	// Winnings pay debt first: anyone holding both chips and debt pays down
	// min(balance, debt).
	for _, p := range s.players {
		if p.Balance > 0 && p.Debt > 0 {
			pay := p.Balance
			if pay > p.Debt {
				pay = p.Debt
			}
			p.PayDebt(pay)
			p.Balance -= pay
		}
	}

	winnerIDs := make([]int64, len(winners))
	for i, w := range winners {
		winnerIDs[i] = w.UserID
	}
	scores := make([]PlayerScore, len(s.playOrder))
	for i, p := range s.playOrder {
		scores[i] = PlayerScore{PlayerID: p.UserID, Score: p.CurrentScore}
	}
	s.events.RoundEnded(winnerIDs, scores, s.pot)

	s.shop.Refresh()
	s.events.ShopRefreshed(s.shop.Jokers())
}

// Snapshot is a deep copy of the session state for display layers. Handlers
// redact other players' hands before sending it to a client.
type Snapshot struct {
	Rules           Rules    `json:"rules"`
	Running         bool     `json:"running"`
	Pot             int      `json:"pot"`
	DeckRemaining   int      `json:"deck_remaining"`
	TurnOrder       []int64  `json:"turn_order,omitempty"`
	CurrentPlayerID int64    `json:"current_player_id,omitempty"`
	MustPlay        bool     `json:"must_play"`
	Players         []Player `json:"players"`
	Shop            []Joker  `json:"shop"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Rules:         s.rules,
		Running:       s.running,
		Pot:           s.pot,
		DeckRemaining: s.deck.Remaining(),
		Shop:          s.shop.Jokers(),
	}
	if s.running {
		snap.TurnOrder = make([]int64, len(s.playOrder))
		for i, p := range s.playOrder {
			snap.TurnOrder[i] = p.UserID
		}
		if s.currentIndex < len(s.playOrder) {
			snap.CurrentPlayerID = s.playOrder[s.currentIndex].UserID
			snap.MustPlay = s.unplayedCount() == 1
		}
	}
	snap.Players = make([]Player, len(s.players))
	for i, p := range s.players {
		cp := *p
		cp.Hand = append([]common.Card(nil), p.Hand...)
		cp.PlayedCards = append([]common.Card(nil), p.PlayedCards...)
		cp.Jokers = append([]Joker(nil), p.Jokers...)
		snap.Players[i] = cp
	}
	return snap
}
