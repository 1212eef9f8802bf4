package jokerpoker

import (
	"errors"
	"math/rand"
	"testing"

	"joker-poker-go/backend/internal/game/common"
	"joker-poker-go/backend/internal/models"
)

type turnStart struct {
	PlayerID int64
	MustPlay bool
}

type roundEnd struct {
	Winners []int64
	Scores  []PlayerScore
	Pot     int
}

// recorder captures engine notifications for assertions.
type recorder struct {
	turnStarts    []turnStart
	roundEnds     []roundEnd
	played        []int64
	bets          []int64
	discards      []int64
	shopRefreshes int
}

func (r *recorder) RoundStarted([]int64) {}
func (r *recorder) TurnStarted(id int64, mustPlay bool) {
	r.turnStarts = append(r.turnStarts, turnStart{PlayerID: id, MustPlay: mustPlay})
}
func (r *recorder) PlayerPlayed(id int64, _ []common.Card, _ HandType, _ int) {
	r.played = append(r.played, id)
}
func (r *recorder) PlayerBet(id int64, _, _ int) {
	r.bets = append(r.bets, id)
}
func (r *recorder) PlayerDiscarded(id int64, _ int) {
	r.discards = append(r.discards, id)
}
func (r *recorder) RoundEnded(winners []int64, scores []PlayerScore, pot int) {
	r.roundEnds = append(r.roundEnds, roundEnd{Winners: winners, Scores: scores, Pot: pot})
}
func (r *recorder) ShopRefreshed([]Joker) {
	r.shopRefreshes++
}

func newTestSession(t *testing.T, seats int, rec Events) *Session {
	t.Helper()
	s := NewSession(Rules{}, rand.New(rand.NewSource(42)), rec)
	for i := 1; i <= seats; i++ {
		if err := s.AddPlayer(NewPlayer(int64(i), "p", 0)); err != nil {
			t.Fatalf("seat player %d: %v", i, err)
		}
	}
	return s
}

// turnOrder exposes the shuffled round order for assertions.
func turnOrder(s *Session) []*Player {
	return s.playOrder
}

func TestStartRoundGuards(t *testing.T) {
	s := newTestSession(t, 1, nil)
	if err := s.StartRound(); !errors.Is(err, models.ErrNotEnoughPlayers) {
		t.Errorf("one player: got %v, want ErrNotEnoughPlayers", err)
	}

	if err := s.AddPlayer(NewPlayer(2, "p", 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if err := s.StartRound(); !errors.Is(err, models.ErrRoundInProgress) {
		t.Errorf("second start: got %v, want ErrRoundInProgress", err)
	}
}

func TestSeatGuards(t *testing.T) {
	s := newTestSession(t, MaxPlayers, nil)

	if err := s.AddPlayer(NewPlayer(1, "dup", 0)); !errors.Is(err, models.ErrAlreadySeated) {
		t.Errorf("duplicate seat: got %v, want ErrAlreadySeated", err)
	}
	if err := s.AddPlayer(NewPlayer(99, "extra", 0)); !errors.Is(err, models.ErrTableFull) {
		t.Errorf("sixth seat: got %v, want ErrTableFull", err)
	}
	if err := s.RemovePlayer(99); !errors.Is(err, models.ErrNotSeated) {
		t.Errorf("remove stranger: got %v, want ErrNotSeated", err)
	}

	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	if err := s.AddPlayer(NewPlayer(98, "late", 0)); !errors.Is(err, models.ErrRoundInProgress) {
		t.Errorf("seat mid-round: got %v, want ErrRoundInProgress", err)
	}
	if err := s.RemovePlayer(1); !errors.Is(err, models.ErrRoundInProgress) {
		t.Errorf("leave mid-round: got %v, want ErrRoundInProgress", err)
	}
}

func TestStartRoundAntesAndDeals(t *testing.T) {
	s := newTestSession(t, 2, nil)
	rules := s.Rules()

	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}

	if !s.Running() {
		t.Error("round not running after start")
	}
	if s.Pot() != 2*rules.Ante {
		t.Errorf("pot = %d, want %d", s.Pot(), 2*rules.Ante)
	}
	snap := s.Snapshot()
	for _, p := range snap.Players {
		if p.Balance != StartingBalance-rules.Ante {
			t.Errorf("player %d balance = %d, want %d", p.UserID, p.Balance, StartingBalance-rules.Ante)
		}
		if len(p.Hand) != rules.HandSize {
			t.Errorf("player %d hand size = %d, want %d", p.UserID, len(p.Hand), rules.HandSize)
		}
		if p.RemainingPlays != rules.PlaysPerRound || p.RemainingDiscards != rules.DiscardsPerRound {
			t.Errorf("player %d allowances not reset", p.UserID)
		}
	}
	if snap.DeckRemaining != common.DeckSize-2*rules.HandSize {
		t.Errorf("deck remaining = %d, want %d", snap.DeckRemaining, common.DeckSize-2*rules.HandSize)
	}
	if len(snap.TurnOrder) != 2 {
		t.Fatalf("turn order has %d entries, want 2", len(snap.TurnOrder))
	}
	if snap.CurrentPlayerID != snap.TurnOrder[0] {
		t.Errorf("current player %d, want first in order %d", snap.CurrentPlayerID, snap.TurnOrder[0])
	}
}

func TestForcedAnteCreatesDebt(t *testing.T) {
	s := newTestSession(t, 2, nil)
	p, _ := s.Player(1)
	p.Balance = 2

	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	if p.Balance != 0 {
		t.Errorf("balance = %d, want 0", p.Balance)
	}
	if p.Debt != s.Rules().Ante-2 {
		t.Errorf("debt = %d, want %d", p.Debt, s.Rules().Ante-2)
	}
	if s.Pot() != 2*s.Rules().Ante {
		t.Errorf("pot = %d; forced ante must pay in full", s.Pot())
	}
}

func TestPlayOutOfTurnRejectedWithoutMutation(t *testing.T) {
	s := newTestSession(t, 2, nil)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}

	waiting := turnOrder(s)[1]
	handBefore := append([]common.Card(nil), waiting.Hand...)

	err := s.PlayCards(waiting.UserID, waiting.Hand[:1])
	if !errors.Is(err, models.ErrNotYourTurn) {
		t.Fatalf("got %v, want ErrNotYourTurn", err)
	}
	if len(waiting.Hand) != len(handBefore) {
		t.Error("rejected play mutated the hand")
	}
	if waiting.HasPlayed || waiting.RemainingPlays != s.Rules().PlaysPerRound {
		t.Error("rejected play touched round state")
	}
}

func TestPlayValidations(t *testing.T) {
	s := newTestSession(t, 2, nil)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	cur := turnOrder(s)[0]
	other := turnOrder(s)[1]

	if err := s.PlayCards(99, cur.Hand[:1]); !errors.Is(err, models.ErrNotSeated) {
		t.Errorf("stranger: got %v, want ErrNotSeated", err)
	}
	if err := s.PlayCards(cur.UserID, nil); !errors.Is(err, models.ErrEmptyPlay) {
		t.Errorf("empty play: got %v, want ErrEmptyPlay", err)
	}
	if err := s.PlayCards(cur.UserID, cur.Hand[:6]); !errors.Is(err, models.ErrTooManyCards) {
		t.Errorf("six cards: got %v, want ErrTooManyCards", err)
	}
	// A card from the other hand cannot be in this hand: the deck deals
	// without duplication.
	if err := s.PlayCards(cur.UserID, other.Hand[:1]); !errors.Is(err, models.ErrCardNotInHand) {
		t.Errorf("foreign card: got %v, want ErrCardNotInHand", err)
	}
}

func TestPlayScoresAndReturnsEveryHeldCard(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, 2, rec)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	cur := turnOrder(s)[0]
	played := append([]common.Card(nil), cur.Hand[:2]...)
	deckBefore := s.Snapshot().DeckRemaining

	if err := s.PlayCards(cur.UserID, played); err != nil {
		t.Fatalf("PlayCards: %v", err)
	}

	if !cur.HasPlayed || cur.RemainingPlays != 0 {
		t.Error("play did not consume the allowance")
	}
	if cur.Hand != nil {
		t.Errorf("hand not cleared: %v", cur.Hand)
	}
	if cur.CurrentScore != CalculateScore(played, cur.Jokers) {
		t.Errorf("score = %d, want %d", cur.CurrentScore, CalculateScore(played, cur.Jokers))
	}
	// All eight held cards went back, played ones included.
	if got := s.Snapshot().DeckRemaining; got != deckBefore+s.Rules().HandSize {
		t.Errorf("deck remaining = %d, want %d", got, deckBefore+s.Rules().HandSize)
	}
	if len(rec.played) != 1 || rec.played[0] != cur.UserID {
		t.Errorf("played events = %v", rec.played)
	}
	// Turn passed to the second player.
	if got := s.Snapshot().CurrentPlayerID; got != turnOrder(s)[1].UserID {
		t.Errorf("current player = %d, want %d", got, turnOrder(s)[1].UserID)
	}
}

func TestDiscardRedrawsAndKeepsTurn(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, 2, rec)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	cur := turnOrder(s)[0]
	deckBefore := s.Snapshot().DeckRemaining

	if err := s.DiscardCards(cur.UserID, append([]common.Card(nil), cur.Hand[:2]...)); err != nil {
		t.Fatalf("DiscardCards: %v", err)
	}

	if len(cur.Hand) != s.Rules().HandSize {
		t.Errorf("hand size = %d, want %d", len(cur.Hand), s.Rules().HandSize)
	}
	if got := s.Snapshot().DeckRemaining; got != deckBefore {
		t.Errorf("deck remaining = %d, want %d", got, deckBefore)
	}
	if cur.RemainingDiscards != s.Rules().DiscardsPerRound-1 {
		t.Errorf("remaining discards = %d, want %d", cur.RemainingDiscards, s.Rules().DiscardsPerRound-1)
	}
	// Discarding never passes the turn.
	if got := s.Snapshot().CurrentPlayerID; got != cur.UserID {
		t.Errorf("current player = %d, want %d", got, cur.UserID)
	}
	if cur.HasPlayed {
		t.Error("discard marked the player as played")
	}
}

func TestDiscardValidations(t *testing.T) {
	s := newTestSession(t, 2, nil)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	cur := turnOrder(s)[0]

	if err := s.DiscardCards(cur.UserID, nil); !errors.Is(err, models.ErrEmptyPlay) {
		t.Errorf("empty discard: got %v, want ErrEmptyPlay", err)
	}
	if err := s.DiscardCards(cur.UserID, cur.Hand[:5]); !errors.Is(err, models.ErrTooManyDiscards) {
		t.Errorf("five cards: got %v, want ErrTooManyDiscards", err)
	}

	for i := 0; i < s.Rules().DiscardsPerRound; i++ {
		if err := s.DiscardCards(cur.UserID, append([]common.Card(nil), cur.Hand[:1]...)); err != nil {
			t.Fatalf("discard %d: %v", i, err)
		}
	}
	if err := s.DiscardCards(cur.UserID, cur.Hand[:1]); !errors.Is(err, models.ErrNoDiscardsLeft) {
		t.Errorf("exhausted discards: got %v, want ErrNoDiscardsLeft", err)
	}
}

func TestBetValidations(t *testing.T) {
	s := newTestSession(t, 2, nil)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	cur := turnOrder(s)[0]

	if err := s.PlaceBet(cur.UserID, 0); !errors.Is(err, models.ErrInvalidBetAmount) {
		t.Errorf("zero bet: got %v, want ErrInvalidBetAmount", err)
	}
	if err := s.PlaceBet(cur.UserID, -5); !errors.Is(err, models.ErrInvalidBetAmount) {
		t.Errorf("negative bet: got %v, want ErrInvalidBetAmount", err)
	}
}

func TestLastUnplayedPlayerCannotBet(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, 2, rec)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	first, second := turnOrder(s)[0], turnOrder(s)[1]

	if err := s.PlayCards(first.UserID, first.Hand[:1]); err != nil {
		t.Fatal(err)
	}

	// Second player is the last one holding an unplayed hand.
	last := rec.turnStarts[len(rec.turnStarts)-1]
	if last.PlayerID != second.UserID || !last.MustPlay {
		t.Errorf("turn start = %+v, want must-play for player %d", last, second.UserID)
	}
	if err := s.PlaceBet(second.UserID, 3); !errors.Is(err, models.ErrBetNotAllowed) {
		t.Errorf("last unplayed bet: got %v, want ErrBetNotAllowed", err)
	}
	if err := s.PlayCards(second.UserID, second.Hand[:1]); err != nil {
		t.Fatalf("forced play rejected: %v", err)
	}
	if s.Running() {
		t.Error("round still running after every player played")
	}
}

func TestBettingWrapsTurnOrderUntilEveryonePlays(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, 3, rec)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	order := turnOrder(s)
	ante := s.Rules().Ante

	for _, p := range order {
		if err := s.PlaceBet(p.UserID, 2); err != nil {
			t.Fatalf("bet by %d: %v", p.UserID, err)
		}
	}
	if s.Pot() != 3*ante+3*2 {
		t.Errorf("pot = %d, want %d", s.Pot(), 3*ante+3*2)
	}
	if !s.Running() {
		t.Error("round ended while every player still has plays left")
	}

	// The index wrapped back to the first player.
	if got := s.Snapshot().CurrentPlayerID; got != order[0].UserID {
		t.Errorf("current player = %d, want %d after wrap", got, order[0].UserID)
	}

	for _, p := range order {
		if err := s.PlayCards(p.UserID, p.Hand[:1]); err != nil {
			t.Fatalf("play by %d: %v", p.UserID, err)
		}
	}
	if s.Running() {
		t.Error("round still running")
	}

	wantTurns := []int64{
		order[0].UserID, order[1].UserID, order[2].UserID,
		order[0].UserID, order[1].UserID, order[2].UserID,
	}
	if len(rec.turnStarts) != len(wantTurns) {
		t.Fatalf("turn starts = %+v, want %d entries", rec.turnStarts, len(wantTurns))
	}
	for i, want := range wantTurns {
		if rec.turnStarts[i].PlayerID != want {
			t.Errorf("turn %d went to %d, want %d", i, rec.turnStarts[i].PlayerID, want)
		}
	}
	// Only the final turn was forced.
	for i, ts := range rec.turnStarts {
		wantMust := i == len(rec.turnStarts)-1
		if ts.MustPlay != wantMust {
			t.Errorf("turn %d mustPlay = %v, want %v", i, ts.MustPlay, wantMust)
		}
	}
}

func TestExtraPlaysDoNotStallTheRound(t *testing.T) {
	rec := &recorder{}
	s := NewSession(Rules{PlaysPerRound: 2}, rand.New(rand.NewSource(42)), rec)
	for i := 1; i <= 3; i++ {
		if err := s.AddPlayer(NewPlayer(int64(i), "p", 0)); err != nil {
			t.Fatalf("seat player %d: %v", i, err)
		}
	}
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	order := turnOrder(s)

	// First and third play; the second bets and still holds a hand. The turn
	// must come back to the second seat, not to an already-played one.
	if err := s.PlayCards(order[0].UserID, order[0].Hand[:1]); err != nil {
		t.Fatalf("first play: %v", err)
	}
	if err := s.PlaceBet(order[1].UserID, 1); err != nil {
		t.Fatalf("bet: %v", err)
	}
	if err := s.PlayCards(order[2].UserID, order[2].Hand[:1]); err != nil {
		t.Fatalf("third play: %v", err)
	}

	last := rec.turnStarts[len(rec.turnStarts)-1]
	if last.PlayerID != order[1].UserID {
		t.Fatalf("turn on player %d, want the unplayed player %d", last.PlayerID, order[1].UserID)
	}
	if !last.MustPlay {
		t.Error("last unplayed player not flagged must-play")
	}

	if err := s.PlayCards(order[1].UserID, order[1].Hand[:1]); err != nil {
		t.Fatalf("final play: %v", err)
	}
	if s.Running() {
		t.Error("round still running after every player played")
	}
	if len(rec.roundEnds) != 1 {
		t.Errorf("round ends = %d, want 1", len(rec.roundEnds))
	}
}

func TestRoundEndPaysWinnerAndRefreshesShop(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, 2, rec)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	order := turnOrder(s)
	pot := s.Pot()
	afterAnte := StartingBalance - s.Rules().Ante

	for _, p := range order {
		if err := s.PlayCards(p.UserID, p.Hand[:1]); err != nil {
			t.Fatal(err)
		}
	}

	if len(rec.roundEnds) != 1 {
		t.Fatalf("round end events = %d, want 1", len(rec.roundEnds))
	}
	end := rec.roundEnds[0]
	if end.Pot != pot {
		t.Errorf("final pot = %d, want %d", end.Pot, pot)
	}

	maxScore := end.Scores[0].Score
	for _, sc := range end.Scores[1:] {
		if sc.Score > maxScore {
			maxScore = sc.Score
		}
	}
	isWinner := map[int64]bool{}
	for _, id := range end.Winners {
		isWinner[id] = true
	}
	for _, sc := range end.Scores {
		if (sc.Score == maxScore) != isWinner[sc.PlayerID] {
			t.Errorf("winner set inconsistent with scores: %+v", end)
		}
	}

	share := pot / len(end.Winners)
	for _, p := range order {
		want := afterAnte
		if isWinner[p.UserID] {
			want += share
		}
		if p.Balance != want {
			t.Errorf("player %d balance = %d, want %d", p.UserID, p.Balance, want)
		}
	}

	if rec.shopRefreshes != 1 {
		t.Errorf("shop refresh events = %d, want 1", rec.shopRefreshes)
	}
	if len(s.ShopCatalog()) != s.Rules().ShopSize {
		t.Errorf("restocked shop has %d jokers, want %d", len(s.ShopCatalog()), s.Rules().ShopSize)
	}
}

func TestRoundEndTieSplitsPotRemainderToHouse(t *testing.T) {
	s := newTestSession(t, 2, nil)
	p1, _ := s.Player(1)
	p2, _ := s.Player(2)

	s.running = true
	s.playOrder = []*Player{p1, p2}
	s.pot = 17
	for _, p := range s.playOrder {
		p.CurrentScore = 40
		p.HasPlayed = true
	}

	s.endRound()

	if p1.Balance != StartingBalance+8 || p2.Balance != StartingBalance+8 {
		t.Errorf("balances = %d, %d; want both %d", p1.Balance, p2.Balance, StartingBalance+8)
	}
	if s.Running() {
		t.Error("round still running after settlement")
	}
}

func TestRoundEndSettlesDebtBeforeKeepingWinnings(t *testing.T) {
	s := newTestSession(t, 2, nil)
	p1, _ := s.Player(1)
	p2, _ := s.Player(2)
	p1.Debt = 30

	s.running = true
	s.playOrder = []*Player{p1, p2}
	s.pot = 50
	p1.CurrentScore = 99
	p2.CurrentScore = 10
	p1.HasPlayed = true
	p2.HasPlayed = true

	s.endRound()

	if p1.Debt != 0 {
		t.Errorf("winner debt = %d, want 0", p1.Debt)
	}
	if p1.Balance != StartingBalance+50-30 {
		t.Errorf("winner balance = %d, want %d", p1.Balance, StartingBalance+50-30)
	}
	if p2.Balance != StartingBalance {
		t.Errorf("loser balance = %d, want %d", p2.Balance, StartingBalance)
	}
}

func TestShopTradesAreNotTurnGated(t *testing.T) {
	s := newTestSession(t, 2, nil)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}
	waiting := turnOrder(s)[1]
	balBefore := waiting.Balance

	if err := s.BuyJoker(waiting.UserID, 0); err != nil {
		t.Fatalf("off-turn buy rejected: %v", err)
	}
	if len(waiting.Jokers) != 1 {
		t.Fatalf("jokers = %v, want one", waiting.Jokers)
	}
	if waiting.Balance != balBefore-waiting.Jokers[0].ShopPrice {
		t.Errorf("balance = %d after buy", waiting.Balance)
	}

	if err := s.SellJoker(waiting.UserID, 0); err != nil {
		t.Fatalf("off-turn sell rejected: %v", err)
	}
	if len(waiting.Jokers) != 0 {
		t.Error("joker not removed by sell")
	}

	if err := s.BuyJoker(99, 0); !errors.Is(err, models.ErrNotSeated) {
		t.Errorf("stranger buy: got %v, want ErrNotSeated", err)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestSession(t, 2, nil)
	if err := s.StartRound(); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	p, _ := s.Player(snap.Players[0].UserID)
	origHand := append([]common.Card(nil), p.Hand...)
	origBalance := p.Balance

	snap.Players[0].Hand[0] = common.Card{Rank: common.MinRank, Suit: common.Spades}
	snap.Players[0].Hand[1] = common.Card{Rank: common.Ace, Suit: common.Clubs}
	snap.Players[0].Balance = -999

	if p.Balance != origBalance {
		t.Error("snapshot shares player struct with session")
	}
	for i, c := range origHand {
		if p.Hand[i] != c {
			t.Fatal("snapshot shares hand slice with session")
		}
	}
}

func TestMultipleRoundsOnOneSession(t *testing.T) {
	s := newTestSession(t, 2, nil)
	for round := 0; round < 3; round++ {
		if err := s.StartRound(); err != nil {
			t.Fatalf("round %d start: %v", round, err)
		}
		for _, p := range turnOrder(s) {
			if err := s.PlayCards(p.UserID, p.Hand[:1]); err != nil {
				t.Fatalf("round %d play: %v", round, err)
			}
		}
		if s.Running() {
			t.Fatalf("round %d did not settle", round)
		}
	}
}
