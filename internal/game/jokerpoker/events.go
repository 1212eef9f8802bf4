package jokerpoker

import "joker-poker-go/backend/internal/game/common"

// PlayerScore pairs a player with their round score, in turn order.
type PlayerScore struct {
	PlayerID int64 `json:"player_id"`
	Score    int   `json:"score"`
}

// Events receives state-change notifications from a session. Implementations
// must not call back into the session: notifications fire while the session
// lock is held by the acting command.
type Events interface {
	RoundStarted(turnOrder []int64)
	TurnStarted(playerID int64, mustPlay bool)
	PlayerPlayed(playerID int64, cards []common.Card, handType HandType, score int)
	PlayerBet(playerID int64, amount, newPot int)
	PlayerDiscarded(playerID int64, count int)
	RoundEnded(winnerIDs []int64, scores []PlayerScore, finalPot int)
	ShopRefreshed(catalog []Joker)
}

// NopEvents discards every notification. Useful for tests and for sessions
// that have no observers yet.
type NopEvents struct{}

func (NopEvents) RoundStarted([]int64)                              {}
func (NopEvents) TurnStarted(int64, bool)                           {}
func (NopEvents) PlayerPlayed(int64, []common.Card, HandType, int)  {}
func (NopEvents) PlayerBet(int64, int, int)                         {}
func (NopEvents) PlayerDiscarded(int64, int)                        {}
func (NopEvents) RoundEnded([]int64, []PlayerScore, int)            {}
func (NopEvents) ShopRefreshed([]Joker)                             {}
