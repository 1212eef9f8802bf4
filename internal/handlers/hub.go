package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"strconv"

	"joker-poker-go/backend/internal/game/common"
	"joker-poker-go/backend/internal/game/jokerpoker"
	"joker-poker-go/backend/internal/models"
	ws "joker-poker-go/backend/pkg/websocket"
)

// hubProvider is set by main at startup so HTTP handlers can broadcast realtime updates.
var hubProvider func() (*ws.Hub, bool)

func SetHubProvider(p func() (*ws.Hub, bool)) {
	hubProvider = p
}

func tableRoom(tableID int64) string {
	return "table:" + strconv.FormatInt(tableID, 10)
}

func broadcastToTable(tableID int64, typ string, payload any) {
	if hubProvider == nil {
		return
	}
	hub, ok := hubProvider()
	if !ok || hub == nil {
		return
	}
	hub.Broadcast(tableRoom(tableID), typ, payload)
}

// broadcastTableUpdate pushes the redacted session snapshot to everyone in the
// table room. Per-client hand visibility is handled by each client fetching
// its own view over HTTP; the broadcast copy hides every hand.
func broadcastTableUpdate(tableID int64, snap jokerpoker.Snapshot) {
	broadcastToTable(tableID, "table_update", snapshotForViewer(snap, 0))
}

// tableEvents bridges engine notifications onto the websocket room and, for
// round ends, into the archive tables. It fires synchronously while the
// session mutex is held, so database writes here never race the engine.
type tableEvents struct {
	db      *sql.DB
	tableID int64
}

func (e *tableEvents) RoundStarted(turnOrder []int64) {
	broadcastToTable(e.tableID, "round_started", map[string]any{"turn_order": turnOrder})
}

func (e *tableEvents) TurnStarted(userID int64, mustPlay bool) {
	broadcastToTable(e.tableID, "turn_started", map[string]any{
		"user_id":   userID,
		"must_play": mustPlay,
	})
}

func (e *tableEvents) PlayerPlayed(userID int64, cards []common.Card, handType jokerpoker.HandType, score int) {
	broadcastToTable(e.tableID, "player_played", map[string]any{
		"user_id":   userID,
		"cards":     cardStrings(cards),
		"hand_type": handType,
		"score":     score,
	})
}

func (e *tableEvents) PlayerBet(userID int64, amount, pot int) {
	broadcastToTable(e.tableID, "player_bet", map[string]any{
		"user_id": userID,
		"amount":  amount,
		"pot":     pot,
	})
}

func (e *tableEvents) PlayerDiscarded(userID int64, count int) {
	broadcastToTable(e.tableID, "player_discarded", map[string]any{
		"user_id": userID,
		"count":   count,
	})
}

func (e *tableEvents) RoundEnded(winnerIDs []int64, scores []jokerpoker.PlayerScore, pot int) {
	broadcastToTable(e.tableID, "round_ended", map[string]any{
		"winners": winnerIDs,
		"scores":  scores,
		"pot":     pot,
	})

	winnersJSON, err := json.Marshal(winnerIDs)
	if err != nil {
		log.Printf("RoundEnded marshal winners: table_id=%d err=%v", e.tableID, err)
		return
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		log.Printf("RoundEnded marshal scores: table_id=%d err=%v", e.tableID, err)
		return
	}
	if _, err := models.InsertRound(e.db, e.tableID, int64(pot), string(winnersJSON), string(scoresJSON)); err != nil {
		log.Printf("RoundEnded archive failed: table_id=%d err=%v", e.tableID, err)
	}

	participants := make([]int64, len(scores))
	for i, s := range scores {
		participants[i] = s.PlayerID
	}
	if err := models.RecordRoundResult(e.db, participants, winnerIDs); err != nil {
		log.Printf("RoundEnded stats update failed: table_id=%d err=%v", e.tableID, err)
	}
}

func (e *tableEvents) ShopRefreshed(jokers []jokerpoker.Joker) {
	broadcastToTable(e.tableID, "shop_refreshed", map[string]any{"jokers": jokers})
}

func cardStrings(cards []common.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
