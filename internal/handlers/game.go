package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"joker-poker-go/backend/internal/game/common"
	"joker-poker-go/backend/internal/game/jokerpoker"
	"joker-poker-go/backend/internal/models"
	"joker-poker-go/backend/internal/tracing"

	"github.com/gin-gonic/gin"
)

// StartRoundHandler begins a round at the caller's table. Any seated player
// may start; the engine enforces the player minimum and rejects a second
// concurrent round.
func StartRoundHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.StartRoundHandler")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		tableID, ok := tableIDParam(c)
		if !ok {
			return
		}

		ts, err := defaultSessionManager.GetOrCreate(db, tableID)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		ts.Mu.Lock()
		defer ts.Mu.Unlock()

		if _, seated := ts.Session.Player(userID); !seated {
			writeAPIError(c, models.ErrNotSeated)
			return
		}
		if err := ts.Session.StartRound(); err != nil {
			writeAPIError(c, err)
			return
		}

		// Antes moved money.
		if err := syncWallets(db, ts.Session); err != nil {
			log.Printf("StartRoundHandler wallet sync failed: table_id=%d err=%v", tableID, err)
		}
		logAction(db, tableID, userID, "start", nil)

		snap := ts.Session.Snapshot()
		broadcastTableUpdate(tableID, snap)
		c.JSON(http.StatusOK, gin.H{"state": snapshotForViewer(snap, userID)})
	}
}

// tableActionRequest is one in-round or shop command against a table.
type tableActionRequest struct {
	Action string   `json:"action"` // play|bet|discard|buy_joker|sell_joker
	Cards  []string `json:"cards,omitempty"`
	Amount int      `json:"amount,omitempty"`
	Index  *int     `json:"index,omitempty"`
}

// TableActionHandler routes a player command into the session engine.
func TableActionHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.TableActionHandler")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		tableID, ok := tableIDParam(c)
		if !ok {
			return
		}

		var req tableActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		snap, err := applyTableAction(db, tableID, userID, req)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": snapshotForViewer(snap, userID)})
	}
}

// applyTableAction executes one command under the session mutex, records it
// in the action log, flushes wallets, and broadcasts the updated state. Both
// the HTTP handler and the websocket route go through here.
func applyTableAction(db *sql.DB, tableID, userID int64, req tableActionRequest) (jokerpoker.Snapshot, error) {
	ts, err := defaultSessionManager.GetOrCreate(db, tableID)
	if err != nil {
		return jokerpoker.Snapshot{}, err
	}

	ts.Mu.Lock()
	defer ts.Mu.Unlock()

	var detail any
	switch req.Action {
	case "play":
		cards, err := common.ParseCards(req.Cards)
		if err != nil {
			return jokerpoker.Snapshot{}, models.ErrCardNotInHand
		}
		if err := ts.Session.PlayCards(userID, cards); err != nil {
			return jokerpoker.Snapshot{}, err
		}
		detail = map[string]any{"cards": req.Cards}
	case "bet":
		if err := ts.Session.PlaceBet(userID, req.Amount); err != nil {
			return jokerpoker.Snapshot{}, err
		}
		detail = map[string]any{"amount": req.Amount}
	case "discard":
		cards, err := common.ParseCards(req.Cards)
		if err != nil {
			return jokerpoker.Snapshot{}, models.ErrCardNotInHand
		}
		if err := ts.Session.DiscardCards(userID, cards); err != nil {
			return jokerpoker.Snapshot{}, err
		}
		detail = map[string]any{"cards": req.Cards}
	case "buy_joker":
		if req.Index == nil {
			return jokerpoker.Snapshot{}, models.ErrShopIndexOutOfRange
		}
		if err := ts.Session.BuyJoker(userID, *req.Index); err != nil {
			return jokerpoker.Snapshot{}, err
		}
		detail = map[string]any{"index": *req.Index}
	case "sell_joker":
		if req.Index == nil {
			return jokerpoker.Snapshot{}, models.ErrJokerIndexOutOfRange
		}
		if err := ts.Session.SellJoker(userID, *req.Index); err != nil {
			return jokerpoker.Snapshot{}, err
		}
		detail = map[string]any{"index": *req.Index}
	default:
		return jokerpoker.Snapshot{}, fmt.Errorf("%w: unknown action %q", models.ErrInvalidJSON, req.Action)
	}

	if err := syncWallets(db, ts.Session); err != nil {
		log.Printf("applyTableAction wallet sync failed: table_id=%d user_id=%d action=%s err=%v",
			tableID, userID, req.Action, err)
	}
	logAction(db, tableID, userID, req.Action, detail)

	snap := ts.Session.Snapshot()
	broadcastTableUpdate(tableID, snap)
	return snap, nil
}

// logAction appends to the table's action log. Best-effort: a logging failure
// never fails the command that already ran.
func logAction(db *sql.DB, tableID, userID int64, action string, detail any) {
	var detailJSON string
	if detail != nil {
		b, err := json.Marshal(detail)
		if err != nil {
			log.Printf("logAction marshal failed: table_id=%d action=%s err=%v", tableID, action, err)
		} else {
			detailJSON = string(b)
		}
	}
	if err := models.InsertRoundAction(db, models.RoundAction{
		TableID: tableID,
		UserID:  userID,
		Action:  action,
		Detail:  detailJSON,
	}); err != nil {
		log.Printf("logAction insert failed: table_id=%d action=%s err=%v", tableID, action, err)
	}
}
