package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"joker-poker-go/backend/internal/config"
	"joker-poker-go/backend/internal/game/jokerpoker"
	"joker-poker-go/backend/internal/models"
	"joker-poker-go/backend/internal/tracing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createTableRequest struct {
	Rules *jokerpoker.Rules `json:"rules"`
}

type tableResponse struct {
	Table *models.Table `json:"table"`
	State stateView     `json:"state"`
}

func tableIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
		return 0, false
	}
	return id, true
}

// CreateTableHandler opens a table, seats the creator, and returns the join
// code. Per-table rule overrides fall back to the server defaults field by
// field.
func CreateTableHandler(db *sql.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.CreateTableHandler")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createTableRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		if _, seated, err := models.SeatedTableID(db, userID); err != nil {
			writeAPIError(c, err)
			return
		} else if seated {
			writeAPIError(c, models.ErrAlreadySeated)
			return
		}

		rules := mergeRules(cfg.DefaultRules, req.Rules)
		rulesJSON, err := json.Marshal(rules)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		t, err := models.CreateTable(db, uuid.NewString(), userID, string(rulesJSON))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		if err := models.AddTablePlayer(db, t.ID, userID); err != nil {
			writeAPIError(c, err)
			return
		}

		ts, err := defaultSessionManager.GetOrCreate(db, t.ID)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		ts.Mu.Lock()
		snap := ts.Session.Snapshot()
		ts.Mu.Unlock()

		c.JSON(http.StatusCreated, tableResponse{Table: t, State: snapshotForViewer(snap, userID)})
	}
}

// ListTablesHandler returns joinable tables with seat counts.
func ListTablesHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.ListTablesHandler")
		defer span.End()

		limit := 0
		if s := c.Query("limit"); s != "" {
			if v, err := strconv.Atoi(s); err == nil {
				limit = v
			}
		}
		listings, err := models.ListOpenTables(db, limit)
		if err != nil {
			log.Printf("ListTablesHandler failed: err=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if listings == nil {
			listings = []models.TableListing{}
		}
		c.JSON(http.StatusOK, gin.H{"tables": listings})
	}
}

// GetTableHandler returns the table row and the viewer's redacted state.
func GetTableHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.GetTableHandler")
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

		t, err := models.GetTableByID(db, tableID)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		ts, err := defaultSessionManager.GetOrCreate(db, tableID)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		ts.Mu.Lock()
		snap := ts.Session.Snapshot()
		ts.Mu.Unlock()

		c.JSON(http.StatusOK, tableResponse{Table: t, State: snapshotForViewer(snap, userID)})
	}
}

type joinTableRequest struct {
	Code string `json:"code"`
}

// JoinTableHandler seats the caller at the table matching the join code.
func JoinTableHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.JoinTableHandler")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req joinTableRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "join code required"})
			return
		}

		t, err := models.GetTableByCode(db, strings.TrimSpace(req.Code))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		if t.Status != "open" {
			writeAPIError(c, models.ErrTableNotJoinable)
			return
		}

		user, err := models.GetUserByID(db, userID)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		ts, err := defaultSessionManager.GetOrCreate(db, t.ID)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		ts.Mu.Lock()
		defer ts.Mu.Unlock()

		p, err := enginePlayerFromUser(user)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		if err := ts.Session.AddPlayer(p); err != nil {
			writeAPIError(c, err)
			return
		}
		if err := models.AddTablePlayer(db, t.ID, userID); err != nil {
			// The unique seat index rejected the row; undo the in-memory seat.
			if rmErr := ts.Session.RemovePlayer(userID); rmErr != nil {
				log.Printf("JoinTableHandler rollback failed: table_id=%d user_id=%d err=%v", t.ID, userID, rmErr)
			}
			writeAPIError(c, err)
			return
		}

		snap := ts.Session.Snapshot()
		broadcastTableUpdate(t.ID, snap)
		c.JSON(http.StatusOK, tableResponse{Table: t, State: snapshotForViewer(snap, userID)})
	}
}

// LeaveTableHandler unseats the caller. Rejected mid-round; the session
// wallet is flushed to the user row before the seat is released. An emptied
// table closes and its live session is dropped.
func LeaveTableHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.LeaveTableHandler")
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

		if err := syncWallets(db, ts.Session); err != nil {
			writeAPIError(c, err)
			return
		}
		if err := ts.Session.RemovePlayer(userID); err != nil {
			writeAPIError(c, err)
			return
		}
		if err := models.RemoveTablePlayer(db, tableID, userID); err != nil {
			writeAPIError(c, err)
			return
		}

		if ts.Session.SeatCount() == 0 {
			if err := models.SetTableStatus(db, tableID, "closed"); err != nil {
				log.Printf("LeaveTableHandler close table failed: table_id=%d err=%v", tableID, err)
			}
			defaultSessionManager.Drop(tableID)
		} else {
			broadcastTableUpdate(tableID, ts.Session.Snapshot())
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// mergeRules overlays the positive fields of an override onto the base rules.
func mergeRules(base jokerpoker.Rules, override *jokerpoker.Rules) jokerpoker.Rules {
	out := base.Normalize()
	if override == nil {
		return out
	}
	if override.Ante > 0 {
		out.Ante = override.Ante
	}
	if override.HandSize > 0 {
		out.HandSize = override.HandSize
	}
	if override.MaxPlayCards > 0 {
		out.MaxPlayCards = override.MaxPlayCards
	}
	if override.MaxDiscardCards > 0 {
		out.MaxDiscardCards = override.MaxDiscardCards
	}
	if override.PlaysPerRound > 0 {
		out.PlaysPerRound = override.PlaysPerRound
	}
	if override.DiscardsPerRound > 0 {
		out.DiscardsPerRound = override.DiscardsPerRound
	}
	if override.ShopSize > 0 {
		out.ShopSize = override.ShopSize
	}
	if override.MaxJokers > 0 {
		out.MaxJokers = override.MaxJokers
	}
	return out
}
