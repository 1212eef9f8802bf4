package handlers

import (
	"database/sql"
	"net/http"

	"joker-poker-go/backend/internal/tracing"

	"github.com/gin-gonic/gin"
)

type shopEntry struct {
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ShopPrice   int    `json:"shop_price"`
	SellPrice   int    `json:"sell_price"`
}

// ShopHandler returns the table's current shop catalog with effect text.
func ShopHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.ShopHandler")
		defer span.End()

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
		jokers := ts.Session.ShopCatalog()
		ts.Mu.Unlock()

		entries := make([]shopEntry, len(jokers))
		for i, j := range jokers {
			entries[i] = shopEntry{
				Index:       i,
				Type:        string(j.Type),
				Name:        j.Name,
				Description: j.Description(),
				ShopPrice:   j.ShopPrice,
				SellPrice:   j.SellPrice,
			}
		}
		c.JSON(http.StatusOK, gin.H{"jokers": entries})
	}
}

type shopTradeRequest struct {
	Index int `json:"index"`
}

// BuyJokerHandler purchases the shop joker at the requested index.
func BuyJokerHandler(db *sql.DB) gin.HandlerFunc {
	return shopTradeHandler(db, "buy_joker")
}

// SellJokerHandler sells the caller's owned joker at the requested index.
func SellJokerHandler(db *sql.DB) gin.HandlerFunc {
	return shopTradeHandler(db, "sell_joker")
}

func shopTradeHandler(db *sql.DB, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.shopTradeHandler")
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

		var req shopTradeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		snap, err := applyTableAction(db, tableID, userID, tableActionRequest{
			Action: action,
			Index:  &req.Index,
		})
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": snapshotForViewer(snap, userID)})
	}
}
