package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"joker-poker-go/backend/internal/models"
	"joker-poker-go/backend/internal/tracing"

	"github.com/gin-gonic/gin"
)

// TableRoundsHandler lists a table's archived round results, newest first.
func TableRoundsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.TableRoundsHandler")
		defer span.End()

		tableID, ok := tableIDParam(c)
		if !ok {
			return
		}
		if _, err := models.GetTableByID(db, tableID); err != nil {
			writeAPIError(c, err)
			return
		}

		rounds, err := models.ListRoundsByTable(db, tableID, queryLimit(c))
		if err != nil {
			log.Printf("TableRoundsHandler failed: table_id=%d err=%v", tableID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if rounds == nil {
			rounds = []models.Round{}
		}
		c.JSON(http.StatusOK, gin.H{"rounds": rounds})
	}
}

// TableActionsHandler lists a table's accepted-command log, newest first.
func TableActionsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.TableActionsHandler")
		defer span.End()

		tableID, ok := tableIDParam(c)
		if !ok {
			return
		}
		if _, err := models.GetTableByID(db, tableID); err != nil {
			writeAPIError(c, err)
			return
		}

		actions, err := models.ListRoundActionsByTable(db, tableID, queryLimit(c))
		if err != nil {
			log.Printf("TableActionsHandler failed: table_id=%d err=%v", tableID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if actions == nil {
			actions = []models.RoundAction{}
		}
		c.JSON(http.StatusOK, gin.H{"actions": actions})
	}
}

func queryLimit(c *gin.Context) int {
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return 0
}
