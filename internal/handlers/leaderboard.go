package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"joker-poker-go/backend/internal/models"
	"joker-poker-go/backend/internal/tracing"

	"github.com/gin-gonic/gin"
)

// LeaderboardHandler ranks players by net worth. Accepts an optional 'limit'
// query parameter (default 20, clamped in the model layer).
func LeaderboardHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.LeaderboardHandler")
		defer span.End()

		entries, err := models.GetLeaderboard(db, queryLimit(c))
		if err != nil {
			log.Printf("LeaderboardHandler failed: err=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if entries == nil {
			entries = []models.LeaderboardEntry{}
		}
		c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
	}
}
