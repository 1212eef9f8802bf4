package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"joker-poker-go/backend/internal/game/jokerpoker"
	"joker-poker-go/backend/internal/models"
	"joker-poker-go/backend/internal/tracing"

	"github.com/gin-gonic/gin"
)

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarID    *int64  `json:"avatar_id"`
}

// GetProfileHandler retrieves the authenticated user's profile
func GetProfileHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.GetProfileHandler")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, err := models.GetUserByID(db, userID)
		if err != nil {
			log.Printf("GetProfileHandler failed to get user: user_id=%d err=%v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfileHandler updates the authenticated user's display settings
func UpdateProfileHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.UpdateProfileHandler")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		if req.DisplayName != nil {
			trimmed := strings.TrimSpace(*req.DisplayName)
			if trimmed == "" || len(trimmed) > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "display name must be 1-100 characters"})
				return
			}
			req.DisplayName = &trimmed
		}
		if req.AvatarID != nil && *req.AvatarID < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid avatar id"})
			return
		}

		if err := models.UpdateUserProfile(db, userID, req.DisplayName, req.AvatarID); err != nil {
			log.Printf("UpdateProfileHandler failed: user_id=%d err=%v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		user, err := models.GetUserByID(db, userID)
		if err != nil {
			log.Printf("UpdateProfileHandler failed to get updated user: user_id=%d err=%v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

type borrowRequest struct {
	Amount int64 `json:"amount"`
}

// BorrowHandler lets a player take on voluntary debt, bounded by the debt
// cap. Refused while seated at a table: mid-session the engine owns the
// wallet, and the next wallet sync would overwrite the loan.
func BorrowHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.BorrowHandler")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req borrowRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		if _, seated, err := models.SeatedTableID(db, userID); err != nil {
			writeAPIError(c, err)
			return
		} else if seated {
			c.JSON(http.StatusConflict, gin.H{"error": "cannot borrow while seated at a table"})
			return
		}

		user, err := models.BorrowFunds(db, userID, req.Amount, int64(jokerpoker.DebtCap()))
		if err != nil {
			writeAPIError(c, err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
