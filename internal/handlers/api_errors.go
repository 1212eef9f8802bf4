package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"joker-poker-go/backend/internal/models"

	"github.com/gin-gonic/gin"
)

func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// Known sentinel errors
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrTableNotFound) || errors.Is(err, sql.ErrNoRows) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	// Safe typed validation / permission / conflict errors (do NOT echo raw errors).
	switch {
	case errors.Is(err, models.ErrInvalidJSON):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	case errors.Is(err, models.ErrRoundNotRunning):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "no round in progress"})
		return
	case errors.Is(err, models.ErrRoundInProgress):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "round already in progress"})
		return
	case errors.Is(err, models.ErrNotEnoughPlayers):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "not enough players"})
		return
	case errors.Is(err, models.ErrNotSeated):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not seated at this table"})
		return
	case errors.Is(err, models.ErrNotYourTurn):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "not your turn"})
		return
	case errors.Is(err, models.ErrAlreadyPlayed):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "already played this round"})
		return
	case errors.Is(err, models.ErrEmptyPlay):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "no cards selected"})
		return
	case errors.Is(err, models.ErrTooManyCards):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "too many cards"})
		return
	case errors.Is(err, models.ErrCardNotInHand):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "card not in hand"})
		return
	case errors.Is(err, models.ErrBetNotAllowed):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "betting not allowed now"})
		return
	case errors.Is(err, models.ErrInvalidBetAmount):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid bet amount"})
		return
	case errors.Is(err, models.ErrNoDiscardsLeft):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "no discards left"})
		return
	case errors.Is(err, models.ErrTooManyDiscards):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "too many discards"})
		return
	case errors.Is(err, models.ErrShopIndexOutOfRange):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "shop index out of range"})
		return
	case errors.Is(err, models.ErrJokerIndexOutOfRange):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "joker index out of range"})
		return
	case errors.Is(err, models.ErrJokerLimitReached):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "joker limit reached"})
		return
	case errors.Is(err, models.ErrTableFull):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "table is full"})
		return
	case errors.Is(err, models.ErrTableNotJoinable):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "table not joinable"})
		return
	case errors.Is(err, models.ErrAlreadySeated):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "already seated at a table"})
		return
	case errors.Is(err, models.ErrDebtLimitReached):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "debt limit reached"})
		return
	case errors.Is(err, models.ErrInvalidAmount):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	// Unknown/internal errors: log details, return generic message.
	log.Printf("internal error: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
