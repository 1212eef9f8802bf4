package handlers

import (
	"database/sql"

	"joker-poker-go/backend/internal/config"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes wires account endpoints.
func RegisterAuthRoutes(rg *gin.RouterGroup, db *sql.DB, cfg config.Config) {
	rg.POST("/auth/register", RegisterHandler(db, cfg))
	rg.POST("/auth/login", LoginHandler(db, cfg))
	rg.POST("/auth/logout", LogoutHandler(cfg))
}

// RegisterProfileRoutes wires the authenticated profile and wallet endpoints.
func RegisterProfileRoutes(rg *gin.RouterGroup, db *sql.DB) {
	rg.GET("/me", GetProfileHandler(db))
	rg.PUT("/me", UpdateProfileHandler(db))
	rg.POST("/me/borrow", BorrowHandler(db))
}

// RegisterTableRoutes wires the table lifecycle, round commands and history.
func RegisterTableRoutes(rg *gin.RouterGroup, db *sql.DB, cfg config.Config) {
	rg.GET("/tables", ListTablesHandler(db))
	rg.POST("/tables", CreateTableHandler(db, cfg))
	rg.POST("/tables/join", JoinTableHandler(db))
	rg.GET("/tables/:id", GetTableHandler(db))
	rg.POST("/tables/:id/leave", LeaveTableHandler(db))
	rg.POST("/tables/:id/start", StartRoundHandler(db))
	rg.POST("/tables/:id/action", TableActionHandler(db))
	rg.GET("/tables/:id/shop", ShopHandler(db))
	rg.POST("/tables/:id/shop/buy", BuyJokerHandler(db))
	rg.POST("/tables/:id/shop/sell", SellJokerHandler(db))
	rg.GET("/tables/:id/rounds", TableRoundsHandler(db))
	rg.GET("/tables/:id/actions", TableActionsHandler(db))

	rg.GET("/leaderboard", LeaderboardHandler(db))
}
