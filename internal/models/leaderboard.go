package models

import (
	"database/sql"
	"fmt"
)

// LeaderboardEntry ranks players by net worth (balance minus debt), with
// round counts for context.
type LeaderboardEntry struct {
	UserID       int64  `json:"user_id"`
	DisplayName  string `json:"display_name"`
	AvatarID     int64  `json:"avatar_id"`
	Balance      int64  `json:"balance"`
	Debt         int64  `json:"debt"`
	NetWorth     int64  `json:"net_worth"`
	RoundsPlayed int64  `json:"rounds_played"`
	RoundsWon    int64  `json:"rounds_won"`
}

func GetLeaderboard(db *sql.DB, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT id, display_name, avatar_id, balance, debt, balance - debt AS net_worth, rounds_played, rounds_won
		 FROM users
		 ORDER BY net_worth DESC, rounds_won DESC, id ASC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.AvatarID, &e.Balance, &e.Debt, &e.NetWorth, &e.RoundsPlayed, &e.RoundsWon); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
