package models

import (
	"database/sql"
	"fmt"
	"time"
)

// Round is the archived result of one finished round. Winners and Scores are
// JSON arrays; they exist for history/leaderboard display, never for
// reconstructing live state.
type Round struct {
	ID      int64     `json:"id"`
	TableID int64     `json:"table_id"`
	Pot     int64     `json:"pot"`
	Winners string    `json:"winners"`
	Scores  string    `json:"scores"`
	EndedAt time.Time `json:"ended_at"`
}

func InsertRound(db *sql.DB, tableID, pot int64, winnersJSON, scoresJSON string) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO rounds(table_id, pot, winners, scores) VALUES (?, ?, ?, ?)`,
		tableID, pot, winnersJSON, scoresJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("insert round: table_id=%d: %w", tableID, err)
	}
	return res.LastInsertId()
}

func ListRoundsByTable(db *sql.DB, tableID int64, limit int) ([]Round, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT id, table_id, pot, winners, scores, ended_at
		 FROM rounds WHERE table_id = ? ORDER BY id DESC LIMIT ?`, tableID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Round
	for rows.Next() {
		var r Round
		if err := rows.Scan(&r.ID, &r.TableID, &r.Pot, &r.Winners, &r.Scores, &r.EndedAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RoundAction is one accepted command in the action log. Detail is a small
// JSON blob whose shape depends on the action (cards played, bet amount...).
type RoundAction struct {
	ID        int64     `json:"id"`
	TableID   int64     `json:"table_id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"` // start|play|bet|discard|buy_joker|sell_joker
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func InsertRoundAction(db *sql.DB, a RoundAction) error {
	_, err := db.Exec(
		`INSERT INTO round_actions(table_id, user_id, action, detail) VALUES (?, ?, ?, ?)`,
		a.TableID, a.UserID, a.Action, a.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert round action: table_id=%d user_id=%d action=%s: %w", a.TableID, a.UserID, a.Action, err)
	}
	return nil
}

func ListRoundActionsByTable(db *sql.DB, tableID int64, limit int) ([]RoundAction, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	rows, err := db.Query(
		`SELECT id, table_id, user_id, action, detail, created_at
		 FROM round_actions WHERE table_id = ? ORDER BY id DESC LIMIT ?`, tableID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoundAction
	for rows.Next() {
		var a RoundAction
		var detail sql.NullString
		if err := rows.Scan(&a.ID, &a.TableID, &a.UserID, &a.Action, &detail, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan round action: %w", err)
		}
		if detail.Valid {
			a.Detail = detail.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
