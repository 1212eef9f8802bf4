package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Table is a persisted seat-group: who can sit down together and the rules
// the session was created with. Live round state is in-memory only (the
// session engine); a server restart ends any round in progress.
type Table struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"` // share/join code, unique
	OwnerID   int64     `json:"owner_id"`
	Status    string    `json:"status"` // open|closed
	Rules     string    `json:"rules"`  // JSON rules the session was created with
	CreatedAt time.Time `json:"created_at"`
}

const tableColumns = `id, code, owner_id, status, rules, created_at`

func scanTable(row *sql.Row) (*Table, error) {
	var t Table
	err := row.Scan(&t.ID, &t.Code, &t.OwnerID, &t.Status, &t.Rules, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func CreateTable(db *sql.DB, code string, ownerID int64, rulesJSON string) (*Table, error) {
	res, err := db.Exec(
		`INSERT INTO tables(code, owner_id, status, rules) VALUES (?, ?, 'open', ?)`,
		code, ownerID, rulesJSON,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetTableByID(db, id)
}

func GetTableByID(db *sql.DB, id int64) (*Table, error) {
	return scanTable(db.QueryRow(`SELECT `+tableColumns+` FROM tables WHERE id = ?`, id))
}

func GetTableByCode(db *sql.DB, code string) (*Table, error) {
	return scanTable(db.QueryRow(`SELECT `+tableColumns+` FROM tables WHERE code = ?`, code))
}

func SetTableStatus(db *sql.DB, tableID int64, status string) error {
	if status != "open" && status != "closed" {
		return fmt.Errorf("invalid table status %q", status)
	}
	_, err := db.Exec(`UPDATE tables SET status = ? WHERE id = ?`, status, tableID)
	return err
}

// ListOpenTables returns joinable tables, newest first, with seat counts.
func ListOpenTables(db *sql.DB, limit int) ([]TableListing, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT t.id, t.code, t.owner_id, t.created_at, COUNT(tp.user_id) AS seats
		 FROM tables t
		 LEFT JOIN table_players tp ON tp.table_id = t.id
		 WHERE t.status = 'open'
		 GROUP BY t.id
		 ORDER BY t.created_at DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TableListing
	for rows.Next() {
		var l TableListing
		if err := rows.Scan(&l.ID, &l.Code, &l.OwnerID, &l.CreatedAt, &l.Seats); err != nil {
			return nil, fmt.Errorf("scan table listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type TableListing struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	Seats     int64     `json:"seats"`
}

// AddTablePlayer seats a user. The unique(user_id) index makes "one table at
// a time" a database guarantee, not just an application check.
func AddTablePlayer(db *sql.DB, tableID, userID int64) error {
	_, err := db.Exec(`INSERT INTO table_players(table_id, user_id) VALUES (?, ?)`, tableID, userID)
	if IsUniqueConstraint(err) {
		return ErrAlreadySeated
	}
	return err
}

func RemoveTablePlayer(db *sql.DB, tableID, userID int64) error {
	res, err := db.Exec(`DELETE FROM table_players WHERE table_id = ? AND user_id = ?`, tableID, userID)
	if err != nil {
		return err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if ra == 0 {
		return ErrNotSeated
	}
	return nil
}

// ListTablePlayers returns the seated users in join order.
func ListTablePlayers(db *sql.DB, tableID int64) ([]User, error) {
	rows, err := db.Query(
		`SELECT `+prefixedUserColumns("u")+`
		 FROM table_players tp
		 JOIN users u ON u.id = tp.user_id
		 WHERE tp.table_id = ?
		 ORDER BY tp.joined_at ASC, u.id ASC`, tableID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.AvatarID,
			&u.Balance, &u.Debt, &u.Jokers, &u.RoundsPlayed, &u.RoundsWon, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan table player: table_id=%d: %w", tableID, err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SeatedTableID returns the table a user is currently seated at, if any.
func SeatedTableID(db *sql.DB, userID int64) (int64, bool, error) {
	var id int64
	err := db.QueryRow(`SELECT table_id FROM table_players WHERE user_id = ?`, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func prefixedUserColumns(alias string) string {
	return alias + ".id, " + alias + ".username, " + alias + ".password_hash, " + alias + ".display_name, " +
		alias + ".avatar_id, " + alias + ".balance, " + alias + ".debt, " + alias + ".jokers, " +
		alias + ".rounds_played, " + alias + ".rounds_won, " + alias + ".created_at"
}
