package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is the persisted player profile: identity plus the economic state that
// survives between table sessions. Jokers is a JSON array of owned joker
// objects; the handlers layer marshals it, keeping this package free of
// engine types.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	AvatarID     int64     `json:"avatar_id"`
	Balance      int64     `json:"balance"`
	Debt         int64     `json:"debt"`
	Jokers       string    `json:"jokers"`
	RoundsPlayed int64     `json:"rounds_played"`
	RoundsWon    int64     `json:"rounds_won"`
	CreatedAt    time.Time `json:"created_at"`
}

const userColumns = `id, username, password_hash, display_name, avatar_id, balance, debt, jokers, rounds_played, rounds_won, created_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.AvatarID,
		&u.Balance, &u.Debt, &u.Jokers, &u.RoundsPlayed, &u.RoundsWon, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(db *sql.DB, username, passwordHash string, startingBalance int64) (*User, error) {
	res, err := db.Exec(
		`INSERT INTO users(username, password_hash, display_name, balance) VALUES (?, ?, ?, ?)`,
		username, passwordHash, username, startingBalance,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetUserByID(db, id)
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	return scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

// UpdateUserProfile updates the mutable display fields. Nil pointers leave
// the current value untouched.
func UpdateUserProfile(db *sql.DB, userID int64, displayName *string, avatarID *int64) error {
	if displayName == nil && avatarID == nil {
		return nil
	}
	if displayName != nil {
		if _, err := db.Exec(`UPDATE users SET display_name = ? WHERE id = ?`, *displayName, userID); err != nil {
			return fmt.Errorf("update display name: user_id=%d: %w", userID, err)
		}
	}
	if avatarID != nil {
		if _, err := db.Exec(`UPDATE users SET avatar_id = ? WHERE id = ?`, *avatarID, userID); err != nil {
			return fmt.Errorf("update avatar: user_id=%d: %w", userID, err)
		}
	}
	return nil
}

// UpdateUserWallet writes back balance, debt and owned jokers after a
// settlement or shop transaction.
func UpdateUserWallet(db *sql.DB, userID int64, balance, debt int64, jokersJSON string) error {
	res, err := db.Exec(
		`UPDATE users SET balance = ?, debt = ?, jokers = ? WHERE id = ?`,
		balance, debt, jokersJSON, userID,
	)
	if err != nil {
		return fmt.Errorf("update wallet: user_id=%d: %w", userID, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if ra == 0 {
		return ErrNotFound
	}
	return nil
}

// BorrowFunds adds amount to both balance and debt, refusing to push debt
// past debtCap. The check and update run in one transaction so two borrows
// cannot race past the cap.
func BorrowFunds(db *sql.DB, userID int64, amount, debtCap int64) (*User, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var debt int64
	err = tx.QueryRow(`SELECT debt FROM users WHERE id = ?`, userID).Scan(&debt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if debt+amount > debtCap {
		return nil, ErrDebtLimitReached
	}
	if _, err := tx.Exec(
		`UPDATE users SET balance = balance + ?, debt = debt + ? WHERE id = ?`,
		amount, amount, userID,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return GetUserByID(db, userID)
}

// RecordRoundResult bumps the rounds-played counter for every participant and
// rounds-won for the winners.
func RecordRoundResult(db *sql.DB, participantIDs, winnerIDs []int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, id := range participantIDs {
		if _, err := tx.Exec(`UPDATE users SET rounds_played = rounds_played + 1 WHERE id = ?`, id); err != nil {
			return fmt.Errorf("bump rounds_played: user_id=%d: %w", id, err)
		}
	}
	for _, id := range winnerIDs {
		if _, err := tx.Exec(`UPDATE users SET rounds_won = rounds_won + 1 WHERE id = ?`, id); err != nil {
			return fmt.Errorf("bump rounds_won: user_id=%d: %w", id, err)
		}
	}
	return tx.Commit()
}
