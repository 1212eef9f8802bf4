package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"joker-poker-go/backend/internal/game/jokerpoker"
	"joker-poker-go/backend/internal/models"
)

// TableSession pairs a live engine session with the mutex that serializes
// every command against it. Handlers lock Mu for the full command, including
// the wallet write-back, so a snapshot can never observe a half-applied
// action.
type TableSession struct {
	Mu      sync.Mutex
	Session *jokerpoker.Session
}

type SessionManager struct {
	mu       sync.Mutex
	sessions map[int64]*TableSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: map[int64]*TableSession{}}
}

// GetOrCreate returns the live session for a table, rebuilding it from the
// database after a restart: persisted rules, plus one engine player per
// seated user hydrated from their stored wallet. A round that was running
// when the process died is simply gone; the money already settled to rows.
func (m *SessionManager) GetOrCreate(db *sql.DB, tableID int64) (*TableSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ts, ok := m.sessions[tableID]; ok {
		return ts, nil
	}

	t, err := models.GetTableByID(db, tableID)
	if err != nil {
		return nil, err
	}

	var rules jokerpoker.Rules
	if t.Rules != "" {
		if err := json.Unmarshal([]byte(t.Rules), &rules); err != nil {
			return nil, fmt.Errorf("table %d has unreadable rules: %w", tableID, err)
		}
	}

	sess := jokerpoker.NewSession(rules, nil, &tableEvents{db: db, tableID: tableID})

	seated, err := models.ListTablePlayers(db, tableID)
	if err != nil {
		return nil, err
	}
	for i := range seated {
		p, err := enginePlayerFromUser(&seated[i])
		if err != nil {
			return nil, err
		}
		if err := sess.AddPlayer(p); err != nil {
			return nil, fmt.Errorf("reseat user %d at table %d: %w", seated[i].ID, tableID, err)
		}
	}

	ts := &TableSession{Session: sess}
	m.sessions[tableID] = ts
	return ts, nil
}

// Drop forgets a table's live session, typically when the table closes.
func (m *SessionManager) Drop(tableID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tableID)
}

var defaultSessionManager = NewSessionManager()

// enginePlayerFromUser hydrates an engine player from the persisted wallet.
func enginePlayerFromUser(u *models.User) (*jokerpoker.Player, error) {
	p := jokerpoker.NewPlayer(u.ID, u.DisplayName, int(u.AvatarID))
	p.Balance = int(u.Balance)
	p.Debt = int(u.Debt)
	if u.Jokers != "" && u.Jokers != "[]" {
		if err := json.Unmarshal([]byte(u.Jokers), &p.Jokers); err != nil {
			return nil, fmt.Errorf("user %d has unreadable jokers: %w", u.ID, err)
		}
	}
	return p, nil
}

// syncWallets writes every seated player's balance, debt and jokers back to
// their user row. Called with the session mutex held, after any command that
// can move money.
func syncWallets(db *sql.DB, sess *jokerpoker.Session) error {
	snap := sess.Snapshot()
	for i := range snap.Players {
		p := &snap.Players[i]
		jokersJSON, err := json.Marshal(p.Jokers)
		if err != nil {
			return fmt.Errorf("marshal jokers: user_id=%d: %w", p.UserID, err)
		}
		if err := models.UpdateUserWallet(db, p.UserID, int64(p.Balance), int64(p.Debt), string(jokersJSON)); err != nil {
			return err
		}
	}
	return nil
}
