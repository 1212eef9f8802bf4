package handlers

import (
	"joker-poker-go/backend/internal/game/common"
	"joker-poker-go/backend/internal/game/jokerpoker"
)

// playerView is the display shape of a seated player: the engine's player
// state plus the hand length, which survives redaction.
type playerView struct {
	jokerpoker.Player
	HandSize int `json:"hand_size"`
}

// stateView is a session snapshot prepared for one viewer. The outer Players
// shadows the embedded snapshot's on the wire.
type stateView struct {
	jokerpoker.Snapshot
	Players []playerView `json:"players"`
}

// snapshotForViewer redacts a snapshot for one viewer: every other player's
// hand is emptied and its length surfaced as hand_size, so card identities
// never leave the server. A viewerID of 0 hides every hand (the broadcast
// copy).
func snapshotForViewer(snap jokerpoker.Snapshot, viewerID int64) stateView {
	view := stateView{Snapshot: snap, Players: make([]playerView, len(snap.Players))}
	for i := range snap.Players {
		pv := playerView{Player: snap.Players[i], HandSize: len(snap.Players[i].Hand)}
		if pv.UserID != viewerID {
			pv.Hand = []common.Card{}
		}
		view.Players[i] = pv
	}
	view.Snapshot.Players = nil
	return view
}
