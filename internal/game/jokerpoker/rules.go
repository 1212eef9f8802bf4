package jokerpoker

// Table-wide limits that are not negotiable per session.
const (
	MinPlayers = 2
	MaxPlayers = 5

	// StartingBalance is the bankroll a brand-new account begins with.
	StartingBalance = 20

	// DebtCapMultiplier bounds out-of-round borrowing: a player may never owe
	// more than StartingBalance * DebtCapMultiplier. Debt accrued inside a
	// round (forced antes, bets, purchases) is not capped here.
	DebtCapMultiplier = 10
)

// Rules are the per-session knobs of the round engine. Zero values are
// replaced with defaults by Normalize, so a caller can override only the
// fields it cares about.
type Rules struct {
	Ante             int `json:"ante"`
	HandSize         int `json:"hand_size"`
	MaxPlayCards     int `json:"max_play_cards"`
	MaxDiscardCards  int `json:"max_discard_cards"`
	PlaysPerRound    int `json:"plays_per_round"`
	DiscardsPerRound int `json:"discards_per_round"`
	ShopSize         int `json:"shop_size"`
	MaxJokers        int `json:"max_jokers"`
}

func DefaultRules() Rules {
	return Rules{
		Ante:             5,
		HandSize:         8,
		MaxPlayCards:     5,
		MaxDiscardCards:  4,
		PlaysPerRound:    1,
		DiscardsPerRound: 3,
		ShopSize:         10,
		MaxJokers:        5,
	}
}

// Normalize fills non-positive fields from the defaults.
func (r Rules) Normalize() Rules {
	d := DefaultRules()
	if r.Ante <= 0 {
		r.Ante = d.Ante
	}
	if r.HandSize <= 0 {
		r.HandSize = d.HandSize
	}
	if r.MaxPlayCards <= 0 {
		r.MaxPlayCards = d.MaxPlayCards
	}
	if r.MaxDiscardCards <= 0 {
		r.MaxDiscardCards = d.MaxDiscardCards
	}
	if r.PlaysPerRound <= 0 {
		r.PlaysPerRound = d.PlaysPerRound
	}
	if r.DiscardsPerRound <= 0 {
		r.DiscardsPerRound = d.DiscardsPerRound
	}
	if r.ShopSize <= 0 {
		r.ShopSize = d.ShopSize
	}
	if r.MaxJokers <= 0 {
		r.MaxJokers = d.MaxJokers
	}
	return r
}

// DebtCap is the maximum debt a player may voluntarily take on via borrowing.
func DebtCap() int {
	return StartingBalance * DebtCapMultiplier
}
