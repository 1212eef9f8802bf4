package jokerpoker

import "joker-poker-go/backend/internal/game/common"

// JokerType enumerates the closed catalog of scoring modifiers. The set is
// intentionally exhaustive: Bonus must be total over it, so adding a type is
// a change to this file, not to callers.
type JokerType string

const (
	JokerPlain      JokerType = "joker"
	JokerGreedy     JokerType = "greedy_joker"
	JokerLusty      JokerType = "lusty_joker"
	JokerWrathful   JokerType = "wrathful_joker"
	JokerGluttonous JokerType = "gluttonous_joker"
	JokerJolly      JokerType = "jolly_joker"
)

// JokerTypes lists every catalog entry, in shop-roll order.
var JokerTypes = []JokerType{
	JokerPlain,
	JokerGreedy,
	JokerLusty,
	JokerWrathful,
	JokerGluttonous,
	JokerJolly,
}

// Joker is an owned scoring modifier. Immutable after creation; owned by at
// most one player at a time, or by the shop catalog.
type Joker struct {
	Type      JokerType `json:"type"`
	Name      string    `json:"name"`
	ShopPrice int       `json:"shop_price"`
	SellPrice int       `json:"sell_price"`
}

// NewJoker builds the catalog entry for a type. Unknown types fall back to
// the plain joker so deserialized data can never produce a priceless card.
func NewJoker(t JokerType) Joker {
	switch t {
	case JokerGreedy:
		return Joker{Type: t, Name: "Greedy Joker", ShopPrice: 4, SellPrice: 3}
	case JokerLusty:
		return Joker{Type: t, Name: "Lusty Joker", ShopPrice: 4, SellPrice: 3}
	case JokerWrathful:
		return Joker{Type: t, Name: "Wrathful Joker", ShopPrice: 4, SellPrice: 3}
	case JokerGluttonous:
		return Joker{Type: t, Name: "Gluttonous Joker", ShopPrice: 4, SellPrice: 3}
	case JokerJolly:
		return Joker{Type: t, Name: "Jolly Joker", ShopPrice: 6, SellPrice: 4}
	default:
		return Joker{Type: JokerPlain, Name: "Joker", ShopPrice: 3, SellPrice: 3}
	}
}

// Bonus computes this joker's additive (chips, mult) contribution for a play.
// It is pure: the played cards are never mutated.
func (j Joker) Bonus(cards []common.Card) (chips, mult int) {
	switch j.Type {
	case JokerPlain:
		return 0, 4
	case JokerGreedy:
		return 0, 3 * countSuit(cards, common.Diamonds)
	case JokerLusty:
		return 0, 3 * countSuit(cards, common.Hearts)
	case JokerWrathful:
		return 0, 3 * countSuit(cards, common.Spades)
	case JokerGluttonous:
		return 0, 3 * countSuit(cards, common.Clubs)
	case JokerJolly:
		if containsPair(cards) {
			return 0, 8
		}
		return 0, 0
	default:
		return 0, 0
	}
}

// Description is the shop-facing effect text.
func (j Joker) Description() string {
	switch j.Type {
	case JokerPlain:
		return "+4 Mult"
	case JokerGreedy:
		return "Played cards with Diamond suit give +3 Mult each"
	case JokerLusty:
		return "Played cards with Heart suit give +3 Mult each"
	case JokerWrathful:
		return "Played cards with Spade suit give +3 Mult each"
	case JokerGluttonous:
		return "Played cards with Club suit give +3 Mult each"
	case JokerJolly:
		return "+8 Mult if played hand contains a Pair"
	default:
		return ""
	}
}

func countSuit(cards []common.Card, s common.Suit) int {
	n := 0
	for _, c := range cards {
		if c.Suit == s {
			n++
		}
	}
	return n
}
