package jokerpoker

import (
	"sort"

	"joker-poker-go/backend/internal/game/common"
)

// HandType classifies a play of 1-5 cards.
type HandType string

const (
	HighCard      HandType = "high_card"
	Pair          HandType = "pair"
	TwoPair       HandType = "two_pair"
	ThreeOfAKind  HandType = "three_of_a_kind"
	Straight      HandType = "straight"
	Flush         HandType = "flush"
	FullHouse     HandType = "full_house"
	FourOfAKind   HandType = "four_of_a_kind"
	StraightFlush HandType = "straight_flush"
)

// handBase maps each hand type to its base (chips, mult) pair.
var handBase = map[HandType]struct{ Chips, Mult int }{
	HighCard:      {0, 1},
	Pair:          {8, 2},
	TwoPair:       {20, 2},
	ThreeOfAKind:  {30, 3},
	Straight:      {30, 4},
	Flush:         {35, 4},
	FullHouse:     {40, 4},
	FourOfAKind:   {60, 7},
	StraightFlush: {100, 8},
}

// BaseValues exposes the base chips/mult for a hand type (UI display).
func BaseValues(h HandType) (chips, mult int) {
	b := handBase[h]
	return b.Chips, b.Mult
}

// DetectHandType classifies a play in strict descending priority. Flush and
// straight require exactly five cards; smaller plays can only reach the
// rank-multiplicity categories.
func DetectHandType(cards []common.Card) HandType {
	if len(cards) == 0 {
		return HighCard
	}

	flush := isFlush(cards)
	straight := isStraight(cards)

	switch {
	case straight && flush:
		return StraightFlush
	case hasOfAKind(cards, 4):
		return FourOfAKind
	case isFullHouse(cards):
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case hasOfAKind(cards, 3):
		return ThreeOfAKind
	case isTwoPair(cards):
		return TwoPair
	case containsPair(cards):
		return Pair
	default:
		return HighCard
	}
}

// CalculateScore computes the final score of a play given the owner's jokers:
// (base chips + card chip values + joker chip bonuses) multiplied by
// (base mult + joker mult bonuses). Pure and deterministic. An empty play
// scores zero without consulting any joker.
func CalculateScore(cards []common.Card, jokers []Joker) int {
	if len(cards) == 0 {
		return 0
	}

	base := handBase[DetectHandType(cards)]

	chips := base.Chips
	for _, c := range cards {
		chips += c.ChipValue()
	}

	mult := base.Mult
	for _, j := range jokers {
		cb, mb := j.Bonus(cards)
		chips += cb
		mult += mb
	}

	return chips * mult
}

func isFlush(cards []common.Card) bool {
	if len(cards) < 5 {
		return false
	}
	suit := cards[0].Suit
	for _, c := range cards[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// isStraight tries the normal ascending run first; if that fails and the play
// holds an Ace, the Ace is remapped to rank 1 and the run test retried, so
// A-2-3-4-5 is the only low-Ace straight.
func isStraight(cards []common.Card) bool {
	if len(cards) < 5 {
		return false
	}

	ranks := make([]int, len(cards))
	hasAce := false
	for i, c := range cards {
		ranks[i] = int(c.Rank)
		if c.Rank == common.Ace {
			hasAce = true
		}
	}
	if isConsecutive(ranks) {
		return true
	}
	if !hasAce {
		return false
	}
	for i, r := range ranks {
		if r == int(common.Ace) {
			ranks[i] = 1
		}
	}
	return isConsecutive(ranks)
}

func isConsecutive(ranks []int) bool {
	sorted := append([]int(nil), ranks...)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

func rankCounts(cards []common.Card) map[common.Rank]int {
	counts := make(map[common.Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

func hasOfAKind(cards []common.Card, n int) bool {
	for _, count := range rankCounts(cards) {
		if count >= n {
			return true
		}
	}
	return false
}

func isFullHouse(cards []common.Card) bool {
	if len(cards) < 5 {
		return false
	}
	var three, pair bool
	for _, count := range rankCounts(cards) {
		switch {
		case count >= 3 && !three:
			three = true
		case count >= 2:
			pair = true
		}
	}
	return three && pair
}

func isTwoPair(cards []common.Card) bool {
	pairs := 0
	for _, count := range rankCounts(cards) {
		if count >= 2 {
			pairs++
		}
	}
	return pairs >= 2
}

// containsPair reports whether any rank appears at least twice. It doubles as
// the hand-shape predicate consumed by pair-conditioned jokers.
func containsPair(cards []common.Card) bool {
	for _, count := range rankCounts(cards) {
		if count >= 2 {
			return true
		}
	}
	return false
}
