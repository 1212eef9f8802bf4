package jokerpoker

import "testing"

func TestNewJokerCatalog(t *testing.T) {
	cases := []struct {
		typ       JokerType
		shopPrice int
		sellPrice int
	}{
		{JokerPlain, 3, 3},
		{JokerGreedy, 4, 3},
		{JokerLusty, 4, 3},
		{JokerWrathful, 4, 3},
		{JokerGluttonous, 4, 3},
		{JokerJolly, 6, 4},
	}
	for _, tc := range cases {
		j := NewJoker(tc.typ)
		if j.Type != tc.typ {
			t.Errorf("NewJoker(%s).Type = %s", tc.typ, j.Type)
		}
		if j.ShopPrice != tc.shopPrice || j.SellPrice != tc.sellPrice {
			t.Errorf("NewJoker(%s) prices = (%d, %d), want (%d, %d)",
				tc.typ, j.ShopPrice, j.SellPrice, tc.shopPrice, tc.sellPrice)
		}
		if j.Name == "" || j.Description() == "" {
			t.Errorf("NewJoker(%s) missing name or description", tc.typ)
		}
	}
}

func TestNewJokerUnknownTypeFallsBack(t *testing.T) {
	j := NewJoker(JokerType("holographic"))
	if j.Type != JokerPlain {
		t.Errorf("unknown type produced %s, want %s", j.Type, JokerPlain)
	}
	if j.ShopPrice == 0 {
		t.Error("fallback joker has no price")
	}
}

func TestSuitJokerBonuses(t *testing.T) {
	played := cards(t, "5D", "9D", "KH", "2S")

	cases := []struct {
		typ      JokerType
		wantMult int
	}{
		{JokerGreedy, 6},     // two diamonds
		{JokerLusty, 3},      // one heart
		{JokerWrathful, 3},   // one spade
		{JokerGluttonous, 0}, // no clubs
	}
	for _, tc := range cases {
		chips, mult := NewJoker(tc.typ).Bonus(played)
		if chips != 0 {
			t.Errorf("%s chip bonus = %d, want 0", tc.typ, chips)
		}
		if mult != tc.wantMult {
			t.Errorf("%s mult bonus = %d, want %d", tc.typ, mult, tc.wantMult)
		}
	}
}

func TestPlainJokerFlatBonus(t *testing.T) {
	for _, play := range [][]string{{"2C"}, {"AS", "KH", "9D"}} {
		chips, mult := NewJoker(JokerPlain).Bonus(cards(t, play...))
		if chips != 0 || mult != 4 {
			t.Errorf("plain joker on %v = (%d, %d), want (0, 4)", play, chips, mult)
		}
	}
}

func TestJollyJokerNeedsPair(t *testing.T) {
	j := NewJoker(JokerJolly)

	if _, mult := j.Bonus(cards(t, "8S", "8H", "2C")); mult != 8 {
		t.Errorf("jolly with pair mult = %d, want 8", mult)
	}
	if _, mult := j.Bonus(cards(t, "8S", "9H", "2C")); mult != 0 {
		t.Errorf("jolly without pair mult = %d, want 0", mult)
	}
	// Trips contain a pair.
	if _, mult := j.Bonus(cards(t, "8S", "8H", "8C")); mult != 8 {
		t.Errorf("jolly with trips mult = %d, want 8", mult)
	}
}
