package handlers

import (
	"testing"

	"joker-poker-go/backend/internal/game/jokerpoker"
)

func TestMergeRulesNilOverrideKeepsDefaults(t *testing.T) {
	base := jokerpoker.DefaultRules()
	if got := mergeRules(base, nil); got != base {
		t.Errorf("mergeRules(base, nil) = %+v, want %+v", got, base)
	}
}

func TestMergeRulesOverlaysPositiveFields(t *testing.T) {
	base := jokerpoker.DefaultRules()
	got := mergeRules(base, &jokerpoker.Rules{Ante: 10, HandSize: 6})

	if got.Ante != 10 {
		t.Errorf("ante = %d, want 10", got.Ante)
	}
	if got.HandSize != 6 {
		t.Errorf("hand size = %d, want 6", got.HandSize)
	}
	if got.MaxPlayCards != base.MaxPlayCards || got.ShopSize != base.ShopSize {
		t.Error("untouched fields changed")
	}
}

func TestMergeRulesIgnoresNonPositiveFields(t *testing.T) {
	base := jokerpoker.DefaultRules()
	got := mergeRules(base, &jokerpoker.Rules{Ante: -1, PlaysPerRound: 0})

	if got.Ante != base.Ante || got.PlaysPerRound != base.PlaysPerRound {
		t.Errorf("non-positive overrides applied: %+v", got)
	}
}
