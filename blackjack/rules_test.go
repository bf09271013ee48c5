package blackjack

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	r := DefaultRules()
	assert.Equal(t, 2, r.Decks)
	assert.Equal(t, 1.5, r.BlackjackPays)
	assert.True(t, r.StandOnSoft17)
	assert.Equal(t, DoubleAny, r.Double)
	assert.Equal(t, 3, r.MaxSplits)
	assert.True(t, r.DoubleAfterSplit)
	assert.True(t, r.SplitAcesOnlyOnce)
	assert.True(t, r.SplitAcesReceiveOneCard)
	assert.True(t, r.Surrender)
	assert.True(t, r.Insurance)
	assert.Equal(t, RoundDown, r.RoundingBlackjack)
	assert.Equal(t, RoundNearest, r.RoundingSurrender)
	assert.Equal(t, 0.75, r.Penetration)
	require.NoError(t, r.Validate())
}

func TestRuleOptions(t *testing.T) {
	t.Parallel()

	r := NewRules(
		WithDecks(6),
		WithBlackjackPays(1.2),
		WithStandOnSoft17(false),
		WithDouble(DoubleNineThroughEleven),
		WithInsurance(false),
		WithPenetration(0),
	)
	assert.Equal(t, 6, r.Decks)
	assert.Equal(t, 1.2, r.BlackjackPays)
	assert.False(t, r.StandOnSoft17)
	assert.Equal(t, DoubleNineThroughEleven, r.Double)
	assert.False(t, r.Insurance)
	assert.Equal(t, 0.0, r.Penetration)

	// With leaves the receiver untouched
	base := DefaultRules()
	changed := base.With(WithSurrender(false))
	assert.True(t, base.Surrender)
	assert.False(t, changed.Surrender)
}

func TestRulesValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  RuleOption
	}{
		{"zero decks", WithDecks(0)},
		{"too many decks", WithDecks(256)},
		{"negative payout", WithBlackjackPays(-1)},
		{"negative splits", WithMaxSplits(-1)},
		{"penetration over one", WithPenetration(1.5)},
		{"negative penetration", WithPenetration(-0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, NewRules(tt.opt).Validate())
		})
	}
}

func TestDoubleRuleAllows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rule    DoubleRule
		allowed []int
	}{
		{DoubleAny, []int{4, 9, 10, 11, 15, 20}},
		{DoubleNineOrTen, []int{9, 10}},
		{DoubleNineThroughEleven, []int{9, 10, 11}},
		{DoubleNineThroughFifteen, []int{9, 10, 11, 12, 13, 14, 15}},
		{DoubleNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			for v := 2; v <= 21; v++ {
				want := tt.rule == DoubleAny
				for _, a := range tt.allowed {
					if a == v {
						want = true
					}
				}
				assert.Equal(t, want, tt.rule.Allows(v), "value %d", v)
			}
		})
	}
}

func TestParseDoubleRule(t *testing.T) {
	t.Parallel()

	for _, r := range []DoubleRule{DoubleAny, DoubleNineOrTen, DoubleNineThroughEleven, DoubleNineThroughFifteen, DoubleNone} {
		parsed, err := ParseDoubleRule(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	_, err := ParseDoubleRule("sometimes")
	assert.Error(t, err)
}

func TestRoundingModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount string
		mode   RoundingMode
		want   int
	}{
		{"2.5", RoundDown, 2},
		{"2.5", RoundUp, 3},
		{"2.5", RoundNearest, 3},
		{"2.4", RoundNearest, 2},
		{"22.5", RoundNearest, 23},
		{"3", RoundUp, 3},
		{"3", RoundDown, 3},
	}

	for _, tt := range tests {
		got := tt.mode.Apply(decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.want, got, "%s rounded %s", tt.amount, tt.mode)
	}
}

func TestScaledPayout(t *testing.T) {
	t.Parallel()

	// 3:2 on an odd bet leaves a half unit
	assert.Equal(t, 22, BlackjackBonus(15, 1.5, RoundDown))
	assert.Equal(t, 23, BlackjackBonus(15, 1.5, RoundUp))
	assert.Equal(t, 15, BlackjackBonus(10, 1.5, RoundDown))

	// 6:5 must not drift below the exact product
	assert.Equal(t, 12, BlackjackBonus(10, 1.2, RoundDown))
	assert.Equal(t, 6, BlackjackBonus(5, 1.2, RoundDown))

	assert.Equal(t, 5, SurrenderRefund(10, RoundNearest))
	assert.Equal(t, 3, SurrenderRefund(5, RoundNearest))
	assert.Equal(t, 2, SurrenderRefund(5, RoundDown))
}

func TestParseRoundingMode(t *testing.T) {
	t.Parallel()

	for _, m := range []RoundingMode{RoundUp, RoundDown, RoundNearest} {
		parsed, err := ParseRoundingMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseRoundingMode("banker")
	assert.Error(t, err)
}
