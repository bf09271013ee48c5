package game

import (
	"testing"

	"github.com/lox/blackjackforbots/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowdownTwoPlayers(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	// p0 As Kd natural, p1 9h 8s = 17, dealer 7c Th = 17
	ids, err := DealScripted(g, "As 9h 7c Kd 8s Th", 100, 10, 10)
	require.NoError(t, err)

	require.NoError(t, g.Stand(ids[1], 0))
	drawn, err := g.DealerPlay()
	require.NoError(t, err)
	assert.Empty(t, drawn)

	result, err := g.Showdown()
	require.NoError(t, err)
	require.Len(t, result.Players, 2)
	assert.Equal(t, 17, result.DealerValue)
	assert.False(t, result.DealerBust)

	p0, _ := result.Player(ids[0])
	assert.Equal(t, blackjack.OutcomeBlackjack, p0.Hands[0].Outcome)
	assert.Equal(t, 25, p0.TotalPayout)
	assert.Equal(t, 15, p0.Net)

	p1, _ := result.Player(ids[1])
	assert.Equal(t, blackjack.OutcomePush, p1.Hands[0].Outcome)
	assert.Equal(t, 0, p1.Net)

	assert.Equal(t, 15, result.TotalNet())

	money, _ := g.Money(ids[0])
	assert.Equal(t, 115, money)
	money, _ = g.Money(ids[1])
	assert.Equal(t, 100, money)
}

func TestBlackjackPayoutRounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  []blackjack.RuleOption
		money int
	}{
		{"round down", []blackjack.RuleOption{blackjack.WithRoundingBlackjack(blackjack.RoundDown)}, 122},
		{"round up", []blackjack.RuleOption{blackjack.WithRoundingBlackjack(blackjack.RoundUp)}, 123},
		{"six to five", []blackjack.RuleOption{blackjack.WithBlackjackPays(1.2)}, 118},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := append([]blackjack.RuleOption{blackjack.WithInsurance(false)}, tt.opts...)
			g := NewTestGame(1, opts...)
			ids, err := DealScripted(g, "As 7c Kd Th", 100, 15)
			require.NoError(t, err)
			require.Equal(t, DealerTurn, g.State())

			_, err = g.DealerPlay()
			require.NoError(t, err)
			_, err = g.Showdown()
			require.NoError(t, err)

			money, _ := g.Money(ids[0])
			assert.Equal(t, tt.money, money)
		})
	}
}

func TestDealerSoft17(t *testing.T) {
	t.Parallel()

	// Player 19 against dealer A6
	const draws = "Th Ac 9d 6s 2h"

	t.Run("stands", func(t *testing.T) {
		t.Parallel()
		g := NewTestGame(1, blackjack.WithInsurance(false), blackjack.WithStandOnSoft17(true))
		ids, err := DealScripted(g, draws, 100, 10)
		require.NoError(t, err)
		require.NoError(t, g.Stand(ids[0], 0))

		drawn, err := g.DealerPlay()
		require.NoError(t, err)
		assert.Empty(t, drawn)

		result, err := g.Showdown()
		require.NoError(t, err)
		pr, _ := result.Player(ids[0])
		assert.Equal(t, blackjack.OutcomeWin, pr.Hands[0].Outcome)
	})

	t.Run("hits", func(t *testing.T) {
		t.Parallel()
		g := NewTestGame(1, blackjack.WithInsurance(false), blackjack.WithStandOnSoft17(false))
		ids, err := DealScripted(g, draws, 100, 10)
		require.NoError(t, err)
		require.NoError(t, g.Stand(ids[0], 0))

		drawn, err := g.DealerPlay()
		require.NoError(t, err)
		assert.Len(t, drawn, 1)
		assert.Equal(t, 19, g.DealerHand().Value())

		result, err := g.Showdown()
		require.NoError(t, err)
		pr, _ := result.Player(ids[0])
		assert.Equal(t, blackjack.OutcomePush, pr.Hands[0].Outcome)

		money, _ := g.Money(ids[0])
		assert.Equal(t, 100, money)
	})
}

func TestDealerBlackjackWithoutInsurance(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	ids, err := DealScripted(g, "9h As 7d Tc", 100, 10)
	require.NoError(t, err)
	require.Equal(t, PlayerTurn, g.State())

	require.NoError(t, g.Stand(ids[0], 0))
	_, err = g.DealerPlay()
	require.NoError(t, err)

	result, err := g.Showdown()
	require.NoError(t, err)
	assert.True(t, result.DealerBlackjack)
	pr, _ := result.Player(ids[0])
	assert.Equal(t, blackjack.OutcomeLose, pr.Hands[0].Outcome)
}

func TestDealerRunsOutOfCards(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	ids, err := DealScripted(g, "Th 5c 6d 9s", 100, 10)
	require.NoError(t, err)
	require.NoError(t, g.Stand(ids[0], 0))

	_, err = g.DealerPlay()
	assert.ErrorIs(t, err, ShowdownNoCards)
	assert.Equal(t, DealerTurn, g.State())
	assert.True(t, g.DealerHand().HoleRevealed())

	g.StackShoe(blackjack.MustParseCards("Ts"))
	drawn, err := g.DealerPlay()
	require.NoError(t, err)
	assert.Equal(t, blackjack.MustParseCards("Ts"), drawn)
	assert.Equal(t, RoundOver, g.State())
}

func TestShowdownOnlyOnce(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	ids, err := DealScripted(g, "Th 7c 6d 8s", 100, 10)
	require.NoError(t, err)
	_, err = g.Surrender(ids[0], 0)
	require.NoError(t, err)
	_, err = g.DealerPlay()
	require.NoError(t, err)

	_, err = g.Showdown()
	require.NoError(t, err)
	assert.True(t, g.Settled())

	_, err = g.Showdown()
	assert.ErrorIs(t, err, ShowdownAlreadySettled)

	money, _ := g.Money(ids[0])
	assert.Equal(t, 95, money)
}
