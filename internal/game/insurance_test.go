package game

import (
	"testing"

	"github.com/lox/blackjackforbots/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsuranceAgainstDealerBlackjack(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1)
	ids, err := DealScripted(g, "9h As 7d Tc", 100, 10)
	require.NoError(t, err)
	player := ids[0]

	require.True(t, g.IsInsuranceOffered())
	stake, err := g.TakeInsurance(player)
	require.NoError(t, err)
	assert.Equal(t, 5, stake)

	money, _ := g.Money(player)
	assert.Equal(t, 85, money)
	assert.True(t, g.AllInsuranceDecided())

	dealerBlackjack, err := g.FinishInsurance()
	require.NoError(t, err)
	assert.True(t, dealerBlackjack)
	assert.Equal(t, RoundOver, g.State())
	assert.True(t, g.DealerHand().HoleRevealed())

	result, err := g.Showdown()
	require.NoError(t, err)
	assert.True(t, result.DealerBlackjack)

	pr, _ := result.Player(player)
	assert.Equal(t, blackjack.OutcomeLose, pr.Hands[0].Outcome)
	assert.Equal(t, 5, pr.InsuranceBet)
	assert.Equal(t, 15, pr.InsurancePayout)
	assert.Equal(t, 0, pr.Net)

	money, _ = g.Money(player)
	assert.Equal(t, 100, money)
}

func TestInsuranceWithoutDealerBlackjack(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1)
	ids, err := DealScripted(g, "7h As 8c 9d", 100, 10)
	require.NoError(t, err)

	_, err = g.TakeInsurance(ids[0])
	require.NoError(t, err)

	dealerBlackjack, err := g.FinishInsurance()
	require.NoError(t, err)
	assert.False(t, dealerBlackjack)
	assert.Equal(t, PlayerTurn, g.State())
	assert.False(t, g.DealerHand().HoleRevealed())

	current, ok := g.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, ids[0], current)

	// Stake is lost at showdown: 15 against 20
	require.NoError(t, g.Stand(ids[0], 0))
	_, err = g.DealerPlay()
	require.NoError(t, err)
	result, err := g.Showdown()
	require.NoError(t, err)

	pr, _ := result.Player(ids[0])
	assert.Equal(t, 0, pr.InsurancePayout)
	assert.Equal(t, -15, pr.Net)
	money, _ := g.Money(ids[0])
	assert.Equal(t, 85, money)
}

func TestInsuranceDecisions(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1)
	_, err := g.TakeInsurance(0)
	assert.ErrorIs(t, err, InsuranceInvalidState)

	ids, err := DealScripted(g, "7h 6h As 8c 9c 9d", 100, 10, 10)
	require.NoError(t, err)
	watcher := g.Join(100)

	assert.False(t, g.AllInsuranceDecided())

	require.NoError(t, g.DeclineInsurance(ids[0]))
	assert.ErrorIs(t, g.DeclineInsurance(ids[0]), InsuranceAlreadyDecided)
	_, err = g.TakeInsurance(ids[0])
	assert.ErrorIs(t, err, InsuranceAlreadyDecided)

	_, err = g.TakeInsurance(watcher)
	assert.ErrorIs(t, err, InsuranceNoBet)
	assert.ErrorIs(t, g.DeclineInsurance(PlayerID(99)), InsuranceNoBet)

	assert.False(t, g.AllInsuranceDecided())
	_, err = g.TakeInsurance(ids[1])
	require.NoError(t, err)
	assert.True(t, g.AllInsuranceDecided())

	bet, ok := g.InsuranceBet(ids[1])
	require.True(t, ok)
	assert.Equal(t, 5, bet)
	_, ok = g.InsuranceBet(ids[0])
	assert.False(t, ok)

	// Actions wait for the insurance window to close
	_, err = g.Hit(ids[0], 0)
	assert.ErrorIs(t, err, ActionInvalidState)
}

func TestInsuranceInsufficientFunds(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1)
	ids, err := DealScripted(g, "7h As 8c 9d", 10, 10)
	require.NoError(t, err)

	_, err = g.TakeInsurance(ids[0])
	assert.ErrorIs(t, err, InsuranceInsufficientFunds)

	// Still free to decline
	require.NoError(t, g.DeclineInsurance(ids[0]))
}

func TestInsuranceStakeRoundsDown(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1)
	ids, err := DealScripted(g, "7h As 8c 9d", 100, 7)
	require.NoError(t, err)

	stake, err := g.TakeInsurance(ids[0])
	require.NoError(t, err)
	assert.Equal(t, 3, stake)
}

func TestFinishInsuranceWithNaturals(t *testing.T) {
	t.Parallel()

	t.Run("both naturals push", func(t *testing.T) {
		t.Parallel()
		g := NewTestGame(1)
		ids, err := DealScripted(g, "Ah As Kd Tc", 100, 10)
		require.NoError(t, err)

		dealerBlackjack, err := g.FinishInsurance()
		require.NoError(t, err)
		assert.True(t, dealerBlackjack)

		result, err := g.Showdown()
		require.NoError(t, err)
		pr, _ := result.Player(ids[0])
		assert.Equal(t, blackjack.OutcomePush, pr.Hands[0].Outcome)

		money, _ := g.Money(ids[0])
		assert.Equal(t, 100, money)
	})

	t.Run("only the player has one", func(t *testing.T) {
		t.Parallel()
		g := NewTestGame(1)
		_, err := DealScripted(g, "Ah As Kd 9c", 100, 10)
		require.NoError(t, err)

		dealerBlackjack, err := g.FinishInsurance()
		require.NoError(t, err)
		assert.False(t, dealerBlackjack)
		assert.Equal(t, DealerTurn, g.State())
	})
}

func TestFinishInsuranceOutsideWindow(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	_, err := DealScripted(g, "7h As 8c 9d", 100, 10)
	require.NoError(t, err)

	_, err = g.FinishInsurance()
	assert.ErrorIs(t, err, InsuranceInvalidState)
}
