package game

import (
	"errors"
	"testing"

	"github.com/lox/blackjackforbots/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetErrors(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	player := g.Join(10)

	assert.ErrorIs(t, g.Bet(player, 5), BetInvalidState)

	g.StartBetting()
	assert.ErrorIs(t, g.Bet(player, 0), BetZero)
	assert.ErrorIs(t, g.Bet(player, -3), BetZero)
	assert.ErrorIs(t, g.Bet(player, 20), BetInsufficientFunds)
	assert.ErrorIs(t, g.Bet(player+1, 1), BetPlayerNotFound)

	var betErr BetError
	require.True(t, errors.As(g.Bet(player, 20), &betErr))
	assert.Equal(t, BetInsufficientFunds, betErr)

	money, _ := g.Money(player)
	assert.Equal(t, 10, money, "failed bets must not move money")
}

func TestBetDebitsImmediately(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1)
	player := g.Join(100)
	g.StartBetting()

	require.NoError(t, g.Bet(player, 30))
	money, _ := g.Money(player)
	assert.Equal(t, 70, money)
	bet, ok := g.PlacedBet(player)
	require.True(t, ok)
	assert.Equal(t, 30, bet)
}

func TestRebetReplacesReservation(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1)
	player := g.Join(100)
	g.StartBetting()

	require.NoError(t, g.Bet(player, 30))
	require.NoError(t, g.Bet(player, 100), "the earlier reservation counts towards the new bet")

	money, _ := g.Money(player)
	assert.Equal(t, 0, money)
	bet, _ := g.PlacedBet(player)
	assert.Equal(t, 100, bet)

	require.NoError(t, g.Bet(player, 10))
	money, _ = g.Money(player)
	assert.Equal(t, 90, money)
}

func TestDealErrors(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	assert.ErrorIs(t, g.Deal(), DealInvalidState)

	g.StartBetting()
	assert.ErrorIs(t, g.Deal(), DealNoBets)

	player := g.Join(10)
	require.NoError(t, g.Bet(player, 5))
	g.StackShoe(blackjack.MustParseCards("9h 5c 7d"))

	assert.ErrorIs(t, g.Deal(), DealNotEnoughCards)
	assert.Equal(t, Betting, g.State())
	assert.Equal(t, 3, g.CardsRemaining(), "a failed deal must not draw")
	assert.Empty(t, g.BettingOrder())
}

func TestDealOrder(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	a := g.Join(100)
	idle := g.Join(100)
	b := g.Join(100)
	g.StartBetting()
	require.NoError(t, g.Bet(b, 10))
	require.NoError(t, g.Bet(a, 20))

	g.StackShoe(blackjack.MustParseCards("2h 3h 4h 5h 6h 7h"))
	require.NoError(t, g.Deal())

	// Join order decides the betting order, not bet order
	assert.Equal(t, []PlayerID{a, b}, g.BettingOrder())

	handsA, _ := g.Hands(a)
	handsB, _ := g.Hands(b)
	require.Len(t, handsA, 1)
	require.Len(t, handsB, 1)
	assert.Equal(t, blackjack.MustParseCards("2h 5h"), handsA[0].Cards())
	assert.Equal(t, blackjack.MustParseCards("3h 6h"), handsB[0].Cards())
	assert.Equal(t, 20, handsA[0].Bet())
	assert.Equal(t, 10, handsB[0].Bet())

	dealer := g.DealerHand()
	assert.Equal(t, blackjack.MustParseCards("4h 7h"), dealer.Cards())
	assert.False(t, dealer.HoleRevealed())

	_, ok := g.Hands(idle)
	assert.False(t, ok)

	assert.Equal(t, PlayerTurn, g.State())
	current, ok := g.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, a, current)
}

func TestDealSkipsNaturals(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	// p0: As Kd (natural), p1: 9h 8s, dealer: 7c Th
	ids, err := DealScripted(g, "As 9h 7c Kd 8s Th", 100, 10, 10)
	require.NoError(t, err)

	assert.Equal(t, PlayerTurn, g.State())
	assert.Equal(t, TurnPosition{PlayerIndex: 1}, g.CurrentTurn())
	current, _ := g.CurrentPlayer()
	assert.Equal(t, ids[1], current)

	assert.ErrorIs(t, g.Stand(ids[0], 0), ActionNotYourTurn)
}

func TestDealWithOnlyNaturalsGoesToDealer(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1, blackjack.WithInsurance(false))
	ids, err := DealScripted(g, "As 7c Kd Th", 100, 10)
	require.NoError(t, err)

	assert.Equal(t, DealerTurn, g.State())
	_, ok := g.CurrentPlayer()
	assert.False(t, ok)
	assert.True(t, g.AvailableActions(ids[0]).Empty())
}

func TestDealOffersInsuranceOnAce(t *testing.T) {
	t.Parallel()

	g := NewTestGame(1)
	_, err := DealScripted(g, "9h As 7d Tc", 100, 10)
	require.NoError(t, err)
	assert.Equal(t, Insurance, g.State())
	assert.True(t, g.IsInsuranceOffered())

	// Insurance off: straight to player turns
	g = NewTestGame(1, blackjack.WithInsurance(false))
	_, err = DealScripted(g, "9h As 7d Tc", 100, 10)
	require.NoError(t, err)
	assert.Equal(t, PlayerTurn, g.State())
	assert.False(t, g.IsInsuranceOffered())
}
