package game

import (
	"slices"

	"github.com/lox/blackjackforbots/blackjack"
)

// Bet reserves amount from the player's balance for the coming deal. A second
// bet in the same round replaces the first, which is refunded.
func (g *Game) Bet(id PlayerID, amount int) error {
	if amount <= 0 {
		return BetZero
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Betting {
		return BetInvalidState
	}
	balance, ok := g.money[id]
	if !ok {
		return BetPlayerNotFound
	}

	available := balance + g.bets[id]
	if available < amount {
		return BetInsufficientFunds
	}

	g.money[id] = available - amount
	g.bets[id] = amount
	g.logger.Debug("bet placed", "player", id, "amount", amount)
	return nil
}

// Deal starts the round: every player with a bet receives one hand and two
// cards, the dealer receives an up card and a hole card. If the dealer shows
// an ace and insurance is on the table moves to Insurance, otherwise play
// starts with the first hand that can act.
func (g *Game) Deal() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Betting {
		return DealInvalidState
	}
	if len(g.bets) == 0 {
		return DealNoBets
	}

	order := make([]PlayerID, 0, len(g.bets))
	for _, id := range g.players {
		if _, ok := g.bets[id]; ok {
			order = append(order, id)
		}
	}
	if g.shoe.Remaining() < (len(order)+1)*2 {
		return DealNotEnoughCards
	}

	g.setState(Dealing)
	g.roundID = g.nextRoundID()
	g.settled = false
	g.bettingOrder = append(g.bettingOrder[:0], order...)

	clear(g.hands)
	for _, id := range order {
		g.hands[id] = []*blackjack.Hand{blackjack.NewHand(g.bets[id])}
	}
	g.dealer.Clear()

	// Card count was checked above, so these draws cannot come up empty.
	for range 2 {
		for _, id := range order {
			card, _ := g.draw()
			g.hands[id][0].AddCard(card)
		}
		card, _ := g.draw()
		g.dealer.AddCard(card)
	}

	g.turn = TurnPosition{}
	clear(g.insuranceBets)
	clear(g.insuranceDecided)

	up, _ := g.dealer.UpCard()
	g.logger.Debug("dealt round",
		"round", g.roundID,
		"players", len(order),
		"up", up,
		"remaining", g.shoe.Remaining())

	if up.IsAce() && g.rules.Insurance {
		g.setState(Insurance)
		return nil
	}
	g.beginPlayerTurns()
	return nil
}

func (g *Game) nextRoundID() string {
	id, err := g.ids.Generate()
	if err != nil {
		g.logger.Warn("failed to generate round id", "error", err)
		return ""
	}
	return id
}

// seated reports whether id was dealt into the current round.
func (g *Game) seated(id PlayerID) bool {
	return slices.Contains(g.bettingOrder, id)
}
